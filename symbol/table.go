package symbol

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/jel/java"
	"github.com/dhamidi/jel/java/parser"
	"github.com/tliron/commonlog"
)

// The prelude declares the slice of the JDK (and kotlin.jvm) that user
// sources commonly refer to, so that supertypes such as java.lang.Object
// and java.lang.Enum are always known.
//
//go:embed prelude
var preludeFS embed.FS

var log = commonlog.GetLogger("jel.symbol")

// Table is an Oracle backed by Java sources. Files can be added, replaced
// and removed at any time; the symbol graph is rebuilt lazily on the next
// lookup after a change. A Table is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	top     string
	prelude bool
	files   map[string]*File
	classes map[string]*Class
	dirty   bool
}

// File is one loaded compilation unit.
type File struct {
	Path     string
	Models   []*java.ClassModel
	ParseErr error
}

type Option func(*Table)

// WithTopType names the class every hierarchy ends in. It defaults to
// java.lang.Object.
func WithTopType(name string) Option {
	return func(t *Table) { t.top = name }
}

// WithPrelude controls whether the embedded JDK declarations are loaded.
func WithPrelude(enabled bool) Option {
	return func(t *Table) { t.prelude = enabled }
}

func NewTable(opts ...Option) *Table {
	t := &Table{
		top:     java.ObjectClass,
		prelude: true,
		files:   make(map[string]*File),
		dirty:   true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.prelude {
		if err := t.loadPrelude(); err != nil {
			log.Errorf("prelude: %s", err)
		}
	}
	return t
}

func (t *Table) loadPrelude() error {
	entries, err := fs.ReadDir(preludeFS, "prelude")
	if err != nil {
		return err
	}
	var errs []error
	for _, entry := range entries {
		name := path.Join("prelude", entry.Name())
		content, err := preludeFS.ReadFile(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := t.LoadSource(name, content); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadDir loads every .java file below root. Files that fail to parse are
// reported in the returned error; the remaining files are loaded anyway.
func (t *Table) LoadDir(root string) error {
	var errs []error
	walkErr := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".java" {
			return nil
		}
		if err := t.LoadFile(p); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, walkErr)
	}
	log.Debugf("loaded %s: %d files", root, t.fileCount())
	return errors.Join(errs...)
}

func (t *Table) LoadFile(p string) error {
	content, err := os.ReadFile(p)
	if err != nil {
		return err
	}
	return t.LoadSource(p, content)
}

// LoadSource parses content as the file at path, replacing whatever was
// loaded from that path before. A file with syntax errors contributes no
// classes.
func (t *Table) LoadSource(p string, content []byte) error {
	models, err := java.ClassModelsFromSource(content, parser.WithFile(p))
	t.mu.Lock()
	defer t.mu.Unlock()
	t.files[p] = &File{Path: p, Models: models, ParseErr: err}
	t.dirty = true
	if err != nil {
		return fmt.Errorf("load %s: %w", p, err)
	}
	log.Debugf("loaded %s: %d classes", p, len(models))
	return nil
}

func (t *Table) RemoveFile(p string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.files, p)
	t.dirty = true
}

func (t *Table) File(p string) *File {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.files[p]
}

func (t *Table) fileCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.files)
}

// snapshot returns the current symbol graph, rebuilding it first when
// files changed since the last lookup.
func (t *Table) snapshot() map[string]*Class {
	t.mu.RLock()
	if !t.dirty {
		classes := t.classes
		t.mu.RUnlock()
		return classes
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dirty {
		t.rebuildLocked()
	}
	return t.classes
}

func (t *Table) rebuildLocked() {
	paths := make([]string, 0, len(t.files))
	for p := range t.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var all []*java.ClassModel
	known := make(map[string]bool)
	for _, p := range paths {
		for _, m := range t.files[p].Models {
			if known[m.Name] {
				log.Warningf("%s: %s is already declared, skipping", p, m.Name)
				continue
			}
			known[m.Name] = true
			all = append(all, m)
		}
	}
	java.Link(all, func(name string) bool { return known[name] })
	t.classes = buildClasses(all)
	t.dirty = false
	log.Debugf("rebuilt symbol table: %d classes from %d files", len(t.classes), len(paths))
}

func (t *Table) LookupClass(name string) (*Class, bool) {
	c, ok := t.snapshot()[name]
	return c, ok
}

// ResolveType returns the class a type reference names. Primitives, type
// variables and arrays name no class.
func (t *Table) ResolveType(typ *Type) (*Class, bool) {
	if typ == nil || typ.Var != nil || typ.IsArray() || typ.IsPrimitive() {
		return nil, false
	}
	return t.LookupClass(typ.Name)
}

// TopType returns the root of the class hierarchy, or nil when it was
// never loaded.
func (t *Table) TopType() *Class {
	c, _ := t.LookupClass(t.top)
	return c
}

// Classes returns every known class ordered by name.
func (t *Table) Classes() []*Class {
	classes := t.snapshot()
	out := make([]*Class, 0, len(classes))
	for _, c := range classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindBySimpleName returns the classes whose simple name is name, ordered
// by qualified name.
func (t *Table) FindBySimpleName(name string) []*Class {
	var found []*Class
	for _, c := range t.Classes() {
		if c.SimpleName == name {
			found = append(found, c)
		}
	}
	return found
}

// ParseType reads a Java type expression such as "Map<String, List<T>>"
// or "Outer.Inner[]". Names are taken as written when they are fully
// qualified, then looked up in java.lang, then matched against the simple
// names of known classes. An ambiguous or unknown name is an error.
func (t *Table) ParseType(expr string) (*Type, error) {
	src := fmt.Sprintf("class TypeProbe { %s probe; }", expr)
	models, err := java.ClassModelsFromSource([]byte(src), parser.WithFile("<type>"))
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("parse type %q: not a type", expr)
	}
	probe, ok := models[0].Field("probe")
	if !ok {
		return nil, fmt.Errorf("parse type %q: not a type", expr)
	}
	tm := probe.Type
	if err := t.qualify(&tm); err != nil {
		return nil, fmt.Errorf("parse type %q: %w", expr, err)
	}
	return convertType(tm, nil), nil
}

func (t *Table) qualify(tm *java.TypeModel) error {
	for i := range tm.TypeArguments {
		arg := &tm.TypeArguments[i]
		for _, nested := range []*java.TypeModel{arg.Type, arg.Bound} {
			if nested == nil {
				continue
			}
			if err := t.qualify(nested); err != nil {
				return err
			}
		}
	}
	if tm.Name == "void" || java.IsPrimitiveName(tm.Name) {
		return nil
	}
	tm.IsTypeVariable = false
	if _, ok := t.LookupClass(tm.Name); ok {
		return nil
	}
	if _, ok := t.LookupClass("java.lang." + tm.Name); ok {
		tm.Name = "java.lang." + tm.Name
		return nil
	}
	head, rest, _ := strings.Cut(tm.Name, ".")
	found := t.FindBySimpleName(head)
	switch len(found) {
	case 0:
		return fmt.Errorf("unknown type %s", tm.Name)
	case 1:
		name := found[0].Name
		if rest != "" {
			name += "." + rest
		}
		if _, ok := t.LookupClass(name); !ok {
			return fmt.Errorf("unknown type %s", tm.Name)
		}
		tm.Name = name
		return nil
	}
	names := make([]string, len(found))
	for i, c := range found {
		names[i] = c.Name
	}
	return fmt.Errorf("ambiguous type %s: %s", tm.Name, strings.Join(names, ", "))
}
