package annotation

import (
	"strings"

	"github.com/dhamidi/jel/symbol"
)

// Factory builds the metadata view of a symbol.
type Factory interface {
	Build(src symbol.Annotated) Metadata
	// BuildPreset returns preset when one is given, and Build(src)
	// otherwise.
	BuildPreset(src symbol.Annotated, preset Metadata) Metadata
}

const inheritedMarker = "java.lang.annotation.Inherited"

// CachingFactory builds metadata once per canonical symbol reference, so
// a mutation made through one element is seen by every later element
// wrapping the same symbol. It is not safe for concurrent use.
type CachingFactory struct {
	oracle      symbol.Oracle
	cache       map[symbol.Ref]*Mutable
	stereotypes map[string][]string
}

// NewCachingFactory returns a factory that looks up annotation
// declarations through oracle to expand stereotypes. oracle may be nil.
func NewCachingFactory(oracle symbol.Oracle) *CachingFactory {
	return &CachingFactory{
		oracle:      oracle,
		cache:       make(map[symbol.Ref]*Mutable),
		stereotypes: make(map[string][]string),
	}
}

func (f *CachingFactory) Build(src symbol.Annotated) Metadata {
	if src == nil {
		return New(nil)
	}
	ref := src.Ref()
	if m, ok := f.cache[ref]; ok {
		return m
	}
	m := NewInherited(src.DeclaredAnnotations(), f.inherited(src))
	m.expand = f.expand
	f.cache[ref] = m
	return m
}

func (f *CachingFactory) BuildPreset(src symbol.Annotated, preset Metadata) Metadata {
	if preset != nil {
		return preset
	}
	return f.Build(src)
}

// inherited returns the annotations a symbol carries without declaring
// them: methods see those of their class, classes see @Inherited
// annotations of their superclasses.
func (f *CachingFactory) inherited(src symbol.Annotated) []symbol.Annotation {
	switch s := src.(type) {
	case *symbol.Method:
		return s.Owner.Annotations
	case *symbol.Class:
		return f.inheritedFromSuper(s)
	}
	return nil
}

func (f *CachingFactory) inheritedFromSuper(c *symbol.Class) []symbol.Annotation {
	if f.oracle == nil {
		return nil
	}
	var out []symbol.Annotation
	seen := map[string]bool{c.Name: true}
	for t := c.Super; t != nil; {
		super, ok := f.oracle.ResolveType(t)
		if !ok || seen[super.Name] {
			break
		}
		seen[super.Name] = true
		for _, a := range super.Annotations {
			if f.isInheritable(a.Name) {
				out = append(out, a)
			}
		}
		t = super.Super
	}
	return out
}

func (f *CachingFactory) isInheritable(name string) bool {
	decl, ok := f.oracle.LookupClass(name)
	if !ok {
		return false
	}
	for _, meta := range decl.Annotations {
		if meta.Name == inheritedMarker {
			return true
		}
	}
	return false
}

// expand returns the stereotypes of an annotation: every annotation found
// by following meta-annotations, the java.lang.annotation ones excepted.
func (f *CachingFactory) expand(name string) []string {
	if cached, ok := f.stereotypes[name]; ok {
		return cached
	}
	var out []string
	if f.oracle != nil {
		visited := map[string]bool{name: true}
		queue := []string{name}
		for len(queue) > 0 {
			decl, ok := f.oracle.LookupClass(queue[0])
			queue = queue[1:]
			if !ok {
				continue
			}
			for _, meta := range decl.Annotations {
				if visited[meta.Name] || strings.HasPrefix(meta.Name, "java.lang.annotation.") {
					continue
				}
				visited[meta.Name] = true
				out = append(out, meta.Name)
				queue = append(queue, meta.Name)
			}
		}
	}
	f.stereotypes[name] = out
	return out
}
