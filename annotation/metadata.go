// Package annotation holds the mutable annotation views attached to
// elements: per-symbol metadata, stereotype expansion and the aggregate
// view a property exposes over its field and accessors.
package annotation

import (
	"maps"
	"slices"

	"github.com/dhamidi/jel/symbol"
)

// Metadata is a mutable view of the annotations on one element.
//
// Declared annotations are the ones written on the element itself.
// Inherited ones come from an enclosing or super declaration. Stereotypes
// are the annotations reachable through meta-annotations.
type Metadata interface {
	HasAnnotation(name string) bool
	HasDeclaredAnnotation(name string) bool
	Annotation(name string) (symbol.Annotation, bool)
	AnnotationNames() []string
	DeclaredAnnotationNames() []string
	HasStereotype(name string) bool

	Annotate(name string, values map[string]any)
	RemoveAnnotation(name string)
	RemoveAnnotationIf(pred func(symbol.Annotation) bool)
	RemoveStereotype(name string)

	// Declared returns a view restricted to the declared annotations.
	// Mutations through it reach the same underlying store.
	Declared() Metadata
}

// Mutable is the per-symbol annotation store.
type Mutable struct {
	declared  []symbol.Annotation
	inherited []symbol.Annotation
	expand    func(name string) []string
}

// New creates metadata holding the given declared annotations.
func New(declared []symbol.Annotation) *Mutable {
	return &Mutable{declared: clone(declared)}
}

// NewInherited creates metadata with declared annotations that take
// precedence over the inherited ones.
func NewInherited(declared, inherited []symbol.Annotation) *Mutable {
	return &Mutable{declared: clone(declared), inherited: clone(inherited)}
}

func clone(anns []symbol.Annotation) []symbol.Annotation {
	out := make([]symbol.Annotation, len(anns))
	for i, a := range anns {
		out[i] = symbol.Annotation{Name: a.Name, Values: maps.Clone(a.Values)}
	}
	return out
}

func find(anns []symbol.Annotation, name string) (symbol.Annotation, bool) {
	for _, a := range anns {
		if a.Name == name {
			return a, true
		}
	}
	return symbol.Annotation{}, false
}

func names(lists ...[]symbol.Annotation) []string {
	var out []string
	for _, anns := range lists {
		for _, a := range anns {
			if !slices.Contains(out, a.Name) {
				out = append(out, a.Name)
			}
		}
	}
	return out
}

func (m *Mutable) HasAnnotation(name string) bool {
	_, ok := m.Annotation(name)
	return ok
}

func (m *Mutable) HasDeclaredAnnotation(name string) bool {
	_, ok := find(m.declared, name)
	return ok
}

func (m *Mutable) Annotation(name string) (symbol.Annotation, bool) {
	if a, ok := find(m.declared, name); ok {
		return a, true
	}
	return find(m.inherited, name)
}

func (m *Mutable) AnnotationNames() []string {
	return names(m.declared, m.inherited)
}

func (m *Mutable) DeclaredAnnotationNames() []string {
	return names(m.declared)
}

func (m *Mutable) HasStereotype(name string) bool {
	return m.hasStereotype(m.AnnotationNames(), name)
}

func (m *Mutable) hasStereotype(present []string, name string) bool {
	for _, a := range present {
		if a == name || slices.Contains(m.stereotypesOf(a), name) {
			return true
		}
	}
	return false
}

func (m *Mutable) stereotypesOf(name string) []string {
	if m.expand == nil {
		return nil
	}
	return m.expand(name)
}

// Annotate adds the annotation, or merges values into an existing
// declared annotation of the same name.
func (m *Mutable) Annotate(name string, values map[string]any) {
	for i := range m.declared {
		if m.declared[i].Name != name {
			continue
		}
		if m.declared[i].Values == nil && len(values) > 0 {
			m.declared[i].Values = make(map[string]any, len(values))
		}
		maps.Copy(m.declared[i].Values, values)
		return
	}
	m.declared = append(m.declared, symbol.Annotation{Name: name, Values: maps.Clone(values)})
}

func (m *Mutable) RemoveAnnotation(name string) {
	m.RemoveAnnotationIf(func(a symbol.Annotation) bool { return a.Name == name })
}

func (m *Mutable) RemoveAnnotationIf(pred func(symbol.Annotation) bool) {
	m.declared = slices.DeleteFunc(m.declared, pred)
	m.inherited = slices.DeleteFunc(m.inherited, pred)
}

// RemoveStereotype removes the named annotation and every annotation
// that carries it as a stereotype.
func (m *Mutable) RemoveStereotype(name string) {
	m.RemoveAnnotationIf(func(a symbol.Annotation) bool {
		return a.Name == name || slices.Contains(m.stereotypesOf(a.Name), name)
	})
}

func (m *Mutable) Declared() Metadata { return declaredView{m} }

// declaredView reads only the declared annotations of a Mutable.
type declaredView struct {
	m *Mutable
}

func (v declaredView) HasAnnotation(name string) bool { return v.m.HasDeclaredAnnotation(name) }

func (v declaredView) HasDeclaredAnnotation(name string) bool { return v.m.HasDeclaredAnnotation(name) }

func (v declaredView) Annotation(name string) (symbol.Annotation, bool) {
	return find(v.m.declared, name)
}

func (v declaredView) AnnotationNames() []string { return v.m.DeclaredAnnotationNames() }

func (v declaredView) DeclaredAnnotationNames() []string { return v.m.DeclaredAnnotationNames() }

func (v declaredView) HasStereotype(name string) bool {
	return v.m.hasStereotype(v.m.DeclaredAnnotationNames(), name)
}

func (v declaredView) Annotate(name string, values map[string]any) { v.m.Annotate(name, values) }

func (v declaredView) RemoveAnnotation(name string) { v.m.RemoveAnnotation(name) }

func (v declaredView) RemoveAnnotationIf(pred func(symbol.Annotation) bool) {
	v.m.RemoveAnnotationIf(pred)
}

func (v declaredView) RemoveStereotype(name string) { v.m.RemoveStereotype(name) }

func (v declaredView) Declared() Metadata { return v }
