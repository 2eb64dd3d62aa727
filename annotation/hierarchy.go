package annotation

import (
	"github.com/dhamidi/jel/symbol"
)

// Hierarchy merges the metadata of several elements that make up one
// logical element, such as the field, getter and setter of a property.
// Later views win on conflicting reads. Every mutation is applied to all
// views, so each contributing element observes it on its own.
type Hierarchy struct {
	views []Metadata
}

// NewHierarchy combines views in increasing order of precedence. A single
// view is returned as is.
func NewHierarchy(views ...Metadata) Metadata {
	var present []Metadata
	for _, v := range views {
		if v != nil {
			present = append(present, v)
		}
	}
	switch len(present) {
	case 0:
		return New(nil)
	case 1:
		return present[0]
	}
	return &Hierarchy{views: present}
}

// Views returns the contributing views in precedence order.
func (h *Hierarchy) Views() []Metadata { return h.views }

func (h *Hierarchy) HasAnnotation(name string) bool {
	for _, v := range h.views {
		if v.HasAnnotation(name) {
			return true
		}
	}
	return false
}

func (h *Hierarchy) HasDeclaredAnnotation(name string) bool {
	for _, v := range h.views {
		if v.HasDeclaredAnnotation(name) {
			return true
		}
	}
	return false
}

func (h *Hierarchy) Annotation(name string) (symbol.Annotation, bool) {
	for i := len(h.views) - 1; i >= 0; i-- {
		if a, ok := h.views[i].Annotation(name); ok {
			return a, true
		}
	}
	return symbol.Annotation{}, false
}

func (h *Hierarchy) AnnotationNames() []string {
	return h.collect(Metadata.AnnotationNames)
}

func (h *Hierarchy) DeclaredAnnotationNames() []string {
	return h.collect(Metadata.DeclaredAnnotationNames)
}

func (h *Hierarchy) collect(get func(Metadata) []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range h.views {
		for _, name := range get(v) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

func (h *Hierarchy) HasStereotype(name string) bool {
	for _, v := range h.views {
		if v.HasStereotype(name) {
			return true
		}
	}
	return false
}

func (h *Hierarchy) Annotate(name string, values map[string]any) {
	for _, v := range h.views {
		v.Annotate(name, values)
	}
}

func (h *Hierarchy) RemoveAnnotation(name string) {
	for _, v := range h.views {
		v.RemoveAnnotation(name)
	}
}

func (h *Hierarchy) RemoveAnnotationIf(pred func(symbol.Annotation) bool) {
	for _, v := range h.views {
		v.RemoveAnnotationIf(pred)
	}
}

func (h *Hierarchy) RemoveStereotype(name string) {
	for _, v := range h.views {
		v.RemoveStereotype(name)
	}
}

func (h *Hierarchy) Declared() Metadata {
	declared := make([]Metadata, len(h.views))
	for i, v := range h.views {
		declared[i] = v.Declared()
	}
	return &Hierarchy{views: declared}
}
