package element

import (
	"iter"
	"slices"
	"strings"
)

// Bindings maps type parameter names to resolved types, in declaration
// order. It is immutable; With returns an extended copy. A nil *Bindings
// is the empty mapping.
type Bindings struct {
	names  []string
	values map[string]ClassElement
}

func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

func (b *Bindings) Get(name string) (ClassElement, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[name]
	return v, ok
}

func (b *Bindings) Names() []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.names)
}

// All yields the bindings in declaration order.
func (b *Bindings) All() iter.Seq2[string, ClassElement] {
	return func(yield func(string, ClassElement) bool) {
		if b == nil {
			return
		}
		for _, name := range b.names {
			if !yield(name, b.values[name]) {
				return
			}
		}
	}
}

// With returns a copy with name bound to v. Rebinding a name keeps its
// original position.
func (b *Bindings) With(name string, v ClassElement) *Bindings {
	out := &Bindings{values: make(map[string]ClassElement, b.Len()+1)}
	if b != nil {
		out.names = slices.Clone(b.names)
		for k, val := range b.values {
			out.values[k] = val
		}
	}
	if _, ok := out.values[name]; !ok {
		out.names = append(out.names, name)
	}
	out.values[name] = v
	return out
}

func (b *Bindings) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for name, v := range b.All() {
		if sb.Len() > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(" -> ")
		sb.WriteString(TypeString(v))
	}
	sb.WriteByte('}')
	return sb.String()
}
