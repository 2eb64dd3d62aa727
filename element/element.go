// Package element turns symbols into the element model: classes with
// resolved type arguments, generic placeholders, wildcards, and the
// fields, methods, constructors, parameters and bean properties of a
// class.
//
// Elements are views. The same declaration can be wrapped any number of
// times; two wrappers over one symbol are Equal and share a Key, and
// annotation metadata is kept per symbol so that a change made through one
// wrapper is visible through every other.
package element

import (
	"slices"

	"github.com/dhamidi/jel/annotation"
	"github.com/dhamidi/jel/symbol"
)

type Modifier = symbol.Modifier

// Element is implemented by *Class, *Placeholder, *Wildcard, *Field,
// *Property, *Method, *Constructor and *Parameter.
type Element interface {
	Ref() symbol.Ref
	Name() string
	Modifiers() []Modifier
	IsPublic() bool
	IsProtected() bool
	IsPrivate() bool
	IsAbstract() bool
	IsFinal() bool
	IsStatic() bool
	Doc() string
	AnnotationMetadata() annotation.Metadata
	// WithAnnotationMetadata returns a copy of the element that reports
	// meta as its annotation metadata. The receiver is not changed.
	WithAnnotationMetadata(meta annotation.Metadata) Element

	isElement()
}

// Equal reports whether a and b wrap the same symbol.
func Equal(a, b Element) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Ref() == b.Ref()
}

// Key returns a comparable value identifying the symbol e wraps, for use
// as a map key.
func Key(e Element) symbol.Ref {
	return e.Ref()
}

// base is the state shared by every element variant.
type base struct {
	ref    symbol.Ref
	r      *Resolver
	source symbol.Annotated // nil when there is no declaration to read
	mods   symbol.Modifiers
	doc    string
	preset annotation.Metadata
	meta   memo[annotation.Metadata]
}

func (b *base) Ref() symbol.Ref { return b.ref }

func (b *base) Modifiers() []Modifier { return slices.Clone(b.mods) }

func (b *base) IsPublic() bool    { return b.mods.Has(symbol.Public) }
func (b *base) IsProtected() bool { return b.mods.Has(symbol.Protected) }
func (b *base) IsPrivate() bool   { return b.mods.Has(symbol.Private) }
func (b *base) IsAbstract() bool  { return b.mods.Has(symbol.Abstract) }
func (b *base) IsFinal() bool     { return b.mods.Has(symbol.Final) }
func (b *base) IsStatic() bool    { return b.mods.Has(symbol.Static) }

func (b *base) Doc() string { return b.doc }

func (b *base) AnnotationMetadata() annotation.Metadata {
	m, _ := b.meta.get(func() (annotation.Metadata, error) {
		if b.source == nil && b.preset == nil {
			return annotation.New(nil), nil
		}
		return b.r.annotations.BuildPreset(b.source, b.preset), nil
	})
	return m
}

func (b *base) withPreset(meta annotation.Metadata) {
	b.preset = meta
	b.meta = memo[annotation.Metadata]{}
}

func (b *base) isElement() {}

// memo is a compute-once cell. It has no locking: an element and the
// elements derived from it are used from one goroutine.
type memo[T any] struct {
	done bool
	val  T
	err  error
}

func (m *memo[T]) get(compute func() (T, error)) (T, error) {
	if !m.done {
		m.val, m.err = compute()
		m.done = true
	}
	return m.val, m.err
}

func (m *memo[T]) set(v T) {
	m.val, m.err, m.done = v, nil, true
}
