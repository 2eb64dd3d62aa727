package element

import (
	"strings"

	"github.com/dhamidi/jel/annotation"
	"github.com/dhamidi/jel/symbol"
)

// ClassElement is a type: a class, interface, enum, record or annotation
// type, possibly parameterized, possibly an array, or a primitive.
// Placeholders and wildcards are class elements too; their class
// capabilities are those of the type they stand for.
type ClassElement interface {
	Element

	SimpleName() string
	PackageName() string
	ArrayDimensions() int
	IsArray() bool
	IsPrimitive() bool
	IsInterface() bool
	IsEnum() bool
	IsRecord() bool
	IsAnnotation() bool

	// TypeArguments maps each declared type parameter to its resolved
	// argument. It is computed once per instance.
	TypeArguments() (*Bindings, error)
	// SuperType is nil for interfaces, arrays, primitives and the top
	// type itself.
	SuperType() (ClassElement, error)
	// Interfaces never contains the top type.
	Interfaces() ([]ClassElement, error)
	DeclaredGenericPlaceholders() ([]*Placeholder, error)

	WithTypeArguments(args *Bindings) ClassElement
	WithTypeArgumentList(args ...ClassElement) (ClassElement, error)
	WithArrayDimensions(n int) ClassElement

	EnclosedElements(q Query) ([]Element, error)
	Properties() ([]*Property, error)
	// IsAssignable reports whether the type is, extends or implements the
	// named class.
	IsAssignable(name string) (bool, error)
}

// Class is a class element backed by a class symbol, or a primitive.
type Class struct {
	base
	sym       *symbol.Class // nil for primitives
	primitive string
	dims      int

	args         memo[*Bindings]
	super        memo[ClassElement]
	interfaces   memo[[]ClassElement]
	placeholders memo[[]*Placeholder]
}

// Symbol returns the class symbol, or nil for primitives.
func (c *Class) Symbol() *symbol.Class { return c.sym }

func (c *Class) Name() string {
	if c.sym == nil {
		return c.primitive
	}
	return c.sym.Name
}

func (c *Class) SimpleName() string {
	if c.sym == nil {
		return c.primitive
	}
	return c.sym.SimpleName
}

func (c *Class) PackageName() string {
	if c.sym == nil {
		return ""
	}
	return c.sym.Package
}

func (c *Class) ArrayDimensions() int { return c.dims }
func (c *Class) IsArray() bool        { return c.dims > 0 }
func (c *Class) IsPrimitive() bool    { return c.sym == nil }

func (c *Class) IsInterface() bool  { return c.sym != nil && c.dims == 0 && c.sym.IsInterface() }
func (c *Class) IsEnum() bool       { return c.sym != nil && c.dims == 0 && c.sym.IsEnum() }
func (c *Class) IsRecord() bool     { return c.sym != nil && c.dims == 0 && c.sym.IsRecord() }
func (c *Class) IsAnnotation() bool { return c.sym != nil && c.dims == 0 && c.sym.IsAnnotation() }

func (c *Class) TypeArguments() (*Bindings, error) {
	return c.args.get(func() (*Bindings, error) {
		if c.sym == nil {
			return nil, nil
		}
		return c.r.resolveTypeArguments(nil, c.sym, nil, nil)
	})
}

func (c *Class) SuperType() (ClassElement, error) {
	return c.super.get(func() (ClassElement, error) {
		if c.sym == nil || c.dims > 0 || c.sym.Super == nil || c.sym.Name == c.r.top.Name {
			return nil, nil
		}
		args, err := c.TypeArguments()
		if err != nil {
			return nil, err
		}
		return c.r.resolve(c.sym.Super, args, false, nil)
	})
}

func (c *Class) Interfaces() ([]ClassElement, error) {
	return c.interfaces.get(func() ([]ClassElement, error) {
		if c.sym == nil || c.dims > 0 || len(c.sym.Interfaces) == 0 {
			return nil, nil
		}
		args, err := c.TypeArguments()
		if err != nil {
			return nil, err
		}
		var out []ClassElement
		for _, t := range c.sym.Interfaces {
			iface, err := c.r.resolve(t, args, false, nil)
			if err != nil {
				return nil, err
			}
			if iface.Name() == c.r.top.Name {
				continue
			}
			out = append(out, iface)
		}
		return out, nil
	})
}

func (c *Class) DeclaredGenericPlaceholders() ([]*Placeholder, error) {
	return c.placeholders.get(func() ([]*Placeholder, error) {
		if c.sym == nil {
			return nil, nil
		}
		out := make([]*Placeholder, 0, len(c.sym.TypeParams))
		for _, tp := range c.sym.TypeParams {
			p, err := c.r.placeholder(tp, nil, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	})
}

func (c *Class) WithTypeArguments(args *Bindings) ClassElement {
	cp := *c
	cp.args = memo[*Bindings]{}
	cp.args.set(args)
	cp.super = memo[ClassElement]{}
	cp.interfaces = memo[[]ClassElement]{}
	return &cp
}

// WithTypeArgumentList binds the declared type parameters by position.
func (c *Class) WithTypeArgumentList(args ...ClassElement) (ClassElement, error) {
	var params []*symbol.TypeParam
	if c.sym != nil {
		params = c.sym.TypeParams
	}
	if len(args) != len(params) {
		return nil, &TypeResolutionError{Type: c.Name(), Want: len(params), Got: len(args)}
	}
	var b *Bindings
	for i, tp := range params {
		b = b.With(tp.Name, args[i])
	}
	return c.WithTypeArguments(b), nil
}

func (c *Class) WithArrayDimensions(n int) ClassElement {
	if n == c.dims {
		return c
	}
	if c.sym == nil && c.preset == nil {
		return c.r.primitive(c.primitive, n)
	}
	cp := *c
	cp.dims = n
	cp.ref.Dims = n
	cp.super = memo[ClassElement]{}
	cp.interfaces = memo[[]ClassElement]{}
	return &cp
}

func (c *Class) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *c
	cp.withPreset(meta)
	return &cp
}

func (c *Class) EnclosedElements(q Query) ([]Element, error) { return c.r.enclosed(c, q) }

func (c *Class) Properties() ([]*Property, error) { return c.r.properties(c) }

func (c *Class) IsAssignable(name string) (bool, error) { return c.r.isAssignable(c, name) }

// proxy forwards class capabilities to the type a placeholder or wildcard
// stands for.
type proxy struct {
	to ClassElement
}

func (p proxy) Name() string                        { return p.to.Name() }
func (p proxy) SimpleName() string                  { return p.to.SimpleName() }
func (p proxy) PackageName() string                 { return p.to.PackageName() }
func (p proxy) ArrayDimensions() int                { return p.to.ArrayDimensions() }
func (p proxy) IsArray() bool                       { return p.to.IsArray() }
func (p proxy) IsPrimitive() bool                   { return p.to.IsPrimitive() }
func (p proxy) IsInterface() bool                   { return p.to.IsInterface() }
func (p proxy) IsEnum() bool                        { return p.to.IsEnum() }
func (p proxy) IsRecord() bool                      { return p.to.IsRecord() }
func (p proxy) IsAnnotation() bool                  { return p.to.IsAnnotation() }
func (p proxy) TypeArguments() (*Bindings, error)   { return p.to.TypeArguments() }
func (p proxy) SuperType() (ClassElement, error)    { return p.to.SuperType() }
func (p proxy) Interfaces() ([]ClassElement, error) { return p.to.Interfaces() }

func (p proxy) DeclaredGenericPlaceholders() ([]*Placeholder, error) {
	return p.to.DeclaredGenericPlaceholders()
}

func (p proxy) EnclosedElements(q Query) ([]Element, error) { return p.to.EnclosedElements(q) }
func (p proxy) Properties() ([]*Property, error)            { return p.to.Properties() }
func (p proxy) IsAssignable(name string) (bool, error)      { return p.to.IsAssignable(name) }

// Placeholder is a type variable. Its identity is the type parameter
// symbol; as a class it behaves like its representative: the bound type
// when the variable is bound, otherwise its first upper bound.
type Placeholder struct {
	base
	proxy
	param    *symbol.TypeParam
	bounds   []ClassElement
	resolved ClassElement
}

func (p *Placeholder) Symbol() *symbol.TypeParam { return p.param }

func (p *Placeholder) VariableName() string { return p.param.Name }

func (p *Placeholder) Bounds() []ClassElement { return p.bounds }

// Resolved returns the type the variable is bound to, if any.
func (p *Placeholder) Resolved() (ClassElement, bool) {
	return p.resolved, p.resolved != nil
}

func (p *Placeholder) Representative() ClassElement { return p.to }

// DeclaringElement returns the class or method that declares the
// variable.
func (p *Placeholder) DeclaringElement() Element {
	owner := p.r.declaredClass(p.param.Class)
	if p.param.Method == nil {
		return owner
	}
	return p.r.newMethod(p.param.Method, owner, owner)
}

func (p *Placeholder) WithTypeArguments(args *Bindings) ClassElement {
	cp := *p
	cp.to = p.to.WithTypeArguments(args)
	return &cp
}

func (p *Placeholder) WithTypeArgumentList(args ...ClassElement) (ClassElement, error) {
	to, err := p.to.WithTypeArgumentList(args...)
	if err != nil {
		return nil, err
	}
	cp := *p
	cp.to = to
	return &cp, nil
}

func (p *Placeholder) WithArrayDimensions(n int) ClassElement {
	cp := *p
	cp.to = p.to.WithArrayDimensions(n)
	cp.ref.Dims = n
	return &cp
}

func (p *Placeholder) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *p
	cp.withPreset(meta)
	return &cp
}

// Wildcard is a use-site type argument with variance. As a class it
// behaves like its first upper bound.
type Wildcard struct {
	base
	proxy
	upper []ClassElement
	lower []ClassElement
	raw   bool
}

func (w *Wildcard) UpperBounds() []ClassElement { return w.upper }
func (w *Wildcard) LowerBounds() []ClassElement { return w.lower }

// IsRawType reports whether the wildcard is unbounded.
func (w *Wildcard) IsRawType() bool { return w.raw }

func (w *Wildcard) WithTypeArguments(args *Bindings) ClassElement {
	cp := *w
	cp.to = w.to.WithTypeArguments(args)
	return &cp
}

func (w *Wildcard) WithTypeArgumentList(args ...ClassElement) (ClassElement, error) {
	to, err := w.to.WithTypeArgumentList(args...)
	if err != nil {
		return nil, err
	}
	cp := *w
	cp.to = to
	return &cp, nil
}

func (w *Wildcard) WithArrayDimensions(n int) ClassElement {
	cp := *w
	cp.to = w.to.WithArrayDimensions(n)
	cp.ref.Dims = n
	return &cp
}

func (w *Wildcard) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *w
	cp.withPreset(meta)
	return &cp
}

// wildcardText renders the canonical form used as a wildcard's identity.
func wildcardText(upper, lower []ClassElement, raw bool) string {
	switch {
	case raw:
		return "?"
	case len(lower) > 0:
		return "? super " + TypeString(lower[0])
	}
	return "? extends " + TypeString(upper[0])
}

// TypeString renders a class element the way it would be written in
// Java: bound type variables as their binding, free ones by name,
// wildcards with their bounds and type arguments in declaration order.
func TypeString(e ClassElement) string {
	var sb strings.Builder
	writeType(&sb, e)
	return sb.String()
}

func writeType(sb *strings.Builder, e ClassElement) {
	switch t := e.(type) {
	case nil:
		sb.WriteString("<nil>")
		return
	case *Placeholder:
		if t.resolved != nil {
			writeType(sb, t.to)
			return
		}
		sb.WriteString(t.VariableName())
	case *Wildcard:
		sb.WriteString(wildcardText(t.upper, t.lower, t.raw))
		return
	default:
		sb.WriteString(e.Name())
		args, err := e.TypeArguments()
		if err == nil && args.Len() > 0 {
			sb.WriteByte('<')
			first := true
			for _, arg := range args.All() {
				if !first {
					sb.WriteString(", ")
				}
				first = false
				writeType(sb, arg)
			}
			sb.WriteByte('>')
		}
	}
	for i := 0; i < e.ArrayDimensions(); i++ {
		sb.WriteString("[]")
	}
}
