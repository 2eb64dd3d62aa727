package element

import (
	"github.com/dhamidi/jel/annotation"
	"github.com/dhamidi/jel/symbol"
)

// Field is a field as seen from an owning type. Its type is resolved with
// the type arguments of the declaring type, which may be a parameterized
// supertype of the owner.
type Field struct {
	base
	sym       *symbol.Field
	owner     ClassElement
	declaring ClassElement
	typ       memo[ClassElement]
}

func (r *Resolver) newField(sym *symbol.Field, owner, declaring ClassElement) *Field {
	return &Field{
		base: base{
			ref:    sym.Ref(),
			r:      r,
			source: sym,
			mods:   sym.Modifiers,
			doc:    sym.Doc,
		},
		sym:       sym,
		owner:     owner,
		declaring: declaring,
	}
}

func (f *Field) Name() string                { return f.sym.Name }
func (f *Field) Symbol() *symbol.Field       { return f.sym }
func (f *Field) OwningType() ClassElement    { return f.owner }
func (f *Field) DeclaringType() ClassElement { return f.declaring }
func (f *Field) IsEnumConstant() bool        { return f.sym.EnumConstant }
func (f *Field) IsTransient() bool           { return f.mods.Has(symbol.Transient) }
func (f *Field) IsVolatile() bool            { return f.mods.Has(symbol.Volatile) }
func (f *Field) IsImplicit() bool            { return f.sym.Implicit }

func (f *Field) Type() (ClassElement, error) {
	return f.typ.get(func() (ClassElement, error) {
		args, err := f.declaring.TypeArguments()
		if err != nil {
			return nil, err
		}
		return f.r.resolve(f.sym.Type, args, true, nil)
	})
}

func (f *Field) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *f
	cp.withPreset(meta)
	return &cp
}

// Method is a method as seen from an owning type. Return and parameter
// types are resolved with the type arguments of the declaring type.
type Method struct {
	base
	sym        *symbol.Method
	owner      ClassElement
	declaring  ClassElement
	ret        memo[ClassElement]
	params     memo[[]*Parameter]
	typeParams memo[[]*Placeholder]
}

// newMethod returns a *Constructor for constructor symbols and a *Method
// otherwise.
func (r *Resolver) newMethod(sym *symbol.Method, owner, declaring ClassElement) Element {
	m := r.method(sym, owner, declaring)
	if sym.Constructor {
		return &Constructor{Method: *m}
	}
	return m
}

func (r *Resolver) method(sym *symbol.Method, owner, declaring ClassElement) *Method {
	return &Method{
		base: base{
			ref:    sym.Ref(),
			r:      r,
			source: sym,
			mods:   sym.Modifiers,
			doc:    sym.Doc,
		},
		sym:       sym,
		owner:     owner,
		declaring: declaring,
	}
}

func (m *Method) Name() string                { return m.sym.Name }
func (m *Method) Symbol() *symbol.Method      { return m.sym }
func (m *Method) Signature() string           { return m.sym.Signature }
func (m *Method) OwningType() ClassElement    { return m.owner }
func (m *Method) DeclaringType() ClassElement { return m.declaring }
func (m *Method) IsConstructor() bool         { return false }
func (m *Method) IsVarargs() bool             { return m.sym.Varargs }
func (m *Method) IsDefault() bool             { return m.mods.Has(symbol.Default) }

// DefaultValue is the default of an annotation type member, or nil.
func (m *Method) DefaultValue() any { return m.sym.Default }

func (m *Method) ReturnType() (ClassElement, error) {
	return m.ret.get(func() (ClassElement, error) {
		args, err := m.declaring.TypeArguments()
		if err != nil {
			return nil, err
		}
		return m.r.resolve(m.sym.Return, args, true, nil)
	})
}

func (m *Method) Parameters() []*Parameter {
	params, _ := m.params.get(func() ([]*Parameter, error) {
		out := make([]*Parameter, len(m.sym.Params))
		for i, p := range m.sym.Params {
			out[i] = &Parameter{
				base: base{
					ref:    p.Ref(),
					r:      m.r,
					source: p,
					doc:    p.Doc,
				},
				sym:    p,
				method: m,
			}
		}
		return out, nil
	})
	return params
}

// ThrownTypes resolves the throws clause.
func (m *Method) ThrownTypes() ([]ClassElement, error) {
	args, err := m.declaring.TypeArguments()
	if err != nil {
		return nil, err
	}
	out := make([]ClassElement, 0, len(m.sym.Throws))
	for _, t := range m.sym.Throws {
		e, err := m.r.resolve(t, args, false, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DeclaredTypeParameters returns the placeholders of the method's own type
// variables.
func (m *Method) DeclaredTypeParameters() ([]*Placeholder, error) {
	return m.typeParams.get(func() ([]*Placeholder, error) {
		args, err := m.declaring.TypeArguments()
		if err != nil {
			return nil, err
		}
		out := make([]*Placeholder, 0, len(m.sym.TypeParams))
		for _, tp := range m.sym.TypeParams {
			p, err := m.r.placeholder(tp, args, nil)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
		return out, nil
	})
}

// WithNewOwningType returns the method as seen from owner. The declaring
// type is looked up again among the supertypes of owner, so inherited
// generic signatures pick up owner's type arguments.
func (m *Method) WithNewOwningType(owner ClassElement) (*Method, error) {
	declaring, err := m.r.declaringType(owner, m.sym.Owner)
	if err != nil {
		return nil, err
	}
	return m.r.method(m.sym, owner, declaring), nil
}

func (m *Method) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *m
	cp.withPreset(meta)
	cp.params = memo[[]*Parameter]{}
	return &cp
}

// Constructor is a method that creates instances of its owning type.
type Constructor struct {
	Method
}

func (c *Constructor) IsConstructor() bool { return true }

// ReturnType of a constructor is the owning type.
func (c *Constructor) ReturnType() (ClassElement, error) { return c.owner, nil }

func (c *Constructor) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *c
	cp.withPreset(meta)
	cp.params = memo[[]*Parameter]{}
	return &cp
}

// Parameter is one parameter of a method or constructor.
type Parameter struct {
	base
	sym    *symbol.Parameter
	method *Method
	typ    memo[ClassElement]
}

func (p *Parameter) Name() string              { return p.sym.Name }
func (p *Parameter) Symbol() *symbol.Parameter { return p.sym }
func (p *Parameter) Method() *Method           { return p.method }
func (p *Parameter) Index() int                { return p.sym.Index }
func (p *Parameter) IsVarargs() bool           { return p.sym.Varargs }

func (p *Parameter) Type() (ClassElement, error) {
	return p.typ.get(func() (ClassElement, error) {
		args, err := p.method.declaring.TypeArguments()
		if err != nil {
			return nil, err
		}
		return p.r.resolve(p.sym.Type, args, true, nil)
	})
}

func (p *Parameter) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *p
	cp.withPreset(meta)
	return &cp
}
