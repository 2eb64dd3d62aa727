package element

import (
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/jel/annotation"
	"github.com/dhamidi/jel/symbol"
)

// Property is a bean property: up to one field, one getter and one setter
// sharing a name. Its annotation metadata merges those of its members,
// the setter winning over the getter and the getter over the field.
type Property struct {
	base
	name   string
	owner  ClassElement
	field  *Field
	getter *Method
	setter *Method
	typ    ClassElement
}

// NewProperty builds a property of owner. The type comes from the getter,
// or from the field when there is no getter or its type cannot be
// resolved.
func NewProperty(owner ClassElement, name string, field *Field, getter, setter *Method) (*Property, error) {
	p := &Property{
		base: base{
			ref: symbol.Ref{Kind: symbol.KindProperty, Owner: owner.Name(), Name: name},
		},
		name:   name,
		owner:  owner,
		field:  field,
		getter: getter,
		setter: setter,
	}
	var errs []error
	if getter != nil {
		t, err := getter.ReturnType()
		if err == nil {
			p.typ = t
		} else {
			errs = append(errs, err)
		}
	}
	if p.typ == nil && field != nil {
		t, err := field.Type()
		if err == nil {
			p.typ = t
		} else {
			errs = append(errs, err)
		}
	}
	if p.typ == nil {
		return nil, &IncompletePropertyError{Owner: owner.Name(), Property: name, Err: errors.Join(errs...)}
	}

	switch {
	case getter != nil:
		p.r, p.mods, p.doc = getter.r, getter.mods, getter.doc
	default:
		p.r, p.mods, p.doc = field.r, field.mods, field.doc
	}
	if p.doc == "" && field != nil {
		p.doc = field.doc
	}
	return p, nil
}

func (p *Property) Name() string             { return p.name }
func (p *Property) Type() ClassElement       { return p.typ }
func (p *Property) OwningType() ClassElement { return p.owner }
func (p *Property) Field() *Field            { return p.field }
func (p *Property) ReadMethod() *Method      { return p.getter }
func (p *Property) WriteMethod() *Method     { return p.setter }

// DeclaringType is the type declaring the getter, or the field when there
// is no getter.
func (p *Property) DeclaringType() ClassElement {
	if p.getter != nil {
		return p.getter.declaring
	}
	return p.field.declaring
}

// IsReadOnly reports whether the property cannot be written from outside:
// it has no setter and no public non-final field.
func (p *Property) IsReadOnly() bool {
	if p.setter != nil {
		return false
	}
	return p.field == nil || !p.field.IsPublic() || p.field.IsFinal()
}

// AnnotationMetadata merges field, getter and setter. Accessors contribute
// only what they declare themselves. Mutations reach every member.
func (p *Property) AnnotationMetadata() annotation.Metadata {
	m, _ := p.meta.get(func() (annotation.Metadata, error) {
		if p.preset != nil {
			return p.preset, nil
		}
		var views []annotation.Metadata
		if p.field != nil {
			views = append(views, p.field.AnnotationMetadata())
		}
		for _, accessor := range []*Method{p.getter, p.setter} {
			if accessor != nil {
				views = append(views, accessor.AnnotationMetadata().Declared())
			}
		}
		return annotation.NewHierarchy(views...), nil
	})
	return m
}

func (p *Property) WithAnnotationMetadata(meta annotation.Metadata) Element {
	cp := *p
	cp.withPreset(meta)
	return &cp
}

// members returns the field and accessors that make up the property.
func (p *Property) members() []Element {
	var out []Element
	if p.field != nil {
		out = append(out, p.field)
	}
	if p.getter != nil {
		out = append(out, p.getter)
	}
	if p.setter != nil {
		out = append(out, p.setter)
	}
	return out
}

type accessorKind int

const (
	notAccessor accessorKind = iota
	getterAccessor
	setterAccessor
)

// accessor classifies m as a getter (getX, isX returning boolean, or a
// record component accessor) or a setter (setX with one parameter), and
// returns the property name.
func accessor(owner *symbol.Class, m *symbol.Method) (string, accessorKind) {
	if m.Constructor || m.Synthetic || m.Modifiers.Has(symbol.Static) || m.Modifiers.Has(symbol.Private) {
		return "", notAccessor
	}
	switch len(m.Params) {
	case 0:
		if owner.IsRecord() && slices.Contains(owner.Components, m.Name) {
			return m.Name, getterAccessor
		}
		if name, ok := propertyName(m.Name, "get"); ok && !isVoid(m.Return) {
			return name, getterAccessor
		}
		if name, ok := propertyName(m.Name, "is"); ok && isBoolean(m.Return) {
			return name, getterAccessor
		}
	case 1:
		if name, ok := propertyName(m.Name, "set"); ok {
			return name, setterAccessor
		}
	}
	return "", notAccessor
}

func propertyName(method, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(method, prefix)
	if !ok || rest == "" {
		return "", false
	}
	first, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsUpper(first) {
		return "", false
	}
	return decapitalize(rest), true
}

// decapitalize lowers the first letter, except when the first two letters
// are both upper case: "Name" becomes "name", "URL" stays "URL".
func decapitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if second, _ := utf8.DecodeRuneInString(s[size:]); unicode.IsUpper(first) && unicode.IsUpper(second) {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}

func isVoid(t *symbol.Type) bool {
	return t == nil || (t.Name == "void" && t.Dims == 0)
}

func isBoolean(t *symbol.Type) bool {
	return t != nil && t.Name == "boolean" && t.Dims == 0
}

type propertyCandidate struct {
	field  *Field
	getter *Method
	setter *Method
}

// properties discovers the bean properties of c across c and its
// supertypes, excluded roots aside. The first declaration of a member
// found walking up from c wins. A name becomes a property only when it
// has a getter; a bare field stays a field and a setter alone is not
// enough.
func (r *Resolver) properties(c ClassElement) ([]*Property, error) {
	types, err := r.memberTypes(c, true)
	if err != nil {
		return nil, err
	}
	var order []string
	candidates := make(map[string]*propertyCandidate)
	candidate := func(name string) *propertyCandidate {
		pc, ok := candidates[name]
		if !ok {
			pc = &propertyCandidate{}
			candidates[name] = pc
			order = append(order, name)
		}
		return pc
	}

	for _, t := range types {
		sym := classSymbol(t)
		for _, f := range sym.Fields {
			if f.Modifiers.Has(symbol.Static) {
				continue
			}
			if pc := candidate(f.Name); pc.field == nil {
				pc.field = r.newField(f, c, t)
			}
		}
		for _, m := range sym.Methods {
			name, kind := accessor(sym, m)
			switch kind {
			case getterAccessor:
				if pc := candidate(name); pc.getter == nil {
					pc.getter = r.method(m, c, t)
				}
			case setterAccessor:
				if pc := candidate(name); pc.setter == nil {
					pc.setter = r.method(m, c, t)
				}
			}
		}
	}

	var out []*Property
	for _, name := range order {
		pc := candidates[name]
		if pc.getter == nil {
			continue
		}
		p, err := NewProperty(c, name, pc.field, pc.getter, pc.setter)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// bypassed reports whether the property's field carries the bypass
// annotation and is to be reported as a field.
func (r *Resolver) bypassed(p *Property) bool {
	return r.bypass != "" && p.field != nil && p.field.AnnotationMetadata().HasAnnotation(r.bypass)
}
