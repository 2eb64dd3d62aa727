package element

import (
	"slices"
	"strings"

	"github.com/dhamidi/jel/symbol"
)

// QueryKind selects what EnclosedElements reports.
type QueryKind int

const (
	FieldKind QueryKind = iota
	MethodKind
	PropertyKind
	ConstructorKind
	ClassKind
	// MemberKind is fields and methods together.
	MemberKind
)

var queryKindNames = map[QueryKind]string{
	FieldKind:       "field",
	MethodKind:      "method",
	PropertyKind:    "property",
	ConstructorKind: "constructor",
	ClassKind:       "class",
	MemberKind:      "member",
}

func (k QueryKind) String() string {
	if name, ok := queryKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Query describes which enclosed elements of a class to report. It is a
// value; every method returns a modified copy.
type Query struct {
	kind              QueryKind
	names             []string
	nameMatchers      []func(string) bool
	modifiers         []Modifier
	annotations       []string
	excludeProperties bool
	onlyDeclared      bool
	filters           []func(Element) bool
}

func NewQuery(kind QueryKind) Query { return Query{kind: kind} }

func Fields() Query       { return NewQuery(FieldKind) }
func Methods() Query      { return NewQuery(MethodKind) }
func Properties() Query   { return NewQuery(PropertyKind) }
func Constructors() Query { return NewQuery(ConstructorKind) }
func Classes() Query      { return NewQuery(ClassKind) }
func Members() Query      { return NewQuery(MemberKind) }

func (q Query) Kind() QueryKind { return q.kind }

// Named keeps elements called any of names.
func (q Query) Named(names ...string) Query {
	q.names = append(slices.Clip(q.names), names...)
	return q
}

func (q Query) NameMatches(fn func(name string) bool) Query {
	q.nameMatchers = append(slices.Clip(q.nameMatchers), fn)
	return q
}

// Modifiers keeps elements carrying all of ms.
func (q Query) Modifiers(ms ...Modifier) Query {
	q.modifiers = append(slices.Clip(q.modifiers), ms...)
	return q
}

// Annotated keeps elements that carry, directly or as a stereotype, every
// one of names.
func (q Query) Annotated(names ...string) Query {
	q.annotations = append(slices.Clip(q.annotations), names...)
	return q
}

// ExcludePropertyElements drops fields and methods that belong to a bean
// property of the queried class.
func (q Query) ExcludePropertyElements() Query {
	q.excludeProperties = true
	return q
}

// OnlyDeclared restricts the query to the queried class itself.
func (q Query) OnlyDeclared() Query {
	q.onlyDeclared = true
	return q
}

func (q Query) Filter(fn func(Element) bool) Query {
	q.filters = append(slices.Clip(q.filters), fn)
	return q
}

func (q Query) matches(e Element) bool {
	if len(q.names) > 0 && !slices.Contains(q.names, e.Name()) {
		return false
	}
	for _, match := range q.nameMatchers {
		if !match(e.Name()) {
			return false
		}
	}
	for _, m := range q.modifiers {
		if !slices.Contains(e.Modifiers(), m) {
			return false
		}
	}
	if len(q.annotations) > 0 {
		meta := e.AnnotationMetadata()
		for _, name := range q.annotations {
			if !meta.HasAnnotation(name) && !meta.HasStereotype(name) {
				return false
			}
		}
	}
	for _, fn := range q.filters {
		if !fn(e) {
			return false
		}
	}
	return true
}

// memberTypes returns the types whose declarations contribute members to
// c: c itself, then its superclasses, then, when interfaces is set, every
// interface they implement. Excluded roots are left out, c aside.
func (r *Resolver) memberTypes(c ClassElement, interfaces bool) ([]ClassElement, error) {
	all, err := r.supertypes(c)
	if err != nil {
		return nil, err
	}
	var out []ClassElement
	for i, t := range all {
		if classSymbol(t) == nil {
			continue
		}
		if i > 0 && (r.excluded[t.Name()] || (!interfaces && t.IsInterface() && !c.IsInterface())) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// enclosed runs q against c. Members are reported from c first and then
// from its supertypes; a method overridden lower in the hierarchy is
// reported once, and synthetic members never.
func (r *Resolver) enclosed(c ClassElement, q Query) ([]Element, error) {
	if _, ok := queryKindNames[q.kind]; !ok {
		return nil, &UnsupportedElementError{Kind: q.kind}
	}
	if q.kind == PropertyKind {
		return r.enclosedProperties(c, q)
	}

	types := []ClassElement{c}
	if classSymbol(c) == nil {
		return nil, nil
	}
	if !q.onlyDeclared && q.kind != ConstructorKind {
		var err error
		types, err = r.memberTypes(c, q.kind == MethodKind || q.kind == MemberKind || q.kind == ClassKind)
		if err != nil {
			return nil, err
		}
	}
	exclude, err := r.exclusions(c, q)
	if err != nil {
		return nil, err
	}

	var out []Element
	emit := func(e Element) {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	signatures := make(map[string]bool)
	for i, t := range types {
		sym := classSymbol(t)
		inherited := i > 0
		if q.kind == FieldKind || q.kind == MemberKind {
			for _, f := range sym.Fields {
				if exclude[f.Ref()] || (inherited && f.Modifiers.Has(symbol.Private)) {
					continue
				}
				emit(r.newField(f, c, t))
			}
		}
		for _, m := range sym.Methods {
			if m.Synthetic || exclude[m.Ref()] {
				continue
			}
			switch {
			case m.Constructor:
				if q.kind == ConstructorKind && !inherited {
					emit(r.newMethod(m, c, t))
				}
			case q.kind == MethodKind || q.kind == MemberKind:
				if inherited && (m.Modifiers.Has(symbol.Private) || (t.IsInterface() && m.Modifiers.Has(symbol.Static))) {
					continue
				}
				method := r.method(m, c, t)
				key := overrideKey(method)
				if signatures[key] {
					continue
				}
				signatures[key] = true
				emit(method)
			}
		}
		if q.kind == ClassKind {
			for _, n := range sym.Nested {
				if inherited && n.Modifiers.Has(symbol.Private) {
					continue
				}
				emit(r.declaredClass(n))
			}
		}
	}
	return out, nil
}

// overrideKey is the signature of m as a member of its declaring type.
// Parameter types are substituted and erased, so an interface method
// and the class method implementing it for a concrete argument share a
// key.
func overrideKey(m *Method) string {
	var sb strings.Builder
	sb.WriteString(m.Name())
	sb.WriteByte('(')
	for i, p := range m.Parameters() {
		if i > 0 {
			sb.WriteByte(',')
		}
		t, err := p.Type()
		if err != nil {
			return m.Signature()
		}
		sb.WriteString(t.Name())
		sb.WriteString(strings.Repeat("[]", t.ArrayDimensions()))
	}
	sb.WriteByte(')')
	return sb.String()
}

// exclusions collects the members a field or method query must skip:
// all property members when q excludes them, and otherwise the private
// fields that back a property with a getter.
func (r *Resolver) exclusions(c ClassElement, q Query) (map[symbol.Ref]bool, error) {
	exclude := make(map[symbol.Ref]bool)
	if q.kind != FieldKind && q.kind != MethodKind && q.kind != MemberKind {
		return exclude, nil
	}
	if !q.excludeProperties && q.kind == MethodKind {
		return exclude, nil
	}
	props, err := r.properties(c)
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		if r.bypassed(p) {
			continue
		}
		if q.excludeProperties {
			for _, m := range p.members() {
				exclude[Key(m)] = true
			}
		} else if p.field != nil && p.field.IsPrivate() && p.getter != nil {
			exclude[Key(p.field)] = true
		}
	}
	return exclude, nil
}

func (r *Resolver) enclosedProperties(c ClassElement, q Query) ([]Element, error) {
	if classSymbol(c) == nil {
		return nil, nil
	}
	props, err := r.properties(c)
	if err != nil {
		return nil, err
	}
	var out []Element
	for _, p := range props {
		if q.onlyDeclared && p.DeclaringType().Name() != c.Name() {
			continue
		}
		var e Element = p
		if r.bypassed(p) {
			e = p.field
		}
		if q.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}
