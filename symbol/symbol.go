// Package symbol is the read-only declaration graph the element engine
// works from. Symbols are built from parsed Java sources; every symbol has
// a canonical Ref, which is what identity, equality and caching use.
package symbol

import (
	"strings"

	"github.com/dhamidi/jel/java"
)

type Kind int

const (
	KindClass Kind = iota
	KindField
	KindMethod
	KindConstructor
	KindParameter
	KindTypeParameter
	KindPrimitive
	KindProperty
	KindWildcard
)

var kindNames = map[Kind]string{
	KindClass:         "class",
	KindField:         "field",
	KindMethod:        "method",
	KindConstructor:   "constructor",
	KindParameter:     "parameter",
	KindTypeParameter: "type-parameter",
	KindPrimitive:     "primitive",
	KindProperty:      "property",
	KindWildcard:      "wildcard",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Ref is the canonical reference proxy of a symbol. Refs are comparable,
// and two symbols for the same declaration always produce equal Refs no
// matter how often the symbol graph is rebuilt.
type Ref struct {
	Kind   Kind
	Owner  string // declaring class, primitive name or wildcard text
	Member string // field name or method signature
	Name   string // parameter, type variable or property name
	Dims   int
}

func (r Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Kind.String())
	sb.WriteByte(':')
	sb.WriteString(r.Owner)
	if r.Member != "" {
		sb.WriteByte('#')
		sb.WriteString(r.Member)
	}
	if r.Name != "" {
		sb.WriteByte('/')
		sb.WriteString(r.Name)
	}
	for i := 0; i < r.Dims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

type Modifier string

const (
	Public       Modifier = "public"
	Protected    Modifier = "protected"
	Private      Modifier = "private"
	Abstract     Modifier = "abstract"
	Static       Modifier = "static"
	Final        Modifier = "final"
	Default      Modifier = "default"
	Synchronized Modifier = "synchronized"
	Native       Modifier = "native"
	Transient    Modifier = "transient"
	Volatile     Modifier = "volatile"
	Sealed       Modifier = "sealed"
)

type Modifiers []Modifier

func (ms Modifiers) Has(m Modifier) bool {
	for _, x := range ms {
		if x == m {
			return true
		}
	}
	return false
}

type Annotation struct {
	Name   string
	Values map[string]any
}

// Annotated is implemented by every symbol that carries declared
// annotations.
type Annotated interface {
	Ref() Ref
	DeclaredAnnotations() []Annotation
}

type Class struct {
	Name       string
	SimpleName string
	Package    string
	Kind       java.ClassKind
	Enclosing  *Class
	Modifiers  Modifiers
	Synthetic  bool
	Doc        string
	Source     string

	TypeParams  []*TypeParam
	Super       *Type
	Interfaces  []*Type
	Fields      []*Field
	Methods     []*Method
	Nested      []*Class
	Annotations []Annotation
	Components  []string
}

func (c *Class) Ref() Ref { return Ref{Kind: KindClass, Owner: c.Name} }

func (c *Class) DeclaredAnnotations() []Annotation { return c.Annotations }

func (c *Class) IsInterface() bool {
	return c.Kind == java.ClassKindInterface || c.Kind == java.ClassKindAnnotation
}

func (c *Class) IsEnum() bool       { return c.Kind == java.ClassKindEnum }
func (c *Class) IsRecord() bool     { return c.Kind == java.ClassKindRecord }
func (c *Class) IsAnnotation() bool { return c.Kind == java.ClassKindAnnotation }

func (c *Class) Field(name string) (*Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Method returns the method with the given erased signature.
func (c *Class) Method(signature string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Signature == signature {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) Constructors() []*Method {
	var ctors []*Method
	for _, m := range c.Methods {
		if m.Constructor {
			ctors = append(ctors, m)
		}
	}
	return ctors
}

type Field struct {
	Owner        *Class
	Name         string
	Type         *Type
	Modifiers    Modifiers
	Doc          string
	Annotations  []Annotation
	Implicit     bool
	EnumConstant bool
}

func (f *Field) Ref() Ref {
	return Ref{Kind: KindField, Owner: f.Owner.Name, Member: f.Name}
}

func (f *Field) DeclaredAnnotations() []Annotation { return f.Annotations }

type Method struct {
	Owner       *Class
	Name        string
	Signature   string
	Constructor bool
	TypeParams  []*TypeParam
	Return      *Type
	Params      []*Parameter
	Throws      []*Type
	Modifiers   Modifiers
	Doc         string
	Annotations []Annotation
	Synthetic   bool
	Implicit    bool
	Varargs     bool
	Default     any
}

func (m *Method) Ref() Ref {
	kind := KindMethod
	if m.Constructor {
		kind = KindConstructor
	}
	return Ref{Kind: kind, Owner: m.Owner.Name, Member: m.Signature}
}

func (m *Method) DeclaredAnnotations() []Annotation { return m.Annotations }

type Parameter struct {
	Method      *Method
	Name        string
	Index       int
	Type        *Type
	Varargs     bool
	Doc         string
	Annotations []Annotation
}

func (p *Parameter) Ref() Ref {
	return Ref{Kind: KindParameter, Owner: p.Method.Owner.Name, Member: p.Method.Signature, Name: p.Name}
}

func (p *Parameter) DeclaredAnnotations() []Annotation { return p.Annotations }

// TypeParam is a declared type variable of a class or a method.
type TypeParam struct {
	Name        string
	Bounds      []*Type
	Class       *Class
	Method      *Method // nil for class type parameters
	Annotations []Annotation
}

func (p *TypeParam) Ref() Ref {
	r := Ref{Kind: KindTypeParameter, Owner: p.Class.Name, Name: p.Name}
	if p.Method != nil {
		r.Member = p.Method.Signature
	}
	return r
}

func (p *TypeParam) DeclaredAnnotations() []Annotation { return p.Annotations }

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
	Star
)

type TypeArg struct {
	Variance Variance
	Type     *Type // nil for Star
}

// Type is a use-site type reference: a class with arguments, a primitive,
// a type variable (Var set), any of them with array dimensions.
type Type struct {
	Name        string
	Dims        int
	Args        []*TypeArg
	Var         *TypeParam
	Annotations []Annotation
}

func (t *Type) IsPrimitive() bool {
	return t.Var == nil && (t.Name == "void" || java.IsPrimitiveName(t.Name))
}

func (t *Type) IsArray() bool { return t.Dims > 0 }

// Component returns t with one array dimension removed.
func (t *Type) Component() *Type {
	c := *t
	if c.Dims > 0 {
		c.Dims--
	}
	return &c
}

func (t *Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			switch a.Variance {
			case Star:
				sb.WriteByte('?')
				continue
			case Covariant:
				sb.WriteString("? extends ")
			case Contravariant:
				sb.WriteString("? super ")
			}
			sb.WriteString(a.Type.String())
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.Dims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

// Oracle is the read-only view of the declaration graph the engine uses.
type Oracle interface {
	LookupClass(name string) (*Class, bool)
	ResolveType(t *Type) (*Class, bool)
	TopType() *Class
}
