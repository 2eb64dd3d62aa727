package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// ClassModel is the declaration-level view of one class, interface, enum,
// record or annotation type. Nested types get their own ClassModel; the
// enclosing model lists them in InnerClasses.
type ClassModel struct {
	Name                string
	SimpleName          string
	Package             string
	EnclosingClass      string
	SuperType           *TypeModel
	Interfaces          []TypeModel
	PermittedSubclasses []string
	Visibility          Visibility
	Kind                ClassKind
	IsFinal             bool
	IsAbstract          bool
	IsStatic            bool
	IsSynthetic         bool
	IsSealed            bool
	IsDeprecated        bool
	SourceFile          string
	StarImports         []string
	Javadoc             string
	Annotations         []AnnotationModel
	RecordComponents    []RecordComponentModel
	InnerClasses        []InnerClassModel
	EnumConstants       []EnumConstantModel
	Fields              []FieldModel
	Methods             []MethodModel
	TypeParameters      []TypeParameterModel
}

func (c *ClassModel) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

func (c *ClassModel) Field(name string) (*FieldModel, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// MethodsNamed returns the methods (not constructors) called name.
func (c *ClassModel) MethodsNamed(name string) []*MethodModel {
	var methods []*MethodModel
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			methods = append(methods, &c.Methods[i])
		}
	}
	return methods
}

func (c *ClassModel) Constructors() []*MethodModel {
	return c.MethodsNamed(ConstructorName)
}

type EnumConstantModel struct {
	Name        string
	Javadoc     string
	Annotations []AnnotationModel
}

type FieldModel struct {
	Name           string
	Type           TypeModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsVolatile     bool
	IsTransient    bool
	IsSynthetic    bool
	IsImplicit     bool
	IsEnumConstant bool
	IsDeprecated   bool
	Javadoc        string
	Annotations    []AnnotationModel
}

// ConstructorName is the method name constructors are recorded under.
const ConstructorName = "<init>"

type MethodModel struct {
	Name           string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsAbstract     bool
	IsSynchronized bool
	IsNative       bool
	IsVarargs      bool
	IsSynthetic    bool
	IsImplicit     bool
	IsDefault      bool
	IsDeprecated   bool
	Javadoc        string
	Annotations    []AnnotationModel
	Exceptions     []TypeModel
	TypeParameters []TypeParameterModel
	DefaultValue   interface{}
}

func (m *MethodModel) IsConstructor() bool {
	return m.Name == ConstructorName
}

// ErasedSignature identifies a method among its overloads, for example
// "get(int)" or "put(java.lang.Object,java.lang.Object)". Type variables are
// kept by name since erasure needs their bounds.
func (m *MethodModel) ErasedSignature() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Type.Name)
		for d := 0; d < p.Type.ArrayDepth; d++ {
			sb.WriteString("[]")
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

type ParameterModel struct {
	Name        string
	Type        TypeModel
	IsFinal     bool
	IsVarargs   bool
	Annotations []AnnotationModel
}

// TypeModel is a type as written at a use site, with its name resolved to
// a fully qualified class name, a primitive name, or (when IsTypeVariable
// is set) the name of a type parameter in scope.
type TypeModel struct {
	Name           string
	ArrayDepth     int
	TypeArguments  []TypeArgumentModel
	IsTypeVariable bool
	Annotations    []AnnotationModel
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	return IsPrimitiveName(t.Name)
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t TypeModel) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.TypeArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func IsPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

type TypeArgumentModel struct {
	Type       *TypeModel
	IsWildcard bool
	BoundKind  string // "extends", "super", or "" for unbounded
	Bound      *TypeModel
}

func (a TypeArgumentModel) String() string {
	if !a.IsWildcard {
		if a.Type == nil {
			return "?"
		}
		return a.Type.String()
	}
	if a.Bound == nil || a.BoundKind == "" {
		return "?"
	}
	return "? " + a.BoundKind + " " + a.Bound.String()
}

type TypeParameterModel struct {
	Name        string
	Bounds      []TypeModel
	Annotations []AnnotationModel
}

type AnnotationModel struct {
	Type   string
	Values map[string]interface{}
}

type RecordComponentModel struct {
	Name        string
	Type        TypeModel
	Annotations []AnnotationModel
}

type InnerClassModel struct {
	InnerClass string
	OuterClass string
	InnerName  string
	Visibility Visibility
	IsStatic   bool
	IsFinal    bool
	IsAbstract bool
}
