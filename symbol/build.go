package symbol

import (
	"github.com/dhamidi/jel/java"
	"github.com/dhamidi/jel/java/javadoc"
)

// builder turns linked class models into symbols. Shells for every class
// are created first so that references between classes, and type
// variables bounded by their own declaring class, can point at each other.
type builder struct {
	models  []*java.ClassModel
	classes map[string]*Class
}

func buildClasses(models []*java.ClassModel) map[string]*Class {
	b := &builder{models: models, classes: make(map[string]*Class, len(models))}
	for _, m := range models {
		b.classes[m.Name] = b.shell(m)
	}
	for _, m := range models {
		c := b.classes[m.Name]
		if m.EnclosingClass != "" {
			if outer, ok := b.classes[m.EnclosingClass]; ok {
				c.Enclosing = outer
				outer.Nested = append(outer.Nested, c)
			}
		}
	}
	for _, m := range models {
		b.fill(b.classes[m.Name], m)
	}
	return b.classes
}

func (b *builder) shell(m *java.ClassModel) *Class {
	c := &Class{
		Name:        m.Name,
		SimpleName:  m.SimpleName,
		Package:     m.Package,
		Kind:        m.Kind,
		Synthetic:   m.IsSynthetic,
		Doc:         DocText(m.Javadoc),
		Source:      m.SourceFile,
		Annotations: annotations(m.Annotations),
		Modifiers: modifiers(m.Visibility, map[Modifier]bool{
			Abstract: m.IsAbstract,
			Static:   m.IsStatic,
			Final:    m.IsFinal,
			Sealed:   m.IsSealed,
		}),
	}
	for _, tp := range m.TypeParameters {
		c.TypeParams = append(c.TypeParams, &TypeParam{
			Name:        tp.Name,
			Class:       c,
			Annotations: annotations(tp.Annotations),
		})
	}
	for _, rc := range m.RecordComponents {
		c.Components = append(c.Components, rc.Name)
	}
	return c
}

func (b *builder) fill(c *Class, m *java.ClassModel) {
	sc := classScope(c)
	for i, tp := range m.TypeParameters {
		for _, bound := range tp.Bounds {
			c.TypeParams[i].Bounds = append(c.TypeParams[i].Bounds, convertType(bound, sc))
		}
	}
	if m.SuperType != nil {
		c.Super = convertType(*m.SuperType, sc)
	}
	for _, iface := range m.Interfaces {
		c.Interfaces = append(c.Interfaces, convertType(iface, sc))
	}
	for _, f := range m.Fields {
		c.Fields = append(c.Fields, &Field{
			Owner:       c,
			Name:        f.Name,
			Type:        convertType(f.Type, sc),
			Doc:         DocText(f.Javadoc),
			Annotations: annotations(f.Annotations),
			Modifiers: modifiers(f.Visibility, map[Modifier]bool{
				Static:    f.IsStatic,
				Final:     f.IsFinal,
				Transient: f.IsTransient,
				Volatile:  f.IsVolatile,
			}),
			Implicit:     f.IsImplicit,
			EnumConstant: f.IsEnumConstant,
		})
	}
	for i := range m.Methods {
		c.Methods = append(c.Methods, b.method(c, &m.Methods[i], sc))
	}
}

func (b *builder) method(c *Class, mm *java.MethodModel, outer *scope) *Method {
	doc := javadoc.Parse(mm.Javadoc)
	m := &Method{
		Owner:       c,
		Name:        mm.Name,
		Signature:   mm.ErasedSignature(),
		Constructor: mm.IsConstructor(),
		Doc:         doc.Description,
		Annotations: annotations(mm.Annotations),
		Synthetic:   mm.IsSynthetic,
		Implicit:    mm.IsImplicit,
		Varargs:     mm.IsVarargs,
		Default:     mm.DefaultValue,
		Modifiers: modifiers(mm.Visibility, map[Modifier]bool{
			Abstract:     mm.IsAbstract,
			Static:       mm.IsStatic,
			Final:        mm.IsFinal,
			Default:      mm.IsDefault,
			Synchronized: mm.IsSynchronized,
			Native:       mm.IsNative,
		}),
	}
	for _, tp := range mm.TypeParameters {
		m.TypeParams = append(m.TypeParams, &TypeParam{
			Name:        tp.Name,
			Class:       c,
			Method:      m,
			Annotations: annotations(tp.Annotations),
		})
	}
	sc := &scope{params: m.TypeParams, parent: outer}
	for i, tp := range mm.TypeParameters {
		for _, bound := range tp.Bounds {
			m.TypeParams[i].Bounds = append(m.TypeParams[i].Bounds, convertType(bound, sc))
		}
	}
	if m.Constructor {
		m.Return = selfType(c)
	} else {
		m.Return = convertType(mm.ReturnType, sc)
	}
	for i, p := range mm.Parameters {
		m.Params = append(m.Params, &Parameter{
			Method:      m,
			Name:        p.Name,
			Index:       i,
			Type:        convertType(p.Type, sc),
			Varargs:     p.IsVarargs,
			Doc:         doc.Param(p.Name),
			Annotations: annotations(p.Annotations),
		})
	}
	for _, ex := range mm.Exceptions {
		m.Throws = append(m.Throws, convertType(ex, sc))
	}
	return m
}

// DocText is the description of a raw Javadoc comment, without markers,
// markup or block tags.
func DocText(raw string) string {
	if raw == "" {
		return ""
	}
	return javadoc.Parse(raw).Description
}

// selfType is the generic self reference C<T1..Tn> of a class.
func selfType(c *Class) *Type {
	t := &Type{Name: c.Name}
	for _, tp := range c.TypeParams {
		t.Args = append(t.Args, &TypeArg{Type: &Type{Name: tp.Name, Var: tp}})
	}
	return t
}

// scope is the chain of type variables visible at a declaration.
type scope struct {
	params []*TypeParam
	parent *scope
}

func (s *scope) lookup(name string) *TypeParam {
	for ; s != nil; s = s.parent {
		for _, p := range s.params {
			if p.Name == name {
				return p
			}
		}
	}
	return nil
}

// classScope makes the type variables of enclosing classes visible to
// inner (non-static) classes.
func classScope(c *Class) *scope {
	var parent *scope
	if c.Enclosing != nil && !c.Modifiers.Has(Static) {
		parent = classScope(c.Enclosing)
	}
	return &scope{params: c.TypeParams, parent: parent}
}

func convertType(tm java.TypeModel, sc *scope) *Type {
	t := &Type{
		Name:        tm.Name,
		Dims:        tm.ArrayDepth,
		Annotations: annotations(tm.Annotations),
	}
	if tm.IsTypeVariable {
		t.Var = sc.lookup(tm.Name)
	}
	for _, arg := range tm.TypeArguments {
		t.Args = append(t.Args, convertArg(arg, sc))
	}
	return t
}

func convertArg(arg java.TypeArgumentModel, sc *scope) *TypeArg {
	if !arg.IsWildcard {
		if arg.Type == nil {
			return &TypeArg{Variance: Star}
		}
		return &TypeArg{Variance: Invariant, Type: convertType(*arg.Type, sc)}
	}
	if arg.Bound == nil {
		return &TypeArg{Variance: Star}
	}
	v := Covariant
	if arg.BoundKind == "super" {
		v = Contravariant
	}
	return &TypeArg{Variance: v, Type: convertType(*arg.Bound, sc)}
}

func annotations(models []java.AnnotationModel) []Annotation {
	if len(models) == 0 {
		return nil
	}
	out := make([]Annotation, len(models))
	for i, a := range models {
		out[i] = Annotation{Name: a.Type, Values: a.Values}
	}
	return out
}

var visibilityModifiers = map[java.Visibility]Modifier{
	java.VisibilityPublic:    Public,
	java.VisibilityProtected: Protected,
	java.VisibilityPrivate:   Private,
}

var modifierOrder = []Modifier{Abstract, Static, Final, Default, Synchronized, Native, Transient, Volatile, Sealed}

func modifiers(v java.Visibility, flags map[Modifier]bool) Modifiers {
	var ms Modifiers
	if m, ok := visibilityModifiers[v]; ok {
		ms = append(ms, m)
	}
	for _, m := range modifierOrder {
		if flags[m] {
			ms = append(ms, m)
		}
	}
	return ms
}
