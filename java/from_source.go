package java

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dhamidi/jel/java/parser"
)

// javadocFinder pairs declarations with the Javadoc comment right before them.
type javadocFinder struct {
	comments []parser.Token // only /** comments, by start line
	used     map[int]bool
}

func newJavadocFinder(comments []parser.Token) *javadocFinder {
	var javadocs []parser.Token
	for _, c := range comments {
		if c.Kind == parser.TokenComment && strings.HasPrefix(c.Literal, "/**") {
			javadocs = append(javadocs, c)
		}
	}
	sort.Slice(javadocs, func(i, j int) bool {
		return javadocs[i].Span.Start.Line < javadocs[j].Span.Start.Line
	})
	return &javadocFinder{comments: javadocs, used: make(map[int]bool)}
}

// FindForNode returns the closest unused Javadoc ending before node starts.
// Each comment is handed out once.
func (jf *javadocFinder) FindForNode(node *parser.Node) string {
	if jf == nil || len(jf.comments) == 0 {
		return ""
	}
	start := node.Span.Start
	best, bestDistance := -1, 100
	for i, c := range jf.comments {
		if jf.used[i] {
			continue
		}
		end := c.Span.End
		if end.Line > start.Line || (end.Line == start.Line && end.Column >= start.Column) {
			continue
		}
		if distance := start.Line - end.Line; distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	if best < 0 {
		return ""
	}
	jf.used[best] = true
	return jf.comments[best].Literal
}

// ClassModelsFromSource parses one compilation unit and returns a model for
// every type declared in it, nested types included. Names are resolved
// against the file's package and imports; references that can only be
// settled with other files in view are fixed later by Link.
func ClassModelsFromSource(source []byte, opts ...parser.Option) ([]*ClassModel, error) {
	opts = append(opts, parser.WithComments())
	p := parser.ParseCompilationUnit(bytes.NewReader(source), opts...)
	node := p.Finish()
	if node == nil {
		return nil, nil
	}
	if errs := node.Errors(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, fmt.Errorf("parse %s: %w", sourceName(p.SourcePath()), errors.Join(joined...))
	}

	b := newSourceBuilder(node, p.Comments())
	models := b.compilationUnit(node)
	for _, m := range models {
		m.SourceFile = p.SourcePath()
	}
	return models, nil
}

func sourceName(path string) string {
	if path == "" {
		return "<source>"
	}
	return path
}

type sourceBuilder struct {
	pkg      string
	resolver *typeResolver
	javadoc  *javadocFinder
	models   []*ClassModel
}

func newSourceBuilder(cu *parser.Node, comments []parser.Token) *sourceBuilder {
	pkg := packageFromCompilationUnit(cu)
	return &sourceBuilder{
		pkg:      pkg,
		resolver: newTypeResolver(pkg, importsFromCompilationUnit(cu)),
		javadoc:  newJavadocFinder(comments),
	}
}

func (b *sourceBuilder) compilationUnit(cu *parser.Node) []*ClassModel {
	for _, child := range cu.Children {
		if isTypeDecl(child) {
			b.resolver.registerNested(child, b.qualify(nil, declName(child)))
		}
	}
	for _, child := range cu.Children {
		if isTypeDecl(child) {
			b.typeDecl(child, nil)
		}
	}
	return b.models
}

func packageFromCompilationUnit(cu *parser.Node) string {
	pkgDecl := cu.FirstChildOfKind(parser.KindPackageDecl)
	if pkgDecl == nil {
		return ""
	}
	qn := pkgDecl.FirstChildOfKind(parser.KindQualifiedName)
	if qn == nil {
		return ""
	}
	return qualifiedNameToString(qn)
}

func qualifiedNameToString(qn *parser.Node) string {
	var parts []string
	for _, child := range qn.Children {
		if child.Kind == parser.KindIdentifier && child.Token != nil {
			parts = append(parts, child.Token.Literal)
		}
	}
	return strings.Join(parts, ".")
}

type importInfo struct {
	qualifiedName string
	isStatic      bool
	isWildcard    bool
}

func importsFromCompilationUnit(cu *parser.Node) []importInfo {
	var imports []importInfo
	for _, child := range cu.ChildrenOfKind(parser.KindImportDecl) {
		imp := importInfo{}
		for _, ic := range child.Children {
			switch {
			case ic.Kind == parser.KindQualifiedName:
				imp.qualifiedName = qualifiedNameToString(ic)
			case ic.TokenLiteral() == "static":
				imp.isStatic = true
			case ic.TokenLiteral() == "*":
				imp.isWildcard = true
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

func isTypeDecl(node *parser.Node) bool {
	_, ok := classKinds[node.Kind]
	return ok
}

var classKinds = map[parser.NodeKind]ClassKind{
	parser.KindClassDecl:      ClassKindClass,
	parser.KindInterfaceDecl:  ClassKindInterface,
	parser.KindEnumDecl:       ClassKindEnum,
	parser.KindRecordDecl:     ClassKindRecord,
	parser.KindAnnotationDecl: ClassKindAnnotation,
}

func declName(node *parser.Node) string {
	if id := node.FirstChildOfKind(parser.KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

func (b *sourceBuilder) qualify(outer *ClassModel, simpleName string) string {
	switch {
	case outer != nil:
		return outer.Name + "." + simpleName
	case b.pkg != "":
		return b.pkg + "." + simpleName
	}
	return simpleName
}

func (b *sourceBuilder) typeDecl(node *parser.Node, outer *ClassModel) *ClassModel {
	model := &ClassModel{
		Kind:        classKinds[node.Kind],
		Package:     b.pkg,
		SimpleName:  declName(node),
		Visibility:  VisibilityPackage,
		Javadoc:     b.javadoc.FindForNode(node),
		StarImports: b.resolver.starImports(),
	}
	model.Name = b.qualify(outer, model.SimpleName)
	if outer != nil {
		model.EnclosingClass = outer.Name
		if outer.IsInterface() {
			model.Visibility = VisibilityPublic
			model.IsStatic = true
		}
		if model.Kind != ClassKindClass {
			model.IsStatic = true
		}
	}
	switch model.Kind {
	case ClassKindInterface, ClassKindAnnotation:
		model.IsAbstract = true
	case ClassKindEnum, ClassKindRecord:
		model.IsFinal = true
	}

	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	model.Visibility = mods.visibility(model.Visibility)
	model.IsFinal = model.IsFinal || mods.has("final")
	model.IsAbstract = model.IsAbstract || mods.has("abstract")
	model.IsStatic = model.IsStatic || mods.has("static")
	model.IsSealed = mods.has("sealed")
	model.Annotations = mods.annotations
	model.IsDeprecated = isDeprecated(mods.annotations, model.Javadoc)

	b.models = append(b.models, model)

	restore := b.resolver.pushScope(typeParameterNames(node), outer == nil || model.IsStatic)
	defer restore()

	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindTypeParameters:
			model.TypeParameters = b.typeParameters(child)
		case parser.KindExtendsClause:
			types := b.typeList(child)
			if model.Kind == ClassKindInterface {
				model.Interfaces = append(model.Interfaces, types...)
			} else if len(types) > 0 {
				model.SuperType = &types[0]
			}
		case parser.KindImplementsClause:
			model.Interfaces = append(model.Interfaces, b.typeList(child)...)
		case parser.KindPermitsClause:
			for _, t := range b.typeList(child) {
				model.PermittedSubclasses = append(model.PermittedSubclasses, t.Name)
			}
		case parser.KindParameters:
			model.RecordComponents = b.recordComponents(child)
		}
	}
	b.implicitSupertypes(model)

	if body := node.FirstChildOfKind(parser.KindBlock); body != nil {
		b.members(body, model)
	}
	b.implicitMembers(model)
	return model
}

func (b *sourceBuilder) members(body *parser.Node, model *ClassModel) {
	for _, child := range body.Children {
		switch child.Kind {
		case parser.KindFieldDecl:
			model.Fields = append(model.Fields, b.fields(child, model)...)
		case parser.KindMethodDecl:
			model.Methods = append(model.Methods, b.method(child, model))
		case parser.KindConstructorDecl:
			model.Methods = append(model.Methods, b.constructor(child, model))
		case parser.KindEnumConstant:
			b.enumConstant(child, model)
		default:
			if isTypeDecl(child) {
				inner := b.typeDecl(child, model)
				model.InnerClasses = append(model.InnerClasses, InnerClassModel{
					InnerClass: inner.Name,
					OuterClass: model.Name,
					InnerName:  inner.SimpleName,
					Visibility: inner.Visibility,
					IsStatic:   inner.IsStatic,
					IsFinal:    inner.IsFinal,
					IsAbstract: inner.IsAbstract,
				})
			}
		}
	}
}

func (b *sourceBuilder) fields(node *parser.Node, owner *ClassModel) []FieldModel {
	base := FieldModel{
		Visibility: VisibilityPackage,
		Javadoc:    b.javadoc.FindForNode(node),
	}
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	if owner.IsInterface() {
		base.Visibility = VisibilityPublic
		base.IsStatic = true
		base.IsFinal = true
	}
	base.Visibility = mods.visibility(base.Visibility)
	base.IsStatic = base.IsStatic || mods.has("static")
	base.IsFinal = base.IsFinal || mods.has("final")
	base.IsVolatile = mods.has("volatile")
	base.IsTransient = mods.has("transient")
	base.Annotations = mods.annotations
	base.IsDeprecated = isDeprecated(mods.annotations, base.Javadoc)

	var fieldType TypeModel
	for _, child := range node.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			fieldType = b.typeModel(child)
			break
		}
	}

	var fields []FieldModel
	for _, declarator := range node.ChildrenOfKind(parser.KindIdentifier) {
		field := base
		field.Name = declarator.TokenLiteral()
		field.Type = fieldType
		field.Type.ArrayDepth += len(declarator.ChildrenOfKind(parser.KindArrayType))
		fields = append(fields, field)
	}
	return fields
}

func (b *sourceBuilder) method(node *parser.Node, owner *ClassModel) MethodModel {
	model := MethodModel{
		Visibility: VisibilityPackage,
		Javadoc:    b.javadoc.FindForNode(node),
	}
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	if owner.IsInterface() {
		model.Visibility = VisibilityPublic
	}
	b.applyMethodModifiers(mods, &model)

	restore := b.resolver.pushScope(typeParameterNames(node), false)
	defer restore()

	hasBody := false
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindTypeParameters:
			model.TypeParameters = b.typeParameters(child)
		case parser.KindType, parser.KindArrayType:
			model.ReturnType = b.typeModel(child)
		case parser.KindIdentifier:
			model.Name = child.TokenLiteral()
		case parser.KindParameters:
			model.Parameters = b.parameters(child)
		case parser.KindThrowsList:
			model.Exceptions = b.typeList(child)
		case parser.KindDefaultValue:
			if len(child.Children) > 0 {
				model.DefaultValue = b.annotationValue(child.Children[0])
			}
		case parser.KindSkipped:
			hasBody = true
		}
	}
	if n := len(model.Parameters); n > 0 {
		model.IsVarargs = model.Parameters[n-1].IsVarargs
	}
	if owner.IsInterface() && !hasBody && !model.IsStatic && model.Visibility != VisibilityPrivate {
		model.IsAbstract = true
	}
	return model
}

func (b *sourceBuilder) constructor(node *parser.Node, owner *ClassModel) MethodModel {
	model := MethodModel{
		Name:       ConstructorName,
		Visibility: VisibilityPackage,
		ReturnType: TypeModel{Name: "void"},
		Javadoc:    b.javadoc.FindForNode(node),
	}
	b.applyMethodModifiers(b.modifiers(node.FirstChildOfKind(parser.KindModifiers)), &model)

	restore := b.resolver.pushScope(typeParameterNames(node), false)
	defer restore()

	compact := true
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindTypeParameters:
			model.TypeParameters = b.typeParameters(child)
		case parser.KindParameters:
			compact = false
			model.Parameters = b.parameters(child)
		case parser.KindThrowsList:
			model.Exceptions = b.typeList(child)
		}
	}
	if compact && owner.Kind == ClassKindRecord {
		model.Parameters = recordParameters(owner)
	}
	if n := len(model.Parameters); n > 0 {
		model.IsVarargs = model.Parameters[n-1].IsVarargs
	}
	return model
}

func (b *sourceBuilder) applyMethodModifiers(mods modifierSet, method *MethodModel) {
	method.Visibility = mods.visibility(method.Visibility)
	method.IsStatic = mods.has("static")
	method.IsFinal = mods.has("final")
	method.IsAbstract = mods.has("abstract")
	method.IsSynchronized = mods.has("synchronized")
	method.IsNative = mods.has("native")
	method.IsDefault = mods.has("default")
	method.Annotations = mods.annotations
	method.IsDeprecated = isDeprecated(mods.annotations, method.Javadoc)
}

func (b *sourceBuilder) parameters(node *parser.Node) []ParameterModel {
	var params []ParameterModel
	for _, child := range node.ChildrenOfKind(parser.KindParameter) {
		param := ParameterModel{}
		mods := b.modifiers(child.FirstChildOfKind(parser.KindModifiers))
		param.IsFinal = mods.has("final")
		param.Annotations = mods.annotations
		for _, pc := range child.Children {
			switch pc.Kind {
			case parser.KindType, parser.KindArrayType:
				param.Type = b.typeModel(pc)
			case parser.KindIdentifier:
				if pc.Token != nil && pc.Token.Kind == parser.TokenEllipsis {
					param.IsVarargs = true
					param.Type.ArrayDepth++
					continue
				}
				param.Name = pc.TokenLiteral()
				param.Type.ArrayDepth += len(pc.ChildrenOfKind(parser.KindArrayType))
			}
		}
		params = append(params, param)
	}
	return params
}

func (b *sourceBuilder) recordComponents(node *parser.Node) []RecordComponentModel {
	var components []RecordComponentModel
	for _, p := range b.parameters(node) {
		components = append(components, RecordComponentModel{
			Name:        p.Name,
			Type:        p.Type,
			Annotations: p.Annotations,
		})
	}
	return components
}

func recordParameters(record *ClassModel) []ParameterModel {
	var params []ParameterModel
	for _, c := range record.RecordComponents {
		params = append(params, ParameterModel{Name: c.Name, Type: c.Type, Annotations: c.Annotations})
	}
	return params
}

func (b *sourceBuilder) enumConstant(node *parser.Node, owner *ClassModel) {
	mods := b.modifiers(node.FirstChildOfKind(parser.KindModifiers))
	constant := EnumConstantModel{
		Name:        declName(node),
		Javadoc:     b.javadoc.FindForNode(node),
		Annotations: mods.annotations,
	}
	owner.EnumConstants = append(owner.EnumConstants, constant)
	owner.Fields = append(owner.Fields, FieldModel{
		Name:           constant.Name,
		Type:           TypeModel{Name: owner.Name},
		Visibility:     VisibilityPublic,
		IsStatic:       true,
		IsFinal:        true,
		IsEnumConstant: true,
		Javadoc:        constant.Javadoc,
		Annotations:    constant.Annotations,
		IsDeprecated:   isDeprecated(constant.Annotations, constant.Javadoc),
	})
}

// implicitSupertypes fills in the supertypes the language adds without
// them being written down.
func (b *sourceBuilder) implicitSupertypes(model *ClassModel) {
	switch model.Kind {
	case ClassKindClass:
		if model.SuperType == nil && model.Name != ObjectClass {
			model.SuperType = &TypeModel{Name: ObjectClass}
		}
	case ClassKindEnum:
		model.SuperType = &TypeModel{
			Name:          "java.lang.Enum",
			TypeArguments: []TypeArgumentModel{{Type: &TypeModel{Name: model.Name}}},
		}
	case ClassKindRecord:
		model.SuperType = &TypeModel{Name: "java.lang.Record"}
	case ClassKindAnnotation:
		model.Interfaces = append(model.Interfaces, TypeModel{Name: "java.lang.annotation.Annotation"})
	}
}

// implicitMembers adds the members the compiler declares on its own:
// default constructors, record components and accessors, and the enum
// and record methods that are generated outright.
func (b *sourceBuilder) implicitMembers(model *ClassModel) {
	self := TypeModel{Name: model.Name}
	for _, tp := range model.TypeParameters {
		self.TypeArguments = append(self.TypeArguments, TypeArgumentModel{
			Type: &TypeModel{Name: tp.Name, IsTypeVariable: true},
		})
	}

	if model.Kind == ClassKindRecord {
		for _, c := range model.RecordComponents {
			if _, ok := model.Field(c.Name); !ok {
				model.Fields = append(model.Fields, FieldModel{
					Name:        c.Name,
					Type:        c.Type,
					Visibility:  VisibilityPrivate,
					IsFinal:     true,
					IsImplicit:  true,
					Annotations: c.Annotations,
				})
			}
			if !hasMethod(model, c.Name, 0) {
				model.Methods = append(model.Methods, MethodModel{
					Name:        c.Name,
					ReturnType:  c.Type,
					Visibility:  VisibilityPublic,
					IsImplicit:  true,
					Annotations: c.Annotations,
				})
			}
		}
		if !hasMethod(model, "equals", 1) {
			model.Methods = append(model.Methods, MethodModel{
				Name:        "equals",
				ReturnType:  TypeModel{Name: "boolean"},
				Parameters:  []ParameterModel{{Name: "o", Type: TypeModel{Name: ObjectClass}}},
				Visibility:  VisibilityPublic,
				IsFinal:     true,
				IsSynthetic: true,
			})
		}
		if !hasMethod(model, "hashCode", 0) {
			model.Methods = append(model.Methods, MethodModel{
				Name:        "hashCode",
				ReturnType:  TypeModel{Name: "int"},
				Visibility:  VisibilityPublic,
				IsFinal:     true,
				IsSynthetic: true,
			})
		}
		if !hasMethod(model, "toString", 0) {
			model.Methods = append(model.Methods, MethodModel{
				Name:        "toString",
				ReturnType:  TypeModel{Name: "java.lang.String"},
				Visibility:  VisibilityPublic,
				IsFinal:     true,
				IsSynthetic: true,
			})
		}
	}

	if model.Kind == ClassKindEnum {
		model.Methods = append(model.Methods,
			MethodModel{
				Name:        "values",
				ReturnType:  TypeModel{Name: model.Name, ArrayDepth: 1},
				Visibility:  VisibilityPublic,
				IsStatic:    true,
				IsSynthetic: true,
			},
			MethodModel{
				Name:        "valueOf",
				ReturnType:  TypeModel{Name: model.Name},
				Parameters:  []ParameterModel{{Name: "name", Type: TypeModel{Name: "java.lang.String"}}},
				Visibility:  VisibilityPublic,
				IsStatic:    true,
				IsSynthetic: true,
			},
		)
	}

	if model.IsInterface() || len(model.Constructors()) > 0 {
		return
	}
	ctor := MethodModel{
		Name:       ConstructorName,
		ReturnType: TypeModel{Name: "void"},
		Visibility: model.Visibility,
		IsImplicit: true,
	}
	switch model.Kind {
	case ClassKindEnum:
		ctor.Visibility = VisibilityPrivate
	case ClassKindRecord:
		ctor.Parameters = recordParameters(model)
	}
	model.Methods = append(model.Methods, ctor)
}

func hasMethod(model *ClassModel, name string, params int) bool {
	for _, m := range model.MethodsNamed(name) {
		if len(m.Parameters) == params {
			return true
		}
	}
	return false
}

func typeParameterNames(node *parser.Node) []string {
	tps := node.FirstChildOfKind(parser.KindTypeParameters)
	if tps == nil {
		return nil
	}
	var names []string
	for _, tp := range tps.ChildrenOfKind(parser.KindTypeParameter) {
		names = append(names, declName(tp))
	}
	return names
}

func (b *sourceBuilder) typeParameters(node *parser.Node) []TypeParameterModel {
	var params []TypeParameterModel
	for _, child := range node.ChildrenOfKind(parser.KindTypeParameter) {
		param := TypeParameterModel{Name: declName(child)}
		for _, pc := range child.Children {
			switch pc.Kind {
			case parser.KindType, parser.KindArrayType:
				param.Bounds = append(param.Bounds, b.typeModel(pc))
			case parser.KindAnnotation:
				param.Annotations = append(param.Annotations, b.annotation(pc))
			}
		}
		params = append(params, param)
	}
	return params
}

func (b *sourceBuilder) typeList(node *parser.Node) []TypeModel {
	var types []TypeModel
	for _, child := range node.Children {
		if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
			types = append(types, b.typeModel(child))
		}
	}
	return types
}

func (b *sourceBuilder) typeModel(node *parser.Node) TypeModel {
	if node.Kind == parser.KindArrayType {
		for _, child := range node.Children {
			if child.Kind == parser.KindType || child.Kind == parser.KindArrayType {
				model := b.typeModel(child)
				model.ArrayDepth++
				return model
			}
		}
		return TypeModel{}
	}

	model := TypeModel{}
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindAnnotation:
			model.Annotations = append(model.Annotations, b.annotation(child))
		case parser.KindIdentifier:
			model.Name = child.TokenLiteral()
		case parser.KindQualifiedName:
			name := qualifiedNameToString(child)
			if !strings.Contains(name, ".") && b.resolver.isTypeVariable(name) {
				model.Name = name
				model.IsTypeVariable = true
			} else {
				model.Name = b.resolver.resolve(name)
			}
		case parser.KindTypeArguments:
			model.TypeArguments = b.typeArguments(child)
		}
	}
	return model
}

func (b *sourceBuilder) typeArguments(node *parser.Node) []TypeArgumentModel {
	var args []TypeArgumentModel
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindType, parser.KindArrayType:
			tm := b.typeModel(child)
			args = append(args, TypeArgumentModel{Type: &tm})
		case parser.KindWildcard:
			arg := TypeArgumentModel{IsWildcard: true}
			for _, wc := range child.Children {
				switch wc.Kind {
				case parser.KindIdentifier:
					arg.BoundKind = wc.TokenLiteral()
				case parser.KindType, parser.KindArrayType:
					tm := b.typeModel(wc)
					arg.Bound = &tm
				}
			}
			args = append(args, arg)
		}
	}
	return args
}

// modifierSet is the keyword and annotation content of a Modifiers node.
type modifierSet struct {
	keywords    map[string]bool
	annotations []AnnotationModel
}

func (m modifierSet) has(keyword string) bool {
	return m.keywords[keyword]
}

func (m modifierSet) visibility(fallback Visibility) Visibility {
	switch {
	case m.has("public"):
		return VisibilityPublic
	case m.has("protected"):
		return VisibilityProtected
	case m.has("private"):
		return VisibilityPrivate
	}
	return fallback
}

func (b *sourceBuilder) modifiers(node *parser.Node) modifierSet {
	set := modifierSet{keywords: make(map[string]bool)}
	if node == nil {
		return set
	}
	for _, child := range node.Children {
		if child.Kind == parser.KindAnnotation {
			set.annotations = append(set.annotations, b.annotation(child))
			continue
		}
		set.keywords[child.TokenLiteral()] = true
	}
	return set
}

func (b *sourceBuilder) annotation(node *parser.Node) AnnotationModel {
	ann := AnnotationModel{}
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindQualifiedName:
			ann.Type = b.resolver.resolve(qualifiedNameToString(child))
		case parser.KindAnnotationElement:
			name := "value"
			var value interface{}
			for _, ec := range child.Children {
				if ec.Kind == parser.KindIdentifier {
					name = ec.TokenLiteral()
				} else {
					value = b.annotationValue(ec)
				}
			}
			ann.setValue(name, value)
		case parser.KindLiteral, parser.KindArrayInit, parser.KindAnnotation:
			ann.setValue("value", b.annotationValue(child))
		}
	}
	return ann
}

func (a *AnnotationModel) setValue(name string, value interface{}) {
	if a.Values == nil {
		a.Values = make(map[string]interface{})
	}
	a.Values[name] = value
}

func (b *sourceBuilder) annotationValue(node *parser.Node) interface{} {
	switch node.Kind {
	case parser.KindAnnotation:
		return b.annotation(node)
	case parser.KindArrayInit:
		values := []interface{}{}
		for _, child := range node.Children {
			values = append(values, b.annotationValue(child))
		}
		return values
	case parser.KindLiteral:
		text := node.TokenLiteral()
		if unquoted, err := strconv.Unquote(text); err == nil {
			return unquoted
		}
		return text
	}
	return nil
}

func isDeprecated(annotations []AnnotationModel, javadoc string) bool {
	for _, a := range annotations {
		if a.Type == "java.lang.Deprecated" {
			return true
		}
	}
	return strings.Contains(javadoc, "@deprecated")
}
