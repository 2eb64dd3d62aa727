package java

import "strings"

// Link settles type references that could not be resolved while a single
// file was being read. A name that fell back to "pkg.Simple" (or was left
// as written) is looked up again, in this order:
//
//  1. as a nested type declared somewhere in the same package
//  2. under each on-demand import of the referring file
//  3. in java.lang
//
// exists reports whether a fully qualified class name is known; names it
// already accepts are left untouched.
func Link(classes []*ClassModel, exists func(name string) bool) {
	nested := nestedByPackage(classes)
	for _, model := range classes {
		l := &linker{model: model, nested: nested[model.Package], exists: exists}
		walkTypes(model, l.fix)
	}
}

type linker struct {
	model  *ClassModel
	nested map[string]string
	exists func(string) bool
}

func (l *linker) fix(t *TypeModel) {
	if t.IsTypeVariable || t.Name == "" || t.Name == "void" || IsPrimitiveName(t.Name) || l.exists(t.Name) {
		return
	}
	written := t.Name
	if l.model.Package != "" {
		written = strings.TrimPrefix(written, l.model.Package+".")
	}
	head, rest, _ := strings.Cut(written, ".")
	if outer, ok := l.nested[head]; ok {
		if candidate := joinName(outer, rest); l.exists(candidate) {
			t.Name = candidate
			return
		}
	}
	for _, pkg := range l.model.StarImports {
		if candidate := pkg + "." + written; l.exists(candidate) {
			t.Name = candidate
			return
		}
	}
	if candidate := "java.lang." + written; l.exists(candidate) {
		t.Name = candidate
	}
}

func joinName(prefix, rest string) string {
	if rest == "" {
		return prefix
	}
	return prefix + "." + rest
}

// nestedByPackage maps package -> simple name -> qualified name for every
// nested type. Simple names declared twice in a package are ambiguous and
// left out.
func nestedByPackage(classes []*ClassModel) map[string]map[string]string {
	result := make(map[string]map[string]string)
	ambiguous := make(map[string]bool)
	for _, model := range classes {
		if model.EnclosingClass == "" {
			continue
		}
		if result[model.Package] == nil {
			result[model.Package] = make(map[string]string)
		}
		key := model.Package + "#" + model.SimpleName
		if prev, ok := result[model.Package][model.SimpleName]; ok && prev != model.Name {
			ambiguous[key] = true
			delete(result[model.Package], model.SimpleName)
			continue
		}
		if !ambiguous[key] {
			result[model.Package][model.SimpleName] = model.Name
		}
	}
	return result
}

// walkTypes calls fn on every type reference in model, type arguments and
// bounds included.
func walkTypes(model *ClassModel, fn func(*TypeModel)) {
	var visit func(t *TypeModel)
	visit = func(t *TypeModel) {
		if t == nil {
			return
		}
		fn(t)
		for i := range t.TypeArguments {
			visit(t.TypeArguments[i].Type)
			visit(t.TypeArguments[i].Bound)
		}
	}
	visitParams := func(tps []TypeParameterModel) {
		for i := range tps {
			for j := range tps[i].Bounds {
				visit(&tps[i].Bounds[j])
			}
		}
	}

	visit(model.SuperType)
	for i := range model.Interfaces {
		visit(&model.Interfaces[i])
	}
	visitParams(model.TypeParameters)
	for i := range model.RecordComponents {
		visit(&model.RecordComponents[i].Type)
	}
	for i := range model.Fields {
		visit(&model.Fields[i].Type)
	}
	for i := range model.Methods {
		m := &model.Methods[i]
		visit(&m.ReturnType)
		for j := range m.Parameters {
			visit(&m.Parameters[j].Type)
		}
		for j := range m.Exceptions {
			visit(&m.Exceptions[j])
		}
		visitParams(m.TypeParameters)
	}
}
