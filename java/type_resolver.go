package java

import (
	"strings"

	"github.com/dhamidi/jel/java/parser"
)

// ObjectClass is the root of the class hierarchy.
const ObjectClass = "java.lang.Object"

var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "CharSequence": true, "Number": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Character": true, "Boolean": true, "Float": true, "Double": true,
	"Void": true, "Enum": true, "Record": true, "Class": true,
	"Comparable": true, "Iterable": true, "Cloneable": true, "AutoCloseable": true,
	"Runnable": true, "Thread": true, "Throwable": true, "Exception": true,
	"RuntimeException": true, "Error": true, "StringBuilder": true,
	"Math": true, "System": true, "Override": true, "Deprecated": true,
	"SuppressWarnings": true, "FunctionalInterface": true, "SafeVarargs": true,
}

// typeResolver turns names as written in one compilation unit into fully
// qualified names, and tracks which type variables are in scope.
type typeResolver struct {
	pkg     string
	imports []importInfo
	nested  map[string]string
	scopes  [][]string
}

func newTypeResolver(pkg string, imports []importInfo) *typeResolver {
	return &typeResolver{
		pkg:     pkg,
		imports: imports,
		nested:  make(map[string]string),
	}
}

// registerNested records every type declared inside decl so that simple
// names used anywhere in the file resolve to them.
func (r *typeResolver) registerNested(decl *parser.Node, qualifiedName string) {
	body := decl.FirstChildOfKind(parser.KindBlock)
	if body == nil {
		return
	}
	for _, child := range body.Children {
		if !isTypeDecl(child) {
			continue
		}
		simple := declName(child)
		name := qualifiedName + "." + simple
		if _, taken := r.nested[simple]; !taken {
			r.nested[simple] = name
		}
		r.registerNested(child, name)
	}
}

// pushScope brings names into scope as type variables. With reset the
// enclosing scopes are hidden, as they are for static nested types. The
// returned func restores the previous scopes.
func (r *typeResolver) pushScope(names []string, reset bool) func() {
	saved := r.scopes
	if reset {
		r.scopes = [][]string{names}
	} else {
		r.scopes = append(append([][]string(nil), saved...), names)
	}
	return func() { r.scopes = saved }
}

func (r *typeResolver) isTypeVariable(name string) bool {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		for _, n := range r.scopes[i] {
			if n == name {
				return true
			}
		}
	}
	return false
}

func (r *typeResolver) starImports() []string {
	var pkgs []string
	for _, imp := range r.imports {
		if imp.isWildcard && !imp.isStatic {
			pkgs = append(pkgs, imp.qualifiedName)
		}
	}
	return pkgs
}

func (r *typeResolver) resolve(name string) string {
	if name == "" || name == "void" || IsPrimitiveName(name) {
		return name
	}
	head, rest, qualified := strings.Cut(name, ".")
	if qualified {
		if resolved, ok := r.resolveSimple(head); ok {
			return resolved + "." + rest
		}
		return name
	}
	if resolved, ok := r.resolveSimple(name); ok {
		return resolved
	}
	if r.pkg != "" {
		return r.pkg + "." + name
	}
	return name
}

func (r *typeResolver) resolveSimple(simple string) (string, bool) {
	if qualified, ok := r.nested[simple]; ok {
		return qualified, true
	}
	for _, imp := range r.imports {
		if imp.isWildcard || imp.isStatic {
			continue
		}
		if imp.qualifiedName == simple || strings.HasSuffix(imp.qualifiedName, "."+simple) {
			return imp.qualifiedName, true
		}
	}
	if javaLangTypes[simple] {
		return "java.lang." + simple, true
	}
	return "", false
}
