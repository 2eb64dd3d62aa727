package parser

import (
	"strings"
	"testing"
)

func parse(t *testing.T, source string) *Node {
	t.Helper()
	p := ParseCompilationUnit(strings.NewReader(source), WithFile("Test.java"))
	node := p.Finish()
	if node == nil {
		t.Fatal("Finish() = nil")
	}
	if errs := node.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v\n%s", errs, node)
	}
	return node
}

func names(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.TokenLiteral())
	}
	return out
}

func TestParseCompilationUnit(t *testing.T) {
	cu := parse(t, `package com.example.app;

import java.util.List;
import static java.util.Collections.emptyList;
import java.util.concurrent.*;

public class Main {}
`)

	pkg := cu.FirstChildOfKind(KindPackageDecl)
	if pkg == nil {
		t.Fatal("missing PackageDecl")
	}
	if got := strings.Join(names(pkg.FirstChildOfKind(KindQualifiedName).Children), "."); got != "com.example.app" {
		t.Errorf("package = %q, want %q", got, "com.example.app")
	}

	imports := cu.ChildrenOfKind(KindImportDecl)
	if len(imports) != 3 {
		t.Fatalf("imports = %d, want 3", len(imports))
	}
	tests := []struct {
		name     string
		index    int
		static   bool
		wildcard bool
	}{
		{"single", 0, false, false},
		{"static", 1, true, false},
		{"wildcard", 2, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var static, wildcard bool
			for _, child := range imports[tt.index].Children {
				switch child.TokenLiteral() {
				case "static":
					static = true
				case "*":
					wildcard = true
				}
			}
			if static != tt.static || wildcard != tt.wildcard {
				t.Errorf("static = %v, wildcard = %v, want %v, %v", static, wildcard, tt.static, tt.wildcard)
			}
		})
	}

	if cls := cu.FirstChildOfKind(KindClassDecl); cls == nil {
		t.Error("missing ClassDecl")
	}
}

func TestParseTypeDeclarations(t *testing.T) {
	tests := []struct {
		source string
		kind   NodeKind
		name   string
	}{
		{"class A {}", KindClassDecl, "A"},
		{"interface B extends C, D {}", KindInterfaceDecl, "B"},
		{"enum E { X, Y }", KindEnumDecl, "E"},
		{"record R(int a) implements Comparable<R> {}", KindRecordDecl, "R"},
		{"@interface Ann { String value() default \"\"; }", KindAnnotationDecl, "Ann"},
		{"public sealed interface S permits A, B {}", KindInterfaceDecl, "S"},
		{"non-sealed class N extends S {}", KindClassDecl, "N"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cu := parse(t, tt.source)
			decl := cu.FirstChildOfKind(tt.kind)
			if decl == nil {
				t.Fatalf("no %v in\n%s", tt.kind, cu)
			}
			if got := decl.FirstChildOfKind(KindIdentifier).TokenLiteral(); got != tt.name {
				t.Errorf("name = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestParseTypeClauses(t *testing.T) {
	cu := parse(t, `class Box<T extends Number & Comparable<T>> extends Base<T> implements Supplier<T>, java.io.Serializable {}`)
	cls := cu.FirstChildOfKind(KindClassDecl)

	tps := cls.FirstChildOfKind(KindTypeParameters)
	if tps == nil {
		t.Fatal("missing TypeParameters")
	}
	bounds := tps.FirstChildOfKind(KindTypeParameter).ChildrenOfKind(KindType)
	if len(bounds) != 2 {
		t.Errorf("bounds = %d, want 2", len(bounds))
	}

	ext := cls.FirstChildOfKind(KindExtendsClause)
	if ext == nil || len(ext.ChildrenOfKind(KindType)) != 1 {
		t.Errorf("ExtendsClause = %v, want one type", ext)
	}
	impl := cls.FirstChildOfKind(KindImplementsClause)
	if impl == nil {
		t.Fatal("missing ImplementsClause")
	}
	types := impl.ChildrenOfKind(KindType)
	if len(types) != 2 {
		t.Fatalf("implements = %d types, want 2", len(types))
	}
	qn := types[1].FirstChildOfKind(KindQualifiedName)
	if got := strings.Join(names(qn.Children), "."); got != "java.io.Serializable" {
		t.Errorf("second interface = %q, want %q", got, "java.io.Serializable")
	}
}

func TestParseNestedGenerics(t *testing.T) {
	cu := parse(t, `class A { Map<String, List<? extends Number>>[] data; }`)
	field := cu.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindBlock).FirstChildOfKind(KindFieldDecl)
	arr := field.FirstChildOfKind(KindArrayType)
	if arr == nil {
		t.Fatalf("missing ArrayType in\n%s", field)
	}
	typ := arr.FirstChildOfKind(KindType)
	args := typ.FirstChildOfKind(KindTypeArguments).ChildrenOfKind(KindType)
	if len(args) != 2 {
		t.Fatalf("type arguments = %d, want 2", len(args))
	}
	wildcard := args[1].FirstChildOfKind(KindTypeArguments).FirstChildOfKind(KindWildcard)
	if wildcard == nil {
		t.Fatal("missing Wildcard")
	}
	if got := wildcard.FirstChildOfKind(KindIdentifier).TokenLiteral(); got != "extends" {
		t.Errorf("wildcard bound kind = %q, want extends", got)
	}
}

func TestParseMembers(t *testing.T) {
	cu := parse(t, `class Svc {
    static { init(); }
    { count = 0; }
    private int count = compute(1, 2), other;
    private final Map<String, Integer> cache = new HashMap<String, Integer>();

    public Svc(@Named("x") String name) throws Exception {
        this.name = name;
        if (name == null) { throw new IllegalArgumentException(); }
    }

    public <T> List<T> find(Class<T> type, String... keys) {
        return lookup(type, keys);
    }

    abstract void run();

    class Inner {}
    enum Mode { A, B }
}`)
	body := cu.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindBlock)

	if got := len(body.ChildrenOfKind(KindInitializer)); got != 2 {
		t.Errorf("initializers = %d, want 2", got)
	}

	fields := body.ChildrenOfKind(KindFieldDecl)
	if len(fields) != 2 {
		t.Fatalf("field decls = %d, want 2", len(fields))
	}
	if got := names(fields[0].ChildrenOfKind(KindIdentifier)); strings.Join(got, ",") != "count,other" {
		t.Errorf("declarators = %v, want [count other]", got)
	}

	ctor := body.FirstChildOfKind(KindConstructorDecl)
	if ctor == nil {
		t.Fatal("missing ConstructorDecl")
	}
	param := ctor.FirstChildOfKind(KindParameters).FirstChildOfKind(KindParameter)
	if len(param.FirstChildOfKind(KindModifiers).ChildrenOfKind(KindAnnotation)) != 1 {
		t.Error("constructor parameter annotation missing")
	}
	if ctor.FirstChildOfKind(KindThrowsList) == nil {
		t.Error("missing ThrowsList")
	}

	methods := body.ChildrenOfKind(KindMethodDecl)
	if len(methods) != 2 {
		t.Fatalf("methods = %d, want 2", len(methods))
	}
	find := methods[0]
	if find.FirstChildOfKind(KindTypeParameters) == nil {
		t.Error("find: missing TypeParameters")
	}
	params := find.FirstChildOfKind(KindParameters).ChildrenOfKind(KindParameter)
	if len(params) != 2 {
		t.Fatalf("find: parameters = %d, want 2", len(params))
	}
	var ellipsis bool
	for _, id := range params[1].ChildrenOfKind(KindIdentifier) {
		if id.Token.Kind == TokenEllipsis {
			ellipsis = true
		}
	}
	if !ellipsis {
		t.Error("find: varargs parameter should carry an ellipsis")
	}
	if find.FirstChildOfKind(KindSkipped) == nil {
		t.Error("find: body should be skipped")
	}
	if methods[1].FirstChildOfKind(KindSkipped) != nil {
		t.Error("run: abstract method has no body")
	}

	if body.FirstChildOfKind(KindClassDecl) == nil || body.FirstChildOfKind(KindEnumDecl) == nil {
		t.Error("nested type declarations missing")
	}
}

func TestParseRecordCompactConstructor(t *testing.T) {
	cu := parse(t, `record Range(int lo, int hi) {
    Range {
        if (lo > hi) throw new IllegalArgumentException();
    }
    static Range empty() { return new Range(0, 0); }
}`)
	rec := cu.FirstChildOfKind(KindRecordDecl)
	if got := len(rec.FirstChildOfKind(KindParameters).ChildrenOfKind(KindParameter)); got != 2 {
		t.Errorf("components = %d, want 2", got)
	}
	body := rec.FirstChildOfKind(KindBlock)
	ctor := body.FirstChildOfKind(KindConstructorDecl)
	if ctor == nil {
		t.Fatal("missing compact constructor")
	}
	if ctor.FirstChildOfKind(KindParameters) != nil {
		t.Error("compact constructor should have no parameter list")
	}
	if body.FirstChildOfKind(KindMethodDecl) == nil {
		t.Error("missing static method")
	}
}

func TestParseEnumWithBodies(t *testing.T) {
	cu := parse(t, `enum Op {
    @Deprecated PLUS("+") { int apply(int a, int b) { return a + b; } },
    MINUS("-");

    private final String symbol;
    Op(String symbol) { this.symbol = symbol; }
}`)
	body := cu.FirstChildOfKind(KindEnumDecl).FirstChildOfKind(KindBlock)
	constants := body.ChildrenOfKind(KindEnumConstant)
	if len(constants) != 2 {
		t.Fatalf("constants = %d, want 2", len(constants))
	}
	if got := constants[0].FirstChildOfKind(KindIdentifier).TokenLiteral(); got != "PLUS" {
		t.Errorf("first constant = %q, want PLUS", got)
	}
	if body.FirstChildOfKind(KindFieldDecl) == nil || body.FirstChildOfKind(KindConstructorDecl) == nil {
		t.Error("enum members after constants missing")
	}
}

func TestParseAnnotations(t *testing.T) {
	cu := parse(t, `@Entity
@Table(name = "users", indexes = {@Index(column = "id"), @Index(column = "mail")})
@Retention(RetentionPolicy.RUNTIME)
class User {}`)
	mods := cu.FirstChildOfKind(KindClassDecl).FirstChildOfKind(KindModifiers)
	anns := mods.ChildrenOfKind(KindAnnotation)
	if len(anns) != 3 {
		t.Fatalf("annotations = %d, want 3", len(anns))
	}

	elems := anns[1].ChildrenOfKind(KindAnnotationElement)
	if len(elems) != 2 {
		t.Fatalf("Table elements = %d, want 2", len(elems))
	}
	if got := elems[0].FirstChildOfKind(KindLiteral).TokenLiteral(); got != `"users"` {
		t.Errorf("name = %q, want %q", got, `"users"`)
	}
	indexes := elems[1].FirstChildOfKind(KindArrayInit)
	if indexes == nil || len(indexes.ChildrenOfKind(KindAnnotation)) != 2 {
		t.Errorf("indexes = %v, want two nested annotations", indexes)
	}

	if got := anns[2].FirstChildOfKind(KindLiteral).TokenLiteral(); got != "RetentionPolicy.RUNTIME" {
		t.Errorf("Retention value = %q, want %q", got, "RetentionPolicy.RUNTIME")
	}
}

func TestParseComments(t *testing.T) {
	p := ParseCompilationUnit(strings.NewReader("/** doc */\nclass A { // trailing\n}"), WithComments())
	if p.Finish() == nil {
		t.Fatal("Finish() = nil")
	}
	comments := p.Comments()
	if len(comments) != 2 {
		t.Fatalf("Comments() = %d, want 2", len(comments))
	}
	if comments[0].Kind != TokenComment || comments[1].Kind != TokenLineComment {
		t.Errorf("comment kinds = %v, %v", comments[0].Kind, comments[1].Kind)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing class name", "class { }"},
		{"unknown declaration", "package p; banana Foo {}"},
		{"unclosed type arguments", "class A { List<String x; }"},
		{"missing field semicolon", "class A { int x }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := ParseCompilationUnit(strings.NewReader(tt.source)).Finish()
			if node == nil {
				t.Fatal("Finish() = nil")
			}
			if len(node.Errors()) == 0 {
				t.Errorf("Errors() is empty for %q\n%s", tt.source, node)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	if node := ParseCompilationUnit(strings.NewReader("")).Finish(); node != nil {
		t.Errorf("Finish() = %v, want nil", node)
	}
}
