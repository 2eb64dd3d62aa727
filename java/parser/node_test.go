package parser

import (
	"strings"
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindError, "Error"},
		{KindCompilationUnit, "CompilationUnit"},
		{KindRecordDecl, "RecordDecl"},
		{KindExtendsClause, "ExtendsClause"},
		{KindWildcard, "Wildcard"},
		{KindSkipped, "Skipped"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestNodeChildren(t *testing.T) {
	parent := &Node{Kind: KindClassDecl}
	method := &Node{Kind: KindMethodDecl}
	field1 := &Node{Kind: KindFieldDecl}
	field2 := &Node{Kind: KindFieldDecl}

	parent.AddChild(field1)
	parent.AddChild(nil)
	parent.AddChild(method)
	parent.AddChild(field2)

	if len(parent.Children) != 3 {
		t.Fatalf("len(Children) = %d, want 3", len(parent.Children))
	}
	if got := parent.FirstChildOfKind(KindMethodDecl); got != method {
		t.Errorf("FirstChildOfKind(MethodDecl) = %v, want the method node", got)
	}
	if got := parent.FirstChildOfKind(KindBlock); got != nil {
		t.Errorf("FirstChildOfKind(Block) = %v, want nil", got)
	}
	if got := parent.ChildrenOfKind(KindFieldDecl); len(got) != 2 || got[0] != field1 || got[1] != field2 {
		t.Errorf("ChildrenOfKind(FieldDecl) = %v, want both fields in order", got)
	}
}

func TestNodeErrors(t *testing.T) {
	first := &Error{Message: "first"}
	second := &Error{Message: "second"}
	root := &Node{Kind: KindCompilationUnit}
	decl := &Node{Kind: KindClassDecl}
	decl.AddChild(&Node{Kind: KindError, Error: first})
	root.AddChild(decl)
	root.AddChild(&Node{Kind: KindError, Error: second})

	errs := root.Errors()
	if len(errs) != 2 || errs[0] != first || errs[1] != second {
		t.Errorf("Errors() = %v, want [first second]", errs)
	}
	if !root.Children[1].IsError() {
		t.Error("IsError() = false, want true")
	}
}

func TestErrorMessage(t *testing.T) {
	tok := &Token{Kind: TokenLBrace, Span: Span{Start: Position{File: "A.java", Line: 3, Column: 7}}}
	err := &Error{Message: "expected identifier", Got: tok}
	if got, want := err.Error(), "A.java:3:7: expected identifier (got {)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (&Error{Message: "bare"}).Error(); got != "bare" {
		t.Errorf("Error() = %q, want %q", got, "bare")
	}
}

func TestNodeString(t *testing.T) {
	tok := Token{Kind: TokenIdent, Literal: "Foo"}
	node := &Node{Kind: KindClassDecl}
	node.AddChild(&Node{Kind: KindIdentifier, Token: &tok})

	got := node.String()
	if !strings.Contains(got, "ClassDecl\n") || !strings.Contains(got, "  Identifier Foo\n") {
		t.Errorf("String() = %q", got)
	}
}
