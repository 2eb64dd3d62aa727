package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl

	// Members
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindEnumConstant
	KindInitializer

	// Type and modifiers
	KindModifiers
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindType
	KindArrayType
	KindWildcard
	KindAnnotation
	KindAnnotationElement

	// Type clauses
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause

	// Method components
	KindParameters
	KindParameter
	KindThrowsList
	KindDefaultValue

	// Bodies
	KindBlock
	KindSkipped

	// Values
	KindArrayInit
	KindLiteral
	KindIdentifier
	KindQualifiedName
)

var nodeKindNames = map[NodeKind]string{
	KindError:             "Error",
	KindCompilationUnit:   "CompilationUnit",
	KindPackageDecl:       "PackageDecl",
	KindImportDecl:        "ImportDecl",
	KindClassDecl:         "ClassDecl",
	KindInterfaceDecl:     "InterfaceDecl",
	KindEnumDecl:          "EnumDecl",
	KindRecordDecl:        "RecordDecl",
	KindAnnotationDecl:    "AnnotationDecl",
	KindFieldDecl:         "FieldDecl",
	KindMethodDecl:        "MethodDecl",
	KindConstructorDecl:   "ConstructorDecl",
	KindEnumConstant:      "EnumConstant",
	KindInitializer:       "Initializer",
	KindModifiers:         "Modifiers",
	KindTypeParameters:    "TypeParameters",
	KindTypeParameter:     "TypeParameter",
	KindTypeArguments:     "TypeArguments",
	KindType:              "Type",
	KindArrayType:         "ArrayType",
	KindWildcard:          "Wildcard",
	KindAnnotation:        "Annotation",
	KindAnnotationElement: "AnnotationElement",
	KindExtendsClause:     "ExtendsClause",
	KindImplementsClause:  "ImplementsClause",
	KindPermitsClause:     "PermitsClause",
	KindParameters:        "Parameters",
	KindParameter:         "Parameter",
	KindThrowsList:        "ThrowsList",
	KindDefaultValue:      "DefaultValue",
	KindBlock:             "Block",
	KindSkipped:           "Skipped",
	KindArrayInit:         "ArrayInit",
	KindLiteral:           "Literal",
	KindIdentifier:        "Identifier",
	KindQualifiedName:     "QualifiedName",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

func (e *Error) Error() string {
	if e.Got == nil {
		return e.Message
	}
	return e.Got.Span.Start.String() + ": " + e.Message + " (got " + e.Got.Kind.String() + ")"
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Errors collects every error node below n, in source order.
func (n *Node) Errors() []*Error {
	var errs []*Error
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Error != nil {
			errs = append(errs, node.Error)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(n)
	return errs
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if n.Token != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Token.Literal)
	}
	if n.Error != nil {
		sb.WriteString(" ERROR: ")
		sb.WriteString(n.Error.Message)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		child.writeIndent(sb, indent+1)
	}
}
