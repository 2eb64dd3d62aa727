package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords that shape declarations
	TokenAbstract
	TokenBoolean
	TokenByte
	TokenChar
	TokenClass
	TokenDefault
	TokenDouble
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFloat
	TokenImplements
	TokenImport
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSynchronized
	TokenThis
	TokenThrows
	TokenTransient
	TokenVoid
	TokenVolatile

	// Contextual keywords
	TokenRecord
	TokenSealed
	TokenNonSealed
	TokenPermits

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenAssign
	TokenLT
	TokenGT
	TokenBitAnd
	TokenQuestion

	// Any other operator. Declarations never need to tell them apart.
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenAbstract:      "abstract",
	TokenBoolean:       "boolean",
	TokenByte:          "byte",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenDefault:       "default",
	TokenDouble:        "double",
	TokenEnum:          "enum",
	TokenExtends:       "extends",
	TokenFinal:         "final",
	TokenFloat:         "float",
	TokenImplements:    "implements",
	TokenImport:        "import",
	TokenInt:           "int",
	TokenInterface:     "interface",
	TokenLong:          "long",
	TokenNative:        "native",
	TokenNew:           "new",
	TokenPackage:       "package",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenShort:         "short",
	TokenStatic:        "static",
	TokenStrictfp:      "strictfp",
	TokenSuper:         "super",
	TokenSynchronized:  "synchronized",
	TokenThis:          "this",
	TokenThrows:        "throws",
	TokenTransient:     "transient",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenRecord:        "record",
	TokenSealed:        "sealed",
	TokenNonSealed:     "non-sealed",
	TokenPermits:       "permits",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenAssign:        "=",
	TokenLT:            "<",
	TokenGT:            ">",
	TokenBitAnd:        "&",
	TokenQuestion:      "?",
	TokenOperator:      "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"boolean":      TokenBoolean,
	"byte":         TokenByte,
	"char":         TokenChar,
	"class":        TokenClass,
	"default":      TokenDefault,
	"double":       TokenDouble,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"float":        TokenFloat,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
}

// contextualKeywords are only keywords in declaration position; the parser
// decides whether to treat them as identifiers.
var contextualKeywords = map[string]TokenKind{
	"record":  TokenRecord,
	"sealed":  TokenSealed,
	"permits": TokenPermits,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	if kind, ok := contextualKeywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// IsPrimitive reports whether the token names a primitive type or void.
func (k TokenKind) IsPrimitive() bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble, TokenVoid:
		return true
	}
	return false
}
