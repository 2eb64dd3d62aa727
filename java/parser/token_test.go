package parser

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenError, "Error"},
		{TokenIdent, "Identifier"},
		{TokenStringLiteral, "StringLiteral"},
		{TokenClass, "class"},
		{TokenNonSealed, "non-sealed"},
		{TokenEllipsis, "..."},
		{TokenBitAnd, "&"},
		{TokenOperator, "Operator"},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident string
		want  TokenKind
	}{
		{"class", TokenClass},
		{"interface", TokenInterface},
		{"throws", TokenThrows},
		{"void", TokenVoid},
		{"record", TokenRecord},
		{"sealed", TokenSealed},
		{"permits", TokenPermits},
		{"true", TokenTrue},
		{"if", TokenIdent},
		{"return", TokenIdent},
		{"myVariable", TokenIdent},
		{"", TokenIdent},
	}

	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			if got := LookupKeyword(tt.ident); got != tt.want {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.want)
			}
		})
	}
}

func TestIsPrimitive(t *testing.T) {
	for _, kind := range []TokenKind{TokenInt, TokenBoolean, TokenDouble, TokenVoid} {
		if !kind.IsPrimitive() {
			t.Errorf("%v.IsPrimitive() = false, want true", kind)
		}
	}
	for _, kind := range []TokenKind{TokenIdent, TokenClass, TokenStatic} {
		if kind.IsPrimitive() {
			t.Errorf("%v.IsPrimitive() = true, want false", kind)
		}
	}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{File: "Test.java", Line: 5, Column: 10}, "Test.java:5:10"},
		{Position{Line: 1, Column: 2}, "1:2"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("Position.String() = %q, want %q", got, tt.want)
		}
	}
}
