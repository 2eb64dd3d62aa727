package parser

import (
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	start := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == '/' && l.peekN(1) == '/':
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, start)
	case ch == '/' && l.peekN(1) == '*':
		l.advanceN(2)
		for l.peek() != 0 && !(l.peek() == '*' && l.peekN(1) == '/') {
			l.advance()
		}
		l.advanceN(2)
		return l.token(TokenComment, start)
	case isWhitespace(ch):
		for isWhitespace(l.peek()) {
			l.advance()
		}
		return l.token(TokenWhitespace, start)
	case isJavaLetter(ch):
		return l.scanIdentOrKeyword(start)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(start)
	case ch == '\'':
		return l.scanQuoted(start, '\'', TokenCharLiteral)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(start)
		}
		return l.scanQuoted(start, '"', TokenStringLiteral)
	}
	return l.scanOperator(start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isJavaLetterOrDigit(l.peek()) {
		l.advance()
	}
	literal := string(l.input[start.Offset:l.pos])

	if literal == "non" && l.peek() == '-' {
		rest := l.input[l.pos:]
		if len(rest) >= 7 && string(rest[:7]) == "-sealed" && (len(rest) == 7 || !isJavaLetterOrDigit(rest[7])) {
			l.advanceN(7)
			return l.token(TokenNonSealed, start)
		}
	}

	return l.token(LookupKeyword(literal), start)
}

// scanNumber accepts every Java numeric literal form loosely: digits,
// underscores, hex/binary prefixes, exponents and type suffixes.
func (l *Lexer) scanNumber(start Position) Token {
	kind := TokenIntLiteral
	hex := false
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		hex = true
		l.advanceN(2)
	} else if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
	}
	for {
		ch := l.peek()
		switch {
		case isDigit(ch) || ch == '_' || (hex && isHexDigit(ch)):
			l.advance()
		case ch == '.' && isDigit(l.peekN(1)), ch == '.' && kind == TokenIntLiteral && !isJavaLetter(l.peekN(1)) && l.peekN(1) != '.':
			kind = TokenFloatLiteral
			l.advance()
		case !hex && (ch == 'e' || ch == 'E'), hex && (ch == 'p' || ch == 'P'):
			kind = TokenFloatLiteral
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
		case ch == 'l' || ch == 'L':
			l.advance()
			return l.token(kind, start)
		case ch == 'f' || ch == 'F' || ch == 'd' || ch == 'D':
			l.advance()
			return l.token(TokenFloatLiteral, start)
		default:
			return l.token(kind, start)
		}
	}
}

func (l *Lexer) scanQuoted(start Position, quote byte, kind TokenKind) Token {
	l.advance()
	for l.peek() != 0 && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	return l.token(kind, start)
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for l.peek() != 0 {
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenTextBlock, start)
}

// scanOperator never joins '>' with what follows: type argument lists close
// with single '>' tokens and declarations contain no shift expressions that
// need to be told apart.
func (l *Lexer) scanOperator(start Position) Token {
	ch := l.advance()
	switch ch {
	case '(':
		return l.token(TokenLParen, start)
	case ')':
		return l.token(TokenRParen, start)
	case '{':
		return l.token(TokenLBrace, start)
	case '}':
		return l.token(TokenRBrace, start)
	case '[':
		return l.token(TokenLBracket, start)
	case ']':
		return l.token(TokenRBracket, start)
	case ';':
		return l.token(TokenSemicolon, start)
	case ',':
		return l.token(TokenComma, start)
	case '@':
		return l.token(TokenAt, start)
	case '?':
		return l.token(TokenQuestion, start)
	case '>':
		return l.token(TokenGT, start)
	case '.':
		if l.peek() == '.' && l.peekN(1) == '.' {
			l.advanceN(2)
			return l.token(TokenEllipsis, start)
		}
		return l.token(TokenDot, start)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return l.token(TokenOperator, start)
		}
		return l.token(TokenAssign, start)
	case '<':
		if l.peek() == '<' || l.peek() == '=' {
			l.advance()
			if l.peek() == '=' {
				l.advance()
			}
			return l.token(TokenOperator, start)
		}
		return l.token(TokenLT, start)
	case '&':
		if l.peek() == '&' || l.peek() == '=' {
			l.advance()
			return l.token(TokenOperator, start)
		}
		return l.token(TokenBitAnd, start)
	case '+', '-', '*', '/', '%', '|', '^', '!', '~', ':':
		for isOperatorTail(l.peek()) {
			l.advance()
		}
		return l.token(TokenOperator, start)
	}
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isOperatorTail(ch byte) bool {
	switch ch {
	case '+', '-', '=', '|', ':':
		return true
	}
	return false
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaLetter(ch byte) bool {
	if ch >= 128 {
		r, _ := utf8.DecodeRune([]byte{ch})
		return unicode.IsLetter(r) || r == utf8.RuneError
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch byte) bool {
	return isJavaLetter(ch) || isDigit(ch)
}
