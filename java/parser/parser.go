package parser

import (
	"io"
	"strings"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// Parser reads the declaration structure of a Java compilation unit:
// packages, imports, types, members, signatures and annotations.
// Method bodies, initializers and field initial values are skipped as
// balanced token runs and show up as KindSkipped nodes.
type Parser struct {
	file            string
	includeComments bool
	reader          io.Reader
	input           []byte
	tokens          []Token
	comments        []Token
	pos             int
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{reader: r}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func (p *Parser) SourcePath() string {
	return p.file
}

// Finish parses the whole input and returns the compilation unit, or nil
// when the input cannot be read or is empty.
func (p *Parser) Finish() *Node {
	if p.input == nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return nil
		}
		p.input = data
	}
	if len(p.input) == 0 {
		return nil
	}
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.tokenize(NewLexer(p.input, p.file))
	return p.parseCompilationUnit()
}

func (p *Parser) tokenize(lexer *Lexer) {
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment:
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			return
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind) *Token {
	if p.check(kind) {
		tok := p.advance()
		return &tok
	}
	return nil
}

func (p *Parser) mustProgress() func() bool {
	start := p.pos
	return func() bool {
		return p.pos > start
	}
}

func (p *Parser) isIdentifierLike() bool {
	return isIdentifierLike(p.peek().Kind)
}

func isIdentifierLike(kind TokenKind) bool {
	switch kind {
	case TokenIdent, TokenRecord, TokenSealed, TokenPermits:
		return true
	}
	return false
}

func (p *Parser) identifier() *Node {
	if !p.isIdentifierLike() {
		return p.errorNode("expected identifier", nil)
	}
	tok := p.advance()
	return &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	}
	return n
}

func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	node := &Node{
		Kind: KindError,
		Span: tok.Span,
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.recoverTo(recoverTo)
	return node
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	for len(kinds) > 0 && !p.check(TokenEOF) {
		for _, kind := range kinds {
			if p.check(kind) {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.isAnnotatedPackage() {
		node.AddChild(p.parsePackageDecl())
	}
	for p.check(TokenImport) {
		node.AddChild(p.parseImportDecl())
	}
	for !p.check(TokenEOF) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseTypeDecl(p.parseModifiers()))
	}
	return p.finishNode(node)
}

func (p *Parser) isAnnotatedPackage() bool {
	save := p.pos
	defer func() { p.pos = save }()
	for p.check(TokenAt) && p.peekN(1).Kind != TokenInterface {
		p.parseAnnotation()
	}
	return p.check(TokenPackage)
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)

	if p.check(TokenStatic) {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
	}
	node.AddChild(p.parseQualifiedName())
	if p.check(TokenDot) && p.peekN(1).Kind == TokenOperator && p.peekN(1).Literal == "*" {
		p.advance()
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	if !p.isIdentifierLike() {
		return p.errorNode("expected identifier", nil)
	}
	node.AddChild(p.identifier())
	for p.check(TokenDot) && isIdentifierLike(p.peekN(1).Kind) {
		p.advance()
		node.AddChild(p.identifier())
	}
	return p.finishNode(node)
}

var declarationRecovery = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected,
	TokenAbstract, TokenStatic, TokenFinal, TokenStrictfp,
	TokenClass, TokenInterface, TokenEnum, TokenRecord,
}

func (p *Parser) parseTypeDecl(modifiers *Node) *Node {
	switch p.peek().Kind {
	case TokenClass:
		return p.parseClassDecl(modifiers)
	case TokenInterface:
		return p.parseInterfaceDecl(modifiers)
	case TokenEnum:
		return p.parseEnumDecl(modifiers)
	case TokenRecord:
		if isIdentifierLike(p.peekN(1).Kind) {
			return p.parseRecordDecl(modifiers)
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return p.parseAnnotationDecl(modifiers)
		}
	}
	return p.errorNode("expected class, interface, enum, record, or @interface", declarationRecovery)
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)
	for {
		switch p.peek().Kind {
		case TokenAt:
			if p.peekN(1).Kind == TokenInterface {
				return p.finishNode(node)
			}
			node.AddChild(p.parseAnnotation())
		case TokenPublic, TokenProtected, TokenPrivate,
			TokenAbstract, TokenStatic, TokenFinal,
			TokenStrictfp, TokenNative, TokenSynchronized,
			TokenTransient, TokenVolatile, TokenNonSealed:
			tok := p.advance()
			node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		case TokenDefault:
			// "default" only reaches here as an interface method modifier;
			// annotation defaults are consumed by parseMethod.
			tok := p.advance()
			node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		case TokenSealed:
			if !p.sealedIsModifier() {
				return p.finishNode(node)
			}
			tok := p.advance()
			node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		default:
			return p.finishNode(node)
		}
	}
}

func (p *Parser) sealedIsModifier() bool {
	switch p.peekN(1).Kind {
	case TokenClass, TokenInterface, TokenAbstract, TokenPublic,
		TokenProtected, TokenPrivate, TokenStatic, TokenFinal,
		TokenStrictfp, TokenAt, TokenNonSealed:
		return true
	}
	return false
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.check(TokenLParen) {
		p.advance()
		if !p.check(TokenRParen) {
			if p.isIdentifierLike() && p.peekN(1).Kind == TokenAssign {
				for {
					progress := p.mustProgress()
					node.AddChild(p.parseAnnotationElement())
					if !p.check(TokenComma) || !progress() {
						break
					}
					p.advance()
				}
			} else {
				node.AddChild(p.parseAnnotationValue())
			}
		}
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationElement() *Node {
	node := p.startNode(KindAnnotationElement)
	node.AddChild(p.identifier())
	p.expect(TokenAssign)
	node.AddChild(p.parseAnnotationValue())
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationValue() *Node {
	switch {
	case p.check(TokenAt):
		return p.parseAnnotation()
	case p.check(TokenLBrace):
		node := p.startNode(KindArrayInit)
		p.advance()
		for !p.check(TokenRBrace) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseAnnotationValue())
			if p.check(TokenComma) {
				p.advance()
			} else if !progress() {
				break
			}
		}
		p.expect(TokenRBrace)
		return p.finishNode(node)
	}
	return p.parseConstantExpression()
}

// parseConstantExpression keeps an annotation value verbatim: it collects
// tokens up to the next top-level ',', ';', ')' or '}' and joins them.
func (p *Parser) parseConstantExpression() *Node {
	node := p.startNode(KindLiteral)
	var sb strings.Builder
	depth := 0
	var prev TokenKind
loop:
	for !p.check(TokenEOF) {
		tok := p.peek()
		switch tok.Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				break loop
			}
			depth--
		case TokenComma, TokenSemicolon:
			if depth == 0 {
				break loop
			}
		}
		if sb.Len() > 0 && isWordToken(prev) && isWordToken(tok.Kind) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Literal)
		prev = tok.Kind
		p.advance()
	}
	if sb.Len() == 0 {
		return p.errorNode("expected annotation value", []TokenKind{TokenComma, TokenRParen})
	}
	node.Token = &Token{Kind: TokenStringLiteral, Span: node.Span, Literal: sb.String()}
	return p.finishNode(node)
}

func isWordToken(kind TokenKind) bool {
	switch kind {
	case TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenLBracket, TokenRBracket,
		TokenDot, TokenComma, TokenSemicolon:
		return false
	}
	return true
}

func (p *Parser) parseClassDecl(modifiers *Node) *Node {
	node := p.startNode(KindClassDecl)
	node.AddChild(modifiers)
	p.expect(TokenClass)
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeClause(KindExtendsClause))
	}
	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeClause(KindImplementsClause))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseTypeClause(KindPermitsClause))
	}
	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(modifiers *Node) *Node {
	node := p.startNode(KindInterfaceDecl)
	node.AddChild(modifiers)
	p.expect(TokenInterface)
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.check(TokenExtends) {
		node.AddChild(p.parseTypeClause(KindExtendsClause))
	}
	if p.check(TokenPermits) {
		node.AddChild(p.parseTypeClause(KindPermitsClause))
	}
	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(modifiers *Node) *Node {
	node := p.startNode(KindEnumDecl)
	node.AddChild(modifiers)
	p.expect(TokenEnum)
	node.AddChild(p.identifier())

	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeClause(KindImplementsClause))
	}

	body := p.startNode(KindBlock)
	p.expect(TokenLBrace)
	for p.isIdentifierLike() || p.check(TokenAt) {
		progress := p.mustProgress()
		body.AddChild(p.parseEnumConstant())
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	if p.check(TokenSemicolon) {
		p.advance()
		p.parseMembers(body)
	}
	p.expect(TokenRBrace)
	node.AddChild(p.finishNode(body))
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstant)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.identifier())
	if p.check(TokenLParen) {
		node.AddChild(p.skipBalanced(TokenLParen, TokenRParen))
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.skipBalanced(TokenLBrace, TokenRBrace))
	}
	return p.finishNode(node)
}

func (p *Parser) parseRecordDecl(modifiers *Node) *Node {
	node := p.startNode(KindRecordDecl)
	node.AddChild(modifiers)
	p.expect(TokenRecord)
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	node.AddChild(p.parseParameters())
	if p.check(TokenImplements) {
		node.AddChild(p.parseTypeClause(KindImplementsClause))
	}
	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseAnnotationDecl(modifiers *Node) *Node {
	node := p.startNode(KindAnnotationDecl)
	node.AddChild(modifiers)
	p.expect(TokenAt)
	p.expect(TokenInterface)
	node.AddChild(p.identifier())
	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseTypeClause(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	for {
		progress := p.mustProgress()
		node.AddChild(p.parseType())
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(TokenLT)
	for {
		progress := p.mustProgress()
		node.AddChild(p.parseTypeParameter())
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	p.expect(TokenGT)
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	node.AddChild(p.identifier())
	if p.check(TokenExtends) {
		p.advance()
		for {
			node.AddChild(p.parseType())
			if !p.check(TokenBitAnd) {
				break
			}
			p.advance()
		}
	}
	return p.finishNode(node)
}

// parseType reads a primitive or class type with optional type arguments
// and array dimensions. For Outer<A>.Inner<B> the name covers every segment
// and only the innermost argument list is kept.
func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)

	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	switch {
	case p.peek().Kind.IsPrimitive():
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
	case p.isIdentifierLike():
		name := p.startNode(KindQualifiedName)
		var args *Node
		for {
			name.AddChild(p.identifier())
			if p.check(TokenLT) {
				args = p.parseTypeArguments()
			}
			if !p.check(TokenDot) || !isIdentifierLike(p.peekN(1).Kind) {
				break
			}
			p.advance()
		}
		node.AddChild(p.finishNode(name))
		node.AddChild(args)
	default:
		return p.errorNode("expected type", []TokenKind{TokenIdent, TokenSemicolon, TokenRParen, TokenComma, TokenRBrace})
	}
	node = p.finishNode(node)

	for p.check(TokenLBracket) || (p.check(TokenAt) && p.annotatedDimensionFollows()) {
		wrapper := p.startNode(KindArrayType)
		for p.check(TokenAt) {
			wrapper.AddChild(p.parseAnnotation())
		}
		p.expect(TokenLBracket)
		p.expect(TokenRBracket)
		wrapper.AddChild(node)
		node = p.finishNode(wrapper)
	}
	return node
}

func (p *Parser) annotatedDimensionFollows() bool {
	save := p.pos
	defer func() { p.pos = save }()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	return p.check(TokenLBracket)
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(TokenLT)
	for !p.check(TokenGT) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenQuestion) || (p.check(TokenAt) && p.wildcardFollows()) {
			node.AddChild(p.parseWildcard())
		} else {
			node.AddChild(p.parseType())
		}
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	if p.expect(TokenGT) == nil {
		return p.errorNode("expected '>'", []TokenKind{TokenGT, TokenSemicolon, TokenLBrace}, TokenGT)
	}
	return p.finishNode(node)
}

func (p *Parser) wildcardFollows() bool {
	save := p.pos
	defer func() { p.pos = save }()
	for p.check(TokenAt) {
		p.parseAnnotation()
	}
	return p.check(TokenQuestion)
}

func (p *Parser) parseWildcard() *Node {
	node := p.startNode(KindWildcard)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	p.expect(TokenQuestion)
	if p.check(TokenExtends) || p.check(TokenSuper) {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

func (p *Parser) parseClassBody() *Node {
	node := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		return p.errorNode("expected class body", []TokenKind{TokenLBrace, TokenRBrace}, TokenLBrace)
	}
	p.parseMembers(node)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseMembers(body *Node) {
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		body.AddChild(p.parseClassMember())
		if !progress() {
			p.advance()
		}
	}
}

var memberRecovery = []TokenKind{
	TokenAt, TokenPublic, TokenPrivate, TokenProtected,
	TokenAbstract, TokenStatic, TokenFinal, TokenNative,
	TokenSynchronized, TokenTransient, TokenVolatile,
	TokenClass, TokenInterface, TokenEnum, TokenRBrace, TokenSemicolon,
}

func (p *Parser) parseClassMember() *Node {
	switch {
	case p.check(TokenSemicolon):
		p.advance()
		return nil
	case p.check(TokenLBrace):
		node := p.startNode(KindInitializer)
		node.AddChild(p.skipBalanced(TokenLBrace, TokenRBrace))
		return p.finishNode(node)
	case p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace:
		node := p.startNode(KindInitializer)
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
		node.AddChild(p.skipBalanced(TokenLBrace, TokenRBrace))
		return p.finishNode(node)
	}

	modifiers := p.parseModifiers()

	switch p.peek().Kind {
	case TokenClass, TokenInterface, TokenEnum:
		return p.parseTypeDecl(modifiers)
	case TokenRecord:
		if isIdentifierLike(p.peekN(1).Kind) && (p.peekN(2).Kind == TokenLParen || p.peekN(2).Kind == TokenLT) {
			return p.parseRecordDecl(modifiers)
		}
	case TokenAt:
		if p.peekN(1).Kind == TokenInterface {
			return p.parseAnnotationDecl(modifiers)
		}
	}

	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	if p.isIdentifierLike() {
		switch p.peekN(1).Kind {
		case TokenLParen:
			return p.parseConstructor(modifiers, typeParams)
		case TokenLBrace:
			return p.parseCompactConstructor(modifiers)
		}
	}

	typ := p.parseType()
	if typ.IsError() {
		return typ
	}
	if p.isIdentifierLike() {
		if p.peekN(1).Kind == TokenLParen {
			return p.parseMethod(modifiers, typeParams, typ)
		}
		return p.parseField(modifiers, typ)
	}
	return p.errorNode("expected member declaration", memberRecovery)
}

func (p *Parser) parseConstructor(modifiers, typeParams *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(modifiers)
	node.AddChild(typeParams)
	node.AddChild(p.identifier())
	node.AddChild(p.parseParameters())
	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}
	node.AddChild(p.parseBody())
	return p.finishNode(node)
}

// parseCompactConstructor reads a record's compact canonical constructor,
// which has no parameter list of its own.
func (p *Parser) parseCompactConstructor(modifiers *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(modifiers)
	node.AddChild(p.identifier())
	node.AddChild(p.skipBalanced(TokenLBrace, TokenRBrace))
	return p.finishNode(node)
}

func (p *Parser) parseMethod(modifiers, typeParams, returnType *Node) *Node {
	node := p.startNode(KindMethodDecl)
	node.AddChild(modifiers)
	node.AddChild(typeParams)
	node.AddChild(returnType)
	node.AddChild(p.identifier())
	node.AddChild(p.parseParameters())
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	if p.check(TokenThrows) {
		node.AddChild(p.parseThrowsList())
	}
	if p.check(TokenDefault) {
		value := p.startNode(KindDefaultValue)
		p.advance()
		value.AddChild(p.parseAnnotationValue())
		node.AddChild(p.finishNode(value))
	}
	node.AddChild(p.parseBody())
	return p.finishNode(node)
}

func (p *Parser) parseBody() *Node {
	if p.check(TokenLBrace) {
		return p.skipBalanced(TokenLBrace, TokenRBrace)
	}
	if p.expect(TokenSemicolon) == nil {
		return p.errorNode("expected method body or ';'", memberRecovery, TokenLBrace, TokenSemicolon)
	}
	return nil
}

func (p *Parser) parseField(modifiers, typ *Node) *Node {
	node := p.startNode(KindFieldDecl)
	node.AddChild(modifiers)
	node.AddChild(typ)
	for {
		progress := p.mustProgress()
		declarator := p.identifier()
		for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
			dim := p.startNode(KindArrayType)
			p.advance()
			p.advance()
			declarator.AddChild(p.finishNode(dim))
		}
		node.AddChild(declarator)
		if p.check(TokenAssign) {
			p.advance()
			node.AddChild(p.skipInitializer())
		}
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	if p.expect(TokenSemicolon) == nil {
		return p.errorNode("expected ';' after field declaration", memberRecovery, TokenSemicolon)
	}
	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	if p.expect(TokenLParen) == nil {
		return p.errorNode("expected '('", memberRecovery, TokenLParen)
	}
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseParameter())
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseParameter returns nil for a receiver parameter, which names no
// value and only carries type annotations.
func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	if p.check(TokenEllipsis) {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span})
	}
	if p.check(TokenThis) {
		p.advance()
		return nil
	}
	if isIdentifierLike(p.peekN(0).Kind) && p.peekN(1).Kind == TokenDot && p.peekN(2).Kind == TokenThis {
		p.advance()
		p.advance()
		p.advance()
		return nil
	}
	declarator := p.identifier()
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		dim := p.startNode(KindArrayType)
		p.advance()
		p.advance()
		declarator.AddChild(p.finishNode(dim))
	}
	node.AddChild(declarator)
	return p.finishNode(node)
}

func (p *Parser) parseThrowsList() *Node {
	return p.parseTypeClause(KindThrowsList)
}

// skipBalanced consumes an open token and everything up to its matching
// close token.
func (p *Parser) skipBalanced(open, close TokenKind) *Node {
	node := p.startNode(KindSkipped)
	depth := 0
	for !p.check(TokenEOF) {
		tok := p.advance()
		if tok.Kind == open {
			depth++
		} else if tok.Kind == close {
			depth--
			if depth == 0 {
				return p.finishNode(node)
			}
		}
	}
	return p.errorNode("unbalanced "+open.String(), nil, close)
}

// skipInitializer consumes a field's initial value. A top-level ',' only
// ends the value when another declarator follows it; commas inside generic
// argument lists such as new HashMap<K, V>() are part of the value.
func (p *Parser) skipInitializer() *Node {
	node := p.startNode(KindSkipped)
	depth := 0
	for !p.check(TokenEOF) {
		switch p.peek().Kind {
		case TokenLParen, TokenLBrace, TokenLBracket:
			depth++
		case TokenRParen, TokenRBrace, TokenRBracket:
			if depth == 0 {
				return p.finishNode(node)
			}
			depth--
		case TokenSemicolon:
			if depth == 0 {
				return p.finishNode(node)
			}
		case TokenComma:
			if depth == 0 && p.declaratorFollowsComma() {
				return p.finishNode(node)
			}
		}
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) declaratorFollowsComma() bool {
	if !isIdentifierLike(p.peekN(1).Kind) {
		return false
	}
	switch p.peekN(2).Kind {
	case TokenAssign, TokenComma, TokenSemicolon, TokenLBracket:
		return true
	}
	return false
}
