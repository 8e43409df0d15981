// parser.go — Pratt parser for Monkey.
//
// OVERVIEW
// --------
// Statements are parsed by plain recursive descent (let, return, expression
// statements). Expressions use top-down operator precedence: every token type
// may register a prefix rule (it can start an expression) and an infix rule
// (it can continue one), and every infix token carries a binding power.
//
// parseExpression(rbp) parses one prefix form, then keeps folding infix forms
// into it for as long as the next token binds tighter than rbp. Each infix
// rule parses its right operand at its own binding power, which is what makes
// `a + b * c` group as `(a + (b * c))` while `a - b - c` stays
// left-associative. Calls `f(x)` and index `a[i]` are infix rules on `(` and
// `[`, so `arr[0]()` chains without special casing.
//
// Binding powers (low → high):
//
//	LOWEST < EQUALITY(== !=) < COMPARISON(< >) < SUM(+ -) < PRODUCT(* /)
//	       < PREFIX(-x !x) < CALL(f(x)) < INDEX(a[i])
//
// ERRORS
// ------
// The parser never aborts. When a rule meets a token it cannot use it records
// a *ParseError and returns nil; ParseProgram then moves on to the next
// statement, so one pass surfaces every independent syntax error. Errors whose
// offending token is EOF, or an unterminated string, are flagged Incomplete
// (see errors.go).
package monkey

import (
	"fmt"
	"strconv"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse parses a token stream (which must end with EOF) into a Program and
// the list of syntax errors, rendered as strings.
func Parse(toks []Token) (*Program, []string) {
	p := NewParser(toks)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// ParseSource scans and parses src. A non-nil *ParseErrors is returned when
// at least one syntax error was recorded; the Program must not be evaluated
// in that case.
func ParseSource(src string) (*Program, *ParseErrors) {
	p := NewParser(NewLexer(src).Scan())
	prog := p.ParseProgram()
	if len(p.errors) > 0 {
		return prog, &ParseErrors{Src: src, Errs: p.errors}
	}
	return prog, nil
}

// Parser holds the state for one input unit. Create one per unit.
type Parser struct {
	toks   []Token
	i      int // index of the current token
	errors []*ParseError

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

type (
	prefixParseFn func() Expression
	infixParseFn  func(left Expression) Expression
)

// NewParser prepares a parser over toks. A missing trailing EOF is supplied.
func NewParser(toks []Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		eof := Token{Type: EOF, Line: 1, Col: 1}
		if n := len(toks); n > 0 {
			eof.Line, eof.Col = toks[n-1].Line, toks[n-1].Col+len(toks[n-1].Literal)
		}
		toks = append(toks[:len(toks):len(toks)], eof)
	}
	p := &Parser{
		toks:      toks,
		prefixFns: map[TokenType]prefixParseFn{},
		infixFns:  map[TokenType]infixParseFn{},
	}

	p.registerPrefix(IDENT, p.parseIdentifier)
	p.registerPrefix(INT, p.parseIntegerLiteral)
	p.registerPrefix(STRING, p.parseStringLiteral)
	p.registerPrefix(TRUE_KW, p.parseBooleanLiteral)
	p.registerPrefix(FALSE_KW, p.parseBooleanLiteral)
	p.registerPrefix(BANG, p.parsePrefixExpression)
	p.registerPrefix(MINUS, p.parsePrefixExpression)
	p.registerPrefix(LPAREN, p.parseGroupedExpression)
	p.registerPrefix(IF, p.parseIfExpression)
	p.registerPrefix(FUNCTION, p.parseFunctionLiteral)
	p.registerPrefix(LBRACKET, p.parseArrayLiteral)
	p.registerPrefix(LBRACE, p.parseHashLiteral)
	p.registerPrefix(ILLEGAL, p.parseIllegal)

	for _, tt := range []TokenType{PLUS, MINUS, ASTERISK, SLASH, EQ, NOT_EQ, LT, GT} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(LPAREN, p.parseCallExpression)
	p.registerInfix(LBRACKET, p.parseIndexExpression)
	return p
}

// Errors returns the recorded syntax errors as human-readable strings.
func (p *Parser) Errors() []string {
	out := make([]string, 0, len(p.errors))
	for _, e := range p.errors {
		out = append(out, e.Msg)
	}
	return out
}

// ParseErrors returns the recorded syntax errors with their positions.
func (p *Parser) ParseErrors() []*ParseError { return p.errors }

// ParseProgram parses statements until EOF. It always returns a Program,
// possibly partial when errors were recorded.
func (p *Parser) ParseProgram() *Program {
	prog := &Program{Statements: []Statement{}}
	for !p.curIs(EOF) {
		if p.curIs(SEMICOLON) { // empty statement
			p.nextToken()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.nextToken()
	}
	return prog
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
//                           PRIVATE IMPLEMENTATION
////////////////////////////////////////////////////////////////////////////////

// ───────────────────────── precedence / binding power ───────────────────────

const (
	_ int = iota
	precLowest
	precEquality   // == !=
	precComparison // < >
	precSum        // + -
	precProduct    // * /
	precPrefix     // -x !x
	precCall       // f(x)
	precIndex      // a[i]
)

func lbp(t TokenType) int {
	switch t {
	case EQ, NOT_EQ:
		return precEquality
	case LT, GT:
		return precComparison
	case PLUS, MINUS:
		return precSum
	case ASTERISK, SLASH:
		return precProduct
	case LPAREN:
		return precCall
	case LBRACKET:
		return precIndex
	}
	return precLowest
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *Parser) registerPrefix(t TokenType, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t TokenType, fn infixParseFn)   { p.infixFns[t] = fn }

func (p *Parser) cur() Token { return p.at(p.i) }
func (p *Parser) peek() Token { return p.at(p.i + 1) }

// at clamps to the trailing EOF so lookahead past the end is harmless.
func (p *Parser) at(i int) Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) nextToken() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

func (p *Parser) curIs(t TokenType) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t TokenType) bool { return p.peek().Type == t }

// expectPeek advances when the next token has type t; otherwise it records
// an error against that token and leaves the position unchanged.
func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) errorAt(tok Token, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{
		Msg:        fmt.Sprintf(format, args...),
		Line:       tok.Line,
		Col:        tok.Col,
		Incomplete: tok.Type == EOF || isUnterminatedString(tok),
	})
}

// isUnterminatedString reports the ILLEGAL token the lexer emits for a string
// literal that runs to end of input.
func isUnterminatedString(tok Token) bool {
	return tok.Type == ILLEGAL && strings.HasPrefix(tok.Literal, "\"")
}

func (p *Parser) peekError(t TokenType) {
	got := p.peek()
	p.errorAt(got, "expected next token to be %s, got %s instead", t, got.Type)
}

func (p *Parser) skipOptionalSemicolon() {
	if p.peekIs(SEMICOLON) {
		p.nextToken()
	}
}

// ───────────────────────────────── statements ───────────────────────────────

func (p *Parser) parseStatement() Statement {
	switch p.cur().Type {
	case LET:
		return p.parseLetStatement()
	case RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() Statement {
	stmt := &LetStatement{Token: p.cur()}
	if !p.expectPeek(IDENT) {
		return nil
	}
	stmt.Name = &Identifier{Token: p.cur(), Value: p.cur().Literal}
	if !p.expectPeek(ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(precLowest)
	if stmt.Value == nil {
		return nil
	}
	p.skipOptionalSemicolon()
	return stmt
}

func (p *Parser) parseReturnStatement() Statement {
	stmt := &ReturnStatement{Token: p.cur()}
	if p.peekIs(SEMICOLON) || p.peekIs(RBRACE) || p.peekIs(EOF) {
		p.skipOptionalSemicolon()
		return stmt
	}
	p.nextToken()
	stmt.ReturnValue = p.parseExpression(precLowest)
	if stmt.ReturnValue == nil {
		return nil
	}
	p.skipOptionalSemicolon()
	return stmt
}

func (p *Parser) parseExpressionStatement() Statement {
	stmt := &ExpressionStatement{Token: p.cur()}
	stmt.Expression = p.parseExpression(precLowest)
	if stmt.Expression == nil {
		return nil
	}
	p.skipOptionalSemicolon()
	return stmt
}

// parseBlockStatement expects the current token to be '{' and leaves the
// parser on the matching '}'.
func (p *Parser) parseBlockStatement() *BlockStatement {
	block := &BlockStatement{Token: p.cur(), Statements: []Statement{}}
	p.nextToken()
	for !p.curIs(RBRACE) && !p.curIs(EOF) {
		if p.curIs(SEMICOLON) {
			p.nextToken()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	if p.curIs(EOF) {
		p.errorAt(p.cur(), "expected next token to be %s, got %s instead", RBRACE, EOF)
		return nil
	}
	return block
}

// ──────────────────────────────── expressions ───────────────────────────────

// parseExpression is the precedence-climbing core. On entry the current token
// starts the expression; on exit it is the last token of the expression.
func (p *Parser) parseExpression(rbp int) Expression {
	prefix := p.prefixFns[p.cur().Type]
	if prefix == nil {
		p.errorAt(p.cur(), "no prefix parse function for %s found", p.cur().Type)
		return nil
	}
	left := prefix()
	for left != nil && !p.peekIs(SEMICOLON) && rbp < lbp(p.peek().Type) {
		infix := p.infixFns[p.peek().Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() Expression {
	return &Identifier{Token: p.cur(), Value: p.cur().Literal}
}

func (p *Parser) parseIntegerLiteral() Expression {
	tok := p.cur()
	v, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorAt(tok, "could not parse %q as integer", tok.Literal)
		return nil
	}
	return &IntegerLiteral{Token: tok, Value: v}
}

func (p *Parser) parseStringLiteral() Expression {
	return &StringLiteral{Token: p.cur(), Value: p.cur().Literal}
}

func (p *Parser) parseBooleanLiteral() Expression {
	return &BooleanLiteral{Token: p.cur(), Value: p.curIs(TRUE_KW)}
}

func (p *Parser) parseIllegal() Expression {
	p.errorAt(p.cur(), "illegal token %q", p.cur().Literal)
	return nil
}

func (p *Parser) parsePrefixExpression() Expression {
	expr := &PrefixExpression{Token: p.cur(), Operator: p.cur().Literal}
	p.nextToken()
	expr.Right = p.parseExpression(precPrefix)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left Expression) Expression {
	expr := &InfixExpression{Token: p.cur(), Operator: p.cur().Literal, Left: left}
	bp := lbp(p.cur().Type)
	p.nextToken()
	expr.Right = p.parseExpression(bp)
	if expr.Right == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(precLowest)
	if expr == nil || !p.expectPeek(RPAREN) {
		return nil
	}
	return expr
}

// parseIfExpression accepts `if (cond) { ... } else { ... }`; the parentheses
// are an ordinary grouped expression, so `if cond { ... }` parses too.
func (p *Parser) parseIfExpression() Expression {
	expr := &IfExpression{Token: p.cur()}
	p.nextToken()
	expr.Condition = p.parseExpression(precLowest)
	if expr.Condition == nil || !p.expectPeek(LBRACE) {
		return nil
	}
	if expr.Consequence = p.parseBlockStatement(); expr.Consequence == nil {
		return nil
	}
	if p.peekIs(ELSE) {
		p.nextToken()
		if !p.expectPeek(LBRACE) {
			return nil
		}
		if expr.Alternative = p.parseBlockStatement(); expr.Alternative == nil {
			return nil
		}
	}
	return expr
}

func (p *Parser) parseFunctionLiteral() Expression {
	fn := &FunctionLiteral{Token: p.cur()}
	if !p.expectPeek(LPAREN) {
		return nil
	}
	params, ok := parseList(p, RPAREN, p.parseParameter)
	if !ok || !p.expectPeek(LBRACE) {
		return nil
	}
	fn.Parameters = params
	if fn.Body = p.parseBlockStatement(); fn.Body == nil {
		return nil
	}
	return fn
}

func (p *Parser) parseParameter() (*Identifier, bool) {
	if !p.curIs(IDENT) {
		p.errorAt(p.cur(), "expected next token to be %s, got %s instead", IDENT, p.cur().Type)
		return nil, false
	}
	return &Identifier{Token: p.cur(), Value: p.cur().Literal}, true
}

func (p *Parser) parseListElement() (Expression, bool) {
	e := p.parseExpression(precLowest)
	return e, e != nil
}

func (p *Parser) parseCallExpression(fn Expression) Expression {
	call := &CallExpression{Token: p.cur(), Function: fn}
	args, ok := parseList(p, RPAREN, p.parseListElement)
	if !ok {
		return nil
	}
	call.Arguments = args
	return call
}

func (p *Parser) parseArrayLiteral() Expression {
	arr := &ArrayLiteral{Token: p.cur()}
	elems, ok := parseList(p, RBRACKET, p.parseListElement)
	if !ok {
		return nil
	}
	arr.Elements = elems
	return arr
}

func (p *Parser) parseIndexExpression(left Expression) Expression {
	expr := &IndexExpression{Token: p.cur(), Left: left}
	p.nextToken()
	expr.Index = p.parseExpression(precLowest)
	if expr.Index == nil || !p.expectPeek(RBRACKET) {
		return nil
	}
	return expr
}

func (p *Parser) parseHashLiteral() Expression {
	hash := &HashLiteral{Token: p.cur(), Pairs: []HashLiteralPair{}}
	for !p.peekIs(RBRACE) {
		p.nextToken()
		key := p.parseExpression(precLowest)
		if key == nil || !p.expectPeek(COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(precLowest)
		if value == nil {
			return nil
		}
		hash.Pairs = append(hash.Pairs, HashLiteralPair{Key: key, Value: value})
		if !p.peekIs(RBRACE) && !p.expectPeek(COMMA) {
			return nil
		}
	}
	p.nextToken() // '}'
	return hash
}

// parseList parses `item, item, ... end` with the current token on the
// opening delimiter. It is shared by parameter lists, call arguments and
// array literals. On success the current token is `end`.
func parseList[T any](p *Parser, end TokenType, item func() (T, bool)) ([]T, bool) {
	list := []T{}
	if p.peekIs(end) {
		p.nextToken()
		return list, true
	}
	p.nextToken()
	x, ok := item()
	if !ok {
		return nil, false
	}
	list = append(list, x)
	for p.peekIs(COMMA) {
		p.nextToken()
		p.nextToken()
		if x, ok = item(); !ok {
			return nil, false
		}
		list = append(list, x)
	}
	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}
