// lexer.go — token stream for the Monkey language.
//
// The scanner is deliberately dumb: it never fails. Bytes it cannot make sense
// of become ILLEGAL tokens, and it is the parser's job to turn those into
// recorded syntax errors. The stream always ends with exactly one EOF token.
package monkey

import (
	"fmt"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	ILLEGAL TokenType = iota
	EOF

	// Identifiers & literals
	IDENT
	INT
	STRING

	// Operators
	ASSIGN   // "="
	PLUS     // "+"
	MINUS    // "-"
	BANG     // "!"
	ASTERISK // "*"
	SLASH    // "/"
	LT       // "<"
	GT       // ">"
	EQ       // "=="
	NOT_EQ   // "!="

	// Delimiters
	COMMA
	SEMICOLON
	COLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET

	// Keywords
	FUNCTION
	LET
	TRUE_KW // TRUE/FALSE name the *Boolean singletons
	FALSE_KW
	IF
	ELSE
	RETURN
)

var tokenNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	STRING:    "STRING",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	EQ:        "==",
	NOT_EQ:    "!=",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	TRUE_KW:   "TRUE",
	FALSE_KW:  "FALSE",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
}

func (t TokenType) String() string {
	if t >= 0 && int(t) < len(tokenNames) && tokenNames[t] != "" {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token. Line and Col are 1-based and point at the first
// byte of the token.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Col     int
}

var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE_KW,
	"false":  FALSE_KW,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent maps an identifier to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Lexer scans Monkey source into tokens.
type Lexer struct {
	src  string
	cur  int // index of the next unread byte
	line int // 1-based
	col  int // 1-based column of src[cur]
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan drains the lexer and returns every token, EOF included.
func (l *Lexer) Scan() []Token {
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == EOF {
			return out
		}
	}
}

// NextToken returns the next token. After the input is exhausted it keeps
// returning EOF.
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	line, col := l.line, l.col
	mk := func(tt TokenType, lit string) Token {
		return Token{Type: tt, Literal: lit, Line: line, Col: col}
	}

	ch, ok := l.peek()
	if !ok {
		return mk(EOF, "")
	}

	switch ch {
	case '=':
		l.advance()
		if l.matchByte('=') {
			return mk(EQ, "==")
		}
		return mk(ASSIGN, "=")
	case '!':
		l.advance()
		if l.matchByte('=') {
			return mk(NOT_EQ, "!=")
		}
		return mk(BANG, "!")
	case '+', '-', '*', '/', '<', '>', ',', ';', ':', '(', ')', '{', '}', '[', ']':
		l.advance()
		return mk(singleByteTokens[ch], string(ch))
	case '"':
		start := l.cur
		s, ok := l.readString()
		if !ok {
			return mk(ILLEGAL, l.src[start:l.cur])
		}
		return mk(STRING, s)
	}

	switch {
	case isLetter(ch):
		ident := l.readWhile(func(c byte) bool { return isLetter(c) || isDigit(c) })
		return mk(LookupIdent(ident), ident)
	case isDigit(ch):
		return mk(INT, l.readWhile(isDigit))
	}

	l.advance()
	return mk(ILLEGAL, string(ch))
}

var singleByteTokens = map[byte]TokenType{
	'+': PLUS, '-': MINUS, '*': ASTERISK, '/': SLASH,
	'<': LT, '>': GT,
	',': COMMA, ';': SEMICOLON, ':': COLON,
	'(': LPAREN, ')': RPAREN,
	'{': LBRACE, '}': RBRACE,
	'[': LBRACKET, ']': RBRACKET,
}

// ─────────────────────────────── scanning helpers ───────────────────────────

func (l *Lexer) peek() (byte, bool) {
	if l.cur >= len(l.src) {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	if l.cur+n >= len(l.src) {
		return 0, false
	}
	return l.src[l.cur+n], true
}

func (l *Lexer) advance() {
	if l.cur >= len(l.src) {
		return
	}
	if l.src[l.cur] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.cur++
}

func (l *Lexer) matchByte(b byte) bool {
	if ch, ok := l.peek(); ok && ch == b {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) skipTrivia() {
	for {
		ch, ok := l.peek()
		if !ok {
			return
		}
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.advance()
		case ch == '/':
			if next, ok := l.peekN(1); ok && next == '/' {
				for c, ok := l.peek(); ok && c != '\n'; c, ok = l.peek() {
					l.advance()
				}
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *Lexer) readWhile(pred func(byte) bool) string {
	start := l.cur
	for ch, ok := l.peek(); ok && pred(ch); ch, ok = l.peek() {
		l.advance()
	}
	return l.src[start:l.cur]
}

// readString consumes a double-quoted literal (opening quote at cur) and
// returns its decoded text. Unknown escapes are kept verbatim.
func (l *Lexer) readString() (string, bool) {
	l.advance() // opening quote
	var b strings.Builder
	for {
		ch, ok := l.peek()
		if !ok {
			return "", false
		}
		l.advance()
		switch ch {
		case '"':
			return b.String(), true
		case '\\':
			esc, ok := l.peek()
			if !ok {
				return "", false
			}
			l.advance()
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\':
				b.WriteByte(esc)
			default:
				b.WriteByte('\\')
				b.WriteByte(esc)
			}
		default:
			b.WriteByte(ch)
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
