// Package lexer turns PeopleCode source text into a token stream. It
// is eager (the whole source is tokenized in one call) and total:
// unrecognized characters become diagnostics, never aborts, because the
// lexer runs continuously against in-progress edits.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	errors []*diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize consumes the whole input and returns the complete token
// list, EOF token included, plus any lexical diagnostics.
func (l *Lexer) Tokenize() ([]token.Token, []*diagnostics.DiagnosticError) {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens, l.errors
}

// Errors returns the lexical diagnostics collected so far.
func (l *Lexer) Errors() []*diagnostics.DiagnosticError {
	return l.errors
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipTrivia()

	line, col := l.line, l.column

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	case '=':
		return l.single(token.ASSIGN, line, col)
	case '+':
		return l.single(token.PLUS, line, col)
	case '-':
		return l.single(token.MINUS, line, col)
	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.POWER, Lexeme: "**", Literal: "**", Line: line, Column: col}
		}
		return l.single(token.ASTERISK, line, col)
	case '/':
		return l.single(token.SLASH, line, col)
	case '|':
		return l.single(token.PIPE, line, col)
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LTE, Lexeme: "<=", Literal: "<=", Line: line, Column: col}
		case '>':
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Lexeme: "<>", Literal: "<>", Line: line, Column: col}
		}
		return l.single(token.LT, line, col)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.GTE, Lexeme: ">=", Literal: ">=", Line: line, Column: col}
		}
		return l.single(token.GT, line, col)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "<>", Line: line, Column: col}
		}
		return l.illegal(line, col)
	case ',':
		return l.single(token.COMMA, line, col)
	case ';':
		return l.single(token.SEMICOLON, line, col)
	case ':':
		return l.single(token.COLON, line, col)
	case '.':
		return l.single(token.DOT, line, col)
	case '(':
		return l.single(token.LPAREN, line, col)
	case ')':
		return l.single(token.RPAREN, line, col)
	case '[':
		return l.single(token.LBRACKET, line, col)
	case ']':
		return l.single(token.RBRACKET, line, col)
	case '@':
		return l.single(token.AT, line, col)
	case '"':
		return l.readString('"', line, col)
	case '\'':
		return l.readString('\'', line, col)
	case '&':
		if isIdentStart(l.peekChar()) {
			l.readChar()
			name := l.readIdentifier(false)
			return token.Token{Type: token.USERVAR, Lexeme: "&" + name, Literal: name, Line: line, Column: col}
		}
		return l.illegal(line, col)
	case '%':
		if isIdentStart(l.peekChar()) {
			l.readChar()
			name := l.readIdentifier(false)
			return token.Token{Type: token.SYSVAR, Lexeme: "%" + name, Literal: name, Line: line, Column: col}
		}
		return l.illegal(line, col)
	}

	if isIdentStart(l.ch) {
		ident := l.readIdentifier(true)
		typ := token.LookupIdent(ident)
		return token.Token{Type: typ, Lexeme: ident, Literal: ident, Line: line, Column: col}
	}

	if unicode.IsDigit(l.ch) {
		num := l.readNumber()
		return token.Token{Type: token.NUMBER, Lexeme: num, Literal: num, Line: line, Column: col}
	}

	return l.illegal(line, col)
}

func (l *Lexer) single(typ token.Type, line, col int) token.Token {
	lexeme := string(l.ch)
	l.readChar()
	return token.Token{Type: typ, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
}

func (l *Lexer) illegal(line, col int) token.Token {
	lexeme := string(l.ch)
	tok := token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
	l.errors = append(l.errors, diagnostics.NewError(
		diagnostics.ErrL001, tok, "unrecognized character "+strconvQuote(lexeme)))
	l.readChar()
	return tok
}

// skipTrivia skips whitespace and every comment form: /* */ (doc
// comments /** */ included), nested <* *>, and REM ... ;.
func (l *Lexer) skipTrivia() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for {
				if l.ch == 0 {
					return
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
			continue
		}

		if l.ch == '<' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			depth := 1
			for depth > 0 {
				if l.ch == 0 {
					return
				}
				if l.ch == '<' && l.peekChar() == '*' {
					depth++
					l.readChar()
					l.readChar()
					continue
				}
				if l.ch == '*' && l.peekChar() == '>' {
					depth--
					l.readChar()
					l.readChar()
					continue
				}
				l.readChar()
			}
			continue
		}

		// REM comments run to the next semicolon.
		if l.ch == 'r' || l.ch == 'R' {
			if l.matchesKeywordAhead("rem") {
				for l.ch != ';' && l.ch != 0 {
					l.readChar()
				}
				if l.ch == ';' {
					l.readChar()
				}
				continue
			}
		}

		return
	}
}

// matchesKeywordAhead reports whether the input at the current position
// is the given word followed by a non-identifier character, consuming
// it when it matches.
func (l *Lexer) matchesKeywordAhead(word string) bool {
	end := l.position + len(word)
	if end > len(l.input) {
		return false
	}
	if !strings.EqualFold(l.input[l.position:end], word) {
		return false
	}
	if end < len(l.input) {
		r, _ := utf8.DecodeRuneInString(l.input[end:])
		if isIdentPart(r) {
			return false
		}
	}
	for i := 0; i < len(word); i++ {
		l.readChar()
	}
	return true
}

// readIdentifier consumes an identifier. When allowCompound is set, a
// hyphen continues the identifier if the prefix so far can start a
// hyphenated keyword (End-If, When-Other).
func (l *Lexer) readIdentifier(allowCompound bool) string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	ident := l.input[start:l.position]
	if allowCompound && l.ch == '-' && token.IsCompoundKeywordPrefix(ident) && isIdentStart(l.peekChar()) {
		l.readChar() // '-'
		for isIdentPart(l.ch) {
			l.readChar()
		}
		candidate := l.input[start:l.position]
		if token.LookupIdent(candidate) != token.IDENT {
			return candidate
		}
		// Not a compound keyword after all; this cannot happen for
		// "end"/"when" prefixes in valid source, but keep the longer
		// slice so the parser sees what was written.
		return candidate
	}
	return ident
}

func (l *Lexer) readNumber() string {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString consumes a quoted literal. Doubled quotes escape the
// delimiter. An unterminated literal is recorded and the remainder of
// the line is consumed.
func (l *Lexer) readString(quote rune, line, col int) token.Token {
	l.readChar() // opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 || l.ch == '\n' {
			tok := token.Token{Type: token.STRING, Lexeme: sb.String(), Literal: sb.String(), Line: line, Column: col}
			l.errors = append(l.errors, diagnostics.NewError(
				diagnostics.ErrL002, tok, "unterminated string literal"))
			return tok
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	s := sb.String()
	return token.Token{Type: token.STRING, Lexeme: string(quote) + s + string(quote), Literal: s, Line: line, Column: col}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || ch == '#' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func strconvQuote(s string) string {
	return "'" + s + "'"
}
