package token

import "strings"

// Type identifies the lexical class of a token.
type Type string

// Token is a single lexical unit of PeopleCode source.
// Lexeme is the raw source text; Literal is the cooked value
// (string literals have their quotes stripped, keywords are
// canonicalized). Line and Column are 1-based.
type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	IDENT   Type = "IDENT"   // RECORD_NAME, GetRow, ...
	USERVAR Type = "USERVAR" // &local
	SYSVAR  Type = "SYSVAR"  // %This, %Super, %Date, ...
	NUMBER  Type = "NUMBER"  // 12, 3.14
	STRING  Type = "STRING"  // "abc", 'abc'

	ASSIGN   Type = "="
	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	POWER    Type = "**"
	PIPE     Type = "|"
	LT       Type = "<"
	GT       Type = ">"
	LTE      Type = "<="
	GTE      Type = ">="
	NOT_EQ   Type = "<>"
	AT       Type = "@"

	COMMA     Type = ","
	SEMICOLON Type = ";"
	COLON     Type = ":"
	DOT       Type = "."
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACKET  Type = "["
	RBRACKET  Type = "]"

	// Keywords. PeopleCode keywords are case-insensitive; the
	// lexer canonicalizes through LookupIdent.
	AND          Type = "AND"
	OR           Type = "OR"
	NOT          Type = "NOT"
	IF           Type = "IF"
	THEN         Type = "THEN"
	ELSE         Type = "ELSE"
	END_IF       Type = "END-IF"
	FOR          Type = "FOR"
	TO           Type = "TO"
	STEP         Type = "STEP"
	END_FOR      Type = "END-FOR"
	WHILE        Type = "WHILE"
	END_WHILE    Type = "END-WHILE"
	REPEAT       Type = "REPEAT"
	UNTIL        Type = "UNTIL"
	EVALUATE     Type = "EVALUATE"
	WHEN         Type = "WHEN"
	WHEN_OTHER   Type = "WHEN-OTHER"
	END_EVALUATE Type = "END-EVALUATE"
	BREAK        Type = "BREAK"
	CONTINUE     Type = "CONTINUE"
	EXIT         Type = "EXIT"
	RETURN       Type = "RETURN"
	TRY          Type = "TRY"
	CATCH        Type = "CATCH"
	END_TRY      Type = "END-TRY"
	THROW        Type = "THROW"

	FUNCTION     Type = "FUNCTION"
	END_FUNCTION Type = "END-FUNCTION"
	RETURNS      Type = "RETURNS"
	DECLARE      Type = "DECLARE"
	PEOPLECODE   Type = "PEOPLECODE"

	LOCAL     Type = "LOCAL"
	GLOBAL    Type = "GLOBAL"
	COMPONENT Type = "COMPONENT"
	INSTANCE  Type = "INSTANCE"
	CONSTANT  Type = "CONSTANT"

	CLASS         Type = "CLASS"
	END_CLASS     Type = "END-CLASS"
	INTERFACE     Type = "INTERFACE"
	END_INTERFACE Type = "END-INTERFACE"
	EXTENDS       Type = "EXTENDS"
	IMPLEMENTS    Type = "IMPLEMENTS"
	METHOD        Type = "METHOD"
	END_METHOD    Type = "END-METHOD"
	PROPERTY      Type = "PROPERTY"
	GET           Type = "GET"
	SET           Type = "SET"
	END_GET       Type = "END-GET"
	END_SET       Type = "END-SET"
	READONLY      Type = "READONLY"
	PRIVATE       Type = "PRIVATE"
	PROTECTED     Type = "PROTECTED"
	ABSTRACT      Type = "ABSTRACT"
	OUT           Type = "OUT"
	IMPORT        Type = "IMPORT"
	CREATE        Type = "CREATE"
	AS            Type = "AS"
	OF            Type = "OF"
	ARRAY         Type = "ARRAY"
	NULL          Type = "NULL"
	TRUE          Type = "TRUE"
	FALSE         Type = "FALSE"
)

var keywords = map[string]Type{
	"and":           AND,
	"or":            OR,
	"not":           NOT,
	"if":            IF,
	"then":          THEN,
	"else":          ELSE,
	"end-if":        END_IF,
	"for":           FOR,
	"to":            TO,
	"step":          STEP,
	"end-for":       END_FOR,
	"while":         WHILE,
	"end-while":     END_WHILE,
	"repeat":        REPEAT,
	"until":         UNTIL,
	"evaluate":      EVALUATE,
	"when":          WHEN,
	"when-other":    WHEN_OTHER,
	"end-evaluate":  END_EVALUATE,
	"break":         BREAK,
	"continue":      CONTINUE,
	"exit":          EXIT,
	"return":        RETURN,
	"try":           TRY,
	"catch":         CATCH,
	"end-try":       END_TRY,
	"throw":         THROW,
	"function":      FUNCTION,
	"end-function":  END_FUNCTION,
	"returns":       RETURNS,
	"declare":       DECLARE,
	"peoplecode":    PEOPLECODE,
	"local":         LOCAL,
	"global":        GLOBAL,
	"component":     COMPONENT,
	"instance":      INSTANCE,
	"constant":      CONSTANT,
	"class":         CLASS,
	"end-class":     END_CLASS,
	"interface":     INTERFACE,
	"end-interface": END_INTERFACE,
	"extends":       EXTENDS,
	"implements":    IMPLEMENTS,
	"method":        METHOD,
	"end-method":    END_METHOD,
	"property":      PROPERTY,
	"get":           GET,
	"set":           SET,
	"end-get":       END_GET,
	"end-set":       END_SET,
	"readonly":      READONLY,
	"private":       PRIVATE,
	"protected":     PROTECTED,
	"abstract":      ABSTRACT,
	"out":           OUT,
	"import":        IMPORT,
	"create":        CREATE,
	"as":            AS,
	"of":            OF,
	"array":         ARRAY,
	"null":          NULL,
	"true":          TRUE,
	"false":         FALSE,
}

// LookupIdent maps an identifier to its keyword type, or IDENT.
// The match is case-insensitive.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsCompoundKeywordPrefix reports whether ident can be the first half of
// a hyphenated keyword (End-If, When-Other, ...). Used by the lexer to
// decide whether a '-' continues the identifier.
func IsCompoundKeywordPrefix(ident string) bool {
	switch strings.ToLower(ident) {
	case "end", "when":
		return true
	}
	return false
}
