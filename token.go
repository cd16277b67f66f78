// token.go — token kinds and source spans for the SpeMath lexer.
package spemath

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Literals & identifiers
	NUMBER
	ID

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	MOD
	POW
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG // "!"

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LSQUARE // "["
	RSQUARE // "]"
	LCURLY  // "{"
	RCURLY  // "}"
	COMMA
	SEMICOLON

	// Layout tokens. These are NOT discarded: the parser uses them to
	// disambiguate implicit multiplication and call syntax.
	WHITESPACE
	NEWLINE
)

// Span is a token's source location: 1-based line and column plus the
// absolute character offset into the source.
type Span struct {
	Line int
	Col  int
	Pos  int
}

// Token is a lexical token. Num holds the parsed value for NUMBER tokens;
// Lexeme holds the raw text (the name, for ID tokens).
type Token struct {
	Type   TokenType
	Lexeme string
	Num    float64
	Span   Span
}

var tokenLexemes = map[TokenType]string{
	PLUS:       "+",
	MINUS:      "-",
	MULT:       "*",
	DIV:        "/",
	MOD:        "%",
	POW:        "^",
	ASSIGN:     "=",
	EQ:         "==",
	NEQ:        "!=",
	LESS:       "<",
	LESS_EQ:    "<=",
	GREATER:    ">",
	GREATER_EQ: ">=",
	BANG:       "!",
	LROUND:     "(",
	RROUND:     ")",
	LSQUARE:    "[",
	RSQUARE:    "]",
	LCURLY:     "{",
	RCURLY:     "}",
	COMMA:      ",",
	SEMICOLON:  ";",
}

// String renders the token as it would appear in source.
func (t Token) String() string {
	switch t.Type {
	case NUMBER:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case ID:
		return t.Lexeme
	case EOF:
		return "end of file"
	case NEWLINE:
		return "\\n"
	case WHITESPACE:
		return " "
	default:
		if s, ok := tokenLexemes[t.Type]; ok {
			return s
		}
		return t.Lexeme
	}
}

// Description names the token for diagnostics: literal tokens are described
// by kind, fixed tokens by their quoted lexeme.
func (t Token) Description() string {
	switch t.Type {
	case NUMBER:
		return "number"
	case ID:
		return "identifier"
	case EOF:
		return "end of input"
	case NEWLINE:
		return "newline"
	case WHITESPACE:
		return "whitespace"
	default:
		return fmt.Sprintf("'%s'", t.String())
	}
}
