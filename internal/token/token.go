// Package token defines the lexical token types produced by the Helena
// tokenizer (spec.md §3.1, §4.1).
package token

import "fmt"

// Type identifies the category of a Token.
type Type int

// Token types. WHITESPACE/NEWLINE/CONTINUATION/TEXT/ESCAPE/COMMENT carry
// literal text; the bracket and sigil tokens are single characters, and
// STRING_DELIMITER covers a whole run of quotes.
const (
	ILLEGAL Type = iota
	EOF

	WHITESPACE
	NEWLINE
	CONTINUATION
	TEXT
	ESCAPE
	COMMENT

	OPEN_TUPLE
	CLOSE_TUPLE
	OPEN_BLOCK
	CLOSE_BLOCK
	OPEN_EXPRESSION
	CLOSE_EXPRESSION

	STRING_DELIMITER
	DOLLAR
	SEMICOLON
	ASTERISK
)

var typeNames = map[Type]string{
	ILLEGAL:          "ILLEGAL",
	EOF:              "EOF",
	WHITESPACE:       "WHITESPACE",
	NEWLINE:          "NEWLINE",
	CONTINUATION:     "CONTINUATION",
	TEXT:             "TEXT",
	ESCAPE:           "ESCAPE",
	COMMENT:          "COMMENT",
	OPEN_TUPLE:       "OPEN_TUPLE",
	CLOSE_TUPLE:      "CLOSE_TUPLE",
	OPEN_BLOCK:       "OPEN_BLOCK",
	CLOSE_BLOCK:      "CLOSE_BLOCK",
	OPEN_EXPRESSION:  "OPEN_EXPRESSION",
	CLOSE_EXPRESSION: "CLOSE_EXPRESSION",
	STRING_DELIMITER: "STRING_DELIMITER",
	DOLLAR:           "DOLLAR",
	SEMICOLON:        "SEMICOLON",
	ASTERISK:         "ASTERISK",
}

// String renders the token type name, for diagnostics and snapshot tests.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Position is a source location: a byte offset plus 1-based line and
// column (column counted in runes, not bytes).
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical unit: its Type, source Position, the Raw source
// bytes it covers, and Literal, the post-escape-processed text (equal to
// Raw for token types that need no unescaping).
type Token struct {
	Type    Type
	Pos     Position
	Raw     string
	Literal string
}

func New(typ Type, pos Position, raw, literal string) Token {
	return Token{Type: typ, Pos: pos, Raw: raw, Literal: literal}
}
