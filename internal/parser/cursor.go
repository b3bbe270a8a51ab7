package parser

import "github.com/helena-lang/helena/internal/token"

// cursor walks the flat token stream produced by the tokenizer, with raw
// source access for the variable-length delimited constructs (strings,
// here-strings, tagged strings, comments) that need to scan past the
// token boundaries the tokenizer drew (spec.md §4.2).
type cursor struct {
	tokens []token.Token
	source string
	i      int
}

func newCursor(tokens []token.Token, source string) *cursor {
	return &cursor{tokens: tokens, source: source}
}

func (c *cursor) atEnd() bool { return c.i >= len(c.tokens) }

func (c *cursor) peek() token.Token {
	if c.atEnd() {
		return token.Token{Type: token.EOF, Pos: c.endPos()}
	}
	return c.tokens[c.i]
}

func (c *cursor) peekN(n int) token.Token {
	idx := c.i + n
	if idx >= len(c.tokens) {
		return token.Token{Type: token.EOF, Pos: c.endPos()}
	}
	return c.tokens[idx]
}

func (c *cursor) endPos() token.Position {
	if len(c.tokens) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	last := c.tokens[len(c.tokens)-1]
	return token.Position{Offset: last.Pos.Offset + len(last.Raw), Line: last.Pos.Line, Column: last.Pos.Column + len([]rune(last.Raw))}
}

func (c *cursor) advance() token.Token {
	tok := c.peek()
	if !c.atEnd() {
		c.i++
	}
	return tok
}

// offsetOf returns the byte offset just past tok in the source.
func offsetOf(tok token.Token) int { return tok.Pos.Offset + len(tok.Raw) }

// syncTo moves the token cursor forward so the next token starts at or
// after byteOffset - used after a raw-source scan (here-string, tagged
// string, block comment) consumes text the tokenizer had already broken
// into unrelated tokens.
func (c *cursor) syncTo(byteOffset int) {
	for !c.atEnd() && c.tokens[c.i].Pos.Offset < byteOffset {
		c.i++
	}
}
