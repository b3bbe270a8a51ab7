package lexer

import (
	"testing"

	"github.com/helena-lang/helena/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeSimpleSentence(t *testing.T) {
	toks := New(`set x 1`).Tokenize()
	want := []token.Type{token.TEXT, token.WHITESPACE, token.TEXT, token.WHITESPACE, token.TEXT}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeBrackets(t *testing.T) {
	toks := New(`[cmd (a b) {c d}]`).Tokenize()
	foundOpenExpr, foundOpenTuple, foundOpenBlock := false, false, false
	for _, tok := range toks {
		switch tok.Type {
		case token.OPEN_EXPRESSION:
			foundOpenExpr = true
		case token.OPEN_TUPLE:
			foundOpenTuple = true
		case token.OPEN_BLOCK:
			foundOpenBlock = true
		}
	}
	if !foundOpenExpr || !foundOpenTuple || !foundOpenBlock {
		t.Fatalf("missing bracket tokens: %v", typesOf(toks))
	}
}

func TestTokenizeEscapes(t *testing.T) {
	toks := New(`a\nb`).Tokenize()
	var escapes []token.Token
	for _, tok := range toks {
		if tok.Type == token.ESCAPE {
			escapes = append(escapes, tok)
		}
	}
	if len(escapes) != 1 || escapes[0].Literal != "\n" {
		t.Fatalf("expected one newline escape, got %v", escapes)
	}
}

func TestTokenizeLineContinuation(t *testing.T) {
	toks := New("a\\\n   b").Tokenize()
	var cont *token.Token
	for i := range toks {
		if toks[i].Type == token.CONTINUATION {
			cont = &toks[i]
		}
	}
	if cont == nil || cont.Literal != " " {
		t.Fatalf("expected continuation token collapsing to a single space, got %v", toks)
	}
}

func TestTokenizeHexEscape(t *testing.T) {
	toks := New(`\x41`).Tokenize()
	if len(toks) != 1 || toks[0].Type != token.ESCAPE || toks[0].Literal != "A" {
		t.Fatalf("got %v", toks)
	}
}

func TestTokenizeStringDelimiterRuns(t *testing.T) {
	toks := New(`"""here""" ""tag""`).Tokenize()
	var runs []string
	for _, tok := range toks {
		if tok.Type == token.STRING_DELIMITER {
			runs = append(runs, tok.Raw)
		}
	}
	if len(runs) != 4 || runs[0] != `"""` || runs[1] != `"""` || runs[2] != `""` || runs[3] != `""` {
		t.Fatalf("got %v", runs)
	}
}

func TestTokenizeComment(t *testing.T) {
	toks := New("# a comment\nnext").Tokenize()
	if toks[0].Type != token.COMMENT || toks[0].Raw != "#" {
		t.Fatalf("got %v", toks[0])
	}
}
