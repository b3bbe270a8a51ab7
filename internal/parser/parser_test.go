package parser

import (
	"testing"

	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Script {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	script, errs := Parse(toks, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return script
}

func TestParseSimpleSentence(t *testing.T) {
	script := parseSource(t, "set x 1")
	if len(script.Sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(script.Sentences))
	}
	if len(script.Sentences[0].Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(script.Sentences[0].Words))
	}
}

func TestParseMultipleSentences(t *testing.T) {
	script := parseSource(t, "set x 1\nset y 2; set z 3")
	if len(script.Sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(script.Sentences))
	}
}

func TestParseTuple(t *testing.T) {
	script := parseSource(t, "list (a b c)")
	word := script.Sentences[0].Words[1]
	if len(word.Morphemes) != 1 || word.Morphemes[0].Kind() != ast.TUPLE {
		t.Fatalf("expected a single tuple morpheme, got %v", word.Morphemes)
	}
	tuple := word.Morphemes[0].(*ast.TupleMorpheme)
	if len(tuple.Subscript.Sentences) != 1 || len(tuple.Subscript.Sentences[0].Words) != 3 {
		t.Fatalf("unexpected tuple contents: %+v", tuple.Subscript)
	}
}

func TestParseBlockCapturesSourceText(t *testing.T) {
	script := parseSource(t, "proc foo {bar baz}")
	word := script.Sentences[0].Words[2]
	block := word.Morphemes[0].(*ast.BlockMorpheme)
	if block.SourceText != "bar baz" {
		t.Fatalf("got %q", block.SourceText)
	}
}

func TestParseExpression(t *testing.T) {
	script := parseSource(t, "set x [expr 1 + 1]")
	word := script.Sentences[0].Words[2]
	if word.Morphemes[0].Kind() != ast.EXPRESSION {
		t.Fatalf("expected expression morpheme, got %v", word.Morphemes[0].Kind())
	}
}

func TestParseSubstitution(t *testing.T) {
	script := parseSource(t, "puts $name")
	word := script.Sentences[0].Words[1]
	if len(word.Morphemes) != 2 {
		t.Fatalf("expected dollar + literal morphemes, got %d", len(word.Morphemes))
	}
	dollar := word.Morphemes[0].(*ast.SubstituteNextMorpheme)
	if dollar.Levels != 1 || dollar.Expansion {
		t.Fatalf("got %+v", dollar)
	}
	lit := word.Morphemes[1].(*ast.Literal)
	if lit.Value != "name" {
		t.Fatalf("got %q", lit.Value)
	}
}

func TestParseTupleExpansion(t *testing.T) {
	script := parseSource(t, "cmd $*args")
	word := script.Sentences[0].Words[1]
	dollar := word.Morphemes[0].(*ast.SubstituteNextMorpheme)
	if !dollar.Expansion {
		t.Fatalf("expected expansion flag set")
	}
}

func TestParseRegularString(t *testing.T) {
	script := parseSource(t, `set greeting "hello $name"`)
	word := script.Sentences[0].Words[2]
	str := word.Morphemes[0].(*ast.StringMorpheme)
	if len(str.Stems) != 3 {
		t.Fatalf("expected literal + dollar + literal stems, got %d: %+v", len(str.Stems), str.Stems)
	}
}

func TestParseHereString(t *testing.T) {
	script := parseSource(t, "set x \"\"\"raw $text here\"\"\"")
	word := script.Sentences[0].Words[2]
	here := word.Morphemes[0].(*ast.HereStringMorpheme)
	if here.Value != "raw $text here" {
		t.Fatalf("got %q", here.Value)
	}
	if here.DelimiterLength != 3 {
		t.Fatalf("got delimiter length %d", here.DelimiterLength)
	}
}

func TestParseTaggedString(t *testing.T) {
	src := "set x \"\"EOF\nline one\nline two\nEOF\"\""
	script := parseSource(t, src)
	word := script.Sentences[0].Words[2]
	tagged := word.Morphemes[0].(*ast.TaggedStringMorpheme)
	if tagged.Tag != "EOF" {
		t.Fatalf("got tag %q", tagged.Tag)
	}
	if tagged.Value != "line one\nline two\n" {
		t.Fatalf("got %q", tagged.Value)
	}
}

func TestParseLineComment(t *testing.T) {
	script := parseSource(t, "set x 1 #trailing note\nset y 2")
	if len(script.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(script.Sentences))
	}
	word := script.Sentences[0].Words[3]
	if len(word.Morphemes) != 1 || word.Morphemes[0].Kind() != ast.LINE_COMMENT {
		t.Fatalf("expected a line comment morpheme, got %+v", word.Morphemes)
	}
}

func TestParseUnmatchedBracketProducesError(t *testing.T) {
	toks := lexer.New("set x (a b").Tokenize()
	_, errs := Parse(toks, "set x (a b")
	if len(errs) == 0 {
		t.Fatal("expected an unmatched-paren error")
	}
}
