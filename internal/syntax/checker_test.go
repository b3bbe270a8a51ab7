package syntax

import (
	"testing"

	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/parser"
)

func classifyAll(t *testing.T, src string) []WordKind {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	script, errs := parser.Parse(toks, src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	var kinds []WordKind
	for _, sentence := range script.Sentences {
		for _, word := range sentence.Words {
			kinds = append(kinds, Classify(word))
		}
	}
	return kinds
}

func TestClassifyRootWord(t *testing.T) {
	kinds := classifyAll(t, "set")
	if len(kinds) != 1 || kinds[0] != ROOT {
		t.Fatalf("got %v", kinds)
	}
}

func TestClassifySubstitution(t *testing.T) {
	kinds := classifyAll(t, "puts $name")
	if kinds[1] != SUBSTITUTION {
		t.Fatalf("got %v", kinds)
	}
}

// A substitution's own selector chain keeps it SUBSTITUTION (spec.md
// §3.3: "SUBSTITUTION ... resolves a single value (after selectors)");
// QUALIFIED is reserved for a root with selectors and no leading `$`.
func TestClassifySubstitutionWithSelector(t *testing.T) {
	kinds := classifyAll(t, "puts $dict(key)")
	if kinds[1] != SUBSTITUTION {
		t.Fatalf("got %v", kinds)
	}
}

func TestClassifyQualified(t *testing.T) {
	kinds := classifyAll(t, "puts literal(key)")
	if kinds[1] != QUALIFIED {
		t.Fatalf("got %v", kinds)
	}
}

func TestClassifyCompound(t *testing.T) {
	kinds := classifyAll(t, "puts pre$name")
	if kinds[1] != COMPOUND {
		t.Fatalf("got %v", kinds)
	}
}

// Two substitution stems concatenated ("$a$b") is more than one stem, so
// it is reclassified as COMPOUND rather than rejected (spec.md §3.3:
// "if more than one stem is present it is reclassified as COMPOUND").
func TestClassifySubstitutionFollowedByAnotherStemIsCompound(t *testing.T) {
	kinds := classifyAll(t, "puts $a$b")
	if kinds[1] != COMPOUND {
		t.Fatalf("got %v", kinds)
	}
}

func TestClassifyIgnoredComment(t *testing.T) {
	kinds := classifyAll(t, "set x 1 #note\nset y 2")
	found := false
	for _, k := range kinds {
		if k == IGNORED {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an IGNORED word, got %v", kinds)
	}
}

func TestCheckerCollectsErrors(t *testing.T) {
	toks := lexer.New("puts $").Tokenize()
	script, perrs := parser.Parse(toks, "puts $")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	c := New("puts $")
	c.Check(script)
	if len(c.Errors()) == 0 {
		t.Fatal("expected a dangling-substitution error")
	}
}
