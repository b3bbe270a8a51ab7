// Package syntax implements Helena's SyntaxChecker (spec.md §3.3, §4.3):
// a small DFA that classifies each parsed Word by its morpheme shape so
// the compiler can dispatch to the right lowering without re-deriving
// the shape itself. Its design - a Kind enum plus one classify function
// per shape, raising a SourceError on shapes no rule accepts - mirrors a
// single-pass semantic-analysis walk that attaches a verdict to each node.
package syntax

import (
	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/errors"
)

// WordKind is the syntactic class assigned to a Word.
type WordKind int

const (
	// ROOT is a word made of exactly one morpheme that already denotes a
	// complete value on its own: a literal, a tuple, a block, an
	// expression, or any of the three string forms.
	ROOT WordKind = iota
	// COMPOUND is a concatenation of two or more string-producing
	// fragments (literals, strings, substitutions, bracketed
	// expressions) joined into a single string value.
	COMPOUND
	// SUBSTITUTION is a `$`-prefixed reference: one or more `$`, a
	// source morpheme, and an optional selector chain (`$name`,
	// `$name(key)`, `$$name[1]`).
	SUBSTITUTION
	// QUALIFIED is a literal, tuple or block root followed by one or more
	// selector morphemes, with no `$` (`name(key)`, `{name}[1]`).
	QUALIFIED
	// IGNORED is a word made entirely of comment morphemes; it
	// contributes nothing to the sentence.
	IGNORED
	// INVALID is a shape no rule accepts.
	INVALID
)

func (k WordKind) String() string {
	switch k {
	case ROOT:
		return "ROOT"
	case COMPOUND:
		return "COMPOUND"
	case SUBSTITUTION:
		return "SUBSTITUTION"
	case QUALIFIED:
		return "QUALIFIED"
	case IGNORED:
		return "IGNORED"
	default:
		return "INVALID"
	}
}

// Checker runs the classification DFA over a Script, one Word at a time.
type Checker struct {
	source string
	errs   []*errors.SourceError
}

// New creates a Checker for diagnostics rendered against source.
func New(source string) *Checker {
	return &Checker{source: source}
}

// Errors returns every invalid-shape error found by Check.
func (c *Checker) Errors() []*errors.SourceError { return c.errs }

// Check classifies every word in script, recording an error for each
// word classified INVALID, and returns a parallel slice of WordKinds
// (one per Sentence, one per Word). The compiler does not take this
// slice; it calls Classify on each word itself.
func (c *Checker) Check(script *ast.Script) [][]WordKind {
	kinds := make([][]WordKind, len(script.Sentences))
	for i, sentence := range script.Sentences {
		row := make([]WordKind, len(sentence.Words))
		for j, word := range sentence.Words {
			k := Classify(word)
			if k == INVALID {
				c.errs = append(c.errs, errors.New("invalid word syntax", word.Pos(), c.source))
			}
			row[j] = k
		}
		kinds[i] = row
	}
	return kinds
}

// isSource reports whether a morpheme kind can open a substitution
// chain: the thing being substituted (a variable name, or a nested
// tuple/block/expression computing one).
func isSource(k ast.MorphemeKind) bool {
	switch k {
	case ast.LITERAL, ast.TUPLE, ast.BLOCK, ast.EXPRESSION:
		return true
	default:
		return false
	}
}

// isSelector reports whether a morpheme kind continues a selector chain
// after a source morpheme: a parenthesized keyed selector, a bracketed
// indexed selector, or a braced rule selector (spec.md §3.4, §4.4).
func isSelector(k ast.MorphemeKind) bool {
	return k == ast.TUPLE || k == ast.BLOCK || k == ast.EXPRESSION
}

// isQualifiableRoot reports whether a morpheme kind can stand as the
// root of a QUALIFIED word (spec.md §3.3: "a literal/tuple/block
// morpheme followed by one or more selector morphemes").
func isQualifiableRoot(k ast.MorphemeKind) bool {
	return k == ast.LITERAL || k == ast.TUPLE || k == ast.BLOCK
}

// isStringFragment reports whether a morpheme kind can appear as one
// piece of a COMPOUND word.
func isStringFragment(k ast.MorphemeKind) bool {
	switch k {
	case ast.LITERAL, ast.STRING, ast.HERE_STRING, ast.TAGGED_STRING, ast.EXPRESSION:
		return true
	default:
		return false
	}
}

func isComment(k ast.MorphemeKind) bool {
	return k == ast.LINE_COMMENT || k == ast.BLOCK_COMMENT
}

// Classify determines the WordKind of a single Word from the shape of
// its Morphemes, without needing any of the surrounding Sentence.
func Classify(word *ast.Word) WordKind {
	morphemes := word.Morphemes
	if len(morphemes) == 0 {
		return INVALID
	}

	allComments := true
	anyComment := false
	for _, m := range morphemes {
		if isComment(m.Kind()) {
			anyComment = true
		} else {
			allComments = false
		}
	}
	if allComments {
		return IGNORED
	}
	if anyComment {
		return INVALID
	}

	if len(morphemes) == 1 {
		if isSource(morphemes[0].Kind()) || morphemes[0].Kind() == ast.STRING ||
			morphemes[0].Kind() == ast.HERE_STRING || morphemes[0].Kind() == ast.TAGGED_STRING {
			return ROOT
		}
		return INVALID
	}

	if morphemes[0].Kind() == ast.SUBSTITUTE_NEXT {
		return classifySubstitution(morphemes)
	}

	if isQualifiableRoot(morphemes[0].Kind()) && classifyQualifiedTail(morphemes[1:]) {
		return QUALIFIED
	}

	return classifyCompound(morphemes)
}

// classifySubstitution handles a word beginning with one or more
// SUBSTITUTE_NEXT morphemes followed by a source morpheme and an
// optional selector chain (spec.md's SUBSTITUTION shape): "$name",
// "$name(key)", "$name[rule]" and their `$$`-chained/`$*`-expanded forms
// are all SUBSTITUTION - the selector chain is resolved as part of what
// the substitution produces, not a separate QUALIFIED word (spec.md
// §3.3: "SUBSTITUTION ... resolves a single value (after selectors)").
// If a second stem follows the first substitution's selector chain, the
// word is a concatenation of stems, not a single substitution, so it is
// reclassified as COMPOUND (spec.md §3.3: "if more than one stem is
// present it is reclassified as COMPOUND").
func classifySubstitution(morphemes []ast.Morpheme) WordKind {
	i := 0
	for i < len(morphemes) && morphemes[i].Kind() == ast.SUBSTITUTE_NEXT {
		i++
	}
	if i >= len(morphemes) || !isSource(morphemes[i].Kind()) {
		return INVALID
	}
	i++
	for i < len(morphemes) {
		if !isSelector(morphemes[i].Kind()) {
			return classifyCompound(morphemes)
		}
		i++
	}
	return SUBSTITUTION
}

// classifyQualifiedTail reports whether tail is a non-empty run of
// selector morphemes with nothing else mixed in (spec.md §3.3's
// QUALIFIED shape: a root followed by one or more selectors, no `$`
// involved anywhere).
func classifyQualifiedTail(tail []ast.Morpheme) bool {
	if len(tail) == 0 {
		return false
	}
	for _, m := range tail {
		if !isSelector(m.Kind()) {
			return false
		}
	}
	return true
}

// classifyCompound handles a word with no leading substitution: a
// concatenation of literal/string fragments and embedded substitution
// chains into a single string value.
func classifyCompound(morphemes []ast.Morpheme) WordKind {
	i := 0
	for i < len(morphemes) {
		k := morphemes[i].Kind()
		switch {
		case k == ast.SUBSTITUTE_NEXT:
			i++
			for i < len(morphemes) && morphemes[i].Kind() == ast.SUBSTITUTE_NEXT {
				i++
			}
			if i >= len(morphemes) || !isSource(morphemes[i].Kind()) {
				return INVALID
			}
			i++
			for i < len(morphemes) && isSelector(morphemes[i].Kind()) {
				i++
			}
		case isStringFragment(k):
			i++
		default:
			return INVALID
		}
	}
	return COMPOUND
}
