// Package ast defines Helena's abstract syntax tree: scripts, sentences,
// words and morphemes (spec.md §3.2).
package ast

import "github.com/helena-lang/helena/internal/token"

// Node is the base interface every AST node implements, specialized to
// Helena's tagged-union shape: there is no Expression/Statement split,
// only Script/Sentence/Word/Morpheme.
type Node interface {
	Pos() token.Position
}

// Script is an ordered sequence of sentences. It is itself a first-class
// value when wrapped in a SCRIPT Value.
type Script struct {
	Sentences []*Sentence
	position  token.Position
	hasPos    bool
}

func NewScript(sentences []*Sentence, pos token.Position) *Script {
	return &Script{Sentences: sentences, position: pos, hasPos: true}
}

func (s *Script) Pos() token.Position { return s.position }

// HasPos reports whether the script carries a source position; every
// Script built by NewScript does.
func (s *Script) HasPos() bool { return s.hasPos }

// Sentence is an ordered sequence of words, terminated by NEWLINE or ';'.
type Sentence struct {
	Words    []*Word
	position token.Position
}

func NewSentence(words []*Word, pos token.Position) *Sentence {
	return &Sentence{Words: words, position: pos}
}

func (s *Sentence) Pos() token.Position { return s.position }

// Word is an ordered, non-empty sequence of morphemes. A Word with zero
// morphemes is never produced by the parser (spec.md §3.2 invariant).
type Word struct {
	Morphemes []Morpheme
	position  token.Position
}

func NewWord(morphemes []Morpheme, pos token.Position) *Word {
	return &Word{Morphemes: morphemes, position: pos}
}

func (w *Word) Pos() token.Position { return w.position }
