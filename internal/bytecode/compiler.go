package bytecode

import (
	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/errors"
	"github.com/helena-lang/helena/internal/syntax"
	"github.com/helena-lang/helena/internal/token"
	"github.com/helena-lang/helena/internal/value"
)

// Compiler lowers a checked Script into a Program (spec.md §4.4). It
// recurses into every nested script (tuple/block/expression subscripts,
// string stems) it encounters, classifying each word with
// internal/syntax as it goes - so, unlike a two-pass
// check-then-compile pipeline, a Compiler is also the authority for
// diagnosing invalid word shapes found inside nested constructs that a
// top-level syntax.Checker pass never descends into.
type Compiler struct {
	prog   *Program
	source string
	errs   []*errors.SourceError
	curPos token.Position
}

// NewCompiler creates a Compiler for diagnostics rendered against source.
func NewCompiler(source string) *Compiler {
	return &Compiler{prog: NewProgram(), source: source}
}

// Compile lowers script into a complete Program: executing it leaves the
// value of the script's last sentence on top of the operand stack (nil
// for an empty script).
func Compile(script *ast.Script, source string) (*Program, []*errors.SourceError) {
	c := NewCompiler(source)
	c.compileScriptValue(script)
	return c.prog, c.errs
}

func (c *Compiler) errorf(kind string, pos token.Position) {
	c.errs = append(c.errs, errors.New(kind, pos, c.source))
}

func (c *Compiler) emit(op OpCode, operand int) int {
	return c.prog.emit(op, operand, c.curPos)
}

func (c *Compiler) constant(v value.Value) int {
	return c.prog.addConstant(v)
}

// compileScriptValue compiles script so that running it leaves exactly
// one value - its result - on top of the stack.
func (c *Compiler) compileScriptValue(script *ast.Script) {
	if len(script.Sentences) == 0 {
		c.curPos = script.Pos()
		c.emit(PUSH_NIL, 0)
		return
	}
	c.compileStatements(script)
	c.curPos = script.Sentences[len(script.Sentences)-1].Pos()
	c.emit(PUSH_RESULT, 0)
}

// compileStatements runs every sentence of script for its side effects,
// each updating the executor's last Result register in turn.
func (c *Compiler) compileStatements(script *ast.Script) {
	for _, sentence := range script.Sentences {
		c.compileSentence(sentence)
	}
}

func (c *Compiler) compileSentence(sentence *ast.Sentence) {
	c.curPos = sentence.Pos()
	c.emit(OPEN_FRAME, 0)
	for _, word := range sentence.Words {
		kind := syntax.Classify(word)
		if kind == syntax.IGNORED {
			continue
		}
		c.compileWordValue(word, kind)
	}
	c.curPos = sentence.Pos()
	c.emit(CLOSE_FRAME, 0)
	c.emit(EVALUATE_SENTENCE, 0)
}

// wordsOf flattens every sentence of script into one ordered word list,
// used where a bracketed construct (tuple, selector) is a grouping of
// words rather than a sequence of commands.
func wordsOf(script *ast.Script) []*ast.Word {
	var words []*ast.Word
	for _, sentence := range script.Sentences {
		words = append(words, sentence.Words...)
	}
	return words
}

func (c *Compiler) compileWordValue(word *ast.Word, kind syntax.WordKind) {
	c.curPos = word.Pos()
	switch kind {
	case syntax.ROOT:
		c.compileRootMorpheme(word.Morphemes[0])
	case syntax.SUBSTITUTION:
		c.compileSubstitutionChain(word.Morphemes, 0)
	case syntax.QUALIFIED:
		c.compileSelectableRoot(word.Morphemes[0])
		c.emit(SET_SOURCE, 0)
		for _, m := range word.Morphemes[1:] {
			c.compileSelector(m)
		}
	case syntax.COMPOUND:
		c.compileJoinedFragments(word.Morphemes)
	default:
		c.errorf("invalid word syntax", word.Pos())
		c.emit(PUSH_NIL, 0)
	}
}

// compileSubstitutionChain compiles a run of one or more SUBSTITUTE_NEXT
// morphemes, the source morpheme naming what to resolve, and any
// selector morphemes that follow it, and returns the index just past the
// whole chain. A literal/tuple/block source resolves once immediately
// after being pushed; an expression source is its own sentence result
// already, so it skips that first resolve (spec.md §4.4). Either way,
// `levels - 1` extra resolves are emitted after the selector chain, so
// each extra `$` re-resolves the already-selected value.
func (c *Compiler) compileSubstitutionChain(morphemes []ast.Morpheme, start int) int {
	i := start
	levels := 0
	expansion := false
	for i < len(morphemes) && morphemes[i].Kind() == ast.SUBSTITUTE_NEXT {
		sn := morphemes[i].(*ast.SubstituteNextMorpheme)
		levels += sn.Levels
		expansion = expansion || sn.Expansion
		i++
	}
	if i >= len(morphemes) {
		c.errorf("invalid word syntax", c.curPos)
		c.emit(PUSH_NIL, 0)
		return i
	}
	source := morphemes[i]
	i++

	c.compileSelectableRoot(source)
	remaining := levels - 1
	if source.Kind() != ast.EXPRESSION {
		c.emit(RESOLVE_VALUE, 0)
	}

	for i < len(morphemes) && isSelectorMorpheme(morphemes[i].Kind()) {
		c.compileSelector(morphemes[i])
		i++
	}

	for k := 0; k < remaining; k++ {
		c.emit(RESOLVE_VALUE, 0)
	}
	if expansion {
		c.emit(EXPAND_VALUE, 0)
	}
	return i
}

func isSelectorMorpheme(k ast.MorphemeKind) bool {
	return k == ast.TUPLE || k == ast.BLOCK || k == ast.EXPRESSION
}

// compileSelector lowers one selector morpheme: a parenthesized selector
// is a keyed selector over the last closed frame, a bracketed selector
// evaluates its inner script to a single index value, and a braced
// selector builds a rule frame resolved externally by a
// SelectorResolver (spec.md §4.4).
func (c *Compiler) compileSelector(m ast.Morpheme) {
	switch mm := m.(type) {
	case *ast.TupleMorpheme:
		c.compileFrameOfWords(wordsOf(mm.Subscript))
		c.emit(SELECT_KEYS, 0)
	case *ast.ExpressionMorpheme:
		c.compileRootMorpheme(mm)
		c.emit(SELECT_INDEX, 0)
	case *ast.BlockMorpheme:
		c.compileRuleFrame(mm.Subscript)
		c.emit(SELECT_RULES, 0)
	default:
		c.errorf("invalid word syntax", m.Pos())
		c.emit(PUSH_NIL, 0)
	}
}

// compileRuleFrame lowers a braced selector's inner script into the
// frame SELECT_RULES expects: one tuple per inner sentence (spec.md
// §4.4's "selector block lowering").
func (c *Compiler) compileRuleFrame(script *ast.Script) {
	c.emit(OPEN_FRAME, 0)
	for _, sentence := range script.Sentences {
		c.curPos = sentence.Pos()
		c.emit(OPEN_FRAME, 0)
		for _, w := range sentence.Words {
			kind := syntax.Classify(w)
			if kind == syntax.IGNORED {
				continue
			}
			c.compileWordValue(w, kind)
		}
		c.emit(CLOSE_FRAME, 0)
		c.emit(MAKE_TUPLE, 0)
	}
	c.emit(CLOSE_FRAME, 0)
}

func (c *Compiler) compileFrameOfWords(words []*ast.Word) {
	c.emit(OPEN_FRAME, 0)
	for _, w := range words {
		kind := syntax.Classify(w)
		if kind == syntax.IGNORED {
			continue
		}
		c.compileWordValue(w, kind)
	}
	c.emit(CLOSE_FRAME, 0)
}

// compileJoinedFragments compiles a run of string-producing morphemes
// (literal text, string/here-string/tagged-string literals, bracketed
// expressions, substitution chains) and joins their stringified values
// into one string - used for COMPOUND words and for a StringMorpheme's
// own stems.
func (c *Compiler) compileJoinedFragments(fragments []ast.Morpheme) {
	c.emit(OPEN_FRAME, 0)
	i := 0
	for i < len(fragments) {
		if fragments[i].Kind() == ast.SUBSTITUTE_NEXT {
			i = c.compileSubstitutionChain(fragments, i)
			continue
		}
		c.compileRootMorpheme(fragments[i])
		i++
	}
	c.emit(CLOSE_FRAME, 0)
	c.emit(JOIN_STRINGS, 0)
}

// compileSelectableRoot compiles the morpheme a substitution chain or a
// qualified word resolves its source from (spec.md §4.4: "Push the
// selectable"). It differs from compileRootMorpheme in exactly one
// case: a block used as a selectable names the variable to resolve by
// its verbatim source text, not the ScriptValue a block compiles to
// when it stands alone as a ROOT word (spec.md §3.2's "block-as-string
// varnames"), so `${varname}`/`{varname}(key)` read the variable named
// "varname", not the script `{varname}` itself.
func (c *Compiler) compileSelectableRoot(m ast.Morpheme) {
	if blk, ok := m.(*ast.BlockMorpheme); ok {
		c.curPos = blk.Pos()
		idx := c.constant(value.NewStr(blk.SourceText))
		c.emit(PUSH_CONSTANT, idx)
		return
	}
	c.compileRootMorpheme(m)
}

// compileRootMorpheme compiles a single morpheme that stands for a
// complete value on its own (spec.md's ROOT word shape, and the source
// position of a substitution chain or selector).
func (c *Compiler) compileRootMorpheme(m ast.Morpheme) {
	c.curPos = m.Pos()
	switch mm := m.(type) {
	case *ast.Literal:
		idx := c.constant(value.NewStr(mm.Value))
		c.emit(PUSH_CONSTANT, idx)
	case *ast.StringMorpheme:
		c.compileJoinedFragments(mm.Stems)
	case *ast.HereStringMorpheme:
		idx := c.constant(value.NewStr(mm.Value))
		c.emit(PUSH_CONSTANT, idx)
	case *ast.TaggedStringMorpheme:
		idx := c.constant(value.NewStr(mm.Value))
		c.emit(PUSH_CONSTANT, idx)
	case *ast.TupleMorpheme:
		c.compileFrameOfWords(wordsOf(mm.Subscript))
		c.emit(MAKE_TUPLE, 0)
	case *ast.BlockMorpheme:
		idx := c.constant(value.NewScript(mm.Subscript, mm.SourceText))
		c.emit(PUSH_CONSTANT, idx)
	case *ast.ExpressionMorpheme:
		if len(mm.Subscript.Sentences) == 0 {
			c.emit(PUSH_NIL, 0)
			return
		}
		c.compileStatements(mm.Subscript)
		c.emit(PUSH_RESULT, 0)
	default:
		c.errorf("invalid word syntax", m.Pos())
		c.emit(PUSH_NIL, 0)
	}
}
