// Package parser implements Helena's recursive-descent Parser (spec.md
// §4.2): it folds a token stream into a Script AST of sentences, words and
// morphemes. Its shape - a context stack, one parse function per
// construct, structured errors with position/code - mirrors a classic
// recursive-descent parser package.
package parser

import (
	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/errors"
	"github.com/helena-lang/helena/internal/token"
)

// Parser builds an *ast.Script from a token stream and the raw source it
// came from (raw source access is required for here-strings, tagged
// strings and block comments, whose delimiters cannot be recognized by
// the tokenizer alone - see cursor.go).
type Parser struct {
	c      *cursor
	stack  []context
	errs   []*errors.SourceError
	source string
}

// New creates a Parser over tokens, scanned from source.
func New(tokens []token.Token, source string) *Parser {
	return &Parser{c: newCursor(tokens, source), source: source}
}

// Errors returns every error accumulated during parsing.
func (p *Parser) Errors() []*errors.SourceError { return p.errs }

func (p *Parser) pushContext(k ContextKind) { p.stack = append(p.stack, context{Kind: k}) }
func (p *Parser) popContext()               { p.stack = p.stack[:len(p.stack)-1] }

func (p *Parser) errorf(kind string, pos token.Position) {
	p.errs = append(p.errs, errors.New(kind, pos, p.source))
}

// Parse parses the entire token stream as a root-level Script.
func Parse(tokens []token.Token, source string) (*ast.Script, []*errors.SourceError) {
	p := New(tokens, source)
	script := p.parseScript(ROOT)
	return script, p.errs
}

// parseScript parses sentences until a boundary for ctx is reached: EOF
// for ROOT, or the matching CLOSE token for TUPLE/BLOCK/EXPRESSION.
func (p *Parser) parseScript(ctx ContextKind) *ast.Script {
	startPos := p.c.peek().Pos
	var sentences []*ast.Sentence

	for {
		p.skipSeparators()
		if p.atScriptEnd(ctx) {
			break
		}
		sentence := p.parseSentence(ctx)
		if sentence != nil && len(sentence.Words) > 0 {
			sentences = append(sentences, sentence)
		}
		if p.atScriptEnd(ctx) {
			break
		}
	}

	return ast.NewScript(sentences, startPos)
}

// skipSeparators consumes WHITESPACE/NEWLINE/SEMICOLON tokens that do not
// begin a sentence, i.e. blank lines and stray separators between
// sentences produce no empty Sentence node.
func (p *Parser) skipSeparators() {
	for {
		switch p.c.peek().Type {
		case token.WHITESPACE, token.NEWLINE, token.SEMICOLON:
			p.c.advance()
		default:
			return
		}
	}
}

func (p *Parser) atScriptEnd(ctx ContextKind) bool {
	tok := p.c.peek()
	if tok.Type == token.EOF {
		return true
	}
	switch ctx {
	case TUPLE:
		return tok.Type == token.CLOSE_TUPLE
	case BLOCK:
		return tok.Type == token.CLOSE_BLOCK
	case EXPRESSION:
		return tok.Type == token.CLOSE_EXPRESSION
	default:
		return false
	}
}

// parseSentence parses words until a sentence boundary: NEWLINE/SEMICOLON
// (consumed) or the end of the enclosing script (left for the caller).
func (p *Parser) parseSentence(ctx ContextKind) *ast.Sentence {
	startPos := p.c.peek().Pos
	var words []*ast.Word

	for {
		switch p.c.peek().Type {
		case token.WHITESPACE:
			p.c.advance()
			continue
		case token.NEWLINE, token.SEMICOLON:
			p.c.advance()
			return ast.NewSentence(words, startPos)
		case token.EOF:
			return ast.NewSentence(words, startPos)
		case token.CLOSE_TUPLE:
			if ctx == TUPLE {
				return ast.NewSentence(words, startPos)
			}
			p.errorf("unmatched right paren", p.c.peek().Pos)
			p.c.advance()
			continue
		case token.CLOSE_BLOCK:
			if ctx == BLOCK {
				return ast.NewSentence(words, startPos)
			}
			p.errorf("unmatched right brace", p.c.peek().Pos)
			p.c.advance()
			continue
		case token.CLOSE_EXPRESSION:
			if ctx == EXPRESSION {
				return ast.NewSentence(words, startPos)
			}
			p.errorf("unmatched right bracket", p.c.peek().Pos)
			p.c.advance()
			continue
		}

		word := p.parseWord()
		if word != nil {
			words = append(words, word)
		} else {
			// Parser made no progress; force it to avoid an infinite loop
			// on a malformed token.
			p.c.advance()
		}
	}
}

// parseWord parses a non-empty run of morphemes glued with no
// whitespace/boundary in between.
func (p *Parser) parseWord() *ast.Word {
	startPos := p.c.peek().Pos
	var morphemes []ast.Morpheme

	for p.wordContinues() {
		m := p.parseMorpheme()
		if m == nil {
			break
		}
		morphemes = append(morphemes, m)
	}

	if len(morphemes) == 0 {
		return nil
	}
	return ast.NewWord(morphemes, startPos)
}

func (p *Parser) wordContinues() bool {
	switch p.c.peek().Type {
	case token.WHITESPACE, token.NEWLINE, token.SEMICOLON, token.EOF,
		token.CLOSE_TUPLE, token.CLOSE_BLOCK, token.CLOSE_EXPRESSION:
		return false
	default:
		return true
	}
}

// parseMorpheme dispatches on the current token to parse exactly one
// morpheme, consuming whatever tokens it spans.
func (p *Parser) parseMorpheme() ast.Morpheme {
	tok := p.c.peek()
	switch tok.Type {
	case token.TEXT, token.ESCAPE, token.CONTINUATION:
		return p.parseLiteralRun()
	case token.OPEN_TUPLE:
		return p.parseTuple()
	case token.OPEN_BLOCK:
		return p.parseBlock()
	case token.OPEN_EXPRESSION:
		return p.parseExpression()
	case token.STRING_DELIMITER:
		return p.parseStringLike()
	case token.DOLLAR:
		return p.parseSubstituteNext()
	case token.COMMENT:
		return p.parseComment()
	default:
		// Stray ASTERISK, SEMICOLON, etc. encountered out of position:
		// treat as a one-character literal so the parser always makes
		// progress and can still report a higher-level shape error from
		// the syntax checker.
		p.c.advance()
		return ast.NewLiteral(tok.Raw, tok.Pos)
	}
}

// parseLiteralRun merges consecutive TEXT/ESCAPE/CONTINUATION tokens into
// a single LITERAL morpheme (spec.md §4.1: the tokenizer coalesces TEXT,
// but escape/continuation tokens interrupt that run at the token level
// and are re-joined here since together they form one literal stem).
func (p *Parser) parseLiteralRun() *ast.Literal {
	startPos := p.c.peek().Pos
	var sb []byte
	for {
		tok := p.c.peek()
		if tok.Type != token.TEXT && tok.Type != token.ESCAPE && tok.Type != token.CONTINUATION {
			break
		}
		sb = append(sb, tok.Literal...)
		p.c.advance()
	}
	return ast.NewLiteral(string(sb), startPos)
}

func (p *Parser) parseTuple() *ast.TupleMorpheme {
	startPos := p.c.advance().Pos // consume '('
	p.pushContext(TUPLE)
	sub := p.parseScript(TUPLE)
	p.popContext()
	if p.c.peek().Type == token.CLOSE_TUPLE {
		p.c.advance()
	} else {
		p.errorf("unmatched left paren", startPos)
	}
	return ast.NewTupleMorpheme(sub, startPos)
}

func (p *Parser) parseExpression() *ast.ExpressionMorpheme {
	startPos := p.c.advance().Pos // consume '['
	p.pushContext(EXPRESSION)
	sub := p.parseScript(EXPRESSION)
	p.popContext()
	if p.c.peek().Type == token.CLOSE_EXPRESSION {
		p.c.advance()
	} else {
		p.errorf("unmatched left bracket", startPos)
	}
	return ast.NewExpressionMorpheme(sub, startPos)
}

func (p *Parser) parseBlock() *ast.BlockMorpheme {
	openTok := p.c.advance() // consume '{'
	bodyStart := offsetOf(openTok)
	p.pushContext(BLOCK)
	sub := p.parseScript(BLOCK)
	p.popContext()

	var sourceText string
	if p.c.peek().Type == token.CLOSE_BLOCK {
		closeTok := p.c.peek()
		sourceText = p.source[bodyStart:closeTok.Pos.Offset]
		p.c.advance()
	} else {
		p.errorf("unmatched left brace", openTok.Pos)
		sourceText = p.source[bodyStart:]
	}
	return ast.NewBlockMorpheme(sub, sourceText, openTok.Pos)
}

// parseSubstituteNext scans a run of DOLLAR tokens, an optional immediate
// ASTERISK, and returns the SUBSTITUTE_NEXT morpheme (spec.md §4.2); the
// selectable and its selectors are separate morphemes parsed by the
// enclosing parseWord loop.
func (p *Parser) parseSubstituteNext() *ast.SubstituteNextMorpheme {
	startPos := p.c.peek().Pos
	levels := 0
	var raw []byte
	for p.c.peek().Type == token.DOLLAR {
		raw = append(raw, '$')
		levels++
		p.c.advance()
	}
	expansion := false
	if p.c.peek().Type == token.ASTERISK {
		expansion = true
		raw = append(raw, '*')
		p.c.advance()
	}
	return ast.NewSubstituteNextMorpheme(expansion, levels, string(raw), startPos)
}
