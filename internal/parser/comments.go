package parser

import (
	"strings"

	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/token"
)

// parseComment dispatches a COMMENT token (a run of '#' characters) into
// a line comment or a block comment: a '#'-run immediately followed by
// '{' opens a block comment that closes on a matching '}' plus the same
// run length of '#', mirroring the here-string's matching-delimiter
// design; anything else is a line comment running to end of line.
func (p *Parser) parseComment() ast.Morpheme {
	tok := p.c.advance()
	delimLen := len(tok.Raw)
	start := offsetOf(tok)
	if start < len(p.source) && p.source[start] == '{' {
		return p.parseBlockComment(tok.Pos, delimLen, start+1)
	}
	return p.parseLineComment(tok.Pos, delimLen, start)
}

func (p *Parser) parseLineComment(pos token.Position, delimLen, start int) *ast.LineCommentMorpheme {
	end := start
	for end < len(p.source) && p.source[end] != '\n' {
		end++
	}
	content := p.source[start:end]
	p.c.syncTo(end)
	return ast.NewLineCommentMorpheme(content, delimLen, pos)
}

func (p *Parser) parseBlockComment(pos token.Position, delimLen, contentStart int) *ast.BlockCommentMorpheme {
	target := "}" + strings.Repeat("#", delimLen)
	idx := strings.Index(p.source[contentStart:], target)
	if idx < 0 {
		p.errorf("unterminated block comment", pos)
		content := p.source[contentStart:]
		p.c.syncTo(len(p.source))
		return ast.NewBlockCommentMorpheme(content, delimLen, pos)
	}
	content := p.source[contentStart : contentStart+idx]
	end := contentStart + idx + len(target)
	p.c.syncTo(end)
	return ast.NewBlockCommentMorpheme(content, delimLen, pos)
}
