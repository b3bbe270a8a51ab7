package parser

import (
	"strings"

	"github.com/helena-lang/helena/internal/ast"
	"github.com/helena-lang/helena/internal/token"
)

// parseStringLike dispatches on the length of the STRING_DELIMITER run
// just scanned: a lone quote opens an ordinary string, two quotes open a
// tagged string (or an empty ordinary string, see parseTaggedString), and
// three or more open a here-string delimited by a matching quote run
// (spec.md §4.1's here-string/tagged-string forms).
func (p *Parser) parseStringLike() ast.Morpheme {
	open := p.c.advance()
	delimLen := len([]rune(open.Raw))
	switch {
	case delimLen >= 3:
		return p.parseHereString(open, delimLen)
	case delimLen == 2:
		return p.parseTaggedString(open)
	default:
		return p.parseRegularString(open)
	}
}

// parseRegularString consumes morpheme-level stems (literal runs,
// substitutions, selector tuples, embedded expressions) from the live
// token stream until the matching single closing quote.
func (p *Parser) parseRegularString(open token.Token) *ast.StringMorpheme {
	var stems []ast.Morpheme
	for {
		tok := p.c.peek()
		switch tok.Type {
		case token.EOF:
			p.errorf("unterminated string", open.Pos)
			return ast.NewStringMorpheme(stems, open.Pos)
		case token.STRING_DELIMITER:
			if len([]rune(tok.Raw)) == 1 {
				p.c.advance()
				return ast.NewStringMorpheme(stems, open.Pos)
			}
			p.c.advance()
			stems = append(stems, ast.NewLiteral(tok.Raw, tok.Pos))
		case token.TEXT, token.ESCAPE, token.CONTINUATION,
			token.WHITESPACE, token.NEWLINE, token.SEMICOLON, token.ASTERISK:
			stems = append(stems, p.parseStringLiteralRun())
		case token.DOLLAR:
			stems = append(stems, p.parseSubstituteNext())
			// The variable name after '$' ends at the first whitespace,
			// as it does outside strings.
			if next := p.c.peek().Type; next == token.TEXT || next == token.ESCAPE {
				stems = append(stems, p.parseLiteralRun())
			}
		case token.OPEN_EXPRESSION:
			stems = append(stems, p.parseExpression())
		case token.OPEN_TUPLE:
			stems = append(stems, p.parseTuple())
		default:
			p.c.advance()
			stems = append(stems, ast.NewLiteral(tok.Raw, tok.Pos))
		}
	}
}

// parseStringLiteralRun merges a run of tokens that are literal text
// inside a string context - including whitespace, newlines and
// semicolons, which are ordinary characters here rather than separators.
func (p *Parser) parseStringLiteralRun() *ast.Literal {
	startPos := p.c.peek().Pos
	var sb strings.Builder
	for {
		tok := p.c.peek()
		switch tok.Type {
		case token.TEXT, token.ESCAPE, token.CONTINUATION,
			token.WHITESPACE, token.NEWLINE, token.SEMICOLON, token.ASTERISK:
			sb.WriteString(tok.Literal)
			p.c.advance()
		default:
			return ast.NewLiteral(sb.String(), startPos)
		}
	}
}

// parseHereString scans raw source for a quote run of exactly delimLen
// characters, taking everything in between verbatim with no escape
// processing (spec.md's here-string form).
func (p *Parser) parseHereString(open token.Token, delimLen int) *ast.HereStringMorpheme {
	start := offsetOf(open)
	closeAt, ok := findQuoteRun(p.source, start, delimLen)
	if !ok {
		p.errorf("unterminated here-string", open.Pos)
		content := p.source[start:]
		p.c.syncTo(len(p.source))
		return ast.NewHereStringMorpheme(content, delimLen, open.Pos)
	}
	content := p.source[start:closeAt]
	p.c.syncTo(closeAt + delimLen)
	return ast.NewHereStringMorpheme(content, delimLen, open.Pos)
}

// findQuoteRun finds the next run of exactly n double quotes at or after
// from, i.e. not itself bordered by another quote (so a run of n+1 or
// more quotes is skipped rather than mistaken for a premature close).
func findQuoteRun(source string, from, n int) (int, bool) {
	for i := from; i+n <= len(source); i++ {
		if source[i] != '"' {
			continue
		}
		if i > from && source[i-1] == '"' {
			continue
		}
		j := i
		for j < len(source) && source[j] == '"' {
			j++
		}
		if j-i == n {
			return i, true
		}
		i = j - 1
	}
	return 0, false
}

// parseTaggedString takes the TEXT token right after the opening `""` as
// the tag when a NEWLINE immediately follows it, then scans for a line
// consisting of exactly that tag immediately followed by the closing
// `""`. If the `""` is not followed by a TEXT token and a NEWLINE, it is
// treated as an empty ordinary string and the tokens after it are left
// for normal parsing; a present tag whose body's indentation can't be
// dedented consistently is a hard error rather than a silent guess.
func (p *Parser) parseTaggedString(open token.Token) ast.Morpheme {
	tagTok := p.c.peek()
	if tagTok.Type != token.TEXT || p.c.peekN(1).Type != token.NEWLINE {
		return ast.NewStringMorpheme(nil, open.Pos)
	}
	tag := tagTok.Raw

	contentStart := offsetOf(tagTok) + 1
	lineStart, afterClose, ok := findTagClose(p.source, contentStart, tag)
	if !ok {
		p.errorf("missing tag", open.Pos)
		p.c.syncTo(len(p.source))
		return ast.NewTaggedStringMorpheme(p.source[contentStart:], tag, open.Pos)
	}

	content := p.source[contentStart:lineStart]
	dedented, errKind := dedentTagged(content)
	if errKind != "" {
		p.errorf(errKind, open.Pos)
	}
	p.c.syncTo(afterClose)
	return ast.NewTaggedStringMorpheme(dedented, tag, open.Pos)
}

// findTagClose locates the closing `tag""` line: tag immediately
// preceded by start-of-content or a newline, with no characters of its
// own before the closing quotes.
func findTagClose(source string, from int, tag string) (lineStart, afterClose int, ok bool) {
	target := tag + `""`
	search := from
	for {
		idx := strings.Index(source[search:], target)
		if idx < 0 {
			return 0, 0, false
		}
		abs := search + idx
		if abs == from || source[abs-1] == '\n' {
			return abs, abs + len(target), true
		}
		search = abs + 1
	}
}

// dedentTagged strips the common leading-whitespace prefix of a tagged
// string's non-empty lines. A non-empty line that does not start with
// that prefix is an indentation mismatch.
func dedentTagged(content string) (string, string) {
	if content == "" {
		return content, ""
	}
	trailingNL := strings.HasSuffix(content, "\n")
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	prefix := ""
	havePrefix := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !havePrefix {
			prefix = indent
			havePrefix = true
			continue
		}
		if len(indent) < len(prefix) {
			prefix = indent
		}
	}
	if prefix == "" {
		if trailingNL {
			return strings.Join(lines, "\n") + "\n", ""
		}
		return strings.Join(lines, "\n"), ""
	}

	out := make([]string, len(lines))
	for idx, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[idx] = ""
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			return content, "tagged string indentation mismatch"
		}
		out[idx] = line[len(prefix):]
	}
	result := strings.Join(out, "\n")
	if trailingNL {
		result += "\n"
	}
	return result, ""
}
