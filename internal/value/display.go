package value

import "strings"

// needsQuoting reports whether s must be rendered as a quoted, escaped
// literal to round-trip through the tokenizer (spec.md §3.4, §8
// invariant 5): whitespace, '"', '\\', '$', '#', and the bracket/brace/
// paren characters all force quoting.
func needsQuoting(s string) bool {
	return strings.ContainsAny(s, " \t\r\n\f\"\\$#(){}[]")
}

// QuoteString renders s the way the tokenizer would need to see it
// written back as a single literal word: unquoted when no special
// character appears, otherwise a backslash-escaped double-quoted literal.
func QuoteString(s string) string {
	if !needsQuoting(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\', '"', '$', '[', '(':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Display renders v for diagnostics (error messages, disassembly, REPL
// echo): scalars use their string representation (quoted if a STRING
// needs it), NIL displays as `nil`, and containers render their shape.
func Display(v Value) string {
	switch t := v.(type) {
	case Nil:
		return "nil"
	case Str:
		return QuoteString(t.Value)
	case Script:
		return t.Display()
	case List:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = Display(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case Tuple:
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = Display(e)
		}
		return "(" + strings.Join(parts, " ") + ")"
	case Dict:
		parts := make([]string, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			parts = append(parts, k+" "+Display(val))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case Qualified:
		return "<qualified:" + Display(t.Source) + ">"
	case Custom:
		return "<" + t.Tag + ">"
	default:
		if s, ok := StringOf(v); ok {
			return s
		}
		return "<value>"
	}
}
