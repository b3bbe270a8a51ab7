package value

import "github.com/helena-lang/helena/internal/ast"

// Script wraps a parsed ast.Script plus (when known) its verbatim source
// text. It displays as `{source}` when Source is known, otherwise as an
// undisplayable placeholder (spec.md §3.4).
type Script struct {
	Body      *ast.Script
	Source    string
	HasSource bool
}

func (Script) ValueType() Type { return SCRIPT }

func NewScript(body *ast.Script, source string) Script {
	return Script{Body: body, Source: source, HasSource: true}
}

// NewScriptWithoutSource builds a SCRIPT value with no recoverable source
// text, e.g. one synthesized by a command rather than parsed.
func NewScriptWithoutSource(body *ast.Script) Script {
	return Script{Body: body}
}

// Display renders the script for diagnostics.
func (s Script) Display() string {
	if s.HasSource {
		return "{" + s.Source + "}"
	}
	return "{#script}"
}

// Custom is an opaque, host-defined value variant (spec.md §3.4 CUSTOM(tag)).
// The core never interprets Data; Tag identifies its kind for display and
// for external collaborators (commands, resolvers) to type-assert on.
type Custom struct {
	Tag  string
	Data any
}

func (Custom) ValueType() Type { return CUSTOM }

func NewCustom(tag string, data any) Custom { return Custom{Tag: tag, Data: data} }
