package errors

import (
	"strings"
	"testing"

	"github.com/helena-lang/helena/internal/token"
)

func TestSourceErrorFormat(t *testing.T) {
	src := "set x [\nincomplete"
	err := New("unmatched left bracket", token.Position{Line: 1, Column: 7}, src)

	if err.Error() != err.Format(false) {
		t.Fatalf("Error() should delegate to Format(false)")
	}

	out := err.Format(false)
	if !strings.Contains(out, "unmatched left bracket") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output, got %q", out)
	}
	if !strings.Contains(out, "1:7") {
		t.Fatalf("expected position in output, got %q", out)
	}
}

func TestSourceErrorNewf(t *testing.T) {
	err := Newf("cannot resolve variable", token.Position{Line: 2, Column: 3}, "", `cannot resolve variable "x"`)
	if err.Message != `cannot resolve variable "x"` {
		t.Fatalf("unexpected message: %q", err.Message)
	}
	if err.Kind != "cannot resolve variable" {
		t.Fatalf("unexpected kind: %q", err.Kind)
	}
}

func TestSourceErrorNoSourceLine(t *testing.T) {
	err := New("unterminated string", token.Position{Line: 5, Column: 1}, "")
	out := err.Format(false)
	if strings.Contains(out, "\n    5 | ") {
		t.Fatalf("should not render a gutter line without source: %q", out)
	}
}
