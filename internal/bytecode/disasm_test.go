package bytecode_test

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/helena-lang/helena/internal/bytecode"
	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/parser"
)

func compileFixture(t *testing.T, source string) *bytecode.Program {
	t.Helper()
	toks := lexer.New(source).Tokenize()
	script, perrs := parser.Parse(toks, source)
	if len(perrs) > 0 {
		t.Fatalf("parse errors for %q: %v", source, perrs)
	}
	prog, cerrs := bytecode.Compile(script, source)
	if len(cerrs) > 0 {
		t.Fatalf("compile errors for %q: %v", source, cerrs)
	}
	return prog
}

// TestDisassembleFixtures snapshots the opcode listing for a handful of
// the lowering rules in spec.md §4.4, using go-snaps fixture-style
// assertions.
func TestDisassembleFixtures(t *testing.T) {
	fixtures := []struct {
		name   string
		source string
	}{
		{"literal_word", `set x 1`},
		{"substitution_chain", `$$$var1`},
		{"substitution_selectors", `$varname(key1)(key2)`},
		{"tuple_expansion", `(prefix $*var suffix)`},
		{"compound_string", `"this $var a string"`},
	}

	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			prog := compileFixture(t, fx.source)
			snaps.MatchSnapshot(t, bytecode.Disassemble(prog))
		})
	}
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
