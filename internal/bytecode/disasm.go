package bytecode

import (
	"fmt"
	"strings"

	"github.com/helena-lang/helena/internal/value"
)

// Disassemble renders a Program as a human-readable instruction listing,
// one line per instruction (used by the "helena disasm" CLI command).
func Disassemble(p *Program) string {
	var sb strings.Builder
	for i, instr := range p.Instructions {
		fmt.Fprintf(&sb, "%4d %-20s", i, instr.Op.String())
		if instr.Op == PUSH_CONSTANT && instr.Operand < len(p.Constants) {
			fmt.Fprintf(&sb, " %d ; %s", instr.Operand, value.Display(p.Constants[instr.Operand]))
		}
		pos := p.Positions[i]
		fmt.Fprintf(&sb, "    ; %s\n", pos.String())
	}
	return sb.String()
}
