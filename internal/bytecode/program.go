package bytecode

import (
	"github.com/helena-lang/helena/internal/token"
	"github.com/helena-lang/helena/internal/value"
)

// Instruction is one compiled opcode plus its operand (used only by
// PUSH_CONSTANT, as an index into the Program's constant pool).
type Instruction struct {
	Op      OpCode
	Operand int
}

// Program is a compiled, linear sequence of Instructions plus the
// constant pool and source positions (one per instruction, for runtime
// errors to report where the failing opcode came from) produced by it -
// Helena has no jumps, so a Program never needs patched branch targets.
type Program struct {
	Instructions []Instruction
	Constants    []value.Value
	Positions    []token.Position
}

// NewProgram creates an empty Program.
func NewProgram() *Program {
	return &Program{}
}

// emit appends an instruction at pos and returns its index.
func (p *Program) emit(op OpCode, operand int, pos token.Position) int {
	p.Instructions = append(p.Instructions, Instruction{Op: op, Operand: operand})
	p.Positions = append(p.Positions, pos)
	return len(p.Instructions) - 1
}

// addConstant appends v to the constant pool (equal values are not
// shared) and returns its index.
func (p *Program) addConstant(v value.Value) int {
	p.Constants = append(p.Constants, v)
	return len(p.Constants) - 1
}

// Len reports the number of instructions in the program.
func (p *Program) Len() int { return len(p.Instructions) }

// CompileTupleSentence builds a Program that evaluates elems as a single
// sentence and pushes its result (the deferred-tuple case of spec.md
// §4.6): OPEN_FRAME, one PUSH_CONSTANT per element, CLOSE_FRAME,
// EVALUATE_SENTENCE, PUSH_RESULT.
func CompileTupleSentence(elems []value.Value) *Program {
	p := NewProgram()
	var zero token.Position
	p.emit(OPEN_FRAME, 0, zero)
	for _, v := range elems {
		idx := p.addConstant(v)
		p.emit(PUSH_CONSTANT, idx, zero)
	}
	p.emit(CLOSE_FRAME, 0, zero)
	p.emit(EVALUATE_SENTENCE, 0, zero)
	p.emit(PUSH_RESULT, 0, zero)
	return p
}
