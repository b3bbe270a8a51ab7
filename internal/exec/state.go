package exec

import (
	"github.com/helena-lang/helena/internal/bytecode"
	"github.com/helena-lang/helena/internal/value"
)

// ProgramState is all of an Executor's working state for one Program:
// its operand stack, the frame-start marks opened by OPEN_FRAME, the
// most recently closed frame's contents, the instruction pointer, and
// the last sentence Result. Capturing all
// of this in one struct (rather than spread across Executor-local
// variables) is what makes a paused YIELD resumable: the whole state
// survives between a YIELD and its matching Resume call (spec.md §4.5).
type ProgramState struct {
	Program *bytecode.Program

	Stack       []value.Value
	FrameStarts []int
	LastFrame   []value.Value

	PC int

	LastResult Result

	// PendingCommand is set when this state is parked on a YIELD: the
	// Command whose Execute call produced it, consulted by Resume to
	// decide whether it can be resumed in place (if it implements
	// Resumable) or whether the resume value simply becomes the
	// sentence's result.
	PendingCommand Command

	// pendingNext is set mid-dispatch when EVALUATE_SENTENCE's Command
	// deferred further script evaluation (Result.Next); the Process
	// trampoline reads it to push a child ProgramState, then clears it.
	pendingNext *bytecode.Program
}

// NewProgramState creates a ProgramState ready to run prog from
// instruction 0.
func NewProgramState(prog *bytecode.Program) *ProgramState {
	return &ProgramState{Program: prog, LastResult: Ok(value.NilValue)}
}

// Done reports whether the program has run past its last instruction.
func (s *ProgramState) Done() bool { return s.PC >= s.Program.Len() }

func (s *ProgramState) push(v value.Value) { s.Stack = append(s.Stack, v) }

func (s *ProgramState) pop() value.Value {
	v := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return v
}

func (s *ProgramState) peek() value.Value { return s.Stack[len(s.Stack)-1] }

func (s *ProgramState) openFrame() {
	s.FrameStarts = append(s.FrameStarts, len(s.Stack))
}

// expandTop spreads a top-of-stack tuple's elements onto the stack in
// its place (EXPAND_VALUE); any other value is left untouched. Because
// this runs eagerly, CLOSE_FRAME never needs to know which values came
// from an expansion - it just collects whatever is on the stack.
func (s *ProgramState) expandTop() {
	top := s.peek()
	tuple, ok := top.(value.Tuple)
	if !ok {
		return
	}
	s.Stack = s.Stack[:len(s.Stack)-1]
	s.Stack = append(s.Stack, tuple.Elements...)
}

func (s *ProgramState) closeFrame() {
	start := s.FrameStarts[len(s.FrameStarts)-1]
	s.FrameStarts = s.FrameStarts[:len(s.FrameStarts)-1]

	frame := make([]value.Value, len(s.Stack)-start)
	copy(frame, s.Stack[start:])
	s.Stack = s.Stack[:start]
	s.LastFrame = frame
}
