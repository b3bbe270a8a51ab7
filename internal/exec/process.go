package exec

import "github.com/helena-lang/helena/internal/bytecode"

// Process is a stack of ProgramStates (spec.md §4.6): the trampoline
// that lets EVALUATE_SENTENCE defer evaluation of a nested script (a
// proc body, a deferred tuple element) by pushing a child ProgramState
// instead of the Executor recursing into Go's own call stack. A paused
// YIELD captures the whole Process, so Resume can re-enter exactly the
// frame (root script or any nested deferral) that produced it.
type Process struct {
	states []*ProgramState
}

// NewProcess starts a Process running prog from its first instruction.
func NewProcess(prog *bytecode.Program) *Process {
	return &Process{states: []*ProgramState{NewProgramState(prog)}}
}

func (p *Process) top() *ProgramState { return p.states[len(p.states)-1] }

func (p *Process) push(s *ProgramState) { p.states = append(p.states, s) }

func (p *Process) pop() *ProgramState {
	s := p.states[len(p.states)-1]
	p.states = p.states[:len(p.states)-1]
	return s
}

func (p *Process) empty() bool { return len(p.states) == 0 }

// Suspended reports whether the Process is currently parked on a YIELD
// (i.e. its top frame has a pending command waiting to be resumed).
func (p *Process) Suspended() bool {
	return !p.empty() && p.top().PendingCommand != nil
}
