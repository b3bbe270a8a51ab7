package exec

import (
	"context"
	"strings"

	"github.com/helena-lang/helena/internal/bytecode"
	"github.com/helena-lang/helena/internal/value"
)

// Resumable is implemented by a Command whose YIELD can be resumed in
// place (spec.md §4.5, §6): Resume receives the value the host passed
// back in and produces the command's final Result. A Command that
// doesn't implement it can still yield; resuming it simply treats the
// resume value as the sentence's result.
type Resumable interface {
	Resume(ctx context.Context, value value.Value) (Result, error)
}

func isUnwind(code ResultCode) bool {
	switch code {
	case ERROR, RETURN, BREAK, CONTINUE:
		return true
	default:
		return false
	}
}

// Executor runs compiled Programs against a set of Resolvers (spec.md
// §4.5). It holds no state of its own between calls - all resumable
// state lives in the ProgramState/Process it's given - so one Executor
// can drive many concurrent Processes via its reentrant dispatch loop.
type Executor struct {
	Resolvers Resolvers
}

// New creates an Executor bound to the given resolver ports.
func New(resolvers Resolvers) *Executor {
	return &Executor{Resolvers: resolvers}
}

var errNotSuspended = &execError{"process is not suspended on a yield"}

type execError struct{ msg string }

func (e *execError) Error() string { return e.msg }

// Run starts prog in a fresh Process and drives it to completion or to
// its first YIELD.
func (e *Executor) Run(ctx context.Context, prog *bytecode.Program) (Result, *Process, error) {
	proc := NewProcess(prog)
	res, err := e.drive(ctx, proc)
	return res, proc, err
}

// Resume continues a Process previously paused by a YIELD, passing
// resumeValue back in to whatever is waiting for it.
func (e *Executor) Resume(ctx context.Context, proc *Process, resumeValue value.Value) (Result, error) {
	if proc.empty() || !proc.Suspended() {
		return Result{}, errNotSuspended
	}
	cur := proc.top()
	cmd := cur.PendingCommand
	cur.PendingCommand = nil

	var res Result
	var err error
	if resumable, ok := cmd.(Resumable); ok {
		res, err = resumable.Resume(ctx, resumeValue)
	} else {
		res = Ok(resumeValue)
	}
	if err != nil {
		return Result{}, err
	}
	cur.LastResult = res

	switch {
	case res.Code == YIELD:
		cur.PendingCommand = cmd
		return res, nil
	case res.Next != nil:
		next, derr := compileDeferred(res.Next)
		if derr != nil {
			return Result{}, derr
		}
		cur.pendingNext = next
	case isUnwind(res.Code):
		proc.pop()
		if proc.empty() {
			return res, nil
		}
		proc.top().LastResult = res
	}
	return e.drive(ctx, proc)
}

// selectOrAppend implements the shared shape of SELECT_INDEX/KEYS/RULES
// (spec.md §4.5): a QualifiedValue target defers the selector by
// appending it (via appendTo) instead of applying it immediately, so a
// qualified word's access path can be built up across several selector
// morphemes before ever touching a real value.
func selectOrAppend(target value.Value, sel value.Selector, appendTo func(value.Qualified) value.Qualified) (value.Value, error) {
	if q, ok := target.(value.Qualified); ok {
		return appendTo(q), nil
	}
	return value.Apply(sel, target)
}

// resolveValue implements §4.5.1's value resolution rules: a TUPLE
// resolves element-wise and recursively, a QUALIFIED value resolves its
// source and then applies its selector chain, and anything else is
// stringified and looked up as a variable name.
func (e *Executor) resolveValue(ctx context.Context, v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case value.Tuple:
		out := make([]value.Value, len(t.Elements))
		for i, el := range t.Elements {
			r, err := e.resolveValue(ctx, el)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return value.NewTuple(out), nil

	case value.Qualified:
		cur, err := e.resolveValue(ctx, t.Source)
		if err != nil {
			return nil, err
		}
		for _, sel := range t.Selectors {
			cur, err = value.Apply(sel, cur)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	default:
		name, ok := value.StringOf(v)
		if !ok {
			return nil, &execError{"invalid variable name"}
		}
		if e.Resolvers.Variables == nil {
			return nil, &execError{"no variable resolver configured"}
		}
		return e.Resolvers.Variables.ResolveVariable(ctx, name)
	}
}

// compileDeferred lowers a Deferred sentinel's body into a Program: a
// SCRIPT runs as itself, a TUPLE runs as a one-sentence program (spec.md
// §4.6). Any other body is a Command authoring error.
func compileDeferred(body value.Value) (*bytecode.Program, error) {
	switch b := body.(type) {
	case value.Script:
		prog, _ := bytecode.Compile(b.Body, b.Source)
		return prog, nil
	case value.Tuple:
		return bytecode.CompileTupleSentence(b.Elements), nil
	default:
		return nil, &execError{"body must be a script or tuple"}
	}
}

// drive runs the Process's trampoline: it steps the top ProgramState
// until that state finishes, yields, or defers to a nested script, in
// which case the nested script becomes a new top frame instead of a
// recursive Go call.
func (e *Executor) drive(ctx context.Context, proc *Process) (Result, error) {
	for {
		if proc.empty() {
			return Result{}, errNotSuspended
		}
		cur := proc.top()
		res, finished, yielded, err := e.step(ctx, cur)
		if err != nil {
			return Result{}, err
		}
		if yielded {
			return res, nil
		}
		if cur.pendingNext != nil {
			child := NewProgramState(cur.pendingNext)
			cur.pendingNext = nil
			proc.push(child)
			continue
		}
		if !finished {
			continue
		}

		proc.pop()
		if proc.empty() {
			return res, nil
		}
		parent := proc.top()
		parent.LastResult = res
		if isUnwind(res.Code) {
			return res, nil
		}
	}
}

// step runs state's dispatch loop starting at its current PC until it
// either finishes (Done, or an unwinding Result), needs a child script
// pushed (state.pendingNext set), or yields (state.PendingCommand set).
func (e *Executor) step(ctx context.Context, state *ProgramState) (res Result, finished, yielded bool, err error) {
	for !state.Done() {
		instr := state.Program.Instructions[state.PC]
		state.PC++

		switch instr.Op {
		case bytecode.PUSH_NIL:
			state.push(value.NilValue)

		case bytecode.PUSH_CONSTANT:
			state.push(state.Program.Constants[instr.Operand])

		case bytecode.OPEN_FRAME:
			state.openFrame()

		case bytecode.CLOSE_FRAME:
			state.closeFrame()

		case bytecode.RESOLVE_VALUE:
			resolved, rerr := e.resolveValue(ctx, state.pop())
			if rerr != nil {
				return Errorf(rerr.Error()), true, false, nil
			}
			state.push(resolved)

		case bytecode.EXPAND_VALUE:
			state.expandTop()

		case bytecode.SET_SOURCE:
			state.push(value.NewQualified(state.pop()))

		case bytecode.SELECT_INDEX:
			idx := state.pop()
			target := state.pop()
			selected, serr := selectOrAppend(target, value.NewIndexedSelector(idx), func(q value.Qualified) value.Qualified {
				return q.AppendIndexed(idx)
			})
			if serr != nil {
				return Errorf(serr.Error()), true, false, nil
			}
			state.push(selected)

		case bytecode.SELECT_KEYS:
			keys := state.LastFrame
			target := state.pop()
			selected, serr := selectOrAppend(target, value.NewKeyedSelector(keys), func(q value.Qualified) value.Qualified {
				return q.AppendKeyed(keys)
			})
			if serr != nil {
				return Errorf(serr.Error()), true, false, nil
			}
			state.push(selected)

		case bytecode.SELECT_RULES:
			if e.Resolvers.Selectors == nil {
				return Errorf("no selector resolver configured"), true, false, nil
			}
			rules := state.LastFrame
			target := state.pop()
			sel, rerr := e.Resolvers.Selectors.ResolveSelector(ctx, rules)
			if rerr != nil {
				return Errorf(rerr.Error()), true, false, nil
			}
			generic := value.NewGenericSelector(rules, sel)
			selected, serr := selectOrAppend(target, generic, func(q value.Qualified) value.Qualified {
				return q.AppendGeneric(generic)
			})
			if serr != nil {
				return Errorf(serr.Error()), true, false, nil
			}
			state.push(selected)

		case bytecode.EVALUATE_SENTENCE:
			sres, evalErr := e.evaluateSentence(ctx, state)
			if evalErr != nil {
				return Result{}, false, false, evalErr
			}
			state.LastResult = sres
			if state.PendingCommand != nil {
				return sres, false, true, nil
			}
			if state.pendingNext != nil {
				return Result{}, false, false, nil
			}
			if isUnwind(sres.Code) {
				return sres, true, false, nil
			}

		case bytecode.PUSH_RESULT:
			state.push(state.LastResult.Value)

		case bytecode.JOIN_STRINGS:
			var sb strings.Builder
			for _, v := range state.LastFrame {
				s, ok := value.StringOf(v)
				if !ok {
					return Errorf("value has no string representation"), true, false, nil
				}
				sb.WriteString(s)
			}
			state.push(value.NewStr(sb.String()))

		case bytecode.MAKE_TUPLE:
			elems := make([]value.Value, len(state.LastFrame))
			copy(elems, state.LastFrame)
			state.push(value.NewTuple(elems))
		}
	}

	if len(state.Stack) > 0 {
		return Ok(state.pop()), true, false, nil
	}
	return state.LastResult, true, false, nil
}

// evaluateSentence resolves and invokes the command named by the last
// closed frame, leaving its Result in state.LastResult; a YIELDing
// command parks itself on state.PendingCommand, and a deferring command
// (Result.Next set) compiles its continuation into state.pendingNext for
// the trampoline to pick up.
func (e *Executor) evaluateSentence(ctx context.Context, state *ProgramState) (Result, error) {
	frame := state.LastFrame
	if len(frame) == 0 {
		return Ok(value.NilValue), nil
	}
	name, ok := value.StringOf(frame[0])
	if !ok {
		return Errorf("command name has no string representation"), nil
	}
	if e.Resolvers.Commands == nil {
		return Errorf("no command resolver configured"), nil
	}
	cmd, rerr := e.Resolvers.Commands.ResolveCommand(ctx, name)
	if rerr != nil {
		return Errorf(rerr.Error()), nil
	}
	cres, cerr := cmd.Execute(ctx, frame)
	if cerr != nil {
		return Errorf(cerr.Error()), nil
	}

	if cres.Code == YIELD {
		state.PendingCommand = cmd
		return cres, nil
	}
	if cres.Next != nil {
		next, derr := compileDeferred(cres.Next)
		if derr != nil {
			return Result{}, derr
		}
		state.pendingNext = next
	}
	return cres, nil
}
