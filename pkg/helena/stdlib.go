package helena

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/helena-lang/helena/internal/exec"
	"github.com/helena-lang/helena/internal/value"
)

// RegisterStdlib wires the demo command set (spec.md §5) into registry:
// `set` (variable write-back through scope), `puts` (writes to out),
// `incr`, and `wait` (a YIELD/resume demo exercising E7 from spec.md
// §8). None of this is the surface command library the core spec
// excludes - it exists purely so the Resolver/Command seams have
// something concrete to drive end to end.
func RegisterStdlib(registry *Registry, scope *Scope, out io.Writer) {
	registry.RegisterCommand("set", setCommand{scope})
	registry.RegisterCommand("puts", putsCommand{out})
	registry.RegisterCommand("incr", incrCommand{scope})
	registry.Register("wait", func() Command { return &waitCommand{} })
	registry.RegisterCommand("eval", evalCommand{})
}

// setCommand implements `set name value`: writes value into scope under
// name and returns it, the way a Tcl-lineage `set` reads back what it
// just wrote.
type setCommand struct{ scope *Scope }

func (c setCommand) Execute(_ context.Context, args []value.Value) (exec.Result, error) {
	if len(args) != 3 {
		return exec.Errorf(`wrong # args: should be "set name value"`), nil
	}
	name, ok := value.StringOf(args[1])
	if !ok {
		return exec.Errorf("invalid variable name"), nil
	}
	c.scope.Set(name, args[2])
	return exec.Ok(args[2]), nil
}

// putsCommand implements `puts arg ...`: joins each argument's string
// representation with a space and writes a trailing newline to out,
// returning OK(NIL) (spec.md §5).
type putsCommand struct{ out io.Writer }

func (c putsCommand) Execute(_ context.Context, args []value.Value) (exec.Result, error) {
	parts := make([]string, 0, len(args)-1)
	for _, a := range args[1:] {
		s, ok := value.StringOf(a)
		if !ok {
			return exec.Errorf("value has no string representation"), nil
		}
		parts = append(parts, s)
	}
	fmt.Fprintln(c.out, strings.Join(parts, " "))
	return exec.Ok(value.NilValue), nil
}

// incrCommand implements `incr name ?delta?`: adds delta (default 1) to
// the integer named by name, stores the result back into scope, and
// returns it. A previously-unset variable starts at 0.
type incrCommand struct{ scope *Scope }

func (c incrCommand) Execute(_ context.Context, args []value.Value) (exec.Result, error) {
	if len(args) != 2 && len(args) != 3 {
		return exec.Errorf(`wrong # args: should be "incr name ?delta?"`), nil
	}
	name, ok := value.StringOf(args[1])
	if !ok {
		return exec.Errorf("invalid variable name"), nil
	}

	var cur int64
	if existing, ok := c.scope.Get(name); ok {
		i, ok := existing.(value.Int)
		if !ok {
			return exec.Errorf(fmt.Sprintf("can't incr %q: not an integer", name)), nil
		}
		cur = i.Value
	}

	delta := int64(1)
	if len(args) == 3 {
		i, ok := args[2].(value.Int)
		if !ok {
			return exec.Errorf("delta must be an integer"), nil
		}
		delta = i.Value
	}

	next := value.NewInt(cur + delta)
	c.scope.Set(name, next)
	return exec.Ok(next), nil
}

// waitCommand is the demo resumable command that exercises §4.5's
// YIELD/resume contract (and spec.md §8's E7): `wait n` yields INT(1)
// through INT(n) on successive resumes, then finishes with
// OK(STR("done")). A fresh instance is produced per invocation (see
// Factory) so its counter never leaks between unrelated `wait` calls.
type waitCommand struct {
	limit int64
	next  int64
}

func (c *waitCommand) Execute(_ context.Context, args []value.Value) (exec.Result, error) {
	c.limit = 5
	if len(args) > 1 {
		s, ok := value.StringOf(args[1])
		var n int64
		if ok {
			n, ok = value.ParseInt(s)
		}
		if !ok {
			return exec.Errorf("limit must be an integer"), nil
		}
		c.limit = n
	}
	c.next = 1
	if c.limit < 1 {
		return exec.Ok(value.NewStr("done")), nil
	}
	return exec.Result{Code: exec.YIELD, Value: value.NewInt(c.next)}, nil
}

func (c *waitCommand) Resume(_ context.Context, _ value.Value) (exec.Result, error) {
	c.next++
	if c.next > c.limit {
		return exec.Ok(value.NewStr("done")), nil
	}
	return exec.Result{Code: exec.YIELD, Value: value.NewInt(c.next)}, nil
}

// evalCommand implements `eval {script}` / `eval (tuple)`: rather than
// evaluating its body itself, it hands the body back on Result.Next so
// the Process trampoline runs it as a nested ProgramState (spec.md
// §4.6) - the mechanism user-defined macro/proc/if/while bodies are
// built on, demoed here without any of that surrounding machinery.
type evalCommand struct{}

func (evalCommand) Execute(_ context.Context, args []value.Value) (exec.Result, error) {
	if len(args) != 2 {
		return exec.Errorf(`wrong # args: should be "eval {script}"`), nil
	}
	switch args[1].(type) {
	case value.Script, value.Tuple:
		return exec.Ok(value.NilValue).WithNext(args[1]), nil
	default:
		return exec.Errorf("body must be a script or tuple"), nil
	}
}

var (
	_ exec.Command   = setCommand{}
	_ exec.Command   = putsCommand{}
	_ exec.Command   = incrCommand{}
	_ exec.Command   = (*waitCommand)(nil)
	_ exec.Resumable = (*waitCommand)(nil)
	_ exec.Command   = evalCommand{}
)
