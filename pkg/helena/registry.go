package helena

import (
	"context"
	"fmt"

	"github.com/helena-lang/helena/internal/exec"
	"github.com/helena-lang/helena/internal/value"
)

// Factory builds a Command instance for one EVALUATE_SENTENCE lookup. A
// stateless command (puts, set, incr - they carry no data of their own,
// only references to shared Scope/io.Writer) can return the same value
// every time; a command whose Resume needs per-invocation state (wait)
// returns a fresh instance so concurrent or repeated invocations don't
// clobber each other's progress.
type Factory func() Command

// Registry is a name-to-Factory table implementing exec.CommandResolver
// (spec.md §6) - the demo stand-in for whatever command library a host
// application actually wires in.
type Registry struct {
	commands map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Factory)}
}

// Register binds name to factory, overwriting any previous binding.
func (r *Registry) Register(name string, factory Factory) {
	r.commands[name] = factory
}

// RegisterCommand is a convenience for a stateless Command: every lookup
// returns the same instance.
func (r *Registry) RegisterCommand(name string, cmd Command) {
	r.Register(name, func() Command { return cmd })
}

// ResolveCommand implements exec.CommandResolver. A name with no
// registered Factory that parses as a decimal integer falls back to a
// command that just returns that integer: a bracketed expression like
// `[1]` lowers to a nested-script sentence evaluation (spec.md §4.4), so
// a literal numeric index needs some command to produce INT(1) - this
// is the minimal fallback a host resolver needs to make that idiom work
// without a full arithmetic/literal command library in scope.
func (r *Registry) ResolveCommand(_ context.Context, name string) (Command, error) {
	if factory, ok := r.commands[name]; ok {
		return factory(), nil
	}
	if n, ok := value.ParseInt(name); ok {
		return literalIntCommand{n}, nil
	}
	return nil, fmt.Errorf("invalid command name %q", name)
}

// literalIntCommand evaluates to its own integer regardless of any
// arguments; it exists so a bare numeric sentence like the inner script
// of `[1]` produces INT(1) instead of requiring a registered command
// named "1".
type literalIntCommand struct{ n int64 }

func (c literalIntCommand) Execute(context.Context, []value.Value) (exec.Result, error) {
	return exec.Ok(value.NewInt(c.n)), nil
}

var _ exec.CommandResolver = (*Registry)(nil)
