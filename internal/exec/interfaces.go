package exec

import (
	"context"

	"github.com/helena-lang/helena/internal/value"
)

// VariableResolver looks up a variable's current value by name (spec.md
// §6). It is consulted by RESOLVE_VALUE.
type VariableResolver interface {
	ResolveVariable(ctx context.Context, name string) (value.Value, error)
}

// CommandResolver looks up a Command by name (spec.md §6). It is
// consulted by EVALUATE_SENTENCE.
type CommandResolver interface {
	ResolveCommand(ctx context.Context, name string) (Command, error)
}

// SelectorResolver builds a runtime value.Selector from a generic rule
// list (spec.md §6), consulted by SELECT_RULES - it is what lets a host
// application define its own qualified-value rule syntax.
type SelectorResolver interface {
	ResolveSelector(ctx context.Context, rules []value.Value) (value.Selector, error)
}

// Command is anything EVALUATE_SENTENCE can invoke: args[0] is the
// command's own name, args[1:] its arguments (spec.md §6).
type Command interface {
	Execute(ctx context.Context, args []value.Value) (Result, error)
}

// Resolvers bundles the three resolver ports an Executor needs; a host
// application supplies one implementation covering whichever subset of
// behavior it wants to support (spec.md §6 notes all three are
// optional - a nil field simply fails lookups with an error).
type Resolvers struct {
	Variables VariableResolver
	Commands  CommandResolver
	Selectors SelectorResolver
}
