package helena

import (
	"context"
	"fmt"

	"github.com/helena-lang/helena/internal/value"
)

// Scope is a minimal VariableResolver: a flat, mutable name-to-value map
// with an optional parent for lexical lookup (spec.md §6). It is the
// demo stand-in for whatever variable storage a host application
// actually wants - the core only ever talks to the VariableResolver
// interface, never to Scope directly.
type Scope struct {
	parent *Scope
	vars   map[string]value.Value
}

// NewScope creates an empty, top-level Scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]value.Value)}
}

// Child creates a new Scope that falls back to s for names it doesn't
// define itself.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, vars: make(map[string]value.Value)}
}

// Set binds name to v in s directly, regardless of whether an ancestor
// Scope already defines it - Helena has no notion of shadowing rules at
// this layer, that belongs to whatever command library defines `set`.
func (s *Scope) Set(name string, v value.Value) {
	s.vars[name] = v
}

// Get looks up name in s, then each ancestor in turn.
func (s *Scope) Get(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// ResolveVariable implements exec.VariableResolver.
func (s *Scope) ResolveVariable(_ context.Context, name string) (value.Value, error) {
	v, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("can't read %q: no such variable", name)
	}
	return v, nil
}
