package value

import "fmt"

// SelectError is returned by Selector application failures. Its Kind is
// one of the canonical kinds in spec.md §7 and doubles as the message,
// the same convention errors in the rest of the core use.
type SelectError struct{ Kind string }

func (e *SelectError) Error() string { return e.Kind }

func selectErrorf(format string, args ...any) *SelectError {
	return &SelectError{Kind: fmt.Sprintf(format, args...)}
}

// Selector is an operation that extracts a subvalue from a Value.
type Selector interface {
	// applyScalar applies the selector to a non-tuple value. Tuple
	// recursion (invariant 4, spec.md §8) is handled once, centrally, by
	// Apply below, so individual Selector implementations never need to
	// special-case TUPLE inputs themselves.
	applyScalar(v Value) (Value, error)
}

// Apply applies sel to v, honoring tuple recursion: for any tuple T,
// Apply(sel, T) = Tuple(Apply(sel, e) for e in T), applied recursively for
// nested tuples (spec.md §3.4, §8 invariant 4).
func Apply(sel Selector, v Value) (Value, error) {
	if t, ok := v.(Tuple); ok {
		out := make([]Value, len(t.Elements))
		for i, e := range t.Elements {
			r, err := Apply(sel, e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return NewTuple(out), nil
	}
	return sel.applyScalar(v)
}

// IndexedSelector selects by integer (or integer-string) index into a LIST
// or STRING value.
type IndexedSelector struct{ Index Value }

func NewIndexedSelector(index Value) IndexedSelector { return IndexedSelector{Index: index} }

func (s IndexedSelector) applyScalar(v Value) (Value, error) {
	idx, ok := asIndex(s.Index)
	if !ok {
		repr, _ := StringOf(s.Index)
		return nil, selectErrorf("invalid integer %q", repr)
	}

	switch t := v.(type) {
	case List:
		if idx < 0 || idx >= len(t.Elements) {
			return nil, selectErrorf("index out of range %q", indexRepr(s.Index))
		}
		return t.Elements[idx], nil
	case Str:
		runes := []rune(t.Value)
		if idx < 0 || idx >= len(runes) {
			return nil, selectErrorf("index out of range %q", indexRepr(s.Index))
		}
		return NewStr(string(runes[idx])), nil
	default:
		return nil, selectErrorf("value is not index-selectable")
	}
}

func asIndex(v Value) (int, bool) {
	switch t := v.(type) {
	case Int:
		return int(t.Value), true
	case Str:
		i, ok := ParseInt(t.Value)
		return int(i), ok
	default:
		return 0, false
	}
}

func indexRepr(v Value) string {
	if s, ok := StringOf(v); ok {
		return s
	}
	return "?"
}

// KeyedSelector selects by a non-empty ordered list of keys applied in
// sequence into a DICT (or chain of DICTs) value.
type KeyedSelector struct{ Keys []Value }

// NewKeyedSelector builds a KeyedSelector over keys. An empty key list
// is accepted here and fails when the selector is applied.
func NewKeyedSelector(keys []Value) KeyedSelector { return KeyedSelector{Keys: keys} }

func (s KeyedSelector) applyScalar(v Value) (Value, error) {
	if len(s.Keys) == 0 {
		// An empty selector tuple such as `$v()` compiles to an empty key
		// frame; applying it is an error (spec.md §9 open question 2).
		return nil, selectErrorf("invalid key")
	}

	cur := v
	for _, key := range s.Keys {
		d, ok := cur.(Dict)
		if !ok {
			return nil, selectErrorf("value is not key-selectable")
		}
		keyStr, ok := StringOf(key)
		if !ok {
			return nil, selectErrorf("invalid key")
		}
		val, ok := d.Get(keyStr)
		if !ok {
			return nil, selectErrorf("unknown key")
		}
		cur = val
	}
	return cur, nil
}

// GenericSelector wraps a rule list resolved, externally, to a concrete
// Selector by a SelectorResolver (spec.md §3.4, §6.3). Resolved is cached
// so a GenericSelector appended to a QualifiedValue can be re-applied
// later without the resolver.
type GenericSelector struct {
	Rules    []Value
	Resolved Selector
}

func NewGenericSelector(rules []Value, resolved Selector) GenericSelector {
	return GenericSelector{Rules: rules, Resolved: resolved}
}

func (s GenericSelector) applyScalar(v Value) (Value, error) {
	return Apply(s.Resolved, v)
}
