package value

// Qualified pairs a source Value with an ordered list of Selectors,
// representing a deferred access path (spec.md §3.4, glossary).
type Qualified struct {
	Source    Value
	Selectors []Selector
}

func (Qualified) ValueType() Type { return QUALIFIED }

// NewQualified wraps source with an empty selector list (the SET_SOURCE
// opcode's effect, spec.md §4.5).
func NewQualified(source Value) Qualified {
	return Qualified{Source: source}
}

// AppendIndexed appends an IndexedSelector.
func (q Qualified) AppendIndexed(index Value) Qualified {
	q.Selectors = append(append([]Selector{}, q.Selectors...), NewIndexedSelector(index))
	return q
}

// AppendKeyed appends a KeyedSelector, coalescing with a trailing keyed
// selector if present: `v(a)(b)(c)` compiles to one KeyedSelector with
// keys [a,b,c] (spec.md §4.4, §8 invariant 7).
func (q Qualified) AppendKeyed(keys []Value) Qualified {
	next := append([]Selector{}, q.Selectors...)
	if len(next) > 0 {
		if last, ok := next[len(next)-1].(KeyedSelector); ok {
			next[len(next)-1] = KeyedSelector{Keys: append(append([]Value{}, last.Keys...), keys...)}
			q.Selectors = next
			return q
		}
	}
	next = append(next, NewKeyedSelector(keys))
	q.Selectors = next
	return q
}

// AppendGeneric appends a GenericSelector.
func (q Qualified) AppendGeneric(sel GenericSelector) Qualified {
	q.Selectors = append(append([]Selector{}, q.Selectors...), sel)
	return q
}

// Selectors are intentionally applied, not pre-coalesced at append time
// for Indexed/Generic: only KeyedSelector coalesces (spec.md §3.4).
