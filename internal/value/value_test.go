package value

import "testing"

func TestStringOf(t *testing.T) {
	cases := []struct {
		v    Value
		want string
		ok   bool
	}{
		{NilValue, "", false},
		{NewBool(true), "true", true},
		{NewBool(false), "false", true},
		{NewInt(42), "42", true},
		{NewStr("hi"), "hi", true},
		{NewList([]Value{NewInt(1)}), "", false},
	}
	for _, c := range cases {
		got, ok := StringOf(c.v)
		if ok != c.ok || got != c.want {
			t.Errorf("StringOf(%v) = %q,%v want %q,%v", c.v, got, ok, c.want, c.ok)
		}
	}
}

func TestParseBoolRoundTrip(t *testing.T) {
	if _, ok := ParseBool("True"); ok {
		t.Fatal("ParseBool should be case sensitive")
	}
	if _, ok := ParseBool("1"); ok {
		t.Fatal("integers must not round-trip into booleans")
	}
	if v, ok := ParseBool("true"); !ok || !v {
		t.Fatal("expected true")
	}
}

func TestRealIntConversion(t *testing.T) {
	if _, ok := RealToInt(1.5); ok {
		t.Fatal("1.5 should not convert to int")
	}
	if i, ok := RealToInt(3.0); !ok || i != 3 {
		t.Fatalf("got %v,%v", i, ok)
	}
}

func TestIndexedSelectorList(t *testing.T) {
	list := NewList([]Value{NewStr("value1"), NewStr("value2")})
	got, err := Apply(NewIndexedSelector(NewInt(1)), list)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := got.(Str); !ok || s.Value != "value2" {
		t.Fatalf("got %v", got)
	}
}

func TestIndexedSelectorOutOfRange(t *testing.T) {
	list := NewList([]Value{NewStr("a")})
	_, err := Apply(NewIndexedSelector(NewInt(5)), list)
	if err == nil || err.Error() != `index out of range "5"` {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndexedSelectorNotSelectable(t *testing.T) {
	_, err := Apply(NewIndexedSelector(NewInt(0)), NewInt(3))
	if err == nil || err.Error() != "value is not index-selectable" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeyedSelectorChain(t *testing.T) {
	inner := NewDict([]string{"key2"}, []Value{NewStr("v")})
	outer := NewDict([]string{"key1"}, []Value{inner})
	got, err := Apply(NewKeyedSelector([]Value{NewStr("key1"), NewStr("key2")}), outer)
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := got.(Str); !ok || s.Value != "v" {
		t.Fatalf("got %v", got)
	}
}

func TestKeyedSelectorUnknownKey(t *testing.T) {
	d := NewDict(nil, nil)
	_, err := Apply(NewKeyedSelector([]Value{NewStr("missing")}), d)
	if err == nil || err.Error() != "unknown key" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKeyedSelectorEmptyKeysIsDefensiveError(t *testing.T) {
	_, err := Apply(NewKeyedSelector(nil), NewDict(nil, nil))
	if err == nil || err.Error() != "invalid key" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTupleRecursion(t *testing.T) {
	tuple := NewTuple([]Value{
		NewList([]Value{NewStr("a0"), NewStr("a1")}),
		NewList([]Value{NewStr("b0"), NewStr("b1")}),
	})
	got, err := Apply(NewIndexedSelector(NewInt(1)), tuple)
	if err != nil {
		t.Fatal(err)
	}
	result, ok := got.(Tuple)
	if !ok || len(result.Elements) != 2 {
		t.Fatalf("got %v", got)
	}
	if s := result.Elements[0].(Str).Value; s != "a1" {
		t.Fatalf("got %v", s)
	}
}

func TestNestedTupleRecursion(t *testing.T) {
	inner := NewTuple([]Value{NewList([]Value{NewStr("x"), NewStr("y")})})
	outer := NewTuple([]Value{inner})
	got, err := Apply(NewIndexedSelector(NewInt(1)), outer)
	if err != nil {
		t.Fatal(err)
	}
	outerT := got.(Tuple)
	innerT := outerT.Elements[0].(Tuple)
	if innerT.Elements[0].(Str).Value != "y" {
		t.Fatalf("got %v", got)
	}
}

func TestQualifiedKeyedCoalescing(t *testing.T) {
	q := NewQualified(NewStr("src"))
	q = q.AppendKeyed([]Value{NewStr("a")})
	q = q.AppendKeyed([]Value{NewStr("b")})
	q = q.AppendKeyed([]Value{NewStr("c")})

	if len(q.Selectors) != 1 {
		t.Fatalf("expected coalesced selector, got %d", len(q.Selectors))
	}
	keyed := q.Selectors[0].(KeyedSelector)
	if len(keyed.Keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keyed.Keys))
	}
}

func TestQuoteString(t *testing.T) {
	if QuoteString("simple") != "simple" {
		t.Fatal("plain text should not be quoted")
	}
	q := QuoteString("has space")
	if q[0] != '"' {
		t.Fatalf("expected quoted form, got %q", q)
	}
}
