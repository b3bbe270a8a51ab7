package exec

import (
	"context"
	"testing"

	"github.com/helena-lang/helena/internal/bytecode"
	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/parser"
	"github.com/helena-lang/helena/internal/value"
)

// compileSource tokenizes, parses and compiles src end to end, failing
// the test on any parse error.
func compileSource(t *testing.T, src string) *bytecode.Program {
	t.Helper()
	toks := lexer.New(src).Tokenize()
	script, errs := parser.Parse(toks, src)
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	prog, cerrs := bytecode.Compile(script, src)
	if len(cerrs) != 0 {
		t.Fatalf("compile errors: %v", cerrs)
	}
	return prog
}

type mapVariables map[string]value.Value

func (m mapVariables) ResolveVariable(_ context.Context, name string) (value.Value, error) {
	v, ok := m[name]
	if !ok {
		return nil, errMissing(name)
	}
	return v, nil
}

type errMissing string

func (e errMissing) Error() string { return "unknown variable: " + string(e) }

// echoCommand returns its arguments (minus its own name) joined as a
// tuple, so tests can observe exactly what EVALUATE_SENTENCE handed it.
type echoCommand struct{}

func (echoCommand) Execute(_ context.Context, args []value.Value) (Result, error) {
	return Ok(value.NewTuple(args[1:])), nil
}

type commandTable map[string]Command

func (c commandTable) ResolveCommand(_ context.Context, name string) (Command, error) {
	cmd, ok := c[name]
	if !ok {
		return nil, errMissing(name)
	}
	return cmd, nil
}

func TestExecuteLiteralSentence(t *testing.T) {
	prog := compileSource(t, "echo a b c")
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple, ok := res.Value.(value.Tuple)
	if !ok || len(tuple.Elements) != 3 {
		t.Fatalf("got %+v", res)
	}
	if s := tuple.Elements[0].(value.Str).Value; s != "a" {
		t.Fatalf("got %q", s)
	}
}

func TestExecuteVariableSubstitution(t *testing.T) {
	prog := compileSource(t, "echo $name")
	vars := mapVariables{"name": value.NewStr("helena")}
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}, Variables: vars})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple := res.Value.(value.Tuple)
	if tuple.Elements[0].(value.Str).Value != "helena" {
		t.Fatalf("got %+v", res)
	}
}

func TestExecuteUnknownVariableIsError(t *testing.T) {
	prog := compileSource(t, "echo $missing")
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}, Variables: mapVariables{}})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	if res.Code != ERROR {
		t.Fatalf("expected ERROR result, got %v", res.Code)
	}
}

func TestExecuteCompoundWord(t *testing.T) {
	prog := compileSource(t, "echo pre$name")
	vars := mapVariables{"name": value.NewStr("fix")}
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}, Variables: vars})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple := res.Value.(value.Tuple)
	if tuple.Elements[0].(value.Str).Value != "prefix" {
		t.Fatalf("got %+v", res)
	}
}

func TestExecuteTupleLiteral(t *testing.T) {
	prog := compileSource(t, "echo (a b c)")
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	outer := res.Value.(value.Tuple)
	inner := outer.Elements[0].(value.Tuple)
	if len(inner.Elements) != 3 {
		t.Fatalf("got %+v", outer)
	}
}

func TestExecuteTupleExpansion(t *testing.T) {
	prog := compileSource(t, "echo $*args")
	vars := mapVariables{"args": value.NewTuple([]value.Value{value.NewStr("x"), value.NewStr("y")})}
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}, Variables: vars})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple := res.Value.(value.Tuple)
	if len(tuple.Elements) != 2 || tuple.Elements[1].(value.Str).Value != "y" {
		t.Fatalf("got %+v", res)
	}
}

// waitCommand yields once with a marker value, then resumes with
// whatever the host passed back in - spec.md's YIELD/resume contract.
type waitCommand struct{}

func (waitCommand) Execute(_ context.Context, _ []value.Value) (Result, error) {
	return Result{Code: YIELD, Value: value.NewStr("waiting")}, nil
}

func (waitCommand) Resume(_ context.Context, v value.Value) (Result, error) {
	return Ok(v), nil
}

func TestExecuteYieldAndResume(t *testing.T) {
	prog := compileSource(t, "wait")
	e := New(Resolvers{Commands: commandTable{"wait": waitCommand{}}})
	res, proc, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	if res.Code != YIELD {
		t.Fatalf("expected YIELD, got %v", res.Code)
	}
	if !proc.Suspended() {
		t.Fatal("expected process to be suspended")
	}

	final, err := e.Resume(context.Background(), proc, value.NewStr("resumed"))
	if err != nil {
		t.Fatal(err)
	}
	if final.Value.(value.Str).Value != "resumed" {
		t.Fatalf("got %+v", final)
	}
}

// A block used as a substitution's selectable names the variable to
// resolve by its verbatim source text, not the script it would compile
// to standing alone as a ROOT word (spec.md §3.2's block-as-string
// varnames): `${name}` and `$name` must resolve the same variable.
func TestExecuteBlockSubstitutionSource(t *testing.T) {
	prog := compileSource(t, "echo ${name}")
	vars := mapVariables{"name": value.NewStr("helena")}
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}, Variables: vars})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple := res.Value.(value.Tuple)
	if tuple.Elements[0].(value.Str).Value != "helena" {
		t.Fatalf("got %+v", res)
	}
}

// A block root of a QUALIFIED word is likewise named by its source
// text: `{dict}(key)` builds a deferred QualifiedValue whose Source is
// STR("dict"), not a ScriptValue wrapping the block.
func TestExecuteBlockQualifiedSource(t *testing.T) {
	prog := compileSource(t, "echo {dict}(key)")
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple := res.Value.(value.Tuple)
	q, ok := tuple.Elements[0].(value.Qualified)
	if !ok {
		t.Fatalf("got %+v, want a Qualified value", tuple.Elements[0])
	}
	if s, ok := q.Source.(value.Str); !ok || s.Value != "dict" {
		t.Fatalf("got source %+v, want STR(\"dict\")", q.Source)
	}
}

func TestExecuteQualifiedSelector(t *testing.T) {
	prog := compileSource(t, "echo $dict(key)")
	d := value.NewDict([]string{"key"}, []value.Value{value.NewStr("v")})
	vars := mapVariables{"dict": d}
	e := New(Resolvers{Commands: commandTable{"echo": echoCommand{}}, Variables: vars})
	res, _, err := e.Run(context.Background(), prog)
	if err != nil {
		t.Fatal(err)
	}
	tuple := res.Value.(value.Tuple)
	if tuple.Elements[0].(value.Str).Value != "v" {
		t.Fatalf("got %+v", res)
	}
}
