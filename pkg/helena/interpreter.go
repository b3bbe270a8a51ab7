// Package helena is the public API for embedding the Helena core: a
// small facade over internal/lexer, internal/parser, internal/syntax,
// internal/bytecode and internal/exec, plus a demo command set
// (stdlib.go) that exercises the Resolver/Command seams end to end.
// Its shape - a constructor taking functional Options, a Compile-once/
// Run-many-times split, an Eval convenience wrapping both - is a common
// embeddable-interpreter facade.
package helena

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/helena-lang/helena/internal/bytecode"
	"github.com/helena-lang/helena/internal/errors"
	"github.com/helena-lang/helena/internal/exec"
	"github.com/helena-lang/helena/internal/lexer"
	"github.com/helena-lang/helena/internal/parser"
	"github.com/helena-lang/helena/internal/syntax"
	"github.com/helena-lang/helena/internal/value"
)

// Re-exported so a host application never has to import internal/exec
// itself to implement a Resolver or Command (spec.md §6).
type (
	Command          = exec.Command
	Resumable        = exec.Resumable
	VariableResolver = exec.VariableResolver
	CommandResolver  = exec.CommandResolver
	SelectorResolver = exec.SelectorResolver
	ResultCode       = exec.ResultCode
	Process          = exec.Process
)

const (
	OK       = exec.OK
	RETURN   = exec.RETURN
	YIELD    = exec.YIELD
	ERROR    = exec.ERROR
	BREAK    = exec.BREAK
	CONTINUE = exec.CONTINUE
	CUSTOM   = exec.CUSTOM
)

// Result is the outcome of evaluating a script or resuming a paused one.
type Result struct {
	Code  ResultCode
	Value value.Value
}

// Program is a script compiled once for repeated execution.
type Program struct {
	prog *bytecode.Program
}

// CompileError reports tokenizer, parser or compiler diagnostics found
// while compiling a script; it formats every error it collected with
// source-line carets via SourceError.Format.
type CompileError struct {
	Errors []*errors.SourceError
}

func (e *CompileError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d compile errors, first: %s", len(e.Errors), e.Errors[0].Error())
}

// Format renders every collected error with source-line carets, the way
// the CLI's "run"/"parse" subcommands report failures.
func (e *CompileError) Format(color bool) string {
	var out string
	for _, se := range e.Errors {
		out += se.Format(color) + "\n"
	}
	return out
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput redirects the demo `puts` command's output.
func WithOutput(w io.Writer) Option {
	return func(it *Interpreter) { it.output = w }
}

// WithScope supplies the VariableResolver (and `set`/`incr`'s backing
// store) instead of the Interpreter's own fresh one.
func WithScope(s *Scope) Option {
	return func(it *Interpreter) { it.scope = s }
}

// WithSelectorResolver installs a SelectorResolver for `{...}` rule
// selectors; without one, SELECT_RULES fails with an error (spec.md
// §6 treats every resolver as optional).
func WithSelectorResolver(r SelectorResolver) Option {
	return func(it *Interpreter) { it.selectors = r }
}

// WithoutStdlib skips registering the demo `set`/`puts`/`incr`/`wait`
// commands, leaving the CommandResolver empty for a caller that wants
// to supply its own command set entirely.
func WithoutStdlib() Option {
	return func(it *Interpreter) { it.skipStdlib = true }
}

// WithTrace stores w as the trace writer and makes Compile set the
// Tokenizer's WithTracing flag. Neither the tokenizer nor the executor
// writes anything to w.
func WithTrace(w io.Writer) Option {
	return func(it *Interpreter) { it.trace = w }
}

// Interpreter ties the tokenizer, parser, syntax checker, compiler and
// executor together behind a single Eval/Compile/Run API.
type Interpreter struct {
	scope      *Scope
	registry   *Registry
	selectors  SelectorResolver
	output     io.Writer
	trace      io.Writer
	skipStdlib bool
	executor   *exec.Executor
}

// New creates an Interpreter, registering the demo stdlib commands
// (spec.md §5) unless WithoutStdlib is given.
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		scope:    NewScope(),
		output:   os.Stdout,
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(it)
	}
	if !it.skipStdlib {
		RegisterStdlib(it.registry, it.scope, it.output)
	}
	it.executor = exec.New(exec.Resolvers{
		Variables: it.scope,
		Commands:  it.registry,
		Selectors: it.selectors,
	})
	return it
}

// Scope returns the Interpreter's variable store, for a caller that
// wants to seed variables before evaluating a script.
func (it *Interpreter) Scope() *Scope { return it.scope }

// Registry returns the Interpreter's command table, for a caller that
// wants to register additional commands alongside the demo stdlib.
func (it *Interpreter) Registry() *Registry { return it.registry }

// Compile tokenizes, parses, checks and lowers source into a reusable
// Program, collecting every diagnostic raised along the way into a
// single *CompileError rather than stopping at the first one (spec.md
// §7: "a script with several independent syntax errors reports all of
// them").
func (it *Interpreter) Compile(source string) (*Program, error) {
	tz := lexer.New(source, lexer.WithTracing(it.trace != nil))
	toks := tz.Tokenize()
	script, perrs := parser.Parse(toks, source)

	checker := syntax.New(source)
	checker.Check(script)

	prog, cerrs := bytecode.Compile(script, source)

	all := append(append([]*errors.SourceError{}, tz.Errors()...), perrs...)
	all = append(all, checker.Errors()...)
	all = append(all, cerrs...)
	if len(all) > 0 {
		return nil, &CompileError{Errors: all}
	}
	return &Program{prog: prog}, nil
}

// Run executes a previously compiled Program to completion or to its
// first YIELD.
func (it *Interpreter) Run(ctx context.Context, p *Program) (Result, *Process, error) {
	res, proc, err := it.executor.Run(ctx, p.prog)
	return Result{Code: res.Code, Value: res.Value}, proc, err
}

// Resume continues a Process previously paused by a YIELD (spec.md
// §4.5), passing resumeValue back in to whatever command is waiting
// for it.
func (it *Interpreter) Resume(ctx context.Context, proc *Process, resumeValue value.Value) (Result, error) {
	res, err := it.executor.Resume(ctx, proc, resumeValue)
	return Result{Code: res.Code, Value: res.Value}, err
}

// Eval is the one-shot convenience that compiles and runs source in a
// single call (spec.md §8's worked examples all read this way).
func (it *Interpreter) Eval(ctx context.Context, source string) (Result, error) {
	prog, err := it.Compile(source)
	if err != nil {
		return Result{}, err
	}
	res, _, err := it.Run(ctx, prog)
	return res, err
}
