// Package exec implements Helena's resumable bytecode Executor (spec.md
// §4.5-§4.7): the ProgramState/Result/YIELD-resume protocol, and the
// Process trampoline that threads nested script evaluation through an
// explicit stack of ProgramStates instead of recursive Go calls. Its
// dispatch-loop shape (a switch over OpCode, a data stack, structured
// runtime errors) follows a classic bytecode VM's Run loop.
package exec

import "github.com/helena-lang/helena/internal/value"

// ResultCode is the outcome tag of evaluating a sentence or script
// (spec.md §4.7).
type ResultCode int

const (
	// OK is normal, successful completion with a value.
	OK ResultCode = iota
	// RETURN unwinds a proc body early with a value.
	RETURN
	// YIELD suspends execution, handing a value out to the host and
	// expecting to be resumed with a value back in.
	YIELD
	// ERROR reports a failure; Result.Value carries the error message.
	ERROR
	// BREAK unwinds the innermost enclosing loop.
	BREAK
	// CONTINUE skips to the next iteration of the innermost enclosing loop.
	CONTINUE
	// CUSTOM carries an application-defined control signal; Result.Value
	// and Result.Data are interpreted by whatever command produced it.
	CUSTOM
)

func (c ResultCode) String() string {
	switch c {
	case OK:
		return "OK"
	case RETURN:
		return "RETURN"
	case YIELD:
		return "YIELD"
	case ERROR:
		return "ERROR"
	case BREAK:
		return "BREAK"
	case CONTINUE:
		return "CONTINUE"
	case CUSTOM:
		return "CUSTOM"
	default:
		return "UNKNOWN"
	}
}

// Result is what evaluating a sentence, a script, or a whole Program
// produces (spec.md §4.7). A YIELD result is resumable: pass the
// Process that produced it back to Executor.Resume along with the
// value to resume with.
type Result struct {
	Code  ResultCode
	Value value.Value
	// Data carries an auxiliary payload for CUSTOM results (an
	// application-defined signal name, typically) that Value alone
	// doesn't capture.
	Data any
	// Next, when non-nil, is a deferred body (a value.Script or
	// value.Tuple, spec.md §4.6's DeferredValue) the Process trampoline
	// should compile and push as a child ProgramState before this Result
	// is handed back to the caller. It is only consulted on a non-YIELD
	// Code; a command that needs to both suspend to the host and defer
	// should set Next on the Result it returns from Resume instead.
	Next value.Value
}

// Ok builds a successful Result.
func Ok(v value.Value) Result { return Result{Code: OK, Value: v} }

// Errorf builds an ERROR Result carrying message as its value.
func Errorf(message string) Result { return Result{Code: ERROR, Value: value.NewStr(message)} }

// WithNext returns a copy of r with Next set to body, the deferred
// script or tuple the Process trampoline should run before r is
// observed by whatever is driving this Executor (spec.md §4.6).
func (r Result) WithNext(body value.Value) Result {
	r.Next = body
	return r
}
