// Package bytecode implements Helena's stack-based bytecode compiler and
// instruction set (spec.md §4.4): the Compiler lowers a checked Script
// into a flat Program of OpCodes plus a constant pool, for the executor
// in internal/exec to run. Every OpCode const carries Format/Stack
// doc-comment annotations describing its operand and stack effect.
package bytecode

// OpCode identifies one Helena bytecode instruction. Rather than a
// fixed-width instruction encoding, OpCodes here are tagged union nodes
// in a Go slice program - Helena's programs are small and optimize for
// compiler/executor simplicity over memory density.
type OpCode byte

const (
	// PUSH_NIL pushes the nil value.
	// Format: PUSH_NIL
	// Stack: [] -> [nil]
	PUSH_NIL OpCode = iota

	// PUSH_CONSTANT pushes constants[operand].
	// Format: PUSH_CONSTANT index
	// Stack: [] -> [value]
	PUSH_CONSTANT

	// OPEN_FRAME opens a new stack frame, marking the current stack depth
	// as the frame's start so CLOSE_FRAME knows where to collect from.
	// Format: OPEN_FRAME
	// Stack: [] -> []
	OPEN_FRAME

	// CLOSE_FRAME collects every value pushed since the matching
	// OPEN_FRAME into the "last closed frame" (spec.md §4.4): the values
	// are removed from the operand stack but remembered, so later
	// opcodes that read a frame's contents (JOIN_STRINGS, SELECT_KEYS,
	// SELECT_RULES, EVALUATE_SENTENCE, MAKE_TUPLE) don't need it
	// re-pushed.
	// Format: CLOSE_FRAME
	// Stack: [v1 .. vN] -> []  (last closed frame := [v1 .. vN])
	CLOSE_FRAME

	// RESOLVE_VALUE resolves the top-of-stack value as a variable name
	// via the active VariableResolver, replacing it with the resolved
	// value.
	// Format: RESOLVE_VALUE
	// Stack: [name] -> [value]
	RESOLVE_VALUE

	// EXPAND_VALUE spreads a top-of-stack tuple's elements directly onto
	// the stack in its place (spec.md's `$*var` form); any other value is
	// left untouched.
	// Format: EXPAND_VALUE
	// Stack: [tuple] -> [v1 .. vN]  (no-op if top is not a tuple)
	EXPAND_VALUE

	// SET_SOURCE wraps the top-of-stack value as a QualifiedValue with an
	// empty selector list, the starting point for the SELECT_* chain that
	// follows in a qualified word.
	// Format: SET_SOURCE
	// Stack: [value] -> [qualified(value, [])]
	SET_SOURCE

	// SELECT_INDEX pops an index and a target; if the target is a
	// QualifiedValue, appends an IndexedSelector to it and pushes it back,
	// otherwise applies the selector immediately and pushes the result.
	// Format: SELECT_INDEX
	// Stack: [target, index] -> [selected]
	SELECT_INDEX

	// SELECT_KEYS takes the last closed frame as the key list and
	// pops a target; behaves like SELECT_INDEX with a KeyedSelector,
	// coalescing with the target's trailing keyed selector when it is
	// already a QualifiedValue.
	// Format: SELECT_KEYS
	// Stack: [target] -> [selected]  (consumes last closed frame as keys)
	SELECT_KEYS

	// SELECT_RULES takes the last closed frame as a rule list, pops a
	// target, and asks the active SelectorResolver to turn the rules into
	// a Selector before applying (or appending) it.
	// Format: SELECT_RULES
	// Stack: [target] -> [selected]  (consumes last closed frame as rules)
	SELECT_RULES

	// EVALUATE_SENTENCE evaluates the last closed frame as a command
	// sentence: the first value names a command (resolved via the
	// active CommandResolver), the rest are its arguments. The Result is
	// stored in ProgramState.LastResult rather than pushed, so that
	// intermediate sentences in a script don't leave values stranded on
	// the operand stack; PUSH_RESULT retrieves it when a script's value
	// is actually needed.
	// Format: EVALUATE_SENTENCE
	// Stack: [] -> []  (consumes last closed frame; sets LastResult)
	EVALUATE_SENTENCE

	// PUSH_RESULT pushes the value carried by the Executor's last
	// produced Result (spec.md §4.7), letting a sentence made only of a
	// nested script/expression yield that script's value back to its
	// caller.
	// Format: PUSH_RESULT
	// Stack: [] -> [value]
	PUSH_RESULT

	// JOIN_STRINGS joins the last closed frame's values (stringified) in
	// order into a single string value, for compound words.
	// Format: JOIN_STRINGS
	// Stack: [] -> [string]  (consumes last closed frame)
	JOIN_STRINGS

	// MAKE_TUPLE builds a tuple value from the last closed frame.
	// Format: MAKE_TUPLE
	// Stack: [] -> [tuple]  (consumes last closed frame)
	MAKE_TUPLE
)

var opCodeNames = [...]string{
	PUSH_NIL:          "PUSH_NIL",
	PUSH_CONSTANT:     "PUSH_CONSTANT",
	OPEN_FRAME:        "OPEN_FRAME",
	CLOSE_FRAME:       "CLOSE_FRAME",
	RESOLVE_VALUE:     "RESOLVE_VALUE",
	EXPAND_VALUE:      "EXPAND_VALUE",
	SET_SOURCE:        "SET_SOURCE",
	SELECT_INDEX:      "SELECT_INDEX",
	SELECT_KEYS:       "SELECT_KEYS",
	SELECT_RULES:      "SELECT_RULES",
	EVALUATE_SENTENCE: "EVALUATE_SENTENCE",
	PUSH_RESULT:       "PUSH_RESULT",
	JOIN_STRINGS:      "JOIN_STRINGS",
	MAKE_TUPLE:        "MAKE_TUPLE",
}

// String renders the opcode mnemonic, used by disassembly and tracing.
func (op OpCode) String() string {
	if int(op) < len(opCodeNames) {
		return opCodeNames[op]
	}
	return "UNKNOWN"
}
