// interpreter.go — public surface of the Monkey interpreter.
//
// OVERVIEW
// ========
// An Interpreter owns two environments:
//   - Core:   the built-in functions (len, first, last, rest, push, puts and
//     anything a host adds with RegisterBuiltin).
//   - Global: user program state; a child of Core.
//
// Entry points differ only in where bindings land:
//   - EvalPersistentSource evaluates in Global. The REPL uses it so `let`
//     bindings and function definitions accumulate across input units.
//   - EvalSource evaluates in a fresh child of Global, leaving Global as it was.
//   - EvalProgram / Eval evaluate exactly in the environment passed in.
//
// ERRORS
// ------
// Two separate channels:
//   - Syntax errors come back as a Go error (*ParseErrors) and the unit is not
//     evaluated at all.
//   - Runtime errors are *Error objects returned as the result Object. They
//     are values of the language, not Go errors, and are never raised.
package monkey

import (
	"io"
	"os"
)

// DefaultMaxCallDepth bounds nested user-function calls so runaway recursion
// surfaces as an *Error rather than exhausting the goroutine stack.
const DefaultMaxCallDepth = 10000

// Interpreter evaluates Monkey programs. It is not safe for concurrent use.
type Interpreter struct {
	Core   *Environment // built-ins; parent of Global
	Global *Environment // persistent program state

	out      io.Writer
	maxDepth int
	depth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets where puts writes. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) { ip.out = w }
}

// WithMaxCallDepth sets the call-depth limit; n <= 0 disables the check.
func WithMaxCallDepth(n int) Option {
	return func(ip *Interpreter) { ip.maxDepth = n }
}

// NewInterpreter returns an interpreter with the core built-ins installed and
// an empty Global.
func NewInterpreter(opts ...Option) *Interpreter {
	ip := &Interpreter{out: os.Stdout, maxDepth: DefaultMaxCallDepth}
	for _, opt := range opts {
		opt(ip)
	}
	ip.Core = NewEnvironment()
	ip.Global = NewEnclosedEnvironment(ip.Core)
	ip.registerCoreBuiltins()
	return ip
}

// EvalPersistentSource parses src and evaluates it in Global.
func (ip *Interpreter) EvalPersistentSource(src string) (Object, error) {
	prog, perr := ParseSource(src)
	if perr != nil {
		return nil, perr
	}
	return ip.EvalProgram(prog, ip.Global), nil
}

// EvalSource parses src and evaluates it in a fresh child of Global.
func (ip *Interpreter) EvalSource(src string) (Object, error) {
	prog, perr := ParseSource(src)
	if perr != nil {
		return nil, perr
	}
	return ip.EvalProgram(prog, NewEnclosedEnvironment(ip.Global)), nil
}

// EvalProgram evaluates a parsed program in env. A top-level return yields
// its value. The result is never a *ReturnValue.
func (ip *Interpreter) EvalProgram(prog *Program, env *Environment) Object {
	return ip.Eval(prog, env)
}

// Apply calls a *Function or *Builtin with already evaluated arguments.
func (ip *Interpreter) Apply(fn Object, args []Object) Object {
	return ip.applyFunction(fn, args)
}

// RegisterBuiltin installs a native function in Core under name. Programs see
// it like any other built-in; a Global binding of the same name shadows it.
func (ip *Interpreter) RegisterBuiltin(name string, fn BuiltinFunction) {
	ip.Core.Set(name, &Builtin{Name: name, Fn: fn})
}

//// END_OF_PUBLIC
