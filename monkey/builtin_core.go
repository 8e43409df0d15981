// builtin_core.go — the core built-in functions.
//
// Every built-in checks its argument count before anything else and reports
// failures as *Error values. None of them mutate their arguments: rest and
// push return new arrays.
package monkey

import (
	"fmt"
	"io"
)

func (ip *Interpreter) registerCoreBuiltins() {
	for _, b := range coreBuiltins(ip.out) {
		ip.Core.Set(b.Name, b)
	}
}

func coreBuiltins(out io.Writer) []*Builtin {
	return []*Builtin{
		{Name: "len", Fn: builtinLen},
		{Name: "first", Fn: builtinFirst},
		{Name: "last", Fn: builtinLast},
		{Name: "rest", Fn: builtinRest},
		{Name: "push", Fn: builtinPush},
		{Name: "puts", Fn: builtinPuts(out)},
	}
}

func wrongArgCount(got, want int) *Error {
	return newError("wrong number of arguments. got=%d, want=%d", got, want)
}

// arrayArg unpacks the single array argument shared by first, last and rest.
func arrayArg(name string, args []Object) (*Array, *Error) {
	if len(args) != 1 {
		return nil, wrongArgCount(len(args), 1)
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return nil, newError("argument to '%s' must be ARRAY, got %s", name, args[0].Type())
	}
	return arr, nil
}

// len counts bytes for strings and elements for arrays.
func builtinLen(args ...Object) Object {
	if len(args) != 1 {
		return wrongArgCount(len(args), 1)
	}
	switch arg := args[0].(type) {
	case *String:
		return &Integer{Value: int64(len(arg.Value))}
	case *Array:
		return &Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("argument to 'len' not supported, got %s", args[0].Type())
	}
}

func builtinFirst(args ...Object) Object {
	arr, err := arrayArg("first", args)
	if err != nil {
		return err
	}
	if len(arr.Elements) == 0 {
		return NULL
	}
	return arr.Elements[0]
}

func builtinLast(args ...Object) Object {
	arr, err := arrayArg("last", args)
	if err != nil {
		return err
	}
	if n := len(arr.Elements); n > 0 {
		return arr.Elements[n-1]
	}
	return NULL
}

func builtinRest(args ...Object) Object {
	arr, err := arrayArg("rest", args)
	if err != nil {
		return err
	}
	n := len(arr.Elements)
	if n == 0 {
		return NULL
	}
	elems := make([]Object, n-1)
	copy(elems, arr.Elements[1:])
	return &Array{Elements: elems}
}

// push on an empty array yields null, not a one-element array.
func builtinPush(args ...Object) Object {
	if len(args) != 2 {
		return wrongArgCount(len(args), 2)
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("argument to 'push' must be ARRAY, got %s", args[0].Type())
	}
	n := len(arr.Elements)
	if n == 0 {
		return NULL
	}
	elems := make([]Object, n+1)
	copy(elems, arr.Elements)
	elems[n] = args[1]
	return &Array{Elements: elems}
}

func builtinPuts(out io.Writer) BuiltinFunction {
	return func(args ...Object) Object {
		for _, arg := range args {
			fmt.Fprintln(out, arg.Inspect())
		}
		return NULL
	}
}
