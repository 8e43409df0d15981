// object.go — runtime value model.
//
// Object is a closed sum: the unexported marker method means only this package
// can add variants. Dispatch sites switch over all ten concrete kinds by name,
// so a new kind has to be added to each of them.
//
// ReturnValue and Error are signal kinds. The evaluator forwards them
// unchanged and never evaluates them further; ReturnValue is unwrapped once,
// at the function-call boundary (or at the top of a program).
package monkey

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// ObjectType names a runtime kind; it is also the text used in error messages
// ("type mismatch: INTEGER + BOOLEAN").
type ObjectType string

const (
	INTEGER_OBJ      ObjectType = "INTEGER"
	BOOLEAN_OBJ      ObjectType = "BOOLEAN"
	STRING_OBJ       ObjectType = "STRING"
	NULL_OBJ         ObjectType = "NULL"
	RETURN_VALUE_OBJ ObjectType = "RETURN_VALUE"
	ERROR_OBJ        ObjectType = "ERROR"
	FUNCTION_OBJ     ObjectType = "FUNCTION"
	BUILTIN_OBJ      ObjectType = "BUILTIN"
	ARRAY_OBJ        ObjectType = "ARRAY"
	HASH_OBJ         ObjectType = "HASH"
)

// Object is a Monkey runtime value.
type Object interface {
	Type() ObjectType
	// Inspect is the canonical text form echoed by the REPL and written by puts.
	Inspect() string
	object()
}

// Shared instances. Booleans are interned so that identity and value
// equality agree for them.
var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type Integer struct{ Value int64 }

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (*Integer) object()            {}

type Boolean struct{ Value bool }

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (*Boolean) object()            {}

type String struct{ Value string }

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
func (*String) object()            {}

// Null has exactly one instance, NULL.
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }
func (*Null) object()            {}

// ReturnValue marks a value travelling out of a function body.
type ReturnValue struct{ Value Object }

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }
func (*ReturnValue) object()             {}

// Error is the language's only error mechanism.
type Error struct{ Message string }

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }
func (*Error) object()            {}

// Function is a closure. Env is the environment that was active where the
// literal was evaluated; it is shared, never copied, so later rebindings in
// that frame are visible to the closure.
type Function struct {
	Parameters []*Identifier
	Body       *BlockStatement
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}
	return "fn(" + strings.Join(params, ", ") + ") {\n" + f.Body.String() + "\n}"
}
func (*Function) object() {}

// BuiltinFunction is the calling contract for native functions: evaluated
// arguments in, one Object out. Failures are returned as *Error.
type BuiltinFunction func(args ...Object) Object

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }
func (*Builtin) object()            {}

type Array struct{ Elements []Object }

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		parts = append(parts, e.Inspect())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*Array) object() {}

// ─────────────────────────────────── hashing ────────────────────────────────

// HashKey identifies a hashable value. Text carries the string itself so two
// strings whose FNV hashes collide still map to different keys.
type HashKey struct {
	Type  ObjectType
	Value uint64
	Text  string
}

// Hashable is implemented by the kinds allowed as hash keys.
type Hashable interface {
	Object
	HashKey() HashKey
}

func (i *Integer) HashKey() HashKey {
	return HashKey{Type: i.Type(), Value: uint64(i.Value)}
}

func (b *Boolean) HashKey() HashKey {
	var v uint64
	if b.Value {
		v = 1
	}
	return HashKey{Type: b.Type(), Value: v}
}

func (s *String) HashKey() HashKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s.Value))
	return HashKey{Type: s.Type(), Value: h.Sum64(), Text: s.Value}
}

type HashPair struct {
	Key   Object
	Value Object
}

// Hash maps hashable keys to values. Order records first insertion so that
// Inspect output is stable; it carries no language meaning.
type Hash struct {
	Pairs map[HashKey]HashPair
	Order []HashKey
}

// NewHash returns an empty hash.
func NewHash() *Hash {
	return &Hash{Pairs: map[HashKey]HashPair{}}
}

// Set inserts or replaces the value for key.
func (h *Hash) Set(key Hashable, value Object) {
	hk := key.HashKey()
	if _, exists := h.Pairs[hk]; !exists {
		h.Order = append(h.Order, hk)
	}
	h.Pairs[hk] = HashPair{Key: key, Value: value}
}

// Get looks key up; ok is false when it is absent.
func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	parts := make([]string, 0, len(h.Order))
	for _, hk := range h.Order {
		pair := h.Pairs[hk]
		parts = append(parts, pair.Key.Inspect()+": "+pair.Value.Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*Hash) object() {}

// ───────────────────────────────── helpers ──────────────────────────────────

func nativeBoolToBooleanObject(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func newError(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func isError(obj Object) bool {
	_, ok := obj.(*Error)
	return ok
}

// isTruthy: only false and null are falsy; 0, "" and [] are truthy.
func isTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Null:
		return false
	case *Boolean:
		return o.Value
	default:
		return true
	}
}

// objectsEqual implements == for every kind. Hashable kinds compare by value,
// null equals null, everything else compares by identity. Values of different
// kinds are never equal.
func objectsEqual(a, b Object) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Integer:
		return a.Value == b.(*Integer).Value
	case *Boolean:
		return a.Value == b.(*Boolean).Value
	case *String:
		return a.Value == b.(*String).Value
	case *Null:
		return true
	case *ReturnValue, *Error, *Function, *Builtin, *Array, *Hash:
		return a == b
	}
	return false
}
