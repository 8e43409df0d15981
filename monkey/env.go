package monkey

// Environment is one lexical frame with a link to its enclosing frame.
// Frames are shared by pointer: a closure and the scope that defined it hold
// the same *Environment, and the garbage collector keeps a frame alive for as
// long as either does.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment creates a root frame.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment creates a child frame of outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Get walks the chain from this frame outwards; the innermost binding wins.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.store[name]; ok {
			return obj, true
		}
	}
	return nil, false
}

// Set binds name in this frame only. It shadows, and never updates, a binding
// of the same name in an outer frame.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Outer returns the enclosing frame, or nil for a root frame.
func (e *Environment) Outer() *Environment { return e.outer }

// Names lists the names bound directly in this frame.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.store))
	for k := range e.store {
		out = append(out, k)
	}
	return out
}
