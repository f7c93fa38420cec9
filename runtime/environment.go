package runtime

// Environment is one link in a chain of lexical scopes. Closures keep
// their defining Environment by reference, so bindings written after
// capture stay visible.
type Environment struct {
	store map[string]*Value
	outer *Environment
}

func NewEnvironment(outer *Environment) *Environment {
	return &Environment{
		store: make(map[string]*Value),
		outer: outer,
	}
}

// Get retrieves a binding, walking up the scope chain.
func (e *Environment) Get(name string) (*Value, error) {
	if v, ok := e.store[name]; ok {
		return v, nil
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, NewReferenceError("%s is not defined", name)
}

// Set updates the binding in the nearest scope that declares it. When
// no scope in the chain declares the name, the binding is created at
// the root scope, so undeclared assignment leaks a global.
func (e *Environment) Set(name string, value *Value) {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = value
			return
		}
		if env.outer == nil {
			env.store[name] = value
			return
		}
	}
}

// Declare creates or overwrites a binding in this scope only.
func (e *Environment) Declare(name string, value *Value) {
	e.store[name] = value
}

// Has reports whether this scope itself declares the name.
func (e *Environment) Has(name string) bool {
	_, ok := e.store[name]
	return ok
}

// Outer returns the parent environment.
func (e *Environment) Outer() *Environment {
	return e.outer
}
