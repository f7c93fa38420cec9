package runtime

// Body is the executable body of a user function. The concrete type
// lives with the syntax tree; the runtime only needs the hoisting
// query.
type Body interface {
	DeclaredVars() []string
}

// Function is a closure: parameter names, a shared reference to the
// body, and the Environment captured at the point of definition.
// HoistedVars is computed once from the body so every call can
// pre-bind the declared names without re-walking the tree.
type Function struct {
	Parameters  []string
	Body        Body
	Scope       *Environment
	HoistedVars []string
}

func NewFunction(parameters []string, body Body, scope *Environment) *Function {
	return &Function{
		Parameters:  parameters,
		Body:        body,
		Scope:       scope,
		HoistedVars: body.DeclaredVars(),
	}
}

// NativeFunc is the host-side signature of a native function. It
// receives the caller-supplied this value (possibly nil) and the
// argument values directly, bypassing the environment machinery.
type NativeFunc func(this *Value, args []*Value) (*Value, error)

// NativeFunction is an opaque host callback with a name for display.
type NativeFunction struct {
	Name string
	Fn   NativeFunc
}
