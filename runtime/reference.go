package runtime

// Reference is an unresolved binding: a name plus the base it should
// resolve against. The base is either an Environment (identifier
// references), a Value (property references), or nil for the
// unresolvable case.
type Reference struct {
	Name string
	Env  *Environment
	Base *Value
}

// IsUnresolvable reports whether the reference has nothing to resolve
// against.
func (r *Reference) IsUnresolvable() bool {
	return r.Env == nil && (r.Base == nil || r.Base.Type == TypeUndefined)
}

// Operand is what evaluating an expression yields: either a plain
// value or a reference that can still be read from or written through.
type Operand struct {
	Value *Value
	Ref   *Reference
}

func ValueOperand(v *Value) Operand {
	return Operand{Value: v}
}

func RefOperand(r *Reference) Operand {
	return Operand{Ref: r}
}

// GetValue dereferences an operand. Plain values pass through;
// environment references look the name up the scope chain; property
// references read the key off the base, yielding Undefined for absent
// keys. Unresolvable references fail with ReferenceError and property
// references over primitives with TypeError.
func GetValue(op Operand) (*Value, error) {
	if op.Ref == nil {
		return op.Value, nil
	}
	r := op.Ref
	if r.Env != nil {
		return r.Env.Get(r.Name)
	}
	if r.IsUnresolvable() {
		return nil, NewReferenceError("%s is not defined", r.Name)
	}
	switch r.Base.Type {
	case TypeObject, TypeArray:
		return r.Base.Object.Get(r.Name), nil
	default:
		return nil, NewTypeError("cannot read property %q of %s", r.Name, r.Base.Type)
	}
}

// PutValue writes through an operand. Only references are writable;
// environment references follow Set semantics, property references
// create or overwrite the key on the base.
func PutValue(op Operand, v *Value) error {
	if op.Ref == nil {
		return NewReferenceError("invalid assignment target")
	}
	r := op.Ref
	if r.Env != nil {
		r.Env.Set(r.Name, v)
		return nil
	}
	if r.IsUnresolvable() {
		return NewReferenceError("%s is not defined", r.Name)
	}
	switch r.Base.Type {
	case TypeObject, TypeArray:
		r.Base.Object.Set(r.Name, v)
		return nil
	default:
		return NewTypeError("cannot set property %q of %s", r.Name, r.Base.Type)
	}
}
