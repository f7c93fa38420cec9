package interpreter

import (
	"math"
	"strings"

	"github.com/mstepniowski/jspy/ast"
	"github.com/mstepniowski/jspy/runtime"
)

// evalValue evaluates an expression and dereferences the result.
func (i *Interpreter) evalValue(expr ast.Expression, env *runtime.Environment) (*runtime.Value, error) {
	op, err := i.evalExpression(expr, env)
	if err != nil {
		return nil, err
	}
	return runtime.GetValue(op)
}

// evalExpression evaluates an expression to an operand. Identifiers
// and property accesses stay references so assignment and the update
// operators can write through them; everything else collapses to a
// value.
func (i *Interpreter) evalExpression(expr ast.Expression, env *runtime.Environment) (runtime.Operand, error) {
	switch node := expr.(type) {
	case *ast.This:
		v, err := env.Get("this")
		if err != nil {
			return runtime.Operand{}, err
		}
		return runtime.ValueOperand(v), nil

	case *ast.Identifier:
		return runtime.RefOperand(&runtime.Reference{Name: node.Name, Env: env}), nil

	case *ast.Literal:
		return runtime.ValueOperand(node.Value), nil

	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(node, env)

	case *ast.ObjectLiteral:
		obj := runtime.NewObject()
		for _, prop := range node.Properties {
			v, err := i.evalValue(prop.Value, env)
			if err != nil {
				return runtime.Operand{}, err
			}
			obj.Set(prop.Key, v)
		}
		return runtime.ValueOperand(runtime.NewObjectValue(obj)), nil

	case *ast.PropertyAccess:
		base, err := i.evalValue(node.Object, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		key, err := i.evalValue(node.Key, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		ref := &runtime.Reference{Name: runtime.PropertyKey(key), Base: base}
		return runtime.RefOperand(ref), nil

	case *ast.Constructor:
		// construction is a stub: a fresh empty object, the callee
		// is not invoked
		return runtime.ValueOperand(runtime.NewObjectValue(runtime.NewObject())), nil

	case *ast.FunctionCall:
		v, err := i.evalFunctionCall(node, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		return runtime.ValueOperand(v), nil

	case *ast.UnaryOp:
		v, err := i.evalUnaryOp(node, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		return runtime.ValueOperand(v), nil

	case *ast.BinaryOp:
		v, err := i.evalBinaryOp(node, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		return runtime.ValueOperand(v), nil

	case *ast.ConditionalOp:
		cond, err := i.evalValue(node.Condition, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		branch := node.FalseValue
		if cond.ToBoolean() {
			branch = node.TrueValue
		}
		v, err := i.evalValue(branch, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		return runtime.ValueOperand(v), nil

	case *ast.Assignment:
		v, err := i.evalAssignment(node, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		return runtime.ValueOperand(v), nil

	case *ast.MultiExpression:
		var last runtime.Operand
		for _, e := range node.Expressions {
			op, err := i.evalExpression(e, env)
			if err != nil {
				return runtime.Operand{}, err
			}
			last = op
		}
		return last, nil

	case *ast.FunctionDefinition:
		return runtime.ValueOperand(i.createFunction(node, env)), nil

	default:
		return runtime.Operand{}, runtime.NewSyntaxError("unknown expression %T", expr)
	}
}

// evalArrayLiteral drops a single trailing empty slot and fills the
// remaining ones with Undefined.
func (i *Interpreter) evalArrayLiteral(node *ast.ArrayLiteral, env *runtime.Environment) (runtime.Operand, error) {
	items := node.Items
	if n := len(items); n > 0 && items[n-1] == nil {
		items = items[:n-1]
	}
	values := make([]*runtime.Value, len(items))
	for idx, item := range items {
		if item == nil {
			values[idx] = runtime.Undefined
			continue
		}
		v, err := i.evalValue(item, env)
		if err != nil {
			return runtime.Operand{}, err
		}
		values[idx] = v
	}
	return runtime.ValueOperand(runtime.NewArray(values)), nil
}

func (i *Interpreter) evalFunctionCall(node *ast.FunctionCall, env *runtime.Environment) (*runtime.Value, error) {
	callee, err := i.evalValue(node.Function, env)
	if err != nil {
		return nil, err
	}
	if !callee.IsCallable() {
		return nil, runtime.NewTypeError("%s is not a function", callee.ToString())
	}

	args := make([]*runtime.Value, len(node.Arguments))
	for idx, arg := range node.Arguments {
		v, err := i.evalValue(arg, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	if callee.Type == runtime.TypeNative {
		return callee.Native.Fn(nil, args)
	}
	return i.callFunction(callee.Fn, nil, args)
}

// callFunction applies a user function: a fresh environment parented
// on the captured scope, with the declared vars bound to Undefined,
// then the arguments array, then the parameters bound positionally.
// Later bindings shadow earlier ones, so a parameter named arguments
// wins over the array.
func (i *Interpreter) callFunction(fn *runtime.Function, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	body, ok := fn.Body.(*ast.Block)
	if !ok {
		return nil, runtime.NewTypeError("function body is not executable")
	}

	env := runtime.NewEnvironment(fn.Scope)
	for _, name := range fn.HoistedVars {
		env.Declare(name, runtime.Undefined)
	}
	env.Declare("arguments", runtime.NewArray(args))
	for _, name := range fn.Parameters {
		env.Declare(name, runtime.Undefined)
	}
	for idx, name := range fn.Parameters {
		if idx < len(args) {
			env.Declare(name, args[idx])
		}
	}
	if this != nil {
		env.Declare("this", this)
	}

	c, err := i.execStatements(body.Statements, env)
	if err != nil {
		return nil, err
	}
	// only a return carries a value out; any other completion,
	// abrupt or not, yields undefined
	if c.Type == runtime.Return {
		return c.Value, nil
	}
	return runtime.Undefined, nil
}

// createFunction builds a closure over the defining environment. A
// named function sees its own name through an intermediate scope, so
// the name never leaks outward.
func (i *Interpreter) createFunction(node *ast.FunctionDefinition, env *runtime.Environment) *runtime.Value {
	scope := env
	if node.Name != "" {
		scope = runtime.NewEnvironment(env)
	}
	fn := runtime.NewFunction(node.Parameters, node.Body, scope)
	v := runtime.NewFunctionValue(fn)
	if node.Name != "" {
		scope.Declare(node.Name, v)
	}
	return v
}

func (i *Interpreter) evalUnaryOp(node *ast.UnaryOp, env *runtime.Environment) (*runtime.Value, error) {
	op, err := i.evalExpression(node.Operand, env)
	if err != nil {
		return nil, err
	}
	value, err := runtime.GetValue(op)
	if err != nil {
		return nil, err
	}

	if node.Postfix {
		switch node.Op {
		case "++":
			if err := runtime.PutValue(op, runtime.NewNumber(value.ToNumber()+1)); err != nil {
				return nil, err
			}
			return value, nil
		case "--":
			if err := runtime.PutValue(op, runtime.NewNumber(value.ToNumber()-1)); err != nil {
				return nil, err
			}
			return value, nil
		default:
			return nil, runtime.NewSyntaxError("unsupported postfix operator %q", node.Op)
		}
	}

	switch node.Op {
	case "delete":
		return runtime.True, nil
	case "void":
		return runtime.Undefined, nil
	case "typeof":
		return runtime.NewString("object"), nil
	case "++":
		newValue := runtime.NewNumber(value.ToNumber() + 1)
		if err := runtime.PutValue(op, newValue); err != nil {
			return nil, err
		}
		return newValue, nil
	case "--":
		newValue := runtime.NewNumber(value.ToNumber() - 1)
		if err := runtime.PutValue(op, newValue); err != nil {
			return nil, err
		}
		return newValue, nil
	case "+":
		return runtime.NewNumber(value.ToNumber()), nil
	case "-":
		return runtime.NewNumber(-value.ToNumber()), nil
	case "~":
		return runtime.NewNumber(float64(^value.ToInt32())), nil
	case "!":
		return runtime.NewBool(!value.ToBoolean()), nil
	default:
		return nil, runtime.NewSyntaxError("unsupported unary operator %q", node.Op)
	}
}

func (i *Interpreter) evalBinaryOp(node *ast.BinaryOp, env *runtime.Environment) (*runtime.Value, error) {
	// && and || evaluate their right side only when needed
	if node.Op == "&&" || node.Op == "||" {
		left, err := i.evalValue(node.Left, env)
		if err != nil {
			return nil, err
		}
		if node.Op == "&&" && !left.ToBoolean() {
			return left, nil
		}
		if node.Op == "||" && left.ToBoolean() {
			return left, nil
		}
		return i.evalValue(node.Right, env)
	}

	left, err := i.evalValue(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalValue(node.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(node.Op, left, right)
}

func (i *Interpreter) evalAssignment(node *ast.Assignment, env *runtime.Environment) (*runtime.Value, error) {
	target, err := i.evalExpression(node.Target, env)
	if err != nil {
		return nil, err
	}
	if target.Ref == nil {
		return nil, runtime.NewReferenceError("invalid assignment target")
	}
	value, err := i.evalValue(node.Value, env)
	if err != nil {
		return nil, err
	}

	if node.Op != "=" {
		current, err := runtime.GetValue(target)
		if err != nil {
			return nil, err
		}
		value, err = applyBinaryOp(strings.TrimSuffix(node.Op, "="), current, value)
		if err != nil {
			return nil, err
		}
	}
	if err := runtime.PutValue(target, value); err != nil {
		return nil, err
	}
	return value, nil
}

func applyBinaryOp(op string, left, right *runtime.Value) (*runtime.Value, error) {
	switch op {
	case "*":
		return runtime.NewNumber(left.ToNumber() * right.ToNumber()), nil
	case "/":
		return runtime.NewNumber(left.ToNumber() / right.ToNumber()), nil
	case "%":
		return runtime.NewNumber(math.Mod(left.ToNumber(), right.ToNumber())), nil
	case "+":
		if left.Type == runtime.TypeString || right.Type == runtime.TypeString {
			return runtime.NewString(left.ToString() + right.ToString()), nil
		}
		return runtime.NewNumber(left.ToNumber() + right.ToNumber()), nil
	case "-":
		return runtime.NewNumber(left.ToNumber() - right.ToNumber()), nil
	case "<<":
		return runtime.NewNumber(float64(left.ToInt32() << (uint32(right.ToInt32()) & 31))), nil
	case ">>":
		return runtime.NewNumber(float64(left.ToInt32() >> (uint32(right.ToInt32()) & 31))), nil
	case "&":
		return runtime.NewNumber(float64(left.ToInt32() & right.ToInt32())), nil
	case "^":
		return runtime.NewNumber(float64(left.ToInt32() ^ right.ToInt32())), nil
	case "|":
		return runtime.NewNumber(float64(left.ToInt32() | right.ToInt32())), nil
	case "<", "<=", ">", ">=":
		return compareValues(op, left, right), nil
	case "==", "===":
		return runtime.NewBool(runtime.Equals(left, right)), nil
	case "!=", "!==":
		return runtime.NewBool(!runtime.Equals(left, right)), nil
	case "in", "instanceof":
		return runtime.False, nil
	default:
		return nil, runtime.NewSyntaxError("unsupported binary operator %q", op)
	}
}

// compareValues orders two strings lexicographically and anything else
// numerically; a NaN on either side makes every comparison false.
func compareValues(op string, left, right *runtime.Value) *runtime.Value {
	if left.Type == runtime.TypeString && right.Type == runtime.TypeString {
		switch op {
		case "<":
			return runtime.NewBool(left.Str < right.Str)
		case "<=":
			return runtime.NewBool(left.Str <= right.Str)
		case ">":
			return runtime.NewBool(left.Str > right.Str)
		default:
			return runtime.NewBool(left.Str >= right.Str)
		}
	}

	l, r := left.ToNumber(), right.ToNumber()
	if math.IsNaN(l) || math.IsNaN(r) {
		return runtime.False
	}
	switch op {
	case "<":
		return runtime.NewBool(l < r)
	case "<=":
		return runtime.NewBool(l <= r)
	case ">":
		return runtime.NewBool(l > r)
	default:
		return runtime.NewBool(l >= r)
	}
}
