package interpreter

import (
	"github.com/mstepniowski/jspy/ast"
	"github.com/mstepniowski/jspy/parser"
	"github.com/mstepniowski/jspy/runtime"
)

// Interpreter owns a global environment and evaluates programs against
// it. Successive Eval calls share the globals, so host bindings and
// leaked variables persist between runs.
type Interpreter struct {
	globals *runtime.Environment
}

func New() *Interpreter {
	return &Interpreter{globals: runtime.NewEnvironment(nil)}
}

// Globals exposes the top-level environment, mostly for inspecting
// program state after a run.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// Bind installs a host value as a global binding.
func (i *Interpreter) Bind(name string, v *runtime.Value) {
	i.globals.Declare(name, v)
}

// Eval parses and runs a source text, returning the value of the last
// value-producing statement, or Undefined when there is none.
func (i *Interpreter) Eval(source string) (*runtime.Value, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return i.Run(program)
}

// Run executes a parsed program at global scope. Declared vars hoist
// into the globals before the first statement executes; bindings that
// already exist keep their values.
func (i *Interpreter) Run(program *ast.Program) (*runtime.Value, error) {
	for _, name := range program.DeclaredVars() {
		if !i.globals.Has(name) {
			i.globals.Declare(name, runtime.Undefined)
		}
	}

	c, err := i.execStatements(program.Statements, i.globals)
	if err != nil {
		return nil, err
	}
	// an abrupt completion escaping the program simply ends it, the
	// run yields whatever value the completion carries
	if c.Value == nil {
		return runtime.Undefined, nil
	}
	return c.Value, nil
}

func (i *Interpreter) execStatement(stmt ast.Statement, env *runtime.Environment) (runtime.Completion, error) {
	switch node := stmt.(type) {
	case *ast.Block:
		// blocks do not open a scope, only functions do
		return i.execStatements(node.Statements, env)

	case *ast.VariableDeclarationList:
		for _, decl := range node.Declarations {
			if decl.Initialiser == nil {
				continue
			}
			v, err := i.evalValue(decl.Initialiser, env)
			if err != nil {
				return runtime.NormalEmpty, err
			}
			env.Set(decl.Name, v)
		}
		return runtime.NormalEmpty, nil

	case *ast.EmptyStatement:
		return runtime.NormalEmpty, nil

	case *ast.ExpressionStatement:
		v, err := i.evalValue(node.Expression, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		return runtime.NormalCompletion(v), nil

	case *ast.IfStatement:
		cond, err := i.evalValue(node.Condition, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		if cond.ToBoolean() {
			return i.execStatement(node.TrueStatement, env)
		}
		return i.execStatement(node.FalseStatement, env)

	case *ast.WhileStatement:
		return i.execWhile(node, env)

	case *ast.DoWhileStatement:
		return i.execDoWhile(node, env)

	case *ast.ContinueStatement:
		return runtime.Completion{Type: runtime.Continue}, nil

	case *ast.BreakStatement:
		return runtime.Completion{Type: runtime.Break}, nil

	case *ast.ReturnStatement:
		value := runtime.Undefined
		if node.Expression != nil {
			v, err := i.evalValue(node.Expression, env)
			if err != nil {
				return runtime.NormalEmpty, err
			}
			value = v
		}
		return runtime.Completion{Type: runtime.Return, Value: value}, nil

	case *ast.DebuggerStatement:
		return runtime.NormalEmpty, nil

	default:
		return runtime.NormalEmpty, runtime.NewSyntaxError("unknown statement %T", stmt)
	}
}

// execStatements runs a statement list, propagating abrupt completions
// immediately and otherwise carrying the last non-empty value.
func (i *Interpreter) execStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Completion, error) {
	var result *runtime.Value
	for _, stmt := range stmts {
		c, err := i.execStatement(stmt, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		if c.IsAbrupt() {
			return c, nil
		}
		if c.Value != nil {
			result = c.Value
		}
	}
	return runtime.Completion{Type: runtime.Normal, Value: result}, nil
}

func (i *Interpreter) execWhile(node *ast.WhileStatement, env *runtime.Environment) (runtime.Completion, error) {
	var result *runtime.Value
	for {
		cond, err := i.evalValue(node.Condition, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		if !cond.ToBoolean() {
			return runtime.Completion{Type: runtime.Normal, Value: result}, nil
		}
		c, err := i.execStatement(node.Statement, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		if c.Value != nil {
			result = c.Value
		}
		if c.Type == runtime.Break {
			return runtime.Completion{Type: runtime.Normal, Value: result}, nil
		}
		if c.IsAbrupt() && c.Type != runtime.Continue {
			return c, nil
		}
	}
}

func (i *Interpreter) execDoWhile(node *ast.DoWhileStatement, env *runtime.Environment) (runtime.Completion, error) {
	var result *runtime.Value
	for {
		c, err := i.execStatement(node.Statement, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		if c.Value != nil {
			result = c.Value
		}
		if c.Type == runtime.Break {
			return runtime.Completion{Type: runtime.Normal, Value: result}, nil
		}
		if c.IsAbrupt() && c.Type != runtime.Continue {
			return c, nil
		}
		cond, err := i.evalValue(node.Condition, env)
		if err != nil {
			return runtime.NormalEmpty, err
		}
		if !cond.ToBoolean() {
			return runtime.Completion{Type: runtime.Normal, Value: result}, nil
		}
	}
}
