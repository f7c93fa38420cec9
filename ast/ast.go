package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mstepniowski/jspy/runtime"
)

// Node is a syntax tree node. String renders a source form that parses
// back to an equal tree. DeclaredVars answers the hoisting query: the
// names bound by var declarations lexically inside the node, without
// descending into nested function bodies.
type Node interface {
	String() string
	DeclaredVars() []string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is a whole source text: a statement list executed in the
// global scope.
type Program struct {
	Statements []Statement
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

func (p *Program) DeclaredVars() []string {
	return unionVars(p.Statements)
}

// ---- Statements ----

type Block struct {
	Statements []Statement
}

func (b *Block) statementNode() {}
func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
func (b *Block) DeclaredVars() []string {
	return unionVars(b.Statements)
}

type VariableDeclaration struct {
	Name        string
	Initialiser Expression // nil when the declaration has no value
}

func (d *VariableDeclaration) statementNode() {}
func (d *VariableDeclaration) String() string {
	if d.Initialiser == nil {
		return d.Name
	}
	return d.Name + " = " + d.Initialiser.String()
}
func (d *VariableDeclaration) DeclaredVars() []string {
	return []string{d.Name}
}

type VariableDeclarationList struct {
	Declarations []*VariableDeclaration
}

func (l *VariableDeclarationList) statementNode() {}
func (l *VariableDeclarationList) String() string {
	parts := make([]string, len(l.Declarations))
	for i, d := range l.Declarations {
		parts[i] = d.String()
	}
	return "var " + strings.Join(parts, ", ") + ";"
}
func (l *VariableDeclarationList) DeclaredVars() []string {
	stmts := make([]Statement, len(l.Declarations))
	for i, d := range l.Declarations {
		stmts[i] = d
	}
	return unionVars(stmts)
}

type EmptyStatement struct{}

func (s *EmptyStatement) statementNode()         {}
func (s *EmptyStatement) String() string         { return ";" }
func (s *EmptyStatement) DeclaredVars() []string { return nil }

type ExpressionStatement struct {
	Expression Expression
}

func (s *ExpressionStatement) statementNode() {}
func (s *ExpressionStatement) String() string {
	return "(" + s.Expression.String() + ");"
}
func (s *ExpressionStatement) DeclaredVars() []string { return nil }

// IfStatement always carries both branches; the parser supplies an
// EmptyStatement when the source has no else.
type IfStatement struct {
	Condition      Expression
	TrueStatement  Statement
	FalseStatement Statement
}

func (s *IfStatement) statementNode() {}
func (s *IfStatement) String() string {
	return "if (" + s.Condition.String() + ") " + s.TrueStatement.String() +
		" else " + s.FalseStatement.String()
}
func (s *IfStatement) DeclaredVars() []string {
	return unionVars([]Statement{s.TrueStatement, s.FalseStatement})
}

type WhileStatement struct {
	Condition Expression
	Statement Statement
}

func (s *WhileStatement) statementNode() {}
func (s *WhileStatement) String() string {
	return "while (" + s.Condition.String() + ") " + s.Statement.String()
}
func (s *WhileStatement) DeclaredVars() []string {
	return s.Statement.DeclaredVars()
}

type DoWhileStatement struct {
	Statement Statement
	Condition Expression
}

func (s *DoWhileStatement) statementNode() {}
func (s *DoWhileStatement) String() string {
	return "do " + s.Statement.String() + " while (" + s.Condition.String() + ");"
}
func (s *DoWhileStatement) DeclaredVars() []string {
	return s.Statement.DeclaredVars()
}

type ContinueStatement struct{}

func (s *ContinueStatement) statementNode()         {}
func (s *ContinueStatement) String() string         { return "continue;" }
func (s *ContinueStatement) DeclaredVars() []string { return nil }

type BreakStatement struct{}

func (s *BreakStatement) statementNode()         {}
func (s *BreakStatement) String() string         { return "break;" }
func (s *BreakStatement) DeclaredVars() []string { return nil }

type ReturnStatement struct {
	Expression Expression // nil for a bare return
}

func (s *ReturnStatement) statementNode() {}
func (s *ReturnStatement) String() string {
	if s.Expression == nil {
		return "return;"
	}
	return "return (" + s.Expression.String() + ");"
}
func (s *ReturnStatement) DeclaredVars() []string { return nil }

type DebuggerStatement struct{}

func (s *DebuggerStatement) statementNode()         {}
func (s *DebuggerStatement) String() string         { return "debugger;" }
func (s *DebuggerStatement) DeclaredVars() []string { return nil }

// ---- Expressions ----

type This struct{}

func (e *This) expressionNode()        {}
func (e *This) String() string         { return "this" }
func (e *This) DeclaredVars() []string { return nil }

type Identifier struct {
	Name string
}

func (e *Identifier) expressionNode()        {}
func (e *Identifier) String() string         { return e.Name }
func (e *Identifier) DeclaredVars() []string { return nil }

// Literal holds the already-constructed value of a number, string or
// boolean literal.
type Literal struct {
	Value *runtime.Value
}

func (e *Literal) expressionNode() {}
func (e *Literal) String() string {
	if e.Value.Type == runtime.TypeString {
		return quoteString(e.Value.Str)
	}
	return e.Value.ToString()
}
func (e *Literal) DeclaredVars() []string { return nil }

// ArrayLiteral keeps one entry per element slot; a nil entry is an
// empty slot left by an elision. Evaluation drops a single trailing
// empty slot.
type ArrayLiteral struct {
	Items []Expression
}

func (e *ArrayLiteral) expressionNode() {}
func (e *ArrayLiteral) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		if item != nil {
			parts[i] = item.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (e *ArrayLiteral) DeclaredVars() []string { return nil }

// ObjectProperty is one key-value entry; the parser normalises the
// key to its canonical string form.
type ObjectProperty struct {
	Key   string
	Value Expression
}

// ObjectLiteral keeps properties in source order so later duplicate
// keys overwrite earlier ones.
type ObjectLiteral struct {
	Properties []ObjectProperty
}

func (e *ObjectLiteral) expressionNode() {}
func (e *ObjectLiteral) String() string {
	parts := make([]string, len(e.Properties))
	for i, p := range e.Properties {
		parts[i] = quoteString(p.Key) + ": " + p.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (e *ObjectLiteral) DeclaredVars() []string { return nil }

// PropertyAccess covers both o.name and o[expr]; the dot form carries
// its name as a string literal key.
type PropertyAccess struct {
	Object Expression
	Key    Expression
}

func (e *PropertyAccess) expressionNode() {}
func (e *PropertyAccess) String() string {
	return e.Object.String() + "[" + e.Key.String() + "]"
}
func (e *PropertyAccess) DeclaredVars() []string { return nil }

// Constructor is a new expression. Construction is a stub: the result
// is a fresh empty object and the callee is not invoked.
type Constructor struct {
	Callee    Expression
	Arguments []Expression
}

func (e *Constructor) expressionNode() {}
func (e *Constructor) String() string {
	return "new (" + e.Callee.String() + ")(" + joinExpressions(e.Arguments) + ")"
}
func (e *Constructor) DeclaredVars() []string { return nil }

type FunctionCall struct {
	Function  Expression
	Arguments []Expression
}

func (e *FunctionCall) expressionNode() {}
func (e *FunctionCall) String() string {
	return e.Function.String() + "(" + joinExpressions(e.Arguments) + ")"
}
func (e *FunctionCall) DeclaredVars() []string { return nil }

type UnaryOp struct {
	Op      string
	Operand Expression
	Postfix bool
}

func (e *UnaryOp) expressionNode() {}
func (e *UnaryOp) String() string {
	if e.Postfix {
		return "(" + e.Operand.String() + e.Op + ")"
	}
	return "(" + e.Op + " " + e.Operand.String() + ")"
}
func (e *UnaryOp) DeclaredVars() []string { return nil }

type BinaryOp struct {
	Op    string
	Left  Expression
	Right Expression
}

func (e *BinaryOp) expressionNode() {}
func (e *BinaryOp) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}
func (e *BinaryOp) DeclaredVars() []string { return nil }

type ConditionalOp struct {
	Condition  Expression
	TrueValue  Expression
	FalseValue Expression
}

func (e *ConditionalOp) expressionNode() {}
func (e *ConditionalOp) String() string {
	return "(" + e.Condition.String() + " ? " + e.TrueValue.String() +
		" : " + e.FalseValue.String() + ")"
}
func (e *ConditionalOp) DeclaredVars() []string { return nil }

// Assignment covers plain and compound assignment; Op keeps the full
// operator token, "=" or "+=" and friends.
type Assignment struct {
	Op     string
	Target Expression
	Value  Expression
}

func (e *Assignment) expressionNode() {}
func (e *Assignment) String() string {
	return "(" + e.Target.String() + " " + e.Op + " " + e.Value.String() + ")"
}
func (e *Assignment) DeclaredVars() []string { return nil }

// MultiExpression is the comma operator: every expression evaluates,
// the last one's value wins.
type MultiExpression struct {
	Expressions []Expression
}

func (e *MultiExpression) expressionNode() {}
func (e *MultiExpression) String() string {
	return "(" + joinExpressions(e.Expressions) + ")"
}
func (e *MultiExpression) DeclaredVars() []string { return nil }

// FunctionDefinition is a function expression. The optional name is
// visible inside the body only.
type FunctionDefinition struct {
	Name       string
	Parameters []string
	Body       *Block
}

func (e *FunctionDefinition) expressionNode() {}
func (e *FunctionDefinition) String() string {
	name := ""
	if e.Name != "" {
		name = " " + e.Name
	}
	return "(function" + name + "(" + strings.Join(e.Parameters, ", ") + ") " +
		e.Body.String() + ")"
}
func (e *FunctionDefinition) DeclaredVars() []string { return nil }

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// quoteString renders a string in double quotes using only escapes the
// lexer reads back to the same value. Runes outside the basic plane
// stay raw UTF-8, since a \uXXXX escape holds a single code unit.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

func unionVars(stmts []Statement) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range stmts {
		for _, name := range s.DeclaredVars() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
