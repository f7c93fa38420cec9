package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mstepniowski/jspy/ast"
	"github.com/mstepniowski/jspy/runtime"
)

// parseProgram parses source, failing the test on any parse error.
func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return program
}

// parseExpr parses a source consisting of one expression statement and
// returns its expression.
func parseExpr(t *testing.T, source string) ast.Expression {
	t.Helper()
	program := parseProgram(t, source)
	if len(program.Statements) != 1 {
		t.Fatalf("parse %q: expected 1 statement, got %d", source, len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("parse %q: expected expression statement, got %T", source, program.Statements[0])
	}
	return stmt.Expression
}

func expectAST(t *testing.T, got, want any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func num(n float64) *ast.Literal {
	return &ast.Literal{Value: runtime.NewNumber(n)}
}

func str(s string) *ast.Literal {
	return &ast.Literal{Value: runtime.NewString(s)}
}

func TestParseBinaryOp(t *testing.T) {
	expectAST(t, parseExpr(t, "1 + 2 * 7;"),
		&ast.BinaryOp{
			Op:   "+",
			Left: num(1),
			Right: &ast.BinaryOp{
				Op:    "*",
				Left:  num(2),
				Right: num(7),
			},
		})
}

func TestParseParens(t *testing.T) {
	expectAST(t, parseExpr(t, "(1 + 2) * 7;"),
		&ast.BinaryOp{
			Op: "*",
			Left: &ast.BinaryOp{
				Op:    "+",
				Left:  num(1),
				Right: num(2),
			},
			Right: num(7),
		})
}

func TestParseUnaryOp(t *testing.T) {
	expectAST(t, parseExpr(t, "+-1;"),
		&ast.UnaryOp{
			Op:      "+",
			Operand: &ast.UnaryOp{Op: "-", Operand: num(1)},
		})
}

func TestParsePrefixOp(t *testing.T) {
	expectAST(t, parseExpr(t, "++x;"),
		&ast.UnaryOp{Op: "++", Operand: &ast.Identifier{Name: "x"}})
}

func TestParsePostfixOp(t *testing.T) {
	expectAST(t, parseExpr(t, "x--;"),
		&ast.UnaryOp{Op: "--", Operand: &ast.Identifier{Name: "x"}, Postfix: true})
}

func TestParseCompoundAssignment(t *testing.T) {
	expectAST(t, parseExpr(t, "x /= 5 - 2;"),
		&ast.Assignment{
			Op:     "/=",
			Target: &ast.Identifier{Name: "x"},
			Value:  &ast.BinaryOp{Op: "-", Left: num(5), Right: num(2)},
		})
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	expectAST(t, parseExpr(t, "x = y = 1;"),
		&ast.Assignment{
			Op:     "=",
			Target: &ast.Identifier{Name: "x"},
			Value: &ast.Assignment{
				Op:     "=",
				Target: &ast.Identifier{Name: "y"},
				Value:  num(1),
			},
		})
}

func TestParseConditionalOp(t *testing.T) {
	expectAST(t, parseExpr(t, "a ? b : c;"),
		&ast.ConditionalOp{
			Condition:  &ast.Identifier{Name: "a"},
			TrueValue:  &ast.Identifier{Name: "b"},
			FalseValue: &ast.Identifier{Name: "c"},
		})
}

func TestParseMultiExpression(t *testing.T) {
	expectAST(t, parseExpr(t, "x = 7, x;"),
		&ast.MultiExpression{Expressions: []ast.Expression{
			&ast.Assignment{Op: "=", Target: &ast.Identifier{Name: "x"}, Value: num(7)},
			&ast.Identifier{Name: "x"},
		}})
}

func TestParseObjectLiteral(t *testing.T) {
	expectAST(t, parseExpr(t, `({7: [9, 10, "ala ma kota"], "ala ma kota": {3: 4}});`),
		&ast.ObjectLiteral{Properties: []ast.ObjectProperty{
			{Key: "7", Value: &ast.ArrayLiteral{Items: []ast.Expression{
				num(9), num(10), str("ala ma kota"),
			}}},
			{Key: "ala ma kota", Value: &ast.ObjectLiteral{Properties: []ast.ObjectProperty{
				{Key: "3", Value: num(4)},
			}}},
		}})
}

func TestParsePropertyAccess(t *testing.T) {
	expectAST(t, parseExpr(t, `o.a["b"];`),
		&ast.PropertyAccess{
			Object: &ast.PropertyAccess{
				Object: &ast.Identifier{Name: "o"},
				Key:    str("a"),
			},
			Key: str("b"),
		})
}

func TestParseFunctionExpression(t *testing.T) {
	expectAST(t, parseExpr(t, "function (x, y) { return x + y; }"),
		&ast.FunctionDefinition{
			Parameters: []string{"x", "y"},
			Body: &ast.Block{Statements: []ast.Statement{
				&ast.ReturnStatement{Expression: &ast.BinaryOp{
					Op:    "+",
					Left:  &ast.Identifier{Name: "x"},
					Right: &ast.Identifier{Name: "y"},
				}},
			}},
		})
}

func TestParseConstructor(t *testing.T) {
	expectAST(t, parseExpr(t, "new Point(1, 2);"),
		&ast.Constructor{
			Callee:    &ast.Identifier{Name: "Point"},
			Arguments: []ast.Expression{num(1), num(2)},
		})
}

func TestParseArrayElision(t *testing.T) {
	tests := []struct {
		source string
		want   *ast.ArrayLiteral
	}{
		{"[];", &ast.ArrayLiteral{}},
		{"[,];", &ast.ArrayLiteral{Items: []ast.Expression{nil, nil}}},
		{"[1, 2,];", &ast.ArrayLiteral{Items: []ast.Expression{num(1), num(2), nil}}},
		{"[1,,2];", &ast.ArrayLiteral{Items: []ast.Expression{num(1), nil, num(2)}}},
		{"[1, 2,,];", &ast.ArrayLiteral{Items: []ast.Expression{num(1), num(2), nil, nil}}},
	}
	for _, tt := range tests {
		expectAST(t, parseExpr(t, tt.source), tt.want)
	}
}

func TestParseBlock(t *testing.T) {
	program := parseProgram(t, "{ 1; 3; }")
	expectAST(t, program.Statements[0],
		&ast.Block{Statements: []ast.Statement{
			&ast.ExpressionStatement{Expression: num(1)},
			&ast.ExpressionStatement{Expression: num(3)},
		}})
}

func TestParseVariableStatement(t *testing.T) {
	program := parseProgram(t, "var x = 7, y = 5;")
	expectAST(t, program.Statements[0],
		&ast.VariableDeclarationList{Declarations: []*ast.VariableDeclaration{
			{Name: "x", Initialiser: num(7)},
			{Name: "y", Initialiser: num(5)},
		}})
}

func TestParseVariableStatementWithoutInitialiser(t *testing.T) {
	program := parseProgram(t, "var x, y = 5;")
	expectAST(t, program.Statements[0],
		&ast.VariableDeclarationList{Declarations: []*ast.VariableDeclaration{
			{Name: "x"},
			{Name: "y", Initialiser: num(5)},
		}})
}

func TestParseDanglingElse(t *testing.T) {
	program := parseProgram(t, "if (a) if (b) c; else d;")
	expectAST(t, program.Statements[0],
		&ast.IfStatement{
			Condition: &ast.Identifier{Name: "a"},
			TrueStatement: &ast.IfStatement{
				Condition:      &ast.Identifier{Name: "b"},
				TrueStatement:  &ast.ExpressionStatement{Expression: &ast.Identifier{Name: "c"}},
				FalseStatement: &ast.ExpressionStatement{Expression: &ast.Identifier{Name: "d"}},
			},
			FalseStatement: &ast.EmptyStatement{},
		})
}

func TestDeclaredVars(t *testing.T) {
	program := parseProgram(t, `
		var x = 1;
		if (true) { var y; } else { var q; }
		while (x) var z;
		var f = function () { var inner; };
	`)
	want := []string{"f", "q", "x", "y", "z"}
	expectAST(t, program.DeclaredVars(), want)
}

func TestParseErrors(t *testing.T) {
	for _, source := range []string{
		"var 1 = 2;",
		"(1 + 2",
		"if (x;",
		"do x; while x);",
		"{",
	} {
		if _, err := Parse(source); err == nil {
			t.Errorf("parse %q: expected error, got none", source)
		}
	}
}

func TestStringLiteralPrinting(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{`"ala";`, `"ala"`},
		{`'quote " inside';`, `"quote \" inside"`},
		{`"back\\slash";`, `"back\\slash"`},
		{`"tab\tnewline\n";`, `"tab\tnewline\n"`},
		{`"ctl\u0001";`, `"ctl\u0001"`},
		{`"emoji 😀";`, `"emoji 😀"`},
	}
	for _, tt := range tests {
		lit, ok := parseExpr(t, tt.source).(*ast.Literal)
		if !ok {
			t.Fatalf("parse %q: expected a literal", tt.source)
		}
		if got := lit.String(); got != tt.want {
			t.Errorf("String() of %s = %s, want %s", tt.source, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"1 + 2 * 7;",
		"(1 + 2) * 7;",
		"+-1;",
		"x /= 5 - 2;",
		"x = y = 1;",
		"var x = 7, y;",
		"if (x < 5) y; else z;",
		"if (a) if (b) c; else d;",
		"while (x < 5) ++x;",
		"do x--; while (x);",
		"{ 1; { 3; 2; } }",
		"{ 7; ; }",
		"[];",
		"[,];",
		"[1, 2,];",
		"[1,,2];",
		"[1, 2,,];",
		`({"a": 1, "b": [1, 2]});`,
		`o.a["b"];`,
		"a ? b : c;",
		"x = (1, 2, 3);",
		"f(1)(2);",
		"new Point(1, 2);",
		"typeof x;",
		"x++;",
		"--x;",
		"!x && y || z;",
		"this;",
		"debugger;",
		"var f = function (x, y) { return x + y; };",
		"var g = function fact(n) { return n < 2 ? 1 : n * fact(n - 1); };",
		"function () { return 4; 7; } ();",
		`"ala" + 'ma' + "kota";`,
		`"emoji 😀 and ctl\u0001 and tab\t";`,
		`({"k\n": 'v"q'});`,
	}
	for _, source := range sources {
		first := parseProgram(t, source)
		reparsed := parseProgram(t, first.String())
		if diff := cmp.Diff(first, reparsed); diff != "" {
			t.Errorf("round trip of %q via %q changed the tree (-first +reparsed):\n%s",
				source, first.String(), diff)
		}
	}
}
