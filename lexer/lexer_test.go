package lexer

import (
	"testing"

	"github.com/mstepniowski/jspy/token"
)

type expectedToken struct {
	typ token.TokenType
	lit string
}

func checkTokens(t *testing.T, input string, expected []expectedToken) {
	t.Helper()
	l := New(input)
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Errorf("test[%d]: type wrong. expected=%d, got=%d (lit=%q)", i, exp.typ, tok.Type, tok.Literal)
		}
		if tok.Literal != exp.lit {
			t.Errorf("test[%d]: literal wrong. expected=%q, got=%q", i, exp.lit, tok.Literal)
		}
	}
}

func TestSingleCharTokens(t *testing.T) {
	checkTokens(t, `( ) { } [ ] ; : , ~ ? .`, []expectedToken{
		{token.LeftParen, "("},
		{token.RightParen, ")"},
		{token.LeftBrace, "{"},
		{token.RightBrace, "}"},
		{token.LeftBracket, "["},
		{token.RightBracket, "]"},
		{token.Semicolon, ";"},
		{token.Colon, ":"},
		{token.Comma, ","},
		{token.BitwiseNot, "~"},
		{token.QuestionMark, "?"},
		{token.Dot, "."},
		{token.EOF, ""},
	})
}

func TestOperators(t *testing.T) {
	checkTokens(t, `+ - * / % ++ -- == != === !== < > <= >= && || ! & | ^ << >>`, []expectedToken{
		{token.Plus, "+"},
		{token.Minus, "-"},
		{token.Asterisk, "*"},
		{token.Slash, "/"},
		{token.Percent, "%"},
		{token.Increment, "++"},
		{token.Decrement, "--"},
		{token.Equal, "=="},
		{token.NotEqual, "!="},
		{token.StrictEqual, "==="},
		{token.StrictNotEqual, "!=="},
		{token.LessThan, "<"},
		{token.GreaterThan, ">"},
		{token.LessThanOrEqual, "<="},
		{token.GreaterThanOrEqual, ">="},
		{token.And, "&&"},
		{token.Or, "||"},
		{token.Not, "!"},
		{token.BitwiseAnd, "&"},
		{token.BitwiseOr, "|"},
		{token.BitwiseXor, "^"},
		{token.LeftShift, "<<"},
		{token.RightShift, ">>"},
		{token.EOF, ""},
	})
}

func TestAssignmentOperators(t *testing.T) {
	checkTokens(t, `= += -= *= /= %= &= |= ^= <<= >>=`, []expectedToken{
		{token.Assign, "="},
		{token.PlusAssign, "+="},
		{token.MinusAssign, "-="},
		{token.AsteriskAssign, "*="},
		{token.SlashAssign, "/="},
		{token.PercentAssign, "%="},
		{token.AmpersandAssign, "&="},
		{token.PipeAssign, "|="},
		{token.CaretAssign, "^="},
		{token.LeftShiftAssign, "<<="},
		{token.RightShiftAssign, ">>="},
		{token.EOF, ""},
	})
}

func TestKeywords(t *testing.T) {
	checkTokens(t, `var function return if else while do break continue new delete typeof void in instanceof this true false debugger`, []expectedToken{
		{token.Var, "var"},
		{token.Function, "function"},
		{token.Return, "return"},
		{token.If, "if"},
		{token.Else, "else"},
		{token.While, "while"},
		{token.Do, "do"},
		{token.Break, "break"},
		{token.Continue, "continue"},
		{token.New, "new"},
		{token.Delete, "delete"},
		{token.Typeof, "typeof"},
		{token.Void, "void"},
		{token.In, "in"},
		{token.Instanceof, "instanceof"},
		{token.This, "this"},
		{token.True, "true"},
		{token.False, "false"},
		{token.Debugger, "debugger"},
		{token.EOF, ""},
	})
}

func TestIdentifiers(t *testing.T) {
	checkTokens(t, `foo _bar $baz ala2 varx`, []expectedToken{
		{token.Identifier, "foo"},
		{token.Identifier, "_bar"},
		{token.Identifier, "$baz"},
		{token.Identifier, "ala2"},
		{token.Identifier, "varx"},
		{token.EOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	checkTokens(t, `0 7 3.14 .5 1e3 2.5e-2 0xff 0xDEAD`, []expectedToken{
		{token.Number, "0"},
		{token.Number, "7"},
		{token.Number, "3.14"},
		{token.Number, ".5"},
		{token.Number, "1e3"},
		{token.Number, "2.5e-2"},
		{token.Number, "0xff"},
		{token.Number, "0xDEAD"},
		{token.EOF, ""},
	})
}

func TestStrings(t *testing.T) {
	checkTokens(t, `"ala ma kota" 'single' "esc\n\t\"" 'a\x41b' "A"`, []expectedToken{
		{token.String, "ala ma kota"},
		{token.String, "single"},
		{token.String, "esc\n\t\""},
		{token.String, "aAb"},
		{token.String, "A"},
		{token.EOF, ""},
	})
}

func TestComments(t *testing.T) {
	input := `1 // line comment
	/* block
	   comment */ 2`
	checkTokens(t, input, []expectedToken{
		{token.Number, "1"},
		{token.Number, "2"},
		{token.EOF, ""},
	})
}

func TestLineAndColumn(t *testing.T) {
	l := New("var x;\n  y = 1;")
	tok := l.NextToken() // var
	if tok.Line != 1 || tok.Column != 1 {
		t.Errorf("var: expected 1:1, got %d:%d", tok.Line, tok.Column)
	}
	l.NextToken() // x
	l.NextToken() // ;
	tok = l.NextToken() // y
	if tok.Line != 2 || tok.Column != 3 {
		t.Errorf("y: expected 2:3, got %d:%d", tok.Line, tok.Column)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closed`)
	tok := l.NextToken()
	if tok.Type != token.Illegal {
		t.Fatalf("expected Illegal token, got %d (%q)", tok.Type, tok.Literal)
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("x + 1;")
	if len(tokens) != 5 {
		t.Fatalf("expected 5 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		t.Errorf("last token should be EOF")
	}
}
