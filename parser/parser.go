package parser

import (
	"fmt"
	"strconv"

	"github.com/mstepniowski/jspy/ast"
	"github.com/mstepniowski/jspy/lexer"
	"github.com/mstepniowski/jspy/runtime"
	"github.com/mstepniowski/jspy/token"
)

// Precedence levels for Pratt parsing
const (
	_ int = iota
	precComma
	precAssignment
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precCall
	precMember
)

type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	errors    []error
}

func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete source text, returning the first parse error
// if any occurred.
func Parse(source string) (*ast.Program, error) {
	p := New(source)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return program, nil
}

func (p *Parser) ParseProgram() (*ast.Program, []error) {
	program := &ast.Program{}
	for p.curToken.Type != token.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program, p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) expect(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected %s, got %q", tokenName(t), p.curToken.Literal)
	return false
}

func (p *Parser) addError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	err := fmt.Errorf("parse error at %d:%d: %s", p.curToken.Line, p.curToken.Column, msg)
	p.errors = append(p.errors, err)
}

// parseStatement dispatches to the appropriate statement parser.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.Var:
		return p.parseVariableDeclarationList()
	case token.LeftBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.nextToken()
		return &ast.EmptyStatement{}
	case token.If:
		return p.parseIfStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.Do:
		return p.parseDoWhileStatement()
	case token.Continue:
		p.nextToken()
		p.consumeSemicolon()
		return &ast.ContinueStatement{}
	case token.Break:
		p.nextToken()
		p.consumeSemicolon()
		return &ast.BreakStatement{}
	case token.Return:
		return p.parseReturnStatement()
	case token.Debugger:
		p.nextToken()
		p.consumeSemicolon()
		return &ast.DebuggerStatement{}
	default:
		return p.parseExpressionStatement()
	}
}

// ---------- Statement Parsers ----------

func (p *Parser) parseVariableDeclarationList() ast.Statement {
	list := &ast.VariableDeclarationList{}
	p.nextToken() // consume var

	for {
		decl := &ast.VariableDeclaration{Name: p.curToken.Literal}
		if !p.expect(token.Identifier) {
			break
		}
		if p.curTokenIs(token.Assign) {
			p.nextToken() // consume =
			decl.Initialiser = p.parseExpression(precComma)
		}
		list.Declarations = append(list.Declarations, decl)
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken() // consume comma
	}

	p.consumeSemicolon()
	return list
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{}
	p.nextToken() // consume {

	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(token.RightBrace)
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{}
	p.nextToken() // consume if
	p.expect(token.LeftParen)
	stmt.Condition = p.parseExpression(0)
	p.expect(token.RightParen)
	stmt.TrueStatement = p.parseStatement()

	// else binds to the nearest if
	if p.curTokenIs(token.Else) {
		p.nextToken()
		stmt.FalseStatement = p.parseStatement()
	} else {
		stmt.FalseStatement = &ast.EmptyStatement{}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{}
	p.nextToken() // consume while
	p.expect(token.LeftParen)
	stmt.Condition = p.parseExpression(0)
	p.expect(token.RightParen)
	stmt.Statement = p.parseStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	stmt := &ast.DoWhileStatement{}
	p.nextToken() // consume do
	stmt.Statement = p.parseStatement()
	p.expect(token.While)
	p.expect(token.LeftParen)
	stmt.Condition = p.parseExpression(0)
	p.expect(token.RightParen)
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{}
	p.nextToken() // consume return

	if !p.curTokenIs(token.Semicolon) && !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		stmt.Expression = p.parseExpression(0)
	}
	p.consumeSemicolon()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Expression: p.parseExpression(0)}
	// a function used as a statement needs no trailing semicolon
	if _, ok := stmt.Expression.(*ast.FunctionDefinition); ok && !p.curTokenIs(token.Semicolon) {
		return stmt
	}
	p.consumeSemicolon()
	return stmt
}

// ---------- Expression Parsing (Pratt) ----------

func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefixExpression()
	for {
		prec := p.infixPrecedence()
		if prec <= minPrec {
			break
		}
		left = p.parseInfixExpression(left, prec)
	}
	return left
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	switch p.curToken.Type {
	case token.Identifier:
		e := &ast.Identifier{Name: p.curToken.Literal}
		p.nextToken()
		return e
	case token.This:
		p.nextToken()
		return &ast.This{}
	case token.Number:
		return p.parseNumberLiteral()
	case token.String:
		e := &ast.Literal{Value: runtime.NewString(p.curToken.Literal)}
		p.nextToken()
		return e
	case token.True:
		p.nextToken()
		return &ast.Literal{Value: runtime.True}
	case token.False:
		p.nextToken()
		return &ast.Literal{Value: runtime.False}
	case token.LeftParen:
		p.nextToken()
		e := p.parseExpression(0)
		p.expect(token.RightParen)
		return e
	case token.LeftBracket:
		return p.parseArrayLiteral()
	case token.LeftBrace:
		return p.parseObjectLiteral()
	case token.Function:
		return p.parseFunctionDefinition()
	case token.New:
		return p.parseConstructor()
	case token.Not, token.BitwiseNot, token.Plus, token.Minus,
		token.Typeof, token.Void, token.Delete:
		op := p.curToken.Literal
		p.nextToken()
		return &ast.UnaryOp{Op: op, Operand: p.parseExpression(precUnary)}
	case token.Increment, token.Decrement:
		op := p.curToken.Literal
		p.nextToken()
		return &ast.UnaryOp{Op: op, Operand: p.parseExpression(precUnary)}
	default:
		p.addError("unexpected token %q", p.curToken.Literal)
		p.nextToken()
		return &ast.Literal{Value: runtime.Undefined}
	}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	lit := p.curToken.Literal
	p.nextToken()

	if len(lit) > 2 && (lit[1] == 'x' || lit[1] == 'X') {
		n, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			p.addError("invalid number literal %q", lit)
			return &ast.Literal{Value: runtime.NaN}
		}
		return &ast.Literal{Value: runtime.NewNumber(float64(n))}
	}
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.addError("invalid number literal %q", lit)
		return &ast.Literal{Value: runtime.NaN}
	}
	return &ast.Literal{Value: runtime.NewNumber(n)}
}

// parseArrayLiteral keeps an entry per element slot, nil for empty
// slots. Every comma opens a slot, so [,] carries two empty slots and
// [1, 2,] carries an empty third one; evaluation later drops a single
// trailing empty slot.
func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{}
	p.nextToken() // consume [

	for !p.curTokenIs(token.RightBracket) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.Comma) {
			arr.Items = append(arr.Items, nil)
			p.nextToken()
			if p.curTokenIs(token.RightBracket) {
				arr.Items = append(arr.Items, nil)
			}
			continue
		}
		arr.Items = append(arr.Items, p.parseExpression(precComma))
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken() // consume comma
		if p.curTokenIs(token.RightBracket) {
			arr.Items = append(arr.Items, nil)
		}
	}
	p.expect(token.RightBracket)
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{}
	p.nextToken() // consume {

	for !p.curTokenIs(token.RightBrace) && !p.curTokenIs(token.EOF) {
		key, ok := p.parsePropertyName()
		if !ok {
			break
		}
		p.expect(token.Colon)
		value := p.parseExpression(precComma)
		obj.Properties = append(obj.Properties, ast.ObjectProperty{Key: key, Value: value})
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken() // consume comma
	}
	p.expect(token.RightBrace)
	return obj
}

// parsePropertyName accepts identifier, string and number property
// names, normalising numbers to their canonical string form.
func (p *Parser) parsePropertyName() (string, bool) {
	tok := p.curToken
	switch {
	case tok.Type == token.Identifier || tok.Type == token.String || isKeyword(tok.Type):
		p.nextToken()
		return tok.Literal, true
	case tok.Type == token.Number:
		lit := p.parseNumberLiteral().(*ast.Literal)
		return runtime.PropertyKey(lit.Value), true
	default:
		p.addError("invalid property name %q", tok.Literal)
		p.nextToken()
		return "", false
	}
}

func (p *Parser) parseFunctionDefinition() ast.Expression {
	fn := &ast.FunctionDefinition{}
	p.nextToken() // consume function

	if p.curTokenIs(token.Identifier) {
		fn.Name = p.curToken.Literal
		p.nextToken()
	}
	p.expect(token.LeftParen)
	for !p.curTokenIs(token.RightParen) && !p.curTokenIs(token.EOF) {
		name := p.curToken.Literal
		if !p.expect(token.Identifier) {
			break
		}
		fn.Parameters = append(fn.Parameters, name)
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken() // consume comma
	}
	p.expect(token.RightParen)

	if !p.curTokenIs(token.LeftBrace) {
		p.addError("expected function body, got %q", p.curToken.Literal)
		fn.Body = &ast.Block{}
		return fn
	}
	fn.Body = p.parseBlock()
	return fn
}

// parseConstructor parses a new expression. The callee parses at call
// precedence so that new F() takes the argument list itself rather
// than wrapping a call.
func (p *Parser) parseConstructor() ast.Expression {
	ctor := &ast.Constructor{}
	p.nextToken() // consume new
	ctor.Callee = p.parseExpression(precCall)
	if p.curTokenIs(token.LeftParen) {
		ctor.Arguments = p.parseArguments()
	}
	return ctor
}

func (p *Parser) infixPrecedence() int {
	switch p.curToken.Type {
	case token.Comma:
		return precComma
	case token.Assign, token.PlusAssign, token.MinusAssign, token.AsteriskAssign,
		token.SlashAssign, token.PercentAssign, token.AmpersandAssign,
		token.PipeAssign, token.CaretAssign, token.LeftShiftAssign,
		token.RightShiftAssign:
		return precAssignment
	case token.QuestionMark:
		return precConditional
	case token.Or:
		return precLogicalOr
	case token.And:
		return precLogicalAnd
	case token.BitwiseOr:
		return precBitwiseOr
	case token.BitwiseXor:
		return precBitwiseXor
	case token.BitwiseAnd:
		return precBitwiseAnd
	case token.Equal, token.NotEqual, token.StrictEqual, token.StrictNotEqual:
		return precEquality
	case token.LessThan, token.GreaterThan, token.LessThanOrEqual,
		token.GreaterThanOrEqual, token.In, token.Instanceof:
		return precRelational
	case token.LeftShift, token.RightShift:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Asterisk, token.Slash, token.Percent:
		return precMultiplicative
	case token.Increment, token.Decrement:
		return precPostfix
	case token.LeftParen:
		return precCall
	case token.Dot, token.LeftBracket:
		return precMember
	default:
		return 0
	}
}

func (p *Parser) parseInfixExpression(left ast.Expression, prec int) ast.Expression {
	switch p.curToken.Type {
	case token.Comma:
		return p.parseMultiExpression(left)
	case token.Assign, token.PlusAssign, token.MinusAssign, token.AsteriskAssign,
		token.SlashAssign, token.PercentAssign, token.AmpersandAssign,
		token.PipeAssign, token.CaretAssign, token.LeftShiftAssign,
		token.RightShiftAssign:
		op := p.curToken.Literal
		p.nextToken()
		// right-associative
		return &ast.Assignment{Op: op, Target: left, Value: p.parseExpression(precAssignment - 1)}
	case token.QuestionMark:
		return p.parseConditional(left)
	case token.Increment, token.Decrement:
		op := p.curToken.Literal
		p.nextToken()
		return &ast.UnaryOp{Op: op, Operand: left, Postfix: true}
	case token.LeftParen:
		return &ast.FunctionCall{Function: left, Arguments: p.parseArguments()}
	case token.Dot:
		p.nextToken()
		name, _ := p.parsePropertyName()
		return &ast.PropertyAccess{Object: left, Key: &ast.Literal{Value: runtime.NewString(name)}}
	case token.LeftBracket:
		p.nextToken()
		key := p.parseExpression(0)
		p.expect(token.RightBracket)
		return &ast.PropertyAccess{Object: left, Key: key}
	default:
		op := p.curToken.Literal
		p.nextToken()
		return &ast.BinaryOp{Op: op, Left: left, Right: p.parseExpression(prec)}
	}
}

func (p *Parser) parseMultiExpression(left ast.Expression) ast.Expression {
	multi := &ast.MultiExpression{Expressions: []ast.Expression{left}}
	for p.curTokenIs(token.Comma) {
		p.nextToken()
		multi.Expressions = append(multi.Expressions, p.parseExpression(precComma))
	}
	return multi
}

func (p *Parser) parseConditional(left ast.Expression) ast.Expression {
	p.nextToken() // consume ?
	trueValue := p.parseExpression(precComma)
	p.expect(token.Colon)
	falseValue := p.parseExpression(precAssignment - 1)
	return &ast.ConditionalOp{Condition: left, TrueValue: trueValue, FalseValue: falseValue}
}

func (p *Parser) parseArguments() []ast.Expression {
	p.nextToken() // consume (
	var args []ast.Expression

	for !p.curTokenIs(token.RightParen) && !p.curTokenIs(token.EOF) {
		args = append(args, p.parseExpression(precComma))
		if !p.curTokenIs(token.Comma) {
			break
		}
		p.nextToken() // consume comma
	}
	p.expect(token.RightParen)
	return args
}

// ---------- Helpers ----------

func (p *Parser) consumeSemicolon() {
	if p.curTokenIs(token.Semicolon) {
		p.nextToken()
		return
	}
	if p.curTokenIs(token.RightBrace) || p.curTokenIs(token.EOF) {
		return
	}
	p.addError("expected ; before %q", p.curToken.Literal)
}

func isKeyword(t token.TokenType) bool {
	for _, kw := range token.Keywords {
		if kw == t {
			return true
		}
	}
	return false
}

func tokenName(t token.TokenType) string {
	switch t {
	case token.EOF:
		return "end of input"
	case token.Identifier:
		return "identifier"
	case token.Number:
		return "number"
	case token.String:
		return "string"
	case token.LeftParen:
		return "("
	case token.RightParen:
		return ")"
	case token.LeftBrace:
		return "{"
	case token.RightBrace:
		return "}"
	case token.LeftBracket:
		return "["
	case token.RightBracket:
		return "]"
	case token.Semicolon:
		return ";"
	case token.Colon:
		return ":"
	case token.Comma:
		return ","
	case token.While:
		return "while"
	case token.Assign:
		return "="
	default:
		return fmt.Sprintf("token(%d)", t)
	}
}
