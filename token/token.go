package token

type TokenType int

const (
	// Literals
	Illegal TokenType = iota
	EOF
	Identifier
	Number
	String

	// Operators
	Plus
	Minus
	Asterisk
	Slash
	Percent
	Assign
	PlusAssign
	MinusAssign
	AsteriskAssign
	SlashAssign
	PercentAssign
	AmpersandAssign
	PipeAssign
	CaretAssign
	LeftShiftAssign
	RightShiftAssign
	Equal
	NotEqual
	StrictEqual
	StrictNotEqual
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	And
	Or
	Not
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	BitwiseNot
	LeftShift
	RightShift
	Increment
	Decrement

	// Delimiters
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Semicolon
	Colon
	Comma
	Dot
	QuestionMark

	// Keywords
	Var
	Function
	Return
	If
	Else
	While
	Do
	Break
	Continue
	New
	Delete
	Typeof
	Void
	In
	Instanceof
	This
	True
	False
	Debugger
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var Keywords = map[string]TokenType{
	"var":        Var,
	"function":   Function,
	"return":     Return,
	"if":         If,
	"else":       Else,
	"while":      While,
	"do":         Do,
	"break":      Break,
	"continue":   Continue,
	"new":        New,
	"delete":     Delete,
	"typeof":     Typeof,
	"void":       Void,
	"in":         In,
	"instanceof": Instanceof,
	"this":       This,
	"true":       True,
	"false":      False,
	"debugger":   Debugger,
}

func LookupIdentifier(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return Identifier
}
