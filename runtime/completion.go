package runtime

// CompletionType classifies how a statement finished.
type CompletionType int

const (
	Normal CompletionType = iota
	Break
	Continue
	Return
)

func (t CompletionType) String() string {
	switch t {
	case Normal:
		return "normal"
	case Break:
		return "break"
	case Continue:
		return "continue"
	case Return:
		return "return"
	default:
		return "unknown"
	}
}

// Completion is the result of executing a statement. A nil Value means
// the empty completion value, which is distinct from Undefined: empty
// statements produce no value at all, so blocks skip them when
// tracking their result. Target is reserved for labelled control flow
// and stays empty.
type Completion struct {
	Type   CompletionType
	Value  *Value
	Target string
}

// NormalEmpty is the completion of statements that produce no value.
var NormalEmpty = Completion{Type: Normal}

func NormalCompletion(v *Value) Completion {
	return Completion{Type: Normal, Value: v}
}

// IsAbrupt reports whether the completion interrupts sequential
// execution.
func (c Completion) IsAbrupt() bool {
	return c.Type != Normal
}
