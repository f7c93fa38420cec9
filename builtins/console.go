// Package builtins provides host objects that programs can be given
// access to through interpreter bindings.
package builtins

import (
	"fmt"
	"io"
	"strings"

	"github.com/mstepniowski/jspy/runtime"
)

// NewConsole builds a console object. log writes to out, error to
// errOut; both stringify their arguments, join them with single
// spaces and append a newline. Either writer may be nil to discard.
func NewConsole(out, errOut io.Writer) *runtime.Value {
	console := runtime.NewObject()
	console.Set("log", runtime.NewNative("log", writeLine(out)))
	console.Set("error", runtime.NewNative("error", writeLine(errOut)))
	return runtime.NewObjectValue(console)
}

// Install declares a console binding writing to the given sinks in
// the environment.
func Install(env *runtime.Environment, out, errOut io.Writer) {
	env.Declare("console", NewConsole(out, errOut))
}

func writeLine(w io.Writer) runtime.NativeFunc {
	return func(this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if w == nil {
			return runtime.Undefined, nil
		}
		if _, err := fmt.Fprintln(w, formatArgs(args)); err != nil {
			return nil, err
		}
		return runtime.Undefined, nil
	}
}

func formatArgs(args []*runtime.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "undefined"
			continue
		}
		parts[i] = a.ToString()
	}
	return strings.Join(parts, " ")
}
