package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mstepniowski/jspy/builtins"
	"github.com/mstepniowski/jspy/interpreter"
	"github.com/mstepniowski/jspy/parser"
	"github.com/mstepniowski/jspy/runtime"
)

func main() {
	evalCode := flag.String("e", "", "evaluate inline JavaScript code")
	dumpAST := flag.Bool("ast", false, "print the parsed program instead of running it")
	flag.Parse()

	interp := interpreter.New()
	builtins.Install(interp.Globals(), os.Stdout, os.Stderr)

	var source string
	switch {
	case *evalCode != "":
		source = *evalCode
	case flag.NArg() > 0:
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
		source = string(data)
	default:
		repl(interp)
		return
	}

	if *dumpAST {
		program, err := parser.Parse(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(program.String())
		return
	}

	result, err := interp.Eval(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if result != nil && result.Type != runtime.TypeUndefined {
		fmt.Println(result.ToString())
	}
}

// repl reads statements line by line, sharing one global environment
// across inputs.
func repl(interp *interpreter.Interpreter) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			result, err := interp.Eval(line)
			switch {
			case err != nil:
				fmt.Fprintln(os.Stderr, err)
			case result.Type != runtime.TypeUndefined:
				fmt.Println(result.ToString())
			}
		}
		fmt.Print("> ")
	}
	fmt.Println()
}
