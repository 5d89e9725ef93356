// Command loxvm is the bytecode back end's entry point: compile and
// run a file, or drop into an interactive REPL over the stack VM.
// Mode dispatch and exit codes mirror cmd/lox's, retargeted at
// bytecode.Compile/bytecode.VM instead of the tree-walking pipeline.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/lox-mix/bytecode"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	exitOK          = 0
	exitUsage       = 64
	exitStaticError = 65
	exitRuntime     = 70
)

var (
	filePath string
	replMode bool
)

func main() {
	root := &cobra.Command{
		Use:           "loxvm",
		Short:         "Lox bytecode virtual machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().StringVar(&filePath, "file-path", "", "compile and run the Lox source file at PATH")
	root.Flags().BoolVar(&replMode, "repl", false, "start an interactive REPL")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		os.Exit(exitUsage)
	}
}

func run(cmd *cobra.Command, args []string) error {
	switch {
	case filePath != "":
		os.Exit(runFile(filePath))
	case replMode:
		os.Exit(startRepl())
	default:
		os.Exit(exitUsage)
	}
	return nil
}

func runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("loxvm: %v", err))
		return exitUsage
	}

	vm := bytecode.New(os.Stdout)
	return interpret(vm, string(data))
}

// interpret runs src on vm and maps its error (if any) to an exit
// code: a *bytecode.RuntimeError is a runtime fault (70); anything
// else (the compiler's aggregate of CompileErrors) is a static fault
// (65).
func interpret(vm *bytecode.VM, src string) int {
	err := vm.Interpret(src)
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
	if _, ok := err.(*bytecode.RuntimeError); ok {
		return exitRuntime
	}
	return exitStaticError
}

func startRepl() int {
	fmt.Fprintln(os.Stdout, color.CyanString("Lox bytecode VM REPL — Ctrl-D to exit."))

	rl, err := readline.New(color.GreenString("loxvm> "))
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return exitRuntime
	}
	defer rl.Close()

	vm := bytecode.New(os.Stdout)
	for {
		line, err := rl.Readline()
		if err == io.EOF {
			return exitOK
		}
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			return exitRuntime
		}
		if line == "" {
			continue
		}
		if err := vm.Interpret(line); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		}
	}
}
