// Command lox is the tree-walking interpreter's entry point: run a
// file, print its AST, or drop into an interactive REPL. Mode dispatch
// and colored error reporting follow go-mix's main/main.go, ported from
// its raw os.Args switch onto cobra flags per this repo's ambient
// CLI-parsing stack.
package main

import (
	"fmt"
	"os"

	"github.com/akashmaji946/lox-mix/eval"
	"github.com/akashmaji946/lox-mix/internal/logx"
	"github.com/akashmaji946/lox-mix/lexer"
	"github.com/akashmaji946/lox-mix/parser"
	"github.com/akashmaji946/lox-mix/repl"
	"github.com/akashmaji946/lox-mix/resolver"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Exit codes per the CLI contract: success, compile/parse/resolve
// error, runtime error, CLI misuse.
const (
	exitOK          = 0
	exitUsage       = 64
	exitStaticError = 65
	exitRuntime     = 70
)

var (
	filePath string
	prompt   bool
	astPath  string
)

func main() {
	root := &cobra.Command{
		Use:           "lox",
		Short:         "Lox tree-walking interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().StringVar(&filePath, "file-path", "", "run the Lox source file at PATH")
	root.Flags().BoolVar(&prompt, "prompt", false, "start an interactive REPL")
	root.Flags().StringVar(&astPath, "ast", "", "print the AST for the Lox source file at PATH and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		os.Exit(exitUsage)
	}
}

func run(cmd *cobra.Command, args []string) error {
	switch {
	case astPath != "":
		os.Exit(printAST(astPath))
	case filePath != "":
		os.Exit(runFile(filePath))
	case prompt:
		if err := repl.New(os.Stdout).Start(); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			os.Exit(exitRuntime)
		}
	default:
		if err := repl.New(os.Stdout).Start(); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
			os.Exit(exitRuntime)
		}
	}
	return nil
}

func readSource(path string) (string, int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("lox: %v", err))
		return "", exitUsage, false
	}
	return string(data), 0, true
}

func printAST(path string) int {
	src, code, ok := readSource(path)
	if !ok {
		return code
	}
	toks := lexer.New(src).Tokens()
	stmts, err := parser.New(toks).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return exitStaticError
	}
	fmt.Print(parser.PrintAST(stmts))
	return exitOK
}

func runFile(path string) int {
	src, code, ok := readSource(path)
	if !ok {
		return code
	}

	toks := lexer.New(src).Tokens()
	stmts, perr := parser.New(toks).Parse()
	if perr != nil {
		fmt.Fprintln(os.Stderr, color.RedString(perr.Error()))
		return exitStaticError
	}

	locals, rerr := resolver.New().Resolve(stmts)
	if rerr != nil {
		fmt.Fprintln(os.Stderr, color.RedString(rerr.Error()))
		return exitStaticError
	}

	interp := eval.New(locals)
	if err := interp.Interpret(stmts); err != nil {
		logx.Get().WithError(err).Error("program aborted")
		fmt.Fprintln(os.Stderr, color.RedString(err.Error()))
		return exitRuntime
	}
	return exitOK
}
