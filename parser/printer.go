package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintAST renders a statement list as parenthesized S-expressions, the
// format the --ast flag prints (grounded on go-mix's print-visitor
// idiom, adapted from a Visitor interface to a type switch since Lox's
// AST is closed and never grows a new node kind at runtime).
func PrintAST(stmts []Stmt) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(printStmt(s))
		b.WriteByte('\n')
	}
	return b.String()
}

func parenthesize(name string, parts ...string) string {
	return "(" + name + " " + strings.Join(parts, " ") + ")"
}

// group parenthesizes items with no head symbol, e.g. a function's
// parameter list or a call's argument list: `(P1 P2 …)`.
func group(items []string) string {
	return "(" + strings.Join(items, " ") + ")"
}

func printExpr(e Expr) string {
	switch n := e.(type) {
	case *Assign:
		return parenthesize("=", n.Name.Lexeme, printExpr(n.Value))
	case *Binary:
		return parenthesize(n.Operator.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Call:
		args := make([]string, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, printExpr(a))
		}
		return parenthesize("call", printExpr(n.Callee), group(args))
	case *Get:
		return parenthesize(".", printExpr(n.Object), n.Name.Lexeme)
	case *Grouping:
		return parenthesize("group", printExpr(n.Inner))
	case *Literal:
		return printLiteral(n.Value)
	case *Logical:
		return parenthesize(n.Operator.Lexeme, printExpr(n.Left), printExpr(n.Right))
	case *Set:
		return parenthesize("=", printExpr(n.Object), n.Name.Lexeme, printExpr(n.Value))
	case *Super:
		return parenthesize("super", n.Method.Lexeme)
	case *This:
		return "this"
	case *Unary:
		return parenthesize(n.Operator.Lexeme, printExpr(n.Right))
	case *Variable:
		return n.Name.Lexeme
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func printLiteral(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func printStmt(s Stmt) string {
	switch n := s.(type) {
	case *ExpressionStmt:
		return parenthesize(";", printExpr(n.Expression))
	case *PrintStmt:
		return parenthesize("print", printExpr(n.Expression))
	case *VarStmt:
		if n.Initializer == nil {
			return parenthesize("var", n.Name.Lexeme)
		}
		return parenthesize("var", n.Name.Lexeme, "=", printExpr(n.Initializer))
	case *BlockStmt:
		parts := make([]string, 0, len(n.Statements))
		for _, st := range n.Statements {
			parts = append(parts, printStmt(st))
		}
		return parenthesize("block", parts...)
	case *IfStmt:
		if n.Else == nil {
			return parenthesize("if", printExpr(n.Condition), printStmt(n.Then))
		}
		return parenthesize("if-else", printExpr(n.Condition), printStmt(n.Then), printStmt(n.Else))
	case *WhileStmt:
		return parenthesize("while", printExpr(n.Condition), printStmt(n.Body))
	case *BreakStmt:
		return "break"
	case *FunctionStmt:
		params := make([]string, 0, len(n.Params))
		for _, p := range n.Params {
			params = append(params, p.Lexeme)
		}
		parts := make([]string, 0, len(n.Body)+2)
		parts = append(parts, n.Name.Lexeme, group(params))
		for _, st := range n.Body {
			parts = append(parts, printStmt(st))
		}
		return parenthesize("fun", parts...)
	case *ReturnStmt:
		if n.Value == nil {
			return "(return)"
		}
		return parenthesize("return", printExpr(n.Value))
	case *ClassStmt:
		parts := []string{n.Name.Lexeme}
		if n.Superclass != nil {
			parts = append(parts, "<"+n.Superclass.Name.Lexeme)
		}
		for _, m := range n.Methods {
			parts = append(parts, printStmt(m))
		}
		return parenthesize("class", parts...)
	default:
		return fmt.Sprintf("<unknown stmt %T>", s)
	}
}
