// ast.go — expression trees produced by the parser.
//
// The AST is a strict tree: every node is owned by exactly one parent and is
// immutable once built. There are no statement nodes; a program is simply an
// ordered list of top-level expressions.
package spemath

import (
	"strconv"
	"strings"
)

// Expr is implemented by every AST node.
type Expr interface {
	exprNode()
	String() string
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
}

// Unary is a prefix "+" or "-" applied to an operand.
type Unary struct {
	Op      TokenType
	Operand Expr
}

// Binary is an infix operation. Implicit multiplication produces an
// ordinary Binary with Op == MULT.
type Binary struct {
	Left  Expr
	Op    TokenType
	Right Expr
}

// Assign binds the value of an expression to a name.
type Assign struct {
	Target string
	Value  Expr
}

// Call applies a callee to an ordered argument list.
type Call struct {
	Callee Expr
	Args   []Expr
}

// FuncDef is a single-expression function definition, written as a call
// shape on the left of "=": f(x, y) = body.
type FuncDef struct {
	Name   string
	Params []string
	Body   Expr
}

func (*NumberLit) exprNode() {}
func (*Ident) exprNode()     {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Assign) exprNode()    {}
func (*Call) exprNode()      {}
func (*FuncDef) exprNode()   {}

func (n *NumberLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *Ident) String() string { return n.Name }

func (n *Unary) String() string {
	return "(" + Token{Type: n.Op}.String() + n.Operand.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + Token{Type: n.Op}.String() + " " + n.Right.String() + ")"
}

func (n *Assign) String() string {
	return n.Target + " = " + n.Value.String()
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func (n *FuncDef) String() string {
	return n.Name + "(" + strings.Join(n.Params, ", ") + ") = " + n.Body.String()
}
