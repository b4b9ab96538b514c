// Package node contains the syntax trees of our small imperative language.
// There are two closed families of nodes: expressions and statements. Nodes
// carry no mutable state and equality is structural, so trees may be freely
// shared and compared with reflect.DeepEqual.
//
// There is no parser. Programs are built directly from these types, usually
// through the constructor helpers at the bottom of this file.
package node

import (
	"fmt"
	"strings"

	"github.com/susji/cfold/value"
)

// Expr is implemented by all expression nodes.
type Expr interface {
	String() string
	Expr()
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	String() string
	Stmt()
}

type Const struct {
	Value value.Value
}

// Variable refers to a program variable by name. There is no static scoping;
// names are resolved only by the analysis environment.
type Variable struct {
	Name string
}

type OpBinary struct {
	Op          KindOpBin
	Left, Right Expr
}

type Block struct {
	Value []Stmt
}

type Assign struct {
	To   *Variable
	What Expr
}

// If has a nil False when there is no else branch.
type If struct {
	Cond        Expr
	True, False Stmt
}

type While struct {
	Cond Expr
	Body Stmt
}

type Return struct {
	Expr Expr
}

type KindOpBin int

const (
	OPBIN_ADD = iota
	OPBIN_SUB
	OPBIN_MUL
	OPBIN_EQ
	OPBIN_NE
	OPBIN_LT
)

var opbinnames = [...]string{
	"+",
	"-",
	"*",
	"==",
	"!=",
	"<",
}

func (op KindOpBin) Valid() bool {
	return int(op) >= 0 && int(op) < len(opbinnames)
}

func (op KindOpBin) String() string {
	if !op.Valid() {
		return fmt.Sprintf("op%d", int(op))
	}
	return opbinnames[op]
}

func (n *Const) String() string {
	if n.Value.Kind == value.KIND_BOOL {
		if n.Value.Bool {
			return "#t"
		}
		return "#f"
	}
	return n.Value.String()
}

func (n *Variable) String() string {
	return n.Name
}

func (n *OpBinary) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Op, n.Left, n.Right)
}

func (n *Block) String() string {
	b := &strings.Builder{}
	b.WriteString("(begin")
	for _, stmt := range n.Value {
		b.WriteString(fmt.Sprintf(" %s", stmt))
	}
	b.WriteString(")")
	return b.String()
}

func (n *Assign) String() string {
	return fmt.Sprintf("(assign %s %s)", n.To, n.What)
}

func (n *If) String() string {
	b := &strings.Builder{}
	b.WriteString(fmt.Sprintf("(if %s", n.Cond))
	b.WriteString(fmt.Sprintf(" %s", n.True))
	if n.False != nil {
		b.WriteString(fmt.Sprintf(" %s", n.False))
	} else {
		b.WriteString(" 'noelse")
	}
	b.WriteString(")")
	return b.String()
}

func (n *While) String() string {
	return fmt.Sprintf("(while %s %s)", n.Cond, n.Body)
}

func (n *Return) String() string {
	return fmt.Sprintf("(return %s)", n.Expr)
}

func (n *Const) Expr()    {}
func (n *Variable) Expr() {}
func (n *OpBinary) Expr() {}

func (n *Block) Stmt()  {}
func (n *Assign) Stmt() {}
func (n *If) Stmt()     {}
func (n *While) Stmt()  {}
func (n *Return) Stmt() {}

// Infix renders an expression the way the graph renderers label nodes.
// Additive operations are parenthesized, everything else is printed flat.
func Infix(e Expr) string {
	switch t := e.(type) {
	case *Const:
		return t.Value.String()
	case *Variable:
		return t.Name
	case *OpBinary:
		s := Infix(t.Left) + t.Op.String() + Infix(t.Right)
		switch t.Op {
		case OPBIN_ADD, OPBIN_SUB:
			return "(" + s + ")"
		}
		return s
	case nil:
		return "<nil>"
	default:
		panic(fmt.Sprintf("unhandled expression: %T", e))
	}
}

// NodeCallback is called by Walk for each individual node encountered, which
// is either an Expr or a Stmt. The integer argument is the current recursion
// depth. NodeCallback has to return a boolean, which indicates whether to
// continue recursion for the present path.
type NodeCallback func(interface{}, int) bool

func walk(n interface{}, cb NodeCallback, depth int) {
	if !cb(n, depth) {
		return
	}
	sub := []interface{}{}
	a := func(n interface{}) {
		sub = append(sub, n)
	}
	switch t := n.(type) {
	case *OpBinary:
		a(t.Left)
		a(t.Right)
	case *Block:
		for _, stmt := range t.Value {
			a(stmt)
		}
	case *Assign:
		a(t.To)
		a(t.What)
	case *If:
		a(t.Cond)
		a(t.True)
		if t.False != nil {
			a(t.False)
		}
	case *While:
		a(t.Cond)
		a(t.Body)
	case *Return:
		a(t.Expr)
	default:
	}
	for _, n := range sub {
		walk(n, cb, depth+1)
	}
}

// Walk performs a pre-order traversal of a syntax tree defined by n.
func Walk(n interface{}, cb NodeCallback) {
	walk(n, cb, 0)
}

func Int(i int32) *Const {
	return &Const{Value: value.Int(i)}
}

func Bool(b bool) *Const {
	return &Const{Value: value.Bool(b)}
}

func Var(name string) *Variable {
	return &Variable{Name: name}
}

func binary(op KindOpBin, left, right Expr) *OpBinary {
	return &OpBinary{Op: op, Left: left, Right: right}
}

func Plus(left, right Expr) *OpBinary  { return binary(OPBIN_ADD, left, right) }
func Minus(left, right Expr) *OpBinary { return binary(OPBIN_SUB, left, right) }
func Mul(left, right Expr) *OpBinary   { return binary(OPBIN_MUL, left, right) }
func Eq(left, right Expr) *OpBinary    { return binary(OPBIN_EQ, left, right) }
func Neq(left, right Expr) *OpBinary   { return binary(OPBIN_NE, left, right) }
func Lt(left, right Expr) *OpBinary    { return binary(OPBIN_LT, left, right) }

func Seq(stmts ...Stmt) *Block {
	return &Block{Value: stmts}
}

func Set(name string, what Expr) *Assign {
	return &Assign{To: Var(name), What: what}
}
