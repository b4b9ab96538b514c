package node_test

import (
	"fmt"
	"reflect"
	"testing"

	. "github.com/susji/cfold/node"
	"github.com/susji/cfold/testers/assert"
	"github.com/susji/cfold/testers/require"
)

func TestString(t *testing.T) {
	prog := Seq(
		Set("x", Plus(Int(1), Int(2))),
		&If{Cond: Lt(Var("x"), Int(3)), True: Set("y", Bool(true))},
		&While{Cond: Neq(Var("y"), Bool(false)), Body: Set("y", Bool(false))},
		&Return{Expr: Mul(Var("x"), Int(-2))},
	)
	assert.Equal(t,
		"(begin (assign x (+ 1 2)) (if (< x 3) (assign y #t) 'noelse) "+
			"(while (!= y #f) (assign y #f)) (return (* x -2)))",
		prog.String())
}

func TestInfix(t *testing.T) {
	type entry struct {
		e   Expr
		exp string
	}
	table := []entry{
		{Int(7), "7"},
		{Bool(false), "false"},
		{Plus(Var("x"), Int(2)), "(x+2)"},
		{Mul(Minus(Int(1), Int(2)), Plus(Var("x"), Int(1))), "(1-2)*(x+1)"},
		{Eq(Plus(Var("x"), Int(2)), Var("a")), "(x+2)==a"},
		{Lt(Var("i"), Int(10)), "i<10"},
	}
	for _, e := range table {
		assert.Equal(t, e.exp, Infix(e.e))
	}
}

func TestInfixUnknownOp(t *testing.T) {
	bad := &OpBinary{Op: 99, Left: Int(1), Right: Int(2)}
	assert.Equal(t, "1op992", Infix(bad))
	assert.False(t, bad.Op.Valid())
}

func TestWalk(t *testing.T) {
	prog := Seq(
		Set("x", Int(1)),
		&While{Cond: Lt(Var("x"), Int(3)), Body: Set("x", Plus(Var("x"), Int(1)))},
		&Return{Expr: Var("x")},
	)
	got := []string{}
	Walk(prog, func(n interface{}, depth int) bool {
		got = append(got, fmt.Sprintf("%d:%T", depth, n))
		return true
	})
	require.Equal(t, []string{
		"0:*node.Block",
		"1:*node.Assign",
		"2:*node.Variable",
		"2:*node.Const",
		"1:*node.While",
		"2:*node.OpBinary",
		"3:*node.Variable",
		"3:*node.Const",
		"2:*node.Assign",
		"3:*node.Variable",
		"3:*node.OpBinary",
		"4:*node.Variable",
		"4:*node.Const",
		"1:*node.Return",
		"2:*node.Variable",
	}, got)
}

func TestWalkPrune(t *testing.T) {
	prog := Seq(&If{Cond: Bool(true), True: Set("a", Int(1)), False: Set("b", Int(2))})
	n := 0
	Walk(prog, func(x interface{}, _ int) bool {
		n++
		_, isif := x.(*If)
		return !isif
	})
	assert.Equal(t, 2, n)
}

func TestStructuralEquality(t *testing.T) {
	a := Plus(Var("x"), Int(1))
	b := Plus(Var("x"), Int(1))
	assert.True(t, a != b)
	assert.True(t, reflect.DeepEqual(a, b))
	assert.False(t, reflect.DeepEqual(a, Plus(Var("x"), Int(2))))
}
