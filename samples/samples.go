// Package samples has a handful of named programs for demonstrating and
// testing the folding pipeline.
package samples

import (
	"sort"

	. "github.com/susji/cfold/node"
)

type Sample struct {
	Name string
	Doc  string
	Prog Stmt
}

var all = []*Sample{
	{
		Name: "demo",
		Doc:  "the demonstration program: a loop around a conditional",
		Prog: Seq(
			Set("x", Int(125)),
			Set("a", Mul(Minus(Int(1), Int(2)), Plus(Var("x"), Int(1)))),
			&While{
				Cond: Eq(Plus(Var("x"), Int(2)), Plus(Var("a"), Int(5))),
				Body: &If{
					Cond:  Var("a"),
					True:  Set("y", Mul(Int(1), Int(1))),
					False: Set("y", Int(1)),
				},
			},
			&Return{Expr: Plus(Mul(Var("x"), Int(2)), Var("y"))},
		),
	},
	{
		Name: "straight",
		Doc:  "x = 1 + 2; return x",
		Prog: Seq(
			Set("x", Plus(Int(1), Int(2))),
			&Return{Expr: Var("x")},
		),
	},
	{
		Name: "propagate",
		Doc:  "x = 10; return x * 2",
		Prog: Seq(
			Set("x", Int(10)),
			&Return{Expr: Mul(Var("x"), Int(2))},
		),
	},
	{
		Name: "chain",
		Doc:  "x = (1 + 2) * 3; y = x + 1; return y",
		Prog: Seq(
			Set("x", Mul(Plus(Int(1), Int(2)), Int(3))),
			Set("y", Plus(Var("x"), Int(1))),
			&Return{Expr: Var("y")},
		),
	},
	{
		Name: "disagree",
		Doc:  "branches assign different values; the join cannot fold",
		Prog: Seq(
			&If{Cond: Bool(true), True: Seq(Set("x", Int(1))), False: Seq(Set("x", Int(2)))},
			&Return{Expr: Var("x")},
		),
	},
	{
		Name: "agree",
		Doc:  "branches assign the same value; the join folds",
		Prog: Seq(
			&If{Cond: Bool(true), True: Seq(Set("x", Int(5))), False: Seq(Set("x", Int(5)))},
			&Return{Expr: Var("x")},
		),
	},
	{
		Name: "ifcond",
		Doc:  "a constant condition and state flowing through the join",
		Prog: Seq(
			Set("y", Int(2)),
			&If{Cond: Lt(Int(10), Int(20)), True: Set("x", Int(1)), False: Set("x", Int(2))},
			&Return{Expr: Minus(Plus(Int(5), Int(6)), Var("y"))},
		),
	},
	{
		Name: "loop",
		Doc:  "a loop-carried variable is unknown after the loop",
		Prog: Seq(
			Set("x", Int(0)),
			&While{Cond: Lt(Var("x"), Int(3)), Body: Seq(Set("x", Plus(Var("x"), Int(1))))},
			&Return{Expr: Var("x")},
		),
	},
	{
		Name: "loopcond",
		Doc:  "a constant loop condition folds even though the variable does not",
		Prog: Seq(
			Set("x", Int(0)),
			&While{
				Cond: Eq(Mul(Int(2), Int(3)), Int(6)),
				Body: Seq(Set("x", Plus(Var("x"), Int(1)))),
			},
			&Return{Expr: Var("x")},
		),
	},
	{
		Name: "countdown",
		Doc:  "a terminating loop with an early return inside a conditional",
		Prog: Seq(
			Set("n", Int(5)),
			Set("acc", Int(0)),
			Set("step", Mul(Int(2), Int(1))),
			&While{
				Cond: Lt(Int(0), Var("n")),
				Body: Seq(
					Set("acc", Plus(Var("acc"), Var("n"))),
					Set("n", Minus(Var("n"), Int(1))),
					&If{
						Cond: Eq(Var("acc"), Int(14)),
						True: &Return{Expr: Mul(Var("acc"), Int(10))},
					},
				),
			},
			&Return{Expr: Plus(Var("acc"), Var("step"))},
		),
	},
	{
		Name: "deadjoin",
		Doc:  "both branches return, so the code after the conditional never runs",
		Prog: Seq(
			Set("p", Lt(Int(1), Int(2))),
			&If{
				Cond:  Var("p"),
				True:  &Return{Expr: Int(1)},
				False: &Return{Expr: Int(2)},
			},
			Set("x", Int(3)),
			&Return{Expr: Var("x")},
		),
	},
}

var byname = func() map[string]*Sample {
	ret := map[string]*Sample{}
	for _, s := range all {
		ret[s.Name] = s
	}
	return ret
}()

// All returns every sample in a fixed order.
func All() []*Sample {
	ret := make([]*Sample, len(all))
	copy(ret, all)
	return ret
}

func Get(name string) (*Sample, bool) {
	s, ok := byname[name]
	return s, ok
}

// Names returns the sample names sorted alphabetically.
func Names() []string {
	ret := []string{}
	for name := range byname {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
