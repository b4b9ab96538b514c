package analyze_test

import (
	"errors"
	"testing"

	"github.com/susji/cfold/analyze"
	. "github.com/susji/cfold/node"
	"github.com/susji/cfold/samples"
	"github.com/susji/cfold/testers/assert"
	"github.com/susji/cfold/testers/require"
)

func TestSmoke(t *testing.T) {
	a := analyze.New()
	errs := a.Check(Seq(Set("x", Int(1)), &Return{Expr: Var("x")}))
	assert.Equal(t, 0, len(errs))
	assert.Equal(t, 0, len(a.Warnings()))
}

func TestErrors(t *testing.T) {
	type entry struct {
		prog    Stmt
		wanterr error
	}
	table := []entry{
		{nil, analyze.ErrNilStmt},
		{Seq(nil), analyze.ErrNilStmt},
		{Seq(&While{Cond: Bool(true)}), analyze.ErrNilStmt},
		{Seq(&Return{}), analyze.ErrNilExpr},
		{Seq(Set("x", nil)), analyze.ErrNilExpr},
		{Seq(&Assign{What: Int(1)}), analyze.ErrNilExpr},
		{Seq(&If{Cond: Plus(Int(1), nil), True: Seq()}), analyze.ErrNilExpr},
		{Seq(Set("", Int(1))), analyze.ErrEmptyName},
		{Seq(&Return{Expr: Var("")}), analyze.ErrEmptyName},
		{Seq(&Return{Expr: &OpBinary{Op: 17, Left: Int(1), Right: Int(2)}}), analyze.ErrUnknownOp},
	}
	for _, e := range table {
		a := analyze.New()
		errs := a.Check(e.prog)
		require.Truef(t, len(errs) == 1, "%v: got %v", e.prog, errs)
		assert.Truef(t, errors.Is(errs[0], e.wanterr), "%v: got %v, want %v",
			e.prog, errs[0], e.wanterr)
		var aerr *analyze.Error
		assert.True(t, errors.As(errs[0], &aerr))
	}
}

func TestErrorPath(t *testing.T) {
	a := analyze.New()
	errs := a.Check(Seq(
		Set("x", Int(1)),
		&While{Cond: Bool(true), Body: Seq(Set("y", Plus(Var("x"), nil)))},
	))
	require.Equal(t, 1, len(errs))
	assert.Equal(t, "program[1].body[0].value.right: missing expression", errs[0].Error())
}

func TestMaybeUnassigned(t *testing.T) {
	type entry struct {
		prog  Stmt
		warns int
	}
	table := []entry{
		{Seq(&Return{Expr: Var("x")}), 1},
		{Seq(Set("x", Var("x"))), 1},
		{Seq(
			&If{Cond: Bool(true), True: Set("x", Int(1)), False: Set("x", Int(2))},
			&Return{Expr: Var("x")},
		), 0},
		{Seq(
			&If{Cond: Bool(true), True: Set("x", Int(1))},
			&Return{Expr: Var("x")},
		), 1},
		{Seq(
			&If{Cond: Bool(true), True: &Return{Expr: Int(0)}, False: Set("x", Int(2))},
			&Return{Expr: Var("x")},
		), 0},
		{Seq(
			&While{Cond: Bool(true), Body: Set("x", Int(1))},
			&Return{Expr: Var("x")},
		), 1},
	}
	for _, e := range table {
		a := analyze.New()
		require.Equal(t, 0, len(a.Check(e.prog)))
		assert.Equalf(t, e.warns, len(a.Warnings()), "%s: %v", e.prog, a.Warnings())
		for _, w := range a.Warnings() {
			assert.True(t, errors.Is(w, analyze.ErrMaybeUnassigned))
		}
	}
}

func TestInputs(t *testing.T) {
	a := analyze.New()
	require.Equal(t, 0, len(a.Check(Seq(&Return{Expr: Var("n")}), "n")))
	assert.Equal(t, 0, len(a.Warnings()))
}

func TestUnreachable(t *testing.T) {
	a := analyze.New()
	errs := a.Check(Seq(
		&Return{Expr: Int(1)},
		Set("x", Var("nowhere")),
		Set("y", nil),
	))
	require.Equal(t, 1, len(errs))
	assert.True(t, errors.Is(errs[0], analyze.ErrNilExpr))
	require.Equal(t, 2, len(a.Warnings()))
	assert.True(t, errors.Is(a.Warnings()[0], analyze.ErrUnreachable))
	assert.True(t, errors.Is(a.Warnings()[1], analyze.ErrUnreachable))
}

func TestSamples(t *testing.T) {
	for _, s := range samples.All() {
		a := analyze.New()
		assert.Equalf(t, 0, len(a.Check(s.Prog)), "sample %s", s.Name)
	}
}
