package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/susji/cfold/analyze"
	"github.com/susji/cfold/cfg"
	. "github.com/susji/cfold/node"
	"github.com/susji/cfold/samples"
	"github.com/susji/cfold/testers/assert"
	"github.com/susji/cfold/testers/require"
)

func defaults() *options {
	return &options{format: FORMAT_MERMAID, graph: cfg.MERMAID_GRAPH_TD, jobs: 2}
}

func TestProcess(t *testing.T) {
	s, ok := samples.Get("straight")
	require.True(t, ok)
	r, err := process(s, defaults())
	require.Nil(t, err)
	assert.Equal(t, 0, len(r.warnings))
	assert.True(t, strings.Contains(r.before, `N0["Assign x = (1+2) "]`))
	assert.True(t, strings.Contains(r.after, `N0["Assign x = 3 "]`))
	assert.True(t, strings.Contains(r.after, `N1["Return (3) "]`))
	assert.True(t, r.stats.Commits > 0)
	assert.Equal(t, "", r.trace)
}

func TestProcessDeadJoin(t *testing.T) {
	s := &samples.Sample{
		Name: "bothreturn",
		Prog: Seq(
			&If{Cond: Var("p"), True: &Return{Expr: Int(1)}, False: &Return{Expr: Int(2)}},
			Set("x", Int(3)),
			&Return{Expr: Var("x")},
		),
	}
	o := defaults()
	o.format = FORMAT_DUMP
	r, err := process(s, o)
	require.Nil(t, err)
	require.Len(t, r.warnings, 3)
	assert.True(t, errors.Is(r.warnings[1], analyze.ErrUnreachable))
	assert.Equal(t, 1, len(r.deadjoins))
	assert.Equal(t, "[000] cond p t:1 f:2 join:-\n[001] return 1\n[002] return 2\n", r.after)
}

func TestProcessVerbose(t *testing.T) {
	s, _ := samples.Get("straight")
	o := defaults()
	o.verbose = true
	r, err := process(s, o)
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(r.trace, "straight: visit"))
}

func TestProcessMalformed(t *testing.T) {
	s := &samples.Sample{Name: "bad", Prog: Seq(&Return{})}
	_, err := process(s, defaults())
	require.NotNil(t, err)
	assert.True(t, errors.Is(err, analyze.ErrNilExpr))
	assert.True(t, strings.HasPrefix(err.Error(), "checking bad: "))
}

func TestProcessAllKeepsOrder(t *testing.T) {
	ss := samples.All()
	results, err := processall(context.Background(), ss, defaults())
	require.Nil(t, err)
	require.Len(t, results, len(ss))
	for i, r := range results {
		assert.Equal(t, ss[i].Name, r.sample.Name)
	}
}

func TestProcessAllFails(t *testing.T) {
	ss := append(samples.All(), &samples.Sample{Name: "bad", Prog: Seq(nil)})
	_, err := processall(context.Background(), ss, defaults())
	assert.True(t, errors.Is(err, analyze.ErrNilStmt))
}

func TestWriteout(t *testing.T) {
	s, _ := samples.Get("propagate")
	o := defaults()
	o.outdir = filepath.Join(t.TempDir(), "out")
	r, err := process(s, o)
	require.Nil(t, err)
	paths, err := writeout(r, o)
	require.Nil(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(o.outdir, "propagate.mmd"), paths[0])
	assert.Equal(t, filepath.Join(o.outdir, "propagate_folded.mmd"), paths[1])
	got, err := os.ReadFile(paths[1])
	require.Nil(t, err)
	assert.Equal(t, r.after, string(got))
	assert.True(t, strings.HasPrefix(string(got), "graph TD\n"))
}

func TestFormats(t *testing.T) {
	for _, name := range []string{"mermaid", "dot", "dump"} {
		f, ok := parseformat(name)
		assert.True(t, ok)
		assert.Equal(t, name, f.String())
	}
	_, ok := parseformat("svg")
	assert.False(t, ok)

	s, _ := samples.Get("loop")
	o := defaults()
	o.format = FORMAT_DOT
	r, err := process(s, o)
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(r.after, "digraph"))
}

func TestSelected(t *testing.T) {
	ss, err := selected("all")
	require.Nil(t, err)
	assert.Equal(t, len(samples.All()), len(ss))
	ss, err = selected("loop, chain")
	require.Nil(t, err)
	require.Len(t, ss, 2)
	assert.Equal(t, "loop", ss[0].Name)
	assert.Equal(t, "chain", ss[1].Name)
	_, err = selected("nope")
	assert.NotNil(t, err)
}
