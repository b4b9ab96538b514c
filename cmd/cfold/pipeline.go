package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/susji/cfold/analyze"
	"github.com/susji/cfold/cfg"
	"github.com/susji/cfold/fold"
	"github.com/susji/cfold/samples"
)

type format int

const (
	FORMAT_MERMAID = iota
	FORMAT_DOT
	FORMAT_DUMP
)

var formatnames = [...]string{
	"mermaid",
	"dot",
	"dump",
}

var formatexts = [...]string{
	".mmd",
	".dot",
	".txt",
}

func (f format) String() string {
	return formatnames[f]
}

func parseformat(s string) (format, bool) {
	for i, name := range formatnames {
		if name == s {
			return format(i), true
		}
	}
	return 0, false
}

type options struct {
	format  format
	graph   cfg.MermaidGraphType
	outdir  string
	verbose bool
	jobs    int
}

func (o *options) render(g *cfg.Graph) string {
	switch o.format {
	case FORMAT_MERMAID:
		return cfg.Mermaid(g, o.graph)
	case FORMAT_DOT:
		return cfg.Dot(g)
	case FORMAT_DUMP:
		return cfg.Dump(g)
	default:
		panic(fmt.Sprintf("unhandled format: %d", o.format))
	}
}

// result bundles everything the pipeline produced for a single sample.
type result struct {
	sample    *samples.Sample
	warnings  []error
	deadjoins []cfg.NodeId
	original  *cfg.Graph
	folded    *cfg.Graph
	stats     fold.Stats
	before    string
	after     string
	trace     string
}

// process checks, forms, folds and renders a single sample.
func process(s *samples.Sample, o *options) (*result, error) {
	a := analyze.New()
	if errs := a.Check(s.Prog); len(errs) > 0 {
		for _, err := range errs[1:] {
			perr("%s: %s", s.Name, err)
		}
		return nil, errors.Wrapf(errs[0], "checking %s", s.Name)
	}
	r := &result{
		sample:   s,
		warnings: a.Warnings(),
		original: cfg.Form(s.Prog),
	}
	r.deadjoins = cfg.DeadJoins(r.original)
	opts := []fold.Option{}
	tb := &bytes.Buffer{}
	if o.verbose {
		opts = append(opts, fold.WithLogger(log.New(tb, s.Name+": ", 0)))
	}
	fa := fold.New(r.original, opts...)
	fa.Run()
	r.folded = fa.Rebuild()
	r.stats = fa.Stats()
	r.trace = tb.String()
	r.before = o.render(r.original)
	r.after = o.render(r.folded)
	return r, nil
}

// processall folds the given samples concurrently. Results are returned in
// the same order as the samples.
func processall(ctx context.Context, ss []*samples.Sample, o *options) ([]*result, error) {
	results := make([]*result, len(ss))
	g, gctx := errgroup.WithContext(ctx)
	if o.jobs > 0 {
		g.SetLimit(o.jobs)
	}
	for i, s := range ss {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := process(s, o)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeout stores both renderings of r into o.outdir and returns the written
// paths.
func writeout(r *result, o *options) ([]string, error) {
	if err := os.MkdirAll(o.outdir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s", o.outdir)
	}
	ext := formatexts[o.format]
	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(o.outdir, r.sample.Name+ext), r.before},
		{filepath.Join(o.outdir, r.sample.Name+"_folded"+ext), r.after},
	}
	ret := []string{}
	for _, f := range files {
		if err := os.WriteFile(f.path, []byte(f.content), 0o644); err != nil {
			return ret, errors.Wrap(err, "writing rendering")
		}
		ret = append(ret, f.path)
	}
	return ret, nil
}
