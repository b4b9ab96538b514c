// cfold forms control-flow graphs of the built-in sample programs, folds
// their constants and prints or writes out the graphs before and after.
//
// Flag defaults may be given in the environment: CFOLD_SAMPLE, CFOLD_FORMAT,
// CFOLD_GRAPH, CFOLD_OUTDIR, CFOLD_VERBOSE and CFOLD_JOBS.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/susji/cfold/cfg"
	"github.com/susji/cfold/node"
	"github.com/susji/cfold/samples"
)

func fatal(f string, va ...interface{}) {
	fmt.Fprintf(os.Stderr, "fatal: "+f+"\n", va...)
	os.Exit(1)
}

func perr(f string, va ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+f+"\n", va...)
}

func note(f string, va ...interface{}) {
	fmt.Fprintf(os.Stdout, "[] "+f+"\n", va...)
}

func dumper(n interface{}, depth int) bool {
	i := ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	ie := 2 * depth
	if ie > len(i)-1 {
		ie = len(i) - 1
	}
	switch t := n.(type) {
	case *node.Block:
		fmt.Printf("%sblock\n", i[0:ie])
	case *node.If:
		fmt.Printf("%sif %s\n", i[0:ie], node.Infix(t.Cond))
	case *node.While:
		fmt.Printf("%swhile %s\n", i[0:ie], node.Infix(t.Cond))
	case *node.Assign:
		fmt.Printf("%s%s = %s\n", i[0:ie], t.To.Name, node.Infix(t.What))
		return false
	case *node.Return:
		fmt.Printf("%sreturn %s\n", i[0:ie], node.Infix(t.Expr))
		return false
	default:
		return false
	}
	return true
}

func selected(name string) ([]*samples.Sample, error) {
	if name == "all" {
		return samples.All(), nil
	}
	ret := []*samples.Sample{}
	for _, n := range strings.Split(name, ",") {
		s, ok := samples.Get(strings.TrimSpace(n))
		if !ok {
			return nil, fmt.Errorf("unknown sample %q, have: %s",
				n, strings.Join(samples.Names(), ", "))
		}
		ret = append(ret, s)
	}
	return ret, nil
}

func main() {
	sample := flag.String("sample", env.Str("CFOLD_SAMPLE", "all"),
		"comma-separated samples to fold, or all")
	formatname := flag.String("format", env.Str("CFOLD_FORMAT", "mermaid"),
		"rendering: mermaid, dot or dump")
	graphtype := flag.String("graph", env.Str("CFOLD_GRAPH", "graph TD"),
		"mermaid graph header")
	outdir := flag.String("out", env.Str("CFOLD_OUTDIR"),
		"write renderings into this directory")
	verbose := flag.Bool("v", env.Bool("CFOLD_VERBOSE"), "trace the analysis")
	jobs := flag.Int("jobs", env.Int("CFOLD_JOBS", 4), "maximum concurrent folds")
	list := flag.Bool("list", false, "list samples and exit")
	dumpast := flag.Bool("dumpast", false, "dump the statement trees")
	flag.Parse()

	if *list {
		for _, s := range samples.All() {
			fmt.Printf("%-10s %s\n", s.Name, s.Doc)
		}
		return
	}

	o := &options{outdir: *outdir, verbose: *verbose, jobs: *jobs}
	var ok bool
	if o.format, ok = parseformat(*formatname); !ok {
		fatal("unknown format %q", *formatname)
	}
	if o.graph, ok = cfg.ParseMermaidGraphType(*graphtype); !ok {
		fatal("unknown mermaid graph type %q", *graphtype)
	}
	ss, err := selected(*sample)
	if err != nil {
		fatal("%s", err)
	}

	results, err := processall(context.Background(), ss, o)
	if err != nil {
		fatal("%s", err)
	}
	for _, r := range results {
		note("sample %q: %s", r.sample.Name, r.sample.Doc)
		if *dumpast {
			node.Walk(r.sample.Prog, dumper)
		}
		for _, w := range r.warnings {
			perr("%s: warning: %s", r.sample.Name, w)
		}
		if r.trace != "" {
			fmt.Print(r.trace)
		}
		for _, id := range r.deadjoins {
			note("join %d of a conditional is never reached", id)
		}
		note("%d visits, %d commits", r.stats.Visits, r.stats.Commits)
		if o.outdir != "" {
			paths, err := writeout(r, o)
			if err != nil {
				fatal("%s: %s", r.sample.Name, err)
			}
			for _, p := range paths {
				note("wrote %s: %s", o.format, p)
			}
			continue
		}
		note("original")
		fmt.Print(r.before)
		note("folded")
		fmt.Print(r.after)
	}
}
