// Package fold performs constant folding over a control-flow graph.
//
// The work happens in two phases. First, a forward dataflow analysis computes
// for every node the environment leaving it, that is, what is known about
// each variable and about the node's own expression after it has executed.
// This is a classic worklist fixpoint: a node is reprocessed whenever the
// environment leaving one of its predecessors changes. Joins and loop headers
// merge their inputs with the "equal on every path, or unknown" rule. The
// lattice has height two per key and the number of keys is bounded by the
// program, so the iteration terminates even with loops.
//
// Second, Rebuild copies the graph, replacing expressions whose value the
// analysis proved constant. The input graph is never modified.
//
// Branches are never pruned, even when their condition is a known constant.
// This is a folding pass and nothing more.
package fold

import (
	"fmt"
	"log"

	"github.com/susji/cfold/cfg"
)

// Stats counts the work done by a single Run.
type Stats struct {
	// Visits is the number of nodes popped from the worklist.
	Visits int
	// Commits is the number of times an out-environment was replaced.
	Commits int
}

type Analysis struct {
	g     *cfg.Graph
	log   *log.Logger
	out   map[cfg.NodeId]Env
	preds map[cfg.NodeId][]cfg.NodeId
	stats Stats
	ran   bool
}

type Option func(*Analysis)

// WithLogger traces every visit and commit of the fixpoint loop.
func WithLogger(l *log.Logger) Option {
	return func(a *Analysis) {
		a.log = l
	}
}

func New(g *cfg.Graph, opts ...Option) *Analysis {
	a := &Analysis{g: g}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analysis) tracef(f string, va ...interface{}) {
	if a.log != nil {
		a.log.Printf(f, va...)
	}
}

// worklist is a FIFO queue which holds each node at most once.
type worklist struct {
	queue  []cfg.NodeId
	queued map[cfg.NodeId]struct{}
}

func (w *worklist) push(id cfg.NodeId) {
	if _, ok := w.queued[id]; ok {
		return
	}
	w.queued[id] = struct{}{}
	w.queue = append(w.queue, id)
}

func (w *worklist) pop() cfg.NodeId {
	id := w.queue[0]
	w.queue = w.queue[1:]
	delete(w.queued, id)
	return id
}

func (w *worklist) empty() bool {
	return len(w.queue) == 0
}

// transfer computes the environment leaving n when in flows into it.
func (a *Analysis) transfer(n cfg.Node, in Env) Env {
	out := in.Copy()
	switch t := n.(type) {
	case *cfg.Assign:
		out[VarKey(t.Var)] = Evaluate(t.Value, in)
	case *cfg.Return, *cfg.Condition, *cfg.While:
		e, _ := cfg.Expression(n)
		out[NodeKey(n.Id())] = Evaluate(e, in)
	case *cfg.Quit:
	default:
		panic(fmt.Sprintf("unhandled node: %T", t))
	}
	return out
}

// Run computes the out-environment of every node reachable from the entry.
// Calling Run again recomputes everything from scratch.
func (a *Analysis) Run() {
	a.out = map[cfg.NodeId]Env{}
	a.stats = Stats{}
	for _, id := range cfg.Reachable(a.g) {
		a.out[id] = Env{}
	}
	a.preds = cfg.Predecessors(a.g)

	entry := a.g.Entry()
	wl := &worklist{queued: map[cfg.NodeId]struct{}{}}
	wl.push(entry)
	for !wl.empty() {
		id := wl.pop()
		a.stats.Visits++
		a.tracef("visit %d", id)
		ins := []Env{}
		for _, pred := range a.preds[id] {
			ins = append(ins, a.out[pred])
		}
		if id == entry {
			// The entry has no incoming information, but it still needs an
			// inbound state even if loops lead back to it.
			ins = append(ins, Env{})
		}
		n := a.g.Node(id)
		newout := a.transfer(n, Merge(ins))
		if newout.Equal(a.out[id]) {
			continue
		}
		a.tracef("commit %d %s: %s", id, n, newout)
		a.out[id] = newout
		a.stats.Commits++
		for _, succ := range a.g.Successors(id) {
			wl.push(succ.To)
		}
	}
	a.ran = true
}

func (a *Analysis) mustrun() {
	if !a.ran {
		panic("analysis has not been run")
	}
}

// Out returns the environment leaving node id. Nodes not reachable from the
// entry have none.
func (a *Analysis) Out(id cfg.NodeId) (Env, bool) {
	a.mustrun()
	env, ok := a.out[id]
	return env, ok
}

func (a *Analysis) Stats() Stats {
	a.mustrun()
	return a.stats
}

// Fold runs the analysis on g and returns the rebuilt graph.
func Fold(g *cfg.Graph, opts ...Option) *cfg.Graph {
	a := New(g, opts...)
	a.Run()
	return a.Rebuild()
}
