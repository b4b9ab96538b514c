package fold

// Rebuild copies a possibly cyclic graph with a cache mapping each original
// node to its copy. A copy's identity is reserved in the cache before
// recursing into any successor that may lead back to it.
//
// Cycles only ever close at while nodes, since the back-edge of a loop always
// targets the loop itself. So a while node is first copied with a Quit
// placeholder body and cached, and only then is its original body rewritten
// and patched in. When the body leads back to the loop, the cache already has
// the answer. All other nodes copy their successors first and themselves
// last.
//
// The cache also keeps joins shared: both branches of a conditional reach the
// same copy of the join node, whichever gets there first. A join which no
// path reaches, because both branches return, is still copied, unfolded.

import (
	"fmt"

	"github.com/susji/cfold/cfg"
	"github.com/susji/cfold/node"
)

type rebuilder struct {
	a     *Analysis
	g     *cfg.Graph
	cache map[cfg.NodeId]cfg.NodeId
}

// lookup is what the analysis concluded for k when leaving id. Nodes the
// analysis never reached, such as the join of a conditional whose branches
// both return, are copied without folding. A reached node lacking k is a bug.
func (rb *rebuilder) lookup(id cfg.NodeId, k Key) AValue {
	env, ok := rb.a.out[id]
	if !ok {
		return Unknown
	}
	av, ok := env[k]
	if !ok {
		panic(fmt.Sprintf("no %s in environment of node %d: %s", k, id, env))
	}
	return av
}

func folded(av AValue, orig node.Expr) node.Expr {
	if av.Known {
		return &node.Const{Value: av.Value}
	}
	return orig
}

func (rb *rebuilder) rebuild(id cfg.NodeId) cfg.NodeId {
	if ret, ok := rb.cache[id]; ok {
		return ret
	}
	var ret cfg.NodeId
	switch t := rb.a.g.Node(id).(type) {
	case *cfg.Quit:
		ret = cfg.NODEID_QUIT
	case *cfg.Assign:
		av := rb.lookup(id, VarKey(t.Var))
		next := rb.rebuild(t.Next)
		ret = rb.g.NewAssign(t.Var, folded(av, t.Value), next)
	case *cfg.Return:
		av := rb.lookup(id, NodeKey(id))
		ret = rb.g.NewReturn(folded(av, t.Result))
	case *cfg.Condition:
		av := rb.lookup(id, NodeKey(id))
		tb := rb.rebuild(t.True)
		fb := rb.rebuild(t.False)
		join := rb.rebuild(t.Join)
		ret = rb.g.NewCondition(folded(av, t.Cond), tb, fb, join)
	case *cfg.While:
		av := rb.lookup(id, NodeKey(id))
		join := rb.rebuild(t.Join)
		ret = rb.g.NewWhile(folded(av, t.Cond), join)
		rb.cache[id] = ret
		rb.g.SetBody(ret, rb.rebuild(t.Body))
	default:
		panic(fmt.Sprintf("unhandled node: %T", t))
	}
	rb.cache[id] = ret
	return ret
}

// Rebuild produces a new graph of the same shape as the analysed one, with
// every assigned value, condition and return result that the analysis found
// to be constant replaced by that constant. Run must have been called.
func (a *Analysis) Rebuild() *cfg.Graph {
	a.mustrun()
	rb := &rebuilder{
		a:     a,
		g:     cfg.NewGraph(),
		cache: map[cfg.NodeId]cfg.NodeId{},
	}
	rb.g.SetEntry(rb.rebuild(a.g.Entry()))
	return rb.g
}
