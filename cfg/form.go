package cfg

// The code in this file is responsible for building the CFG. Our approach is
// simple recursion driven by "what comes after": `next' is the node which
// should be executed once the statement being formed is done. It starts as
// the universal Quit and is threaded backwards through the program.
//
// Blocks are formed in reverse, each statement becoming the `next' of the one
// before it, so sequencing falls out without any explicit edge lists.
//
//     x = 1;            Assign x -> Condition
//     if (x < 2) {      Condition t:Assign y  f:Return  join:Return
//         y = 3;        Assign y -> Return
//     }
//     return y;         Return
//
// Returns ignore `next' completely. Code after a return is unreachable and
// is deliberately never linked into the graph.
//
// A while node is allocated before its body so that the body can use the
// while node itself as its `next'. That is the back-edge. The body handle is
// patched in afterwards.

import (
	"fmt"

	"github.com/susji/cfold/node"
)

func (g *Graph) form(s node.Stmt, next NodeId) NodeId {
	switch t := s.(type) {
	case *node.Block:
		for i := len(t.Value) - 1; i >= 0; i-- {
			next = g.form(t.Value[i], next)
		}
		return next
	case *node.Assign:
		return g.NewAssign(t.To.Name, t.What, next)
	case *node.Return:
		return g.NewReturn(t.Expr)
	case *node.If:
		join := next
		tb := g.form(t.True, join)
		fb := join
		if t.False != nil {
			fb = g.form(t.False, join)
		}
		return g.NewCondition(t.Cond, tb, fb, join)
	case *node.While:
		w := g.NewWhile(t.Cond, next)
		g.SetBody(w, g.form(t.Body, w))
		return w
	case nil:
		panic("nil statement")
	default:
		panic(fmt.Sprintf("unhandled statement: %T", t))
	}
}

// Form builds the CFG of a whole program. The entry of the resulting graph is
// the head of the outermost statement. An empty program has Quit as its
// entry.
func Form(s node.Stmt) *Graph {
	g := NewGraph()
	g.SetEntry(g.form(s, NODEID_QUIT))
	return g
}
