// Package cfg contains everything relevant for representing a program's
// control-flow graph. Unlike a basic-block CFG, every executable statement is
// its own graph node: assignments, returns, conditional branches and loops.
// Conditionals and loops also carry their join node explicitly, that is, the
// node where both outgoing paths meet again.
//
// Nodes live in an arena owned by a Graph and refer to each other with
// NodeId handles. This is what makes loops possible without any pointer
// trickery: a while node is allocated first, its body is formed with the
// while node as the body's successor, and only then is the body handle
// patched into the while node.
//
// Apart from that single construction-time patch, a Graph is immutable once
// Form (or a rewrite producing a new Graph) returns.
package cfg

import (
	"fmt"

	"github.com/susji/cfold/node"
)

type NodeId uint32

// Every graph has its own Quit sentinel at this handle.
const NODEID_QUIT NodeId = 0

// Node is implemented by all CFG nodes. The set of node kinds is closed;
// consumers dispatch with type switches.
type Node interface {
	Id() NodeId
	String() string
}

type common struct {
	id NodeId
}

func (c *common) Id() NodeId {
	return c.id
}

type Assign struct {
	common
	Var   string
	Value node.Expr
	Next  NodeId
}

type Return struct {
	common
	Result node.Expr
}

// Condition branches to True or False. Join is where both branches meet.
type Condition struct {
	common
	Cond        node.Expr
	True, False NodeId
	Join        NodeId
}

// While enters Body while Cond holds and continues from Join once it does
// not. Body eventually leads back to the While itself.
type While struct {
	common
	Cond node.Expr
	Body NodeId
	Join NodeId
}

// Quit marks "no more code".
type Quit struct {
	common
}

func (n *Assign) String() string {
	return fmt.Sprintf("(assign %s %s -> %d)", n.Var, n.Value, n.Next)
}

func (n *Return) String() string {
	return fmt.Sprintf("(return %s)", n.Result)
}

func (n *Condition) String() string {
	return fmt.Sprintf("(cond %s t:%d f:%d join:%d)", n.Cond, n.True, n.False, n.Join)
}

func (n *While) String() string {
	return fmt.Sprintf("(while %s body:%d join:%d)", n.Cond, n.Body, n.Join)
}

func (n *Quit) String() string {
	return "(quit)"
}

type EdgeKind int

const (
	EK_NONE = iota
	EK_TRUE
	EK_FALSE
)

var edgekindnames = [...]string{
	"none",
	"true-branch",
	"false-branch",
}

func (ek EdgeKind) String() string {
	return edgekindnames[ek]
}

type Edge struct {
	To   NodeId
	Kind EdgeKind
}

// Graph is the arena holding all nodes of a single CFG.
type Graph struct {
	nodes []Node
	entry NodeId
}

func NewGraph() *Graph {
	g := &Graph{}
	g.nodes = append(g.nodes, &Quit{common{NODEID_QUIT}})
	g.entry = NODEID_QUIT
	return g
}

func (g *Graph) Entry() NodeId {
	return g.entry
}

func (g *Graph) SetEntry(id NodeId) {
	g.check(id)
	g.entry = id
}

// Len is the arena size, including nodes which are not reachable.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) Node(id NodeId) Node {
	g.check(id)
	return g.nodes[id]
}

func (g *Graph) check(id NodeId) {
	if int(id) >= len(g.nodes) {
		panic(fmt.Sprintf("node %d not in graph of %d nodes", id, len(g.nodes)))
	}
}

func (g *Graph) add(n Node) NodeId {
	g.nodes = append(g.nodes, n)
	return NodeId(len(g.nodes) - 1)
}

func (g *Graph) nextid() common {
	return common{NodeId(len(g.nodes))}
}

func (g *Graph) NewAssign(variable string, val node.Expr, next NodeId) NodeId {
	g.check(next)
	return g.add(&Assign{common: g.nextid(), Var: variable, Value: val, Next: next})
}

func (g *Graph) NewReturn(result node.Expr) NodeId {
	return g.add(&Return{common: g.nextid(), Result: result})
}

func (g *Graph) NewCondition(cond node.Expr, t, f, join NodeId) NodeId {
	g.check(t)
	g.check(f)
	g.check(join)
	return g.add(&Condition{common: g.nextid(), Cond: cond, True: t, False: f, Join: join})
}

// NewWhile allocates a loop with Quit as a placeholder body. The real body is
// set with SetBody once it has been formed.
func (g *Graph) NewWhile(cond node.Expr, join NodeId) NodeId {
	g.check(join)
	return g.add(&While{common: g.nextid(), Cond: cond, Body: NODEID_QUIT, Join: join})
}

// SetBody patches the body of a while node. It is only meant to be used while
// the graph is being constructed.
func (g *Graph) SetBody(while, body NodeId) {
	g.check(body)
	w, ok := g.Node(while).(*While)
	if !ok {
		panic(fmt.Sprintf("setting body of non-while node %s", g.Node(while)))
	}
	w.Body = body
}

// Successors lists the outgoing edges of a node in a fixed order: the single
// edge of an assignment, true before false for conditionals, and body before
// join for loops.
func (g *Graph) Successors(id NodeId) []Edge {
	switch t := g.Node(id).(type) {
	case *Assign:
		return []Edge{{t.Next, EK_NONE}}
	case *Condition:
		return []Edge{{t.True, EK_TRUE}, {t.False, EK_FALSE}}
	case *While:
		return []Edge{{t.Body, EK_TRUE}, {t.Join, EK_FALSE}}
	case *Return, *Quit:
		return nil
	default:
		panic(fmt.Sprintf("unhandled node: %T", t))
	}
}

// Expression returns the single expression attached to a node. Quit has none.
func Expression(n Node) (node.Expr, bool) {
	switch t := n.(type) {
	case *Assign:
		return t.Value, true
	case *Return:
		return t.Result, true
	case *Condition:
		return t.Cond, true
	case *While:
		return t.Cond, true
	case *Quit:
		return nil, false
	default:
		panic(fmt.Sprintf("unhandled node: %T", t))
	}
}
