package cfg

// The contents of this file are responsible for finding connections between
// nodes in a CFG. "A connection" is now meant to mean a directed path with a
// start and end. As these starts and ends are sought with caller-provided
// callbacks, there should be enough flexibility.

type NodeCb func(n Node) bool

// findend reports whether a node matching end is reachable from id, id
// itself included.
func findend(g *Graph, id NodeId, end NodeCb, mem memnode) bool {
	if mem.seen(id) {
		return false
	}
	mem.add(id)
	if end(g.Node(id)) {
		return true
	}
	for _, succ := range g.Successors(id) {
		if findend(g, succ.To, end, mem) {
			return true
		}
	}
	return false
}

// Connect is used to determine whether there is at least one possible path
// from a node matching start to a node matching end. If start is nil, it is
// interpreted as the graph entry. A node matching both start and end counts
// as a connection.
func Connect(g *Graph, start, end NodeCb) bool {
	if end == nil {
		panic("no end cb")
	}
	if start == nil {
		return findend(g, g.Entry(), end, memnode{})
	}
	found := false
	Walk(g, func(n Node) {
		if found || !start(n) {
			return
		}
		found = findend(g, n.Id(), end, memnode{})
	})
	return found
}

// DeadJoins lists the joins of reachable conditionals which no path from the
// entry leads to. Both branches of such a conditional return, and whatever
// follows it in the program never runs.
func DeadJoins(g *Graph) []NodeId {
	ret := []NodeId{}
	mem := memnode{}
	Walk(g, func(n Node) {
		c, ok := n.(*Condition)
		if !ok || mem.seen(c.Join) {
			return
		}
		mem.add(c.Join)
		if !Connect(g, nil, func(m Node) bool { return m.Id() == c.Join }) {
			ret = append(ret, c.Join)
		}
	})
	return ret
}
