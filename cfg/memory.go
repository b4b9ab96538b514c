package cfg

// These are used to memoize graph traversal to break loops.

type memnode map[NodeId]struct{}

func (mn memnode) add(id NodeId) {
	mn[id] = struct{}{}
}

func (mn memnode) seen(id NodeId) bool {
	_, ok := mn[id]
	return ok
}

// Walk calls fn once for every node reachable from the entry, in depth-first
// pre-order following Successors.
func Walk(g *Graph, fn func(Node)) {
	mem := memnode{}
	var visit func(id NodeId)
	visit = func(id NodeId) {
		if mem.seen(id) {
			return
		}
		mem.add(id)
		fn(g.Node(id))
		for _, succ := range g.Successors(id) {
			visit(succ.To)
		}
	}
	visit(g.Entry())
}

// Reachable lists the nodes reachable from the entry in Walk order.
func Reachable(g *Graph) []NodeId {
	ret := []NodeId{}
	Walk(g, func(n Node) {
		ret = append(ret, n.Id())
	})
	return ret
}

// Predecessors maps every reachable node to the nodes having it as a
// successor. A node reached by both edges of a conditional appears twice.
func Predecessors(g *Graph) map[NodeId][]NodeId {
	ret := map[NodeId][]NodeId{}
	Walk(g, func(n Node) {
		if _, ok := ret[n.Id()]; !ok {
			ret[n.Id()] = []NodeId{}
		}
		for _, succ := range g.Successors(n.Id()) {
			ret[succ.To] = append(ret[succ.To], n.Id())
		}
	})
	return ret
}
