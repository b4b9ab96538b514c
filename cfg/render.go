package cfg

import (
	"fmt"
	"strings"

	"github.com/susji/cfold/node"
)

// numbering gives reachable nodes small, stable numbers in Walk order. Two
// graphs of the same shape get the same numbering regardless of how their
// arenas were filled.
func numbering(g *Graph) ([]Node, map[NodeId]int) {
	order := []Node{}
	nums := map[NodeId]int{}
	Walk(g, func(n Node) {
		nums[n.Id()] = len(order)
		order = append(order, n)
	})
	return order, nums
}

// numbered prints the number of id, or "-" for nodes outside the numbering.
// The join of a conditional whose branches both return is such a node.
func numbered(nums map[NodeId]int, id NodeId) string {
	if n, ok := nums[id]; ok {
		return fmt.Sprint(n)
	}
	return "-"
}

// Dump lists every reachable node with its expressions and successors. The
// output depends only on the graph's shape and contents, so it may be used to
// compare graphs.
func Dump(g *Graph) string {
	order, nums := numbering(g)
	b := &strings.Builder{}
	for i, n := range order {
		var line string
		switch t := n.(type) {
		case *Assign:
			line = fmt.Sprintf("assign %s %s -> %s", t.Var, t.Value, numbered(nums, t.Next))
		case *Return:
			line = fmt.Sprintf("return %s", t.Result)
		case *Condition:
			line = fmt.Sprintf("cond %s t:%s f:%s join:%s",
				t.Cond, numbered(nums, t.True), numbered(nums, t.False), numbered(nums, t.Join))
		case *While:
			line = fmt.Sprintf("while %s body:%s join:%s",
				t.Cond, numbered(nums, t.Body), numbered(nums, t.Join))
		case *Quit:
			line = "quit"
		default:
			panic(fmt.Sprintf("unhandled node: %T", t))
		}
		b.WriteString(fmt.Sprintf("[%03d] %s\n", i, line))
	}
	return b.String()
}

// Label is the human-readable description of a node used by the renderers.
func Label(n Node) string {
	switch t := n.(type) {
	case *Assign:
		return fmt.Sprintf("Assign %s = %s", t.Var, node.Infix(t.Value))
	case *Condition:
		return fmt.Sprintf("If (%s)", node.Infix(t.Cond))
	case *Return:
		return fmt.Sprintf("Return (%s)", node.Infix(t.Result))
	case *While:
		return fmt.Sprintf("While (%s)", node.Infix(t.Cond))
	case *Quit:
		return "Quit"
	default:
		panic(fmt.Sprintf("unhandled node: %T", t))
	}
}

type MermaidGraphType int

const (
	MERMAID_FLOWCHART_TD MermaidGraphType = iota
	MERMAID_FLOWCHART_LR
	MERMAID_FLOWCHART_BT
	MERMAID_GRAPH_TD
	MERMAID_GRAPH_LR
)

var mermaidheaders = [...]string{
	"flowchart TD",
	"flowchart LR",
	"flowchart BT",
	"graph TD",
	"graph LR",
}

func (mt MermaidGraphType) String() string {
	return mermaidheaders[mt]
}

// ParseMermaidGraphType maps a header such as "graph TD" back to its type.
func ParseMermaidGraphType(header string) (MermaidGraphType, bool) {
	for i, h := range mermaidheaders {
		if strings.EqualFold(h, strings.TrimSpace(header)) {
			return MermaidGraphType(i), true
		}
	}
	return 0, false
}

// Mermaid renders the graph as a Mermaid diagram. Vertices are declared first,
// then edges; true and false edges are labelled Yes and No.
func Mermaid(g *Graph, mt MermaidGraphType) string {
	order, nums := numbering(g)
	b := &strings.Builder{}
	b.WriteString(mt.String())
	b.WriteString("\n")
	for i, n := range order {
		label := strings.ReplaceAll(Label(n), `"`, "#quot;")
		b.WriteString(fmt.Sprintf("N%d[\"%s \"]\n", i, label))
	}
	for i, n := range order {
		for _, succ := range g.Successors(n.Id()) {
			var el string
			switch succ.Kind {
			case EK_TRUE:
				el = "|Yes|"
			case EK_FALSE:
				el = "|No|"
			}
			b.WriteString(fmt.Sprintf("    N%d -->%s N%d\n", i, el, nums[succ.To]))
		}
	}
	return b.String()
}

// Dot renders the graph in Graphviz's dot language.
func Dot(g *Graph) string {
	order, nums := numbering(g)
	b := &strings.Builder{}
	b.WriteString("digraph cfg {\n")
	b.WriteString("\tnode [shape=box];\n")
	for i, n := range order {
		b.WriteString(fmt.Sprintf("\tn%d [label=%q];\n", i, Label(n)))
	}
	for i, n := range order {
		for _, succ := range g.Successors(n.Id()) {
			attr := ""
			if succ.Kind != EK_NONE {
				attr = fmt.Sprintf(" [label=%q]", succ.Kind.String())
			}
			b.WriteString(fmt.Sprintf("\tn%d -> n%d%s;\n", i, nums[succ.To], attr))
		}
	}
	b.WriteString("}\n")
	return b.String()
}
