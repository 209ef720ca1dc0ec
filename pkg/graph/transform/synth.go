package transform

import "github.com/matzehuels/outlinegraph/pkg/graph"

// Synthesize adds hierarchy and flow edges for the tree of p to p.Links.
// Call [Reorder] first; edge generation depends on child order.
func Synthesize(p *graph.Parsed) {
	SynthesizeHierarchy(p.Root, p.Links)
	SynthesizeFlow(p.Root, p.Links)
}

// SynthesizeHierarchy adds hierarchy edges from each node to its children.
//
// Per parent, in child order:
//
//   - a flow-break child gets no edge
//   - only the first process child gets an edge, and only when the parent
//     is not a process itself
//   - a child with children always gets an edge
//   - childless children form runs: the first is linked from the parent,
//     each later one from the previous child in the run
//
// Any child that is not childless ends the current run. The root emits no
// edges. Every child is recursed into whether or not it received an edge.
func SynthesizeHierarchy(n *graph.Node, links *graph.LinkGraph) {
	if !n.IsRoot() {
		var prevLeaf *graph.Node
		seenProcess := false
		for _, c := range n.Children {
			switch {
			case c.IsFlowBreak():
				prevLeaf = nil
			case c.IsProcess():
				if !seenProcess && !n.IsProcess() {
					links.AddEdge(n.ID, c.ID, graph.EdgeHierarchy)
				}
				seenProcess = true
				prevLeaf = nil
			case c.IsSubgraph():
				links.AddEdge(n.ID, c.ID, graph.EdgeHierarchy)
				prevLeaf = nil
			default:
				from := n
				if prevLeaf != nil {
					from = prevLeaf
				}
				links.AddEdge(from.ID, c.ID, graph.EdgeHierarchy)
				prevLeaf = c
			}
		}
	}
	for _, c := range n.Children {
		SynthesizeHierarchy(c, links)
	}
}

// SynthesizeFlow adds a flow edge between every pair of consecutive process
// nodes in a pre-order walk of n. The chain crosses subtree boundaries: a
// process node's first process child and a process node following a process
// subtree are both linked.
func SynthesizeFlow(n *graph.Node, links *graph.LinkGraph) {
	var prev *graph.Node
	n.Walk(func(cur *graph.Node) bool {
		if prev != nil && prev.IsProcess() && cur.IsProcess() {
			links.AddEdge(prev.ID, cur.ID, graph.EdgeFlow)
		}
		prev = cur
		return true
	})
}
