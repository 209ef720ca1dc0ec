package transform

import "github.com/matzehuels/outlinegraph/pkg/graph"

// Reorder stably reorders the children of n and all its descendants so that
// children with children of their own come before childless ones.
//
// Process children are pinned: they keep their positions and relative
// order. The other children fill the remaining slots, subgraphs first, each
// group in its original order.
func Reorder(n *graph.Node) {
	if len(n.Children) > 1 {
		reorderChildren(n.Children)
	}
	for _, c := range n.Children {
		Reorder(c)
	}
}

func reorderChildren(children []*graph.Node) {
	var subgraphs, leaves []*graph.Node
	for _, c := range children {
		switch {
		case c.IsProcess():
		case c.IsSubgraph():
			subgraphs = append(subgraphs, c)
		default:
			leaves = append(leaves, c)
		}
	}
	movable := append(subgraphs, leaves...)

	k := 0
	for i, c := range children {
		if c.IsProcess() {
			continue
		}
		children[i] = movable[k]
		k++
	}
}
