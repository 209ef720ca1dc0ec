package transform

import "github.com/matzehuels/outlinegraph/pkg/graph"

// ComputeSizes sets the dependency size of n and every descendant:
// the size of a node is the sum of (size(child) + 1) over its children, and
// zero for a childless node. It returns the size of n.
//
// Run it once on a freshly built tree. Pruned trees keep the sizes copied
// from the full tree and must not be recomputed.
func ComputeSizes(n *graph.Node) int {
	size := 0
	for _, c := range n.Children {
		size += ComputeSizes(c) + 1
	}
	n.Size = size
	return size
}
