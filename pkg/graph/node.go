package graph

import "github.com/matzehuels/outlinegraph/pkg/outline"

// Node is a vertex of the hierarchy tree. Every node except the synthetic
// root corresponds to one outline line.
//
// Children are owned exclusively: a node appears in exactly one parent's
// Children slice. Size is the dependency size (number of descendants) and is
// computed by transform.ComputeSizes, never authored.
type Node struct {
	ID        string
	Label     string
	Bullet    outline.BulletKind
	Highlight bool
	Line      int // Source line index, -1 for the root
	Size      int // Dependency size

	Children []*Node

	root bool
}

// NewRoot returns an empty synthetic root.
func NewRoot() *Node {
	return &Node{Line: -1, root: true}
}

// NewNode creates a tree node from a parsed line.
func NewNode(l outline.Line) *Node {
	return &Node{
		ID:        l.ID(),
		Label:     l.Label,
		Bullet:    l.Bullet,
		Highlight: l.Highlight,
		Line:      l.Index,
	}
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool { return n.root }

// IsLeaf reports whether n has no descendants at all.
func (n *Node) IsLeaf() bool { return n.Size == 0 }

// IsSubgraph reports whether n has visible children.
func (n *Node) IsSubgraph() bool { return len(n.Children) > 0 }

// IsFolded reports whether n has descendants but none of them are visible.
func (n *Node) IsFolded() bool { return n.Size > 0 && len(n.Children) == 0 }

// IsProcess reports whether n is a flow (process) node.
func (n *Node) IsProcess() bool { return n.Bullet == outline.BulletFlow }

// IsFlowBreak reports whether n suppresses hierarchy edges into it.
func (n *Node) IsFlowBreak() bool { return n.Bullet == outline.BulletFlowBreak }

// AddChild appends c to n's children.
func (n *Node) AddChild(c *Node) { n.Children = append(n.Children, c) }

// Clone returns a copy of n without children.
func (n *Node) Clone() *Node {
	c := *n
	c.Children = nil
	return &c
}

// Walk calls fn for n and every descendant in pre-order. Returning false
// from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes below n currently present in the tree.
func (n *Node) Count() int {
	total := 0
	for _, c := range n.Children {
		total += 1 + c.Count()
	}
	return total
}

// Find returns the last node in pre-order with the given id, or nil.
// The last match is returned so that lookups agree with the reroute table,
// where a later duplicate overwrites an earlier one.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(x *Node) bool {
		if !x.root && x.ID == id {
			found = x
		}
		return true
	})
	return found
}
