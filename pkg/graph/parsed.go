package graph

// Duplicate reports an explicit id declared on more than one line.
type Duplicate struct {
	ID    string
	Lines []int // Source line indices, in document order
}

// LineNumbers returns the 1-based line numbers of the declarations.
func (d Duplicate) LineNumbers() []int {
	out := make([]int, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l + 1
	}
	return out
}

// Parsed is the result of building an outline: the hierarchy tree, the link
// graph and the ids carrying fold or hide markers.
//
// A Parsed value is never patched in place by the transforms; pruning and
// compilation always return a new one.
type Parsed struct {
	Root  *Node
	Links *LinkGraph
	Fold  *IDSet
	Hide  *IDSet

	// Duplicates lists explicit ids used more than once. Lookups by id
	// resolve to the last declaration in document order.
	Duplicates []Duplicate
}

// NewParsed returns an empty graph with a fresh root.
func NewParsed() *Parsed {
	return &Parsed{
		Root:  NewRoot(),
		Links: NewLinkGraph(),
		Fold:  NewIDSet(),
		Hide:  NewIDSet(),
	}
}

// NodeCount returns the number of tree nodes, excluding the root.
func (p *Parsed) NodeCount() int { return p.Root.Count() }

// Nodes returns every tree node in pre-order, excluding the root.
func (p *Parsed) Nodes() []*Node {
	var out []*Node
	p.Root.Walk(func(n *Node) bool {
		if !n.IsRoot() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Node returns the node declared with id, or nil.
func (p *Parsed) Node(id string) *Node { return p.Root.Find(id) }
