package graph

import "fmt"

// EdgeKind distinguishes implicit structural edges from authored links.
type EdgeKind int

const (
	// EdgeHierarchy is derived from tree nesting and sibling order.
	EdgeHierarchy EdgeKind = iota
	// EdgeFlow chains consecutive process nodes.
	EdgeFlow
	// EdgeLink is authored through >id / <id references.
	EdgeLink
	// EdgeBiLink is a merged pair of opposite edges of the same kind.
	EdgeBiLink
)

// String returns the kind name used in exports.
func (k EdgeKind) String() string {
	switch k {
	case EdgeHierarchy:
		return "hierarchy"
	case EdgeFlow:
		return "flow"
	case EdgeLink:
		return "link"
	case EdgeBiLink:
		return "bilink"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// Edge is a directed edge between two node ids.
//
// MustRender is true for new edges. Bidirectional merging clears it on the
// mirrored copy so a renderer draws one double-headed edge.
type Edge struct {
	From       string
	To         string
	Kind       EdgeKind
	MustRender bool
}

// NewEdge returns a renderable edge.
func NewEdge(from, to string, kind EdgeKind) Edge {
	return Edge{From: from, To: to, Kind: kind, MustRender: true}
}

// Same reports whether e and o have equal endpoints and kind.
func (e Edge) Same(o Edge) bool {
	return e.From == o.From && e.To == o.To && e.Kind == o.Kind
}

// String formats the edge for logs and test output.
func (e Edge) String() string {
	return fmt.Sprintf("%s-[%s]->%s", e.From, e.Kind, e.To)
}

// ParseEdgeKind returns the kind named by s, as produced by [EdgeKind.String].
func ParseEdgeKind(s string) (EdgeKind, bool) {
	for k := EdgeHierarchy; k <= EdgeBiLink; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
