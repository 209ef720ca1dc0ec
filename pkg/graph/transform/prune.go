package transform

import (
	"slices"

	"github.com/matzehuels/outlinegraph/pkg/graph"
)

// RerouteTable maps each tree node id to the id that replaces it after
// pruning. An empty target means the node was removed.
type RerouteTable map[string]string

// Resolve returns the id that edges touching id should use, and false when
// id was removed. Ids missing from the table, such as link targets no line
// declares, resolve to themselves.
func (t RerouteTable) Resolve(id string) (string, bool) {
	to, ok := t[id]
	if !ok {
		return id, true
	}
	return to, to != ""
}

// Removed returns the number of ids whose nodes were removed.
func (t RerouteTable) Removed() int {
	n := 0
	for _, to := range t {
		if to == "" {
			n++
		}
	}
	return n
}

// Collapsed returns the number of ids rerouted to a different node.
func (t RerouteTable) Collapsed() int {
	n := 0
	for id, to := range t {
		if to != "" && to != id {
			n++
		}
	}
	return n
}

// visibility is the state inherited along one root-to-node path.
type visibility struct {
	floorReached bool
	floorID      string
	hidden       bool
}

// Prune applies the fold and hide markers of p and returns a new graph and
// the reroute table used to build its links. p is not modified.
//
// A hidden node and all its descendants are removed, and edges touching
// them are dropped. A folded node survives but its descendants are removed;
// their edges are redirected to the folded node. Hiding wins over folding.
// Surviving nodes are copied with their original dependency size, so a fold
// root still classifies as folded.
//
// The pruned links contain no hierarchy edges; run [Synthesize] on the
// result to regenerate them for the pruned tree.
func Prune(p *graph.Parsed) (*graph.Parsed, RerouteTable) {
	table := make(RerouteTable)
	out := graph.NewParsed()
	out.Fold = graph.NewIDSet(p.Fold.Values()...)
	out.Hide = graph.NewIDSet(p.Hide.Values()...)
	out.Duplicates = slices.Clone(p.Duplicates)

	prune(p, p.Root, out.Root, visibility{}, table)
	out.Links = Reroute(p.Links, table)
	return out, table
}

func prune(p *graph.Parsed, n, into *graph.Node, st visibility, table RerouteTable) {
	for _, c := range n.Children {
		next := st
		next.hidden = st.hidden || p.Hide.Has(c.ID)
		if !st.floorReached && p.Fold.Has(c.ID) {
			next.floorReached = true
			next.floorID = c.ID
		}

		var kept *graph.Node
		var target string
		switch {
		case next.hidden:
		case st.floorReached:
			target = st.floorID
		default:
			target = c.ID
			kept = c.Clone()
			into.AddChild(kept)
		}
		if c.ID != "" {
			table[c.ID] = target
		}

		// Descendants of a dropped node are dropped too, so kept is only
		// nil when nothing below c will be attached.
		prune(p, c, kept, next, table)
	}
}

// Reroute rewrites the edges of links through table into a new graph.
//
// Hierarchy edges are skipped. An edge is dropped when either endpoint was
// removed, or when both endpoints resolve to the same node. Kind and the
// render flag are preserved.
func Reroute(links *graph.LinkGraph, table RerouteTable) *graph.LinkGraph {
	out := graph.NewLinkGraph()
	for _, e := range links.Edges() {
		if e.Kind == graph.EdgeHierarchy {
			continue
		}
		from, ok := table.Resolve(e.From)
		if !ok {
			continue
		}
		to, ok := table.Resolve(e.To)
		if !ok || from == to {
			continue
		}
		e.From, e.To = from, to
		out.Add(e)
	}
	return out
}

// Normalize removes duplicate edges from links and merges opposite pairs
// of the same kind into bidirectional edges. It returns the number of
// duplicates removed and pairs merged. Normalize is idempotent.
func Normalize(links *graph.LinkGraph) (deduped, merged int) {
	deduped = links.Dedupe()
	merged = links.MergeBidirectional()
	return deduped, merged
}
