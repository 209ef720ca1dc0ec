package graph

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEdgeMismatch is returned by [LinkGraph.Validate] when an edge is
// missing its mirrored copy on the other endpoint.
var ErrEdgeMismatch = errors.New("edge copies out of sync")

// LinkGraph stores directed edges as per-node output and input lists.
//
// Nodes are kept in a dense arena addressed by index, with a side table from
// id to index. Adding an edge appends it to outputs[from] and inputs[to],
// creating entries for unseen ids, so every edge is stored exactly twice.
// Ids need not correspond to tree nodes: references to undeclared ids are
// kept as-is.
//
// The zero value is not usable; use NewLinkGraph.
// LinkGraph is not safe for concurrent use without external synchronization.
type LinkGraph struct {
	index   map[string]int
	ids     []string
	outputs [][]Edge
	inputs  [][]Edge
}

// NewLinkGraph returns an empty graph.
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{index: make(map[string]int)}
}

func (g *LinkGraph) slot(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	i := len(g.ids)
	g.index[id] = i
	g.ids = append(g.ids, id)
	g.outputs = append(g.outputs, nil)
	g.inputs = append(g.inputs, nil)
	return i
}

// AddEdge adds a renderable edge from → to and returns it.
func (g *LinkGraph) AddEdge(from, to string, kind EdgeKind) Edge {
	e := NewEdge(from, to, kind)
	g.Add(e)
	return e
}

// Add adds e as given, preserving its MustRender flag.
func (g *LinkGraph) Add(e Edge) {
	from := g.slot(e.From)
	to := g.slot(e.To)
	g.outputs[from] = append(g.outputs[from], e)
	g.inputs[to] = append(g.inputs[to], e)
}

// Has reports whether id appears as an endpoint of any edge.
func (g *LinkGraph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// IDs returns all endpoint ids in first-seen order.
func (g *LinkGraph) IDs() []string { return slices.Clone(g.ids) }

// Outputs returns a copy of the edges leaving id.
func (g *LinkGraph) Outputs(id string) []Edge {
	if i, ok := g.index[id]; ok {
		return slices.Clone(g.outputs[i])
	}
	return nil
}

// Inputs returns a copy of the edges entering id.
func (g *LinkGraph) Inputs(id string) []Edge {
	if i, ok := g.index[id]; ok {
		return slices.Clone(g.inputs[i])
	}
	return nil
}

// Edges returns every edge once, walking output lists in first-seen id order.
func (g *LinkGraph) Edges() []Edge {
	var out []Edge
	for _, list := range g.outputs {
		out = append(out, list...)
	}
	return out
}

// RenderEdges returns the edges a renderer should draw.
func (g *LinkGraph) RenderEdges() []Edge {
	var out []Edge
	for _, list := range g.outputs {
		for _, e := range list {
			if e.MustRender {
				out = append(out, e)
			}
		}
	}
	return out
}

// EdgeCount returns the number of edges.
func (g *LinkGraph) EdgeCount() int {
	n := 0
	for _, list := range g.outputs {
		n += len(list)
	}
	return n
}

// CountByKind returns the number of edges of each kind.
func (g *LinkGraph) CountByKind() map[EdgeKind]int {
	counts := make(map[EdgeKind]int)
	for _, list := range g.outputs {
		for _, e := range list {
			counts[e.Kind]++
		}
	}
	return counts
}

// Dedupe removes exact duplicate edges (same endpoints and kind). Each output
// and input list is scanned independently; the first occurrence wins.
// It returns the number of edges removed.
func (g *LinkGraph) Dedupe() int {
	removed := 0
	for i := range g.ids {
		before := len(g.outputs[i])
		g.outputs[i] = dedupeList(g.outputs[i])
		removed += before - len(g.outputs[i])
		g.inputs[i] = dedupeList(g.inputs[i])
	}
	return removed
}

func dedupeList(list []Edge) []Edge {
	out := list[:0]
	for _, e := range list {
		if !slices.ContainsFunc(out, e.Same) {
			out = append(out, e)
		}
	}
	return out
}

// MergeBidirectional merges pairs of opposite edges with the same kind into
// one BiLink. For each renderable output edge A→B, if B→A is found among A's
// inputs, both are retyped to BiLink and B→A stops rendering, on both of its
// stored copies. It returns the number of merged pairs.
//
// Call Dedupe first: copies are located by endpoints and kind.
func (g *LinkGraph) MergeBidirectional() int {
	merged := 0
	for i, id := range g.ids {
		for k := range g.outputs[i] {
			e := g.outputs[i][k]
			if !e.MustRender || e.Kind == EdgeBiLink || e.To == id {
				continue
			}
			ri := slices.IndexFunc(g.inputs[i], func(r Edge) bool {
				return r.From == e.To && r.Kind == e.Kind && r.MustRender
			})
			if ri < 0 {
				continue
			}
			r := g.inputs[i][ri]
			j := g.index[e.To]

			g.outputs[i][k].Kind = EdgeBiLink
			retype(g.inputs[j], e, true)

			g.inputs[i][ri].Kind = EdgeBiLink
			g.inputs[i][ri].MustRender = false
			retype(g.outputs[j], r, false)

			merged++
		}
	}
	return merged
}

func retype(list []Edge, match Edge, render bool) {
	for k := range list {
		if list[k].Same(match) {
			list[k].Kind = EdgeBiLink
			list[k].MustRender = render
			return
		}
	}
}

// Validate checks that every stored edge has exactly one mirrored copy with
// identical fields on its other endpoint.
func (g *LinkGraph) Validate() error {
	for i, id := range g.ids {
		for _, e := range g.outputs[i] {
			if e.From != id {
				return fmt.Errorf("%w: %s stored as output of %s", ErrEdgeMismatch, e, id)
			}
			j, ok := g.index[e.To]
			if !ok || count(g.inputs[j], e) != count(g.outputs[i], e) {
				return fmt.Errorf("%w: %s", ErrEdgeMismatch, e)
			}
		}
		for _, e := range g.inputs[i] {
			if e.To != id {
				return fmt.Errorf("%w: %s stored as input of %s", ErrEdgeMismatch, e, id)
			}
			j, ok := g.index[e.From]
			if !ok || count(g.outputs[j], e) != count(g.inputs[i], e) {
				return fmt.Errorf("%w: %s", ErrEdgeMismatch, e)
			}
		}
	}
	return nil
}

func count(list []Edge, e Edge) int {
	n := 0
	for _, x := range list {
		if x == e {
			n++
		}
	}
	return n
}
