package transform

import (
	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

// CompileOptions configures [Compile].
type CompileOptions struct {
	// StrictIDs fails compilation on duplicate explicit ids.
	StrictIDs bool

	// NoPrune ignores all fold and hide markers.
	NoPrune bool

	// Fold and Hide add marker ids on top of those authored in the lines,
	// as an editor would for a session-local fold.
	Fold []string
	Hide []string
}

// Stats summarizes one compilation.
type Stats struct {
	Lines      int `json:"lines" yaml:"lines"`
	Nodes      int `json:"nodes" yaml:"nodes"`
	Visible    int `json:"visible" yaml:"visible"`
	Collapsed  int `json:"collapsed" yaml:"collapsed"`
	Removed    int `json:"removed" yaml:"removed"`
	Duplicates int `json:"duplicates" yaml:"duplicates"`
	Scripts    int `json:"scripts" yaml:"scripts"`

	Hierarchy int `json:"hierarchy_edges" yaml:"hierarchy_edges"`
	Flow      int `json:"flow_edges" yaml:"flow_edges"`
	Links     int `json:"link_edges" yaml:"link_edges"`
	BiLinks   int `json:"bilink_edges" yaml:"bilink_edges"`

	Deduped int `json:"deduped" yaml:"deduped"`
}

// RenderedEdges returns the number of edges a renderer draws.
func (s Stats) RenderedEdges() int {
	return s.Hierarchy + s.Flow + s.Links + s.BiLinks
}

// Compile runs the full pipeline over parsed lines: build, dependency
// sizes, edge synthesis on the full tree, pruning, edge synthesis again on
// the pruned tree, and normalization. The returned graph is ready for
// rendering. Edges produced by both synthesis passes are counted in
// Stats.Deduped.
func Compile(lines []outline.Line, opts CompileOptions) (*graph.Parsed, Stats, error) {
	var stats Stats
	for _, l := range lines {
		if l.Valid() {
			stats.Lines++
		}
	}
	stats.Scripts = len(outline.Scripts(lines))

	p, err := graph.BuildWithOptions(lines, graph.BuildOptions{StrictIDs: opts.StrictIDs})
	if err != nil {
		return nil, stats, err
	}
	for _, id := range opts.Fold {
		p.Fold.Add(id)
	}
	for _, id := range opts.Hide {
		p.Hide.Add(id)
	}

	ComputeSizes(p.Root)
	stats.Nodes = p.NodeCount()
	stats.Duplicates = len(p.Duplicates)

	if !opts.NoPrune {
		// Flow edges of the full tree are rerouted by Prune, so chains into
		// or out of a collapsed subtree end at its fold root.
		Reorder(p.Root)
		Synthesize(p)

		var table RerouteTable
		p, table = Prune(p)
		stats.Collapsed = table.Collapsed()
		stats.Removed = table.Removed()
	}
	stats.Visible = p.NodeCount()

	Reorder(p.Root)
	Synthesize(p)
	stats.Deduped, _ = Normalize(p.Links)

	for _, e := range p.Links.RenderEdges() {
		switch e.Kind {
		case graph.EdgeHierarchy:
			stats.Hierarchy++
		case graph.EdgeFlow:
			stats.Flow++
		case graph.EdgeLink:
			stats.Links++
		case graph.EdgeBiLink:
			stats.BiLinks++
		}
	}
	return p, stats, nil
}
