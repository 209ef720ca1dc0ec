package io

import (
	"fmt"
	"slices"

	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/graph/transform"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

// Graph is the serialized form of a compiled outline.
type Graph struct {
	Nodes []Node           `json:"nodes" yaml:"nodes"`
	Edges []Edge           `json:"edges" yaml:"edges"`
	Fold  []string         `json:"fold,omitempty" yaml:"fold,omitempty"`
	Hide  []string         `json:"hide,omitempty" yaml:"hide,omitempty"`
	Stats *transform.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`

	Duplicates []Duplicate `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// Duplicate is an explicit id declared on several lines. Lines holds
// zero-based indices, like [Node.Line].
type Duplicate struct {
	ID    string `json:"id" yaml:"id"`
	Lines []int  `json:"lines" yaml:"lines"`
}

// Node is one tree node. Nodes are listed in pre-order; Parent is the index
// of the parent node in the list, or -1 for top-level nodes.
type Node struct {
	ID        string `json:"id" yaml:"id"`
	Label     string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind      string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Parent    int    `json:"parent" yaml:"parent"`
	Line      int    `json:"line" yaml:"line"`
	Size      int    `json:"size,omitempty" yaml:"size,omitempty"`
	Highlight bool   `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	Folded    bool   `json:"folded,omitempty" yaml:"folded,omitempty"`
}

// Edge is one directed edge. Hidden is set on the mirrored half of a merged
// bidirectional pair, which renderers skip.
type Edge struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Kind   string `json:"kind" yaml:"kind"`
	Hidden bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

var bulletKinds = map[string]outline.BulletKind{
	"":          outline.BulletDefault,
	"default":   outline.BulletDefault,
	"flow":      outline.BulletFlow,
	"flowbreak": outline.BulletFlowBreak,
}

// FromParsed converts a compiled outline to its serialized form. stats may
// be nil.
func FromParsed(p *graph.Parsed, stats *transform.Stats) Graph {
	out := Graph{
		Fold:  p.Fold.Values(),
		Hide:  p.Hide.Values(),
		Stats: stats,
	}

	var walk func(n *graph.Node, parent int)
	walk = func(n *graph.Node, parent int) {
		for _, c := range n.Children {
			nd := Node{
				ID:        c.ID,
				Label:     c.Label,
				Parent:    parent,
				Line:      c.Line,
				Size:      c.Size,
				Highlight: c.Highlight,
				Folded:    c.IsFolded(),
			}
			if c.Bullet != outline.BulletDefault {
				nd.Kind = c.Bullet.String()
			}
			out.Nodes = append(out.Nodes, nd)
			walk(c, len(out.Nodes)-1)
		}
	}
	walk(p.Root, -1)

	for _, d := range p.Duplicates {
		out.Duplicates = append(out.Duplicates, Duplicate{ID: d.ID, Lines: slices.Clone(d.Lines)})
	}
	for _, e := range p.Links.Edges() {
		out.Edges = append(out.Edges, Edge{
			From:   e.From,
			To:     e.To,
			Kind:   e.Kind.String(),
			Hidden: !e.MustRender,
		})
	}
	return out
}

// ToParsed rebuilds a compiled outline from its serialized form.
func ToParsed(g Graph) (*graph.Parsed, error) {
	p := graph.NewParsed()
	nodes := make([]*graph.Node, len(g.Nodes))

	for i, nd := range g.Nodes {
		bullet, ok := bulletKinds[nd.Kind]
		if !ok {
			return nil, fmt.Errorf("node %d (%s): unknown kind %q", i, nd.ID, nd.Kind)
		}
		n := &graph.Node{
			ID:        nd.ID,
			Label:     nd.Label,
			Bullet:    bullet,
			Highlight: nd.Highlight,
			Line:      nd.Line,
			Size:      nd.Size,
		}
		switch {
		case nd.Parent == -1:
			p.Root.AddChild(n)
		case nd.Parent >= 0 && nd.Parent < i:
			nodes[nd.Parent].AddChild(n)
		default:
			return nil, fmt.Errorf("node %d (%s): parent %d must precede it", i, nd.ID, nd.Parent)
		}
		nodes[i] = n
	}

	for _, e := range g.Edges {
		kind, ok := graph.ParseEdgeKind(e.Kind)
		if !ok {
			return nil, fmt.Errorf("edge %s->%s: unknown kind %q", e.From, e.To, e.Kind)
		}
		p.Links.Add(graph.Edge{From: e.From, To: e.To, Kind: kind, MustRender: !e.Hidden})
	}
	for _, d := range g.Duplicates {
		p.Duplicates = append(p.Duplicates, graph.Duplicate{ID: d.ID, Lines: slices.Clone(d.Lines)})
	}
	for _, id := range g.Fold {
		p.Fold.Add(id)
	}
	for _, id := range g.Hide {
		p.Hide.Add(id)
	}
	return p, nil
}
