package nodelink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/outlinegraph/pkg/graph"
)

// Layout directions accepted by [Options.RankDir].
var rankDirs = map[string]bool{"TB": true, "LR": true, "BT": true, "RL": true}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id and dependency size to node labels.
	// When false, only the label is shown.
	Detailed bool

	// RankDir is the Graphviz layout direction (TB, LR, BT, RL).
	// Empty means TB.
	RankDir string
}

// ValidRankDir reports whether dir is a supported layout direction.
func ValidRankDir(dir string) bool { return dir == "" || rankDirs[dir] }

// ToDOT converts a compiled outline to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPNG],
// or [RenderPDF].
//
// Nodes are styled by classification: process nodes use the cds shape,
// folded nodes get a double outline and their hidden descendant count, and
// highlighted nodes are drawn bold. Only edges with MustRender set are
// emitted; a merged bidirectional pair appears once with arrows at both ends.
// Link endpoints that no line declares are drawn as dotted placeholders.
func ToDOT(p *graph.Parsed, opts Options) string {
	rankdir := opts.RankDir
	if !rankDirs[rankdir] {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#57606a\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	declared := make(map[string]bool)
	for _, n := range p.Nodes() {
		declared[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	edges := p.Links.RenderEdges()
	for _, e := range edges {
		for _, id := range []string{e.From, e.To} {
			if !declared[id] {
				declared[id] = true
				fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dotted\", fontcolor=\"#57606a\"];\n", id, id)
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		if attrs := edgeAttrs(e.Kind); attrs != "" {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, attrs)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if n.IsFolded() {
		label = fmt.Sprintf("%s (+%d)", label, n.Size)
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nid: %s\nsize: %d", label, n.ID, n.Size)
}

func fmtAttrs(n *graph.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}

	style := "rounded,filled"
	switch {
	case n.IsProcess():
		attrs = append(attrs, "shape=cds")
		style = "filled"
	case n.IsFlowBreak():
		style += ",dashed"
	}
	if n.IsSubgraph() {
		attrs = append(attrs, "fontname=\"Helvetica-Bold\"")
	}

	fill := ""
	if n.IsFolded() {
		attrs = append(attrs, "peripheries=2")
		fill = "#eaeef2"
	}
	if n.Highlight {
		style += ",bold"
		attrs = append(attrs, "penwidth=2.5")
		fill = "#fff8c5"
	}
	if fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
	}
	return append(attrs, fmt.Sprintf("style=%q", style))
}

func edgeAttrs(kind graph.EdgeKind) string {
	switch kind {
	case graph.EdgeFlow:
		return "penwidth=2, color=\"#0969da\""
	case graph.EdgeLink:
		return "style=dashed"
	case graph.EdgeBiLink:
		return "style=dashed, dir=both"
	default:
		return ""
	}
}
