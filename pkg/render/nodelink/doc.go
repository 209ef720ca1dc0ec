// Package nodelink renders compiled outlines as node-link diagrams.
//
// # Overview
//
// This package turns the output of transform.Compile into Graphviz DOT and
// renders it in-process. It reads node classification and edge kinds from
// the compiled graph and never derives edges of its own.
//
// # Usage
//
//	dot := nodelink.ToDOT(parsed, nodelink.Options{RankDir: "LR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PNG is rendered by Graphviz directly; PDF goes through rsvg-convert:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Styling
//
// Nodes:
//
//   - process nodes: cds shape
//   - flow-break nodes: dashed outline
//   - folded nodes: double outline, label suffixed with "(+N)" hidden nodes
//   - subgraph nodes: bold font
//   - highlighted nodes: bold outline, yellow fill
//
// Edges: hierarchy edges are plain, flow edges thick and blue, links
// dashed, and bidirectional links dashed with arrows at both ends.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
