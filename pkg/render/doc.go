// Package render converts rendered diagrams between output formats.
//
// Graphviz produces SVG and PNG in-process through the [nodelink]
// subpackage. PDF goes through SVG and the external rsvg-convert tool:
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/outlinegraph/pkg/render/nodelink
package render
