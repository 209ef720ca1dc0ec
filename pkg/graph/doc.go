// Package graph provides the data model of a compiled outline and the
// builder that produces it from parsed lines.
//
// # Overview
//
// An outline compiles into two structures that share node ids:
//
//   - a hierarchy tree of [Node] values rooted at a synthetic root, where
//     nesting follows indentation
//   - a [LinkGraph] of directed [Edge] values, holding authored links and,
//     after transformation, synthesized hierarchy and flow edges
//
// Both, together with the ids marked fold and hide, are bundled in [Parsed].
//
// # Building
//
// [Build] consumes lines from outline.ParseDocument in document order:
//
//	lines := outline.ParseDocument(outline.Split(text), ids.NewRandom())
//	parsed, err := graph.Build(lines)
//
// The builder keeps an explicit stack of parent frames. A dedent pops back
// to the matching ancestor, including the root. A line indented more than
// one level past its predecessor is a structural error ([ErrDepthSkip]).
//
// Links to ids that no line declares are kept. Such edges simply have an
// endpoint without a tree node; renderers decide how to draw them.
//
// # Node Classification
//
// Classification is derived, never stored:
//
//   - [Node.IsLeaf]: dependency size is zero
//   - [Node.IsSubgraph]: has children in the current tree
//   - [Node.IsFolded]: has descendants but none in the current tree
//
// Dependency sizes are computed by the transform package. After pruning,
// nodes keep the size they had before, which is what lets a fold root
// classify as folded.
//
// # Edges
//
// Each edge is stored twice, once in the source's output list and once in
// the target's input list. [LinkGraph.Dedupe] and
// [LinkGraph.MergeBidirectional] keep both copies in sync, and
// [LinkGraph.Validate] checks that they are.
//
// # Concurrency
//
// Values in this package are not safe for concurrent mutation.
package graph
