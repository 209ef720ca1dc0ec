// Package io provides JSON and YAML export of compiled outlines.
//
// # Overview
//
// A compiled outline is a tree plus a set of typed edges. This package
// flattens both into a [Graph] that external tools can consume and that the
// pipeline uses as its cache format:
//
//	{
//	  "nodes": [
//	    {"id": "svc", "label": "Service", "parent": -1, "line": 0, "size": 2},
//	    {"id": "w", "label": "Worker", "parent": 0, "line": 1, "size": 1, "folded": true}
//	  ],
//	  "edges": [
//	    {"from": "svc", "to": "w", "kind": "hierarchy"}
//	  ],
//	  "fold": ["w"]
//	}
//
// # Node Fields
//
//   - id: node id (explicit or placeholder)
//   - label: sanitized label text
//   - kind: "flow" or "flowbreak"; omitted for default nodes
//   - parent: index of the parent node, -1 for top-level nodes
//   - line: source line index
//   - size: dependency size (descendants in the unpruned outline)
//   - folded: descendants exist but were pruned
//
// # Edge Fields
//
//   - kind: "hierarchy", "flow", "link" or "bilink"
//   - hidden: the mirrored half of a bidirectional pair; not drawn
//
// # Round Trips
//
// [FromParsed] and [ToParsed] convert between the compiled graph and
// [Graph] without loss: tree shape, sizes, edge kinds and render flags are
// preserved, so a cached graph renders identically to a fresh one.
package io
