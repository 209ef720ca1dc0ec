// Package transform turns a built outline graph into its renderable form.
//
// # Overview
//
// [Compile] runs the complete pipeline in order:
//
//  1. [ComputeSizes]: dependency size of every node
//  2. [Prune]: apply fold and hide markers, reroute links
//  3. [Reorder]: subgraph children before childless ones
//  4. [Synthesize]: hierarchy and flow edges for the pruned tree
//  5. [Normalize]: deduplicate and merge opposite pairs
//
// Each step is exported for callers that need part of the pipeline.
//
// # Pruning
//
// [Prune] walks the tree top-down, passing the inherited state by value:
// whether a fold boundary was crossed (and at which node), and whether an
// ancestor is hidden. For each node:
//
//   - hidden (itself or an ancestor): removed, reroutes to nothing
//   - below a fold boundary: removed, reroutes to the fold root
//   - otherwise: copied into the pruned tree, reroutes to itself
//
// The resulting [RerouteTable] drives [Reroute], which rewrites the link
// graph. Edges to removed nodes disappear, and edges that would become
// self-loops on a fold root are dropped:
//
//	- Service | svc
//	  - Worker | fold w
//	    - Queue | q
//	- Client | client >q
//
// compiles to a link client → w, because q collapses into the folded
// worker.
//
// # Hierarchy Edges
//
// Hierarchy edges are derived from nesting, not authored. To keep long
// lists of leaves from fanning out of their parent, consecutive childless
// siblings are chained: parent → first, first → second, and so on. Process
// siblings connect through flow edges instead, with only the first one
// linked from a non-process parent.
package transform
