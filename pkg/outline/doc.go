// Package outline implements the line grammar of outline documents.
//
// # Overview
//
// An outline document is plain text where each non-blank line is one node.
// Indentation gives nesting, the first character after the indentation gives
// the node kind, and an optional metadata section after a separator carries
// ids, links, and visibility markers:
//
//	- Payments | pay
//	  > Validate card | >fraud
//	  > Charge
//	  < Notify (no edge to here)
//	  - Ledger | fold
//	    - Entries
//	// comments are ignored
//	$ script directives are collected separately
//
// [Parse] turns one raw line into a [Line] record. It is pure: it never
// generates ids. [ParseDocument] parses every line and assigns placeholder
// ids from an [ids.Supplier] to valid lines that did not author one.
//
// # Bullets
//
//	-   Default     plain data or subgraph node
//	>   Flow        process node, chained with flow edges
//	<   FlowBreak   receives no hierarchy edge, still recursed into
//
// A line whose text does not start with a bullet character is a Default
// node labeled with its whole text.
//
// # Metadata Section
//
// Everything after the first [Separator] is split on whitespace. Each token
// is classified in this order:
//
//  1. fold, folded, hide: visibility (folded is written by fold propagation only)
//  2. !: highlight
//  3. >id or <id: outgoing or incoming link reference
//  4. anything else: the line's own explicit id
//
// [Rewrite] replaces the metadata section of a raw line while keeping the
// label text verbatim. An empty section collapses away entirely, so
// toggling a marker on and off restores the original line.
package outline
