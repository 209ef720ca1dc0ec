package outline

import (
	"slices"
	"strings"
)

// Components is the content of a line's metadata section.
type Components struct {
	Visibility Visibility
	Highlight  bool
	ID         string   // Explicit id, "" if none
	Out        []string // Outgoing link targets
	In         []string // Incoming link sources

	// source is the section the components were read from. Tokens edits it
	// in place, so tokens that carry no component survive a rewrite.
	source    []metaToken
	srcVis    Visibility
	srcHilite bool
	srcID     string
}

// ComponentsOf extracts the metadata components of a parsed line.
// Placeholder ids are never included.
func ComponentsOf(l Line) Components {
	c := Components{
		Visibility: l.Visibility,
		Highlight:  l.Highlight,
		ID:         l.ExplicitID,
		Out:        slices.Clone(l.IDsOut),
		In:         slices.Clone(l.IDsIn),
	}
	if l.HasComponents {
		_, meta, _ := strings.Cut(l.Raw, Separator)
		c.source = tokenize(meta)
		c.srcVis, c.srcHilite, c.srcID = c.Visibility, c.Highlight, c.ID
	}
	return c
}

// IsEmpty reports whether the section would contain no tokens.
func (c Components) IsEmpty() bool {
	return len(c.Tokens()) == 0
}

// Tokens returns the section tokens. Components built by hand produce the
// canonical order: visibility, highlight, id, outgoing links, incoming
// links. Components read from a line keep its tokens verbatim and in place,
// including tokens the parser ignores and ids superseded by a later one;
// only changed components are replaced, dropped or inserted at their
// canonical position. Clearing the id drops every id token, since a
// superseded one would otherwise take effect.
func (c Components) Tokens() []string {
	if len(c.source) == 0 {
		return c.canonical()
	}

	visChanged := c.Visibility != c.srcVis
	idChanged := c.ID != c.srcID
	lastID := -1
	for i, t := range c.source {
		if t.kind == tokenID {
			lastID = i
		}
	}
	outLeft, inLeft := counts(c.Out), counts(c.In)

	var toks []metaToken
	placedVis := false
	for i, t := range c.source {
		switch t.kind {
		case tokenVisibility:
			if !visChanged {
				toks = append(toks, t)
			} else if !placedVis {
				placedVis = true
				if tok := c.Visibility.Token(); tok != "" {
					toks = append(toks, metaToken{text: tok, kind: tokenVisibility})
				}
			}
		case tokenHighlight:
			if c.Highlight {
				toks = append(toks, t)
			}
		case tokenID:
			switch {
			case !idChanged:
				toks = append(toks, t)
			case c.ID == "":
			case i == lastID:
				toks = append(toks, metaToken{text: c.ID, kind: tokenID, id: c.ID})
			default:
				toks = append(toks, t)
			}
		case tokenOut:
			if outLeft[t.id] > 0 {
				outLeft[t.id]--
				toks = append(toks, t)
			}
		case tokenIn:
			if inLeft[t.id] > 0 {
				inLeft[t.id]--
				toks = append(toks, t)
			}
		default:
			toks = append(toks, t)
		}
	}

	if visChanged && !placedVis {
		if tok := c.Visibility.Token(); tok != "" {
			toks = insertAfter(toks, metaToken{text: tok, kind: tokenVisibility})
		}
	}
	if c.Highlight && !c.srcHilite {
		toks = insertAfter(toks, metaToken{text: TokenHighlight, kind: tokenHighlight}, tokenVisibility)
	}
	if idChanged && c.ID != "" && lastID < 0 {
		toks = insertAfter(toks, metaToken{text: c.ID, kind: tokenID}, tokenVisibility, tokenHighlight)
	}
	for _, id := range c.Out {
		if outLeft[id] > 0 {
			outLeft[id]--
			toks = insertAfter(toks, metaToken{text: string(SigilOut) + id, kind: tokenOut},
				tokenOther, tokenVisibility, tokenHighlight, tokenID, tokenOut)
		}
	}
	for _, id := range c.In {
		if inLeft[id] > 0 {
			inLeft[id]--
			toks = append(toks, metaToken{text: string(SigilIn) + id, kind: tokenIn})
		}
	}

	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.text
	}
	return out
}

func (c Components) canonical() []string {
	var toks []string
	if t := c.Visibility.Token(); t != "" {
		toks = append(toks, t)
	}
	if c.Highlight {
		toks = append(toks, TokenHighlight)
	}
	if c.ID != "" {
		toks = append(toks, c.ID)
	}
	for _, id := range c.Out {
		toks = append(toks, string(SigilOut)+id)
	}
	for _, id := range c.In {
		toks = append(toks, string(SigilIn)+id)
	}
	return toks
}

// insertAfter inserts t after the last token of one of the given kinds, or
// first if there is none.
func insertAfter(toks []metaToken, t metaToken, after ...tokenKind) []metaToken {
	at := 0
	for i, x := range toks {
		if slices.Contains(after, x.kind) {
			at = i + 1
		}
	}
	return slices.Insert(toks, at, t)
}

func counts(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for _, id := range ids {
		m[id]++
	}
	return m
}

// String returns the space-joined section tokens.
func (c Components) String() string {
	return strings.Join(c.Tokens(), " ")
}

// AddOut appends an outgoing link unless it is already present.
func (c *Components) AddOut(id string) bool {
	if slices.Contains(c.Out, id) {
		return false
	}
	c.Out = append(c.Out, id)
	return true
}

// Rewrite replaces the metadata section of raw with c, keeping everything
// before the separator verbatim (minus trailing whitespace). Tokens are
// joined by single spaces. When c is empty the separator is dropped as well.
func Rewrite(raw string, c Components) string {
	left, _, _ := strings.Cut(raw, Separator)
	left = strings.TrimRight(left, " \t\r")
	if c.IsEmpty() {
		return left
	}
	return left + " " + Separator + " " + c.String()
}
