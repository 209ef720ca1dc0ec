package outline

// Grammar tokens. These are part of the document format and must stay
// bit-exact so that rewritten lines round-trip.
const (
	// IndentUnit is the canonical indentation unit. Tabs are normalized to it.
	IndentUnit = "  "

	// CommentPrefix starts a comment line (after leading whitespace).
	CommentPrefix = "//"

	// ScriptPrefix starts a script-directive line. Script lines are excluded
	// from graph parsing and handed to an external collector via [Scripts].
	ScriptPrefix = "$"

	// Separator splits a line into label and metadata section.
	Separator = "|"

	// TokenFold marks a node whose descendants collapse into it.
	TokenFold = "fold"
	// TokenFoldHidden marks a fold nested inside another fold. It is only
	// written by fold propagation, never authored.
	TokenFoldHidden = "folded"
	// TokenHide removes a node and its descendants.
	TokenHide = "hide"
	// TokenHighlight highlights a node.
	TokenHighlight = "!"

	// SigilOut prefixes the id of an outgoing link target.
	SigilOut = '>'
	// SigilIn prefixes the id of an incoming link source.
	SigilIn = '<'
)

// BulletKind is the node kind selected by a line's bullet character.
type BulletKind int

const (
	// BulletDefault is a plain data or subgraph node ("-").
	BulletDefault BulletKind = iota
	// BulletFlow is a process node that participates in flow chaining (">").
	BulletFlow
	// BulletFlowBreak suppresses edges into the node (<).
	BulletFlowBreak
)

// String returns the kind name.
func (k BulletKind) String() string {
	switch k {
	case BulletFlow:
		return "flow"
	case BulletFlowBreak:
		return "flowbreak"
	default:
		return "default"
	}
}

// Char returns the bullet character that authors this kind.
func (k BulletKind) Char() byte {
	switch k {
	case BulletFlow:
		return '>'
	case BulletFlowBreak:
		return '<'
	default:
		return '-'
	}
}

// Visibility is the visibility marker of a line.
type Visibility int

const (
	VisibilityNormal Visibility = iota
	VisibilityFold
	// VisibilityFoldHidden is derived: a fold marker inside a folded region.
	VisibilityFoldHidden
	VisibilityHide
)

var visibilityTokens = map[string]Visibility{
	TokenFold:       VisibilityFold,
	TokenFoldHidden: VisibilityFoldHidden,
	TokenHide:       VisibilityHide,
}

// Token returns the metadata token for v, or "" for VisibilityNormal.
func (v Visibility) Token() string {
	switch v {
	case VisibilityFold:
		return TokenFold
	case VisibilityFoldHidden:
		return TokenFoldHidden
	case VisibilityHide:
		return TokenHide
	default:
		return ""
	}
}

// String returns a readable name for v.
func (v Visibility) String() string {
	if v == VisibilityNormal {
		return "normal"
	}
	return v.Token()
}

// ParseVisibility maps a user-facing name to a Visibility. It accepts the
// metadata tokens plus "normal" and "show".
func ParseVisibility(s string) (Visibility, bool) {
	if v, ok := visibilityTokens[s]; ok {
		return v, true
	}
	switch s {
	case "normal", "show", "":
		return VisibilityNormal, true
	}
	return VisibilityNormal, false
}

// Line is one parsed line of an outline document.
//
// The zero value is not meaningful; use [Parse]. Blank lines have Depth -1
// and must not be fed to the graph builder.
type Line struct {
	Raw   string // Original text, unmodified
	Index int    // Zero-based line index in the document

	IsComment bool // Line starts with CommentPrefix
	IsScript  bool // Line starts with ScriptPrefix
	Depth     int  // Leading indent units, -1 for blank lines

	Bullet     BulletKind
	Label      string // Sanitized label text
	Visibility Visibility
	Highlight  bool

	// ExplicitID is the id authored in the metadata section, or "".
	ExplicitID string
	// PlaceholderID is assigned by ParseDocument when ExplicitID is empty.
	PlaceholderID string

	IDsIn  []string // Incoming link sources, in authored order
	IDsOut []string // Outgoing link targets, in authored order

	// HasComponents reports whether a metadata section was present.
	HasComponents bool
}

// ID returns the explicit id if one was authored, otherwise the placeholder.
func (l Line) ID() string {
	if l.ExplicitID != "" {
		return l.ExplicitID
	}
	return l.PlaceholderID
}

// HasExplicitID reports whether the line's id was authored.
func (l Line) HasExplicitID() bool { return l.ExplicitID != "" }

// IsBlank reports whether the line was empty or whitespace only.
func (l Line) IsBlank() bool { return l.Depth < 0 }

// Valid reports whether the line describes a graph node: not blank, not a
// comment, and not a script directive.
func (l Line) Valid() bool {
	return !l.IsComment && !l.IsScript && l.Depth >= 0
}
