package outline

import (
	"strings"
	"unicode"

	"github.com/matzehuels/outlinegraph/pkg/ids"
)

// DefaultIndentWidth is the number of spaces in one indent unit.
const DefaultIndentWidth = len(IndentUnit)

// Parser parses lines with a configurable indent width.
// The zero value uses DefaultIndentWidth.
type Parser struct {
	// IndentWidth is the number of spaces per depth level. A tab always
	// counts as exactly one level.
	IndentWidth int
}

// Parse parses one raw line with the default indent width.
func Parse(raw string, index int) Line {
	return Parser{}.Parse(raw, index)
}

// ParseDocument parses every line with the default indent width and assigns
// placeholders from sup to valid lines without an explicit id.
func ParseDocument(lines []string, sup ids.Supplier) []Line {
	return Parser{}.ParseDocument(lines, sup)
}

// Split splits document text into raw lines, accepting both LF and CRLF.
// A single trailing newline does not produce an extra blank line.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Scripts returns the script-directive lines, in document order.
func Scripts(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.IsScript {
			out = append(out, l)
		}
	}
	return out
}

func (p Parser) width() int {
	if p.IndentWidth <= 0 {
		return DefaultIndentWidth
	}
	return p.IndentWidth
}

// ParseDocument parses every line and assigns placeholders from sup to valid
// lines without an explicit id. Lines keep their document index.
func (p Parser) ParseDocument(lines []string, sup ids.Supplier) []Line {
	out := make([]Line, len(lines))
	for i, raw := range lines {
		l := p.Parse(raw, i)
		if l.Valid() && l.ExplicitID == "" && sup != nil {
			l.PlaceholderID = sup.Placeholder()
		}
		out[i] = l
	}
	return out
}

// Parse converts one raw line into a Line record.
//
// Blank lines return Depth -1. Comment and script lines carry their index and
// depth but are not parsed further.
func (p Parser) Parse(raw string, index int) Line {
	l := Line{Raw: raw, Index: index, Depth: -1}
	if strings.TrimSpace(raw) == "" {
		return l
	}

	unit := strings.Repeat(" ", p.width())
	text := strings.ReplaceAll(raw, "\t", unit)
	text = strings.ReplaceAll(text, `"`, "'")

	body := strings.TrimLeft(text, " ")
	l.Depth = (len(text) - len(body)) / p.width()
	body = strings.TrimRightFunc(body, unicode.IsSpace)

	switch {
	case strings.HasPrefix(body, CommentPrefix):
		l.IsComment = true
		return l
	case strings.HasPrefix(body, ScriptPrefix):
		l.IsScript = true
		return l
	}

	l.Bullet, body = splitBullet(body)

	label, meta, found := strings.Cut(body, Separator)
	l.Label = sanitizeLabel(label)
	if found {
		l.HasComponents = true
		parseComponents(&l, meta)
	}
	return l
}

func splitBullet(body string) (BulletKind, string) {
	switch body[0] {
	case '-':
		return BulletDefault, body[1:]
	case '>':
		return BulletFlow, body[1:]
	case '<':
		return BulletFlowBreak, body[1:]
	}
	return BulletDefault, body
}

func parseComponents(l *Line, meta string) {
	for _, t := range tokenize(meta) {
		switch t.kind {
		case tokenVisibility:
			l.Visibility = t.vis
		case tokenHighlight:
			l.Highlight = true
		case tokenID:
			l.ExplicitID = t.id
		case tokenOut:
			l.IDsOut = append(l.IDsOut, t.id)
		case tokenIn:
			l.IDsIn = append(l.IDsIn, t.id)
		}
	}
}

type tokenKind int

const (
	tokenOther tokenKind = iota // sanitizes to nothing, ignored
	tokenVisibility
	tokenHighlight
	tokenID
	tokenOut
	tokenIn
)

// metaToken is one whitespace-separated token of a metadata section.
type metaToken struct {
	text string
	kind tokenKind
	vis  Visibility
	id   string // sanitized id of tokenID, tokenOut and tokenIn
}

func tokenize(meta string) []metaToken {
	fields := strings.Fields(meta)
	toks := make([]metaToken, 0, len(fields))
	for _, f := range fields {
		toks = append(toks, classify(f))
	}
	return toks
}

func classify(tok string) metaToken {
	t := metaToken{text: tok}
	if v, ok := visibilityTokens[tok]; ok {
		t.kind, t.vis = tokenVisibility, v
		return t
	}
	if tok == TokenHighlight {
		t.kind = tokenHighlight
		return t
	}
	kind, body := tokenID, tok
	switch tok[0] {
	case SigilOut:
		kind, body = tokenOut, tok[1:]
	case SigilIn:
		kind, body = tokenIn, tok[1:]
	}
	if id := sanitizeID(body); id != "" {
		t.kind, t.id = kind, id
	}
	return t
}

// sanitizeLabel trims the label and strips characters that would corrupt
// downstream markup.
func sanitizeLabel(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '&', '<', '>':
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// sanitizeID keeps letters, digits, '_', '-' and '.'.
func sanitizeID(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.' {
			return r
		}
		return -1
	}, s)
}
