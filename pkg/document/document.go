package document

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
	"github.com/matzehuels/outlinegraph/pkg/ids"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

var (
	// ErrLineRange is returned when a line index is outside the document.
	ErrLineRange = errors.New("line out of range")

	// ErrNotNode is returned when an edit targets a blank, comment, or
	// script line.
	ErrNotNode = errors.New("line is not a node")

	// ErrUnknownID is returned by [Document.Resolve] when no line declares
	// the id.
	ErrUnknownID = errors.New("unknown id")

	// ErrNoPath is returned by [Document.Save] for documents not loaded from
	// a file.
	ErrNoPath = errors.New("document has no path")
)

// Document is an outline held in memory with edits applied to its text.
//
// All methods are safe for concurrent use; edits are serialized so that no
// two rewrites of the same document overlap. Placeholder ids are regenerated
// on every call to [Document.Lines] and must not be stored across edits;
// use [Document.MaterializeID] for an id that survives.
type Document struct {
	mu     sync.Mutex
	path   string
	lines  []string
	parser outline.Parser
	ids    ids.Supplier
	trail  bool // original text ended with a newline
}

// Option configures a Document.
type Option func(*Document)

// WithSupplier sets the id supplier. The default is [ids.NewRandom].
func WithSupplier(s ids.Supplier) Option {
	return func(d *Document) { d.ids = s }
}

// WithIndentWidth sets the number of spaces per nesting level.
func WithIndentWidth(n int) Option {
	return func(d *Document) { d.parser.IndentWidth = n }
}

// New returns a document holding a copy of lines.
func New(lines []string, opts ...Option) *Document {
	d := &Document{
		lines: append([]string(nil), lines...),
		ids:   ids.NewRandom(),
		trail: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse returns a document for text.
func Parse(text string, opts ...Option) *Document {
	d := New(outline.Split(text), opts...)
	d.trail = text == "" || strings.HasSuffix(text, "\n")
	return d
}

// Read reads a whole document from r.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read document")
	}
	return Parse(string(data), opts...), nil
}

// Load reads the document at path. [Document.Save] writes back to it.
func Load(path string, opts ...Option) (*Document, error) {
	if err := apperrors.ValidateDocumentPath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "read %s", path)
	}
	d := Parse(string(data), opts...)
	d.path = path
	return d, nil
}

// IndentWidth returns the number of spaces per nesting level.
func (d *Document) IndentWidth() int {
	if d.parser.IndentWidth <= 0 {
		return outline.DefaultIndentWidth
	}
	return d.parser.IndentWidth
}

// Path returns the file the document was loaded from, or "".
func (d *Document) Path() string { return d.path }

// Len returns the number of lines.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.lines)
}

// Raw returns a copy of the raw lines.
func (d *Document) Raw() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.lines...)
}

// Text returns the document text.
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text()
}

func (d *Document) text() string {
	s := strings.Join(d.lines, "\n")
	if d.trail && len(d.lines) > 0 {
		s += "\n"
	}
	return s
}

// Lines parses the document, assigning fresh placeholders to lines without
// an explicit id.
func (d *Document) Lines() []outline.Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parser.ParseDocument(d.lines, d.ids)
}

// Line parses one line without assigning a placeholder.
func (d *Document) Line(index int) (outline.Line, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.node(index)
}

func (d *Document) node(index int) (outline.Line, error) {
	if index < 0 || index >= len(d.lines) {
		return outline.Line{}, apperrors.Wrap(apperrors.ErrCodeInvalidLine, ErrLineRange,
			"line %d (document has %d lines)", index+1, len(d.lines))
	}
	l := d.parser.Parse(d.lines[index], index)
	if !l.Valid() {
		return l, apperrors.Wrap(apperrors.ErrCodeInvalidLine, ErrNotNode, "line %d", index+1)
	}
	return l, nil
}

// Resolve returns the index of the line a reference points to. A reference
// is either a 1-based line number or an explicit id; when several lines
// declare the id, the last one wins.
func (d *Document) Resolve(ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		if _, err := d.node(n - 1); err != nil {
			return -1, err
		}
		return n - 1, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	found := -1
	for i, raw := range d.lines {
		if l := d.parser.Parse(raw, i); l.Valid() && l.ExplicitID == ref {
			found = i
		}
	}
	if found < 0 {
		return -1, apperrors.Wrap(apperrors.ErrCodeNotFound, ErrUnknownID, "%q", ref)
	}
	return found, nil
}

// Fingerprint returns a hash of the document text, suitable as a cache key.
func (d *Document) Fingerprint() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fingerprint(d.lines)
}

// WriteTo writes the document text to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	text := d.text()
	d.mu.Unlock()

	bw := bufio.NewWriter(w)
	n, err := bw.WriteString(text)
	if err != nil {
		return int64(n), err
	}
	return int64(n), bw.Flush()
}

// Save writes the document back to the file it was loaded from. The file is
// replaced atomically through a temporary file in the same directory.
func (d *Document) Save() error {
	if d.path == "" {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, ErrNoPath, "save")
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path.
func (d *Document) SaveAs(path string) error {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".outline-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
