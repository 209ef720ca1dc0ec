// Package ids supplies identifiers for outline lines.
//
// Lines that never declare an id still need one so the compiler can key
// nodes and edges. Such lines get a placeholder, a process-unique id that is
// never written back into the document. When a placeholder line is first
// referenced (for example when a user links to it), the caller asks for a
// permanent id and persists it into the line's metadata section.
//
// Two suppliers are provided: [Random], backed by UUIDs, for real documents,
// and [Sequence], a deterministic counter for tests and reproducible output.
package ids

import (
	"encoding/base32"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// PlaceholderPrefix marks ids that were generated rather than authored.
const PlaceholderPrefix = "tmp-"

// Supplier produces identifiers for outline lines.
// Implementations must be safe for concurrent use.
type Supplier interface {
	// Placeholder returns a fresh process-unique id for an unreferenced line.
	Placeholder() string
	// Permanent returns a compact id suitable for writing into the document.
	Permanent() string
}

// IsPlaceholder reports whether id was produced by a Supplier's Placeholder.
func IsPlaceholder(id string) bool {
	return strings.HasPrefix(id, PlaceholderPrefix)
}

var compactEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Random generates placeholders from random UUIDs and permanent ids from the
// first 40 bits of a random UUID (8 lowercase base32 characters).
type Random struct{}

// NewRandom returns a UUID-backed supplier.
func NewRandom() *Random { return &Random{} }

// Placeholder returns "tmp-" followed by a random UUID.
func (Random) Placeholder() string {
	return PlaceholderPrefix + uuid.NewString()
}

// Permanent returns an 8-character compact id.
func (Random) Permanent() string {
	u := uuid.New()
	return compactEncoding.EncodeToString(u[:5])
}

// Sequence hands out ids from a counter. Placeholders and permanent ids share
// the counter, so no two ids from one Sequence are equal.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence returns a deterministic supplier. Permanent ids look like
// prefix1, prefix2, ...; placeholders are the same with PlaceholderPrefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// Placeholder returns the next placeholder id.
func (s *Sequence) Placeholder() string {
	return PlaceholderPrefix + s.take()
}

// Permanent returns the next permanent id.
func (s *Sequence) Permanent() string {
	return s.take()
}

func (s *Sequence) take() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s%d", s.prefix, s.next)
	s.next++
	return id
}

// Ensure both suppliers implement Supplier.
var (
	_ Supplier = (*Random)(nil)
	_ Supplier = (*Sequence)(nil)
)
