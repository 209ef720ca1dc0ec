package ids

import (
	"sync"
	"testing"
)

func TestRandomPlaceholder(t *testing.T) {
	r := NewRandom()
	a, b := r.Placeholder(), r.Placeholder()

	if a == b {
		t.Errorf("Placeholder() returned duplicate %q", a)
	}
	if !IsPlaceholder(a) {
		t.Errorf("IsPlaceholder(%q) = false, want true", a)
	}
}

func TestRandomPermanent(t *testing.T) {
	r := NewRandom()
	id := r.Permanent()

	if len(id) != 8 {
		t.Errorf("Permanent() length = %d, want 8 (%q)", len(id), id)
	}
	if IsPlaceholder(id) {
		t.Errorf("IsPlaceholder(%q) = true, want false", id)
	}
	for _, c := range id {
		if !(c >= 'a' && c <= 'z' || c >= '2' && c <= '7') {
			t.Errorf("Permanent() = %q contains %q outside the compact alphabet", id, c)
		}
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence("n")

	if got := s.Placeholder(); got != "tmp-n1" {
		t.Errorf("Placeholder() = %q, want %q", got, "tmp-n1")
	}
	if got := s.Permanent(); got != "n2" {
		t.Errorf("Permanent() = %q, want %q", got, "n2")
	}
	if got := s.Placeholder(); got != "tmp-n3" {
		t.Errorf("Placeholder() = %q, want %q", got, "tmp-n3")
	}
}

func TestSequenceConcurrent(t *testing.T) {
	s := NewSequence("c")
	const n = 100

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := s.Permanent()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("got %d distinct ids, want %d", len(seen), n)
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"tmp-1", true},
		{"tmp-", true},
		{"id_c2", false},
		{"", false},
		{"xtmp-1", false},
	}

	for _, tt := range tests {
		if got := IsPlaceholder(tt.id); got != tt.want {
			t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
