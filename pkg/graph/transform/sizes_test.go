package transform

import (
	"testing"

	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/ids"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

func build(t *testing.T, raw ...string) *graph.Parsed {
	t.Helper()
	p, err := graph.Build(outline.ParseDocument(raw, ids.NewSequence("n")))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func byLabel(p *graph.Parsed, label string) *graph.Node {
	for _, n := range p.Nodes() {
		if n.Label == label {
			return n
		}
	}
	return nil
}

func TestComputeSizesExample(t *testing.T) {
	p := build(t,
		"- Root",
		"  - Child1",
		"  - Child2",
		"    - Grandchild",
	)
	ComputeSizes(p.Root)

	tests := []struct {
		label string
		want  int
	}{
		{"Root", 3},
		{"Child1", 0},
		{"Child2", 1},
		{"Grandchild", 0},
	}
	for _, tt := range tests {
		if got := byLabel(p, tt.label).Size; got != tt.want {
			t.Errorf("size(%s) = %d, want %d", tt.label, got, tt.want)
		}
	}
	if p.Root.Size != 4 {
		t.Errorf("size(root) = %d, want 4", p.Root.Size)
	}
}

func TestComputeSizesRecurrence(t *testing.T) {
	docs := [][]string{
		{"- a"},
		{"- a", "  - b", "    - c", "      - d", "  - e", "- f", "  - g"},
		{"> a", "  > b", "  < c", "    - d", "    - e", "  - f", "- g", "- h"},
	}

	for _, doc := range docs {
		p := build(t, doc...)
		ComputeSizes(p.Root)
		p.Root.Walk(func(n *graph.Node) bool {
			want := 0
			for _, c := range n.Children {
				want += c.Size + 1
			}
			if n.Size != want {
				t.Errorf("size(%q) = %d, want %d", n.Label, n.Size, want)
			}
			if len(n.Children) == 0 && n.Size != 0 {
				t.Errorf("childless %q has size %d", n.Label, n.Size)
			}
			return true
		})
	}
}
