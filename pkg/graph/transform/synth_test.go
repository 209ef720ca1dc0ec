package transform

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/outlinegraph/pkg/graph"
)

// edgeList formats edges of one kind as "from>to" using explicit ids.
func edgeList(links *graph.LinkGraph, kind graph.EdgeKind) []string {
	var out []string
	for _, e := range links.RenderEdges() {
		if e.Kind == kind {
			out = append(out, e.From+">"+e.To)
		}
	}
	return out
}

func synthesize(t *testing.T, raw ...string) *graph.Parsed {
	t.Helper()
	p := build(t, raw...)
	ComputeSizes(p.Root)
	Reorder(p.Root)
	Synthesize(p)
	return p
}

func TestSynthesizeHierarchy(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "leaves chain",
			raw:  []string{"- P | p", "  - A | a", "  - B | b", "  - C | c"},
			want: []string{"p>a", "a>b", "b>c"},
		},
		{
			name: "subgraph fans out",
			raw:  []string{"- P | p", "  - A | a", "    - X | x", "  - B | b", "    - Y | y"},
			want: []string{"p>a", "p>b", "a>x", "b>y"},
		},
		{
			name: "subgraph ends leaf run",
			raw:  []string{"- P | p", "  - S | s", "    - X | x", "  - A | a", "  - B | b"},
			want: []string{"p>s", "p>a", "s>x", "a>b"},
		},
		{
			name: "flow break gets no edge",
			raw:  []string{"- P | p", "  < A | a", "    - X | x"},
			want: []string{"a>x"},
		},
		{
			name: "flow break ends leaf run",
			raw:  []string{"- P | p", "  - A | a", "  < B | b", "  - C | c"},
			want: []string{"p>a", "p>c"},
		},
		{
			name: "only first process child",
			raw:  []string{"- P | p", "  > A | a", "  > B | b", "  > C | c"},
			want: []string{"p>a"},
		},
		{
			name: "process parent links no process child",
			raw:  []string{"> P | p", "  > A | a", "  - B | b"},
			want: []string{"p>b"},
		},
		{
			name: "root emits nothing",
			raw:  []string{"- A | a", "- B | b", "- C | c"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := synthesize(t, tt.raw...)
			got := edgeList(p.Links, graph.EdgeHierarchy)
			if !slices.Equal(got, tt.want) {
				t.Errorf("hierarchy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSynthesizeFlow(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "siblings",
			raw:  []string{"- P | p", "  > A | a", "  > B | b", "  > C | c"},
			want: []string{"a>b", "b>c"},
		},
		{
			name: "into child",
			raw:  []string{"> A | a", "  > B | b"},
			want: []string{"a>b"},
		},
		{
			name: "across subtrees",
			raw:  []string{"- X | x", "  > A | a", "- Y | y", "  > B | b"},
			want: nil,
		},
		{
			name: "out of subtree",
			raw:  []string{"> A | a", "  > B | b", "> C | c"},
			want: []string{"a>b", "b>c"},
		},
		{
			name: "broken by default node",
			raw:  []string{"> A | a", "- M | m", "> B | b"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := synthesize(t, tt.raw...)
			got := edgeList(p.Links, graph.EdgeFlow)
			if !slices.Equal(got, tt.want) {
				t.Errorf("flow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSynthesizeUsesPlaceholderIDs(t *testing.T) {
	p := synthesize(t, "- P", "  - A")
	got := edgeList(p.Links, graph.EdgeHierarchy)
	if len(got) != 1 || !strings.HasPrefix(got[0], "tmp-") {
		t.Errorf("hierarchy = %v, want one edge between placeholder ids", got)
	}
}
