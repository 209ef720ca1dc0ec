package transform

import (
	"testing"

	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
	"github.com/matzehuels/outlinegraph/pkg/graph"
	"github.com/matzehuels/outlinegraph/pkg/ids"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

func compile(t *testing.T, opts CompileOptions, raw ...string) (*graph.Parsed, Stats) {
	t.Helper()
	p, stats, err := Compile(outline.ParseDocument(raw, ids.NewSequence("n")), opts)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return p, stats
}

func TestCompileMutualLinksMergeToBiLink(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
	}{
		{"outgoing both ways", []string{"- A | a >b", "- B | b >a"}},
		{"incoming both ways", []string{"- A | a <b", "- B | b <a"}},
		{"mixed sigils", []string{"- A | a >b <b", "- B | b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stats := compile(t, CompileOptions{}, tt.raw...)

			render := p.Links.RenderEdges()
			if len(render) != 1 || render[0].Kind != graph.EdgeBiLink {
				t.Fatalf("RenderEdges() = %v, want one bilink", render)
			}
			if stats.BiLinks != 1 || stats.Links != 0 {
				t.Errorf("stats = %+v, want 1 bilink and no links", stats)
			}
		})
	}
}

func TestCompileDuplicateLinksCollapse(t *testing.T) {
	p, stats := compile(t, CompileOptions{}, "- A | a >b >b", "- B | b <a")

	render := p.Links.RenderEdges()
	if len(render) != 1 || render[0] != graph.NewEdge("a", "b", graph.EdgeLink) {
		t.Errorf("RenderEdges() = %v, want [a-[link]->b]", render)
	}
	if stats.Deduped != 2 {
		t.Errorf("Deduped = %d, want 2", stats.Deduped)
	}
}

func TestCompileCountsScripts(t *testing.T) {
	_, stats := compile(t, CompileOptions{}, "- A", "$ open a", "  - B", "$ run")
	if stats.Scripts != 2 || stats.Lines != 2 {
		t.Errorf("stats = %+v, want 2 scripts and 2 lines", stats)
	}
}

func TestCompileStats(t *testing.T) {
	_, stats := compile(t, CompileOptions{},
		"- Root | root",
		"  // comment",
		"  - Child1 | c1 >gc",
		"  - Child2 | fold id_c2",
		"    - Grandchild | gc",
		"  - Gone | hide",
	)

	want := Stats{
		Lines:     5,
		Nodes:     5,
		Visible:   3,
		Collapsed: 1,
		Removed:   1,
		Hierarchy: 2,
		Links:     1,
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
	if stats.RenderedEdges() != 3 {
		t.Errorf("RenderedEdges() = %d, want 3", stats.RenderedEdges())
	}
}

func TestCompileFoldReroutesFlow(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []graph.Edge
	}{
		{
			name: "chain leaves a folded subgraph",
			raw:  []string{"> Start | s", "- Box | fold box", "  > Inner | in", "  > Inner2 | in2", "> After | after"},
			want: []graph.Edge{graph.NewEdge("box", "after", graph.EdgeFlow)},
		},
		{
			name: "folded process keeps both ends",
			raw:  []string{"> Start | s", "> Box | fold box", "  > Inner | in", "> After | after"},
			want: []graph.Edge{
				graph.NewEdge("s", "box", graph.EdgeFlow),
				graph.NewEdge("box", "after", graph.EdgeFlow),
			},
		},
		{
			name: "hidden step is skipped",
			raw:  []string{"> A | a", "> B | hide b", "> C | c"},
			want: []graph.Edge{graph.NewEdge("a", "c", graph.EdgeFlow)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stats := compile(t, CompileOptions{}, tt.raw...)

			var flow []graph.Edge
			for _, e := range p.Links.RenderEdges() {
				if e.Kind == graph.EdgeFlow {
					flow = append(flow, e)
				}
			}
			if len(flow) != len(tt.want) {
				t.Fatalf("flow edges = %v, want %v", flow, tt.want)
			}
			for i := range flow {
				if !flow[i].Same(tt.want[i]) {
					t.Errorf("flow[%d] = %v, want %v", i, flow[i], tt.want[i])
				}
			}
			if stats.Flow != len(tt.want) {
				t.Errorf("Flow = %d, want %d", stats.Flow, len(tt.want))
			}
			if err := p.Links.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestCompileNoPrune(t *testing.T) {
	p, stats := compile(t, CompileOptions{NoPrune: true},
		"- A | fold a",
		"  - B | hide b",
	)
	if p.NodeCount() != 2 || stats.Visible != 2 {
		t.Errorf("NodeCount() = %d, Visible = %d; want 2, 2", p.NodeCount(), stats.Visible)
	}
}

func TestCompileExtraMarkers(t *testing.T) {
	p, _ := compile(t, CompileOptions{Fold: []string{"a"}, Hide: []string{"c"}},
		"- A | a",
		"  - B | b",
		"- C | c",
	)
	if got := nodeIDs(p); len(got) != 1 || got[0] != "a" {
		t.Errorf("nodes = %v, want [a]", got)
	}
	if !p.Node("a").IsFolded() {
		t.Error("a should be folded")
	}
}

func TestCompileErrors(t *testing.T) {
	lines := outline.ParseDocument([]string{"- A", "      - B"}, ids.NewSequence("n"))
	if _, _, err := Compile(lines, CompileOptions{}); !apperrors.Is(err, apperrors.ErrCodeInvalidStructure) {
		t.Errorf("Compile() error = %v, want %s", err, apperrors.ErrCodeInvalidStructure)
	}

	lines = outline.ParseDocument([]string{"- A | x", "- B | x"}, ids.NewSequence("n"))
	if _, _, err := Compile(lines, CompileOptions{StrictIDs: true}); !apperrors.Is(err, apperrors.ErrCodeDuplicateID) {
		t.Errorf("Compile() error = %v, want %s", err, apperrors.ErrCodeDuplicateID)
	}
}

func TestCompileNeverDangles(t *testing.T) {
	_, _ = compile(t, CompileOptions{}) // empty document

	p, _ := compile(t, CompileOptions{},
		"- A | a >c >e",
		"  - B | fold b <e",
		"    - C | c >a",
		"      - D | hide d >a",
		"  - E | e >d",
	)
	declared := make(map[string]bool)
	for _, n := range p.Nodes() {
		declared[n.ID] = true
	}
	for _, e := range p.Links.Edges() {
		if e.From == e.To {
			t.Errorf("self-loop %v", e)
		}
		if !declared[e.From] || !declared[e.To] {
			t.Errorf("edge %v references a pruned node", e)
		}
	}
	if err := p.Links.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
