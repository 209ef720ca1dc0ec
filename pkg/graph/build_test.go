package graph

import (
	"errors"
	"slices"
	"testing"

	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
	"github.com/matzehuels/outlinegraph/pkg/ids"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

func parse(raw ...string) []outline.Line {
	return outline.ParseDocument(raw, ids.NewSequence("n"))
}

func labels(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Label
	}
	return out
}

func TestBuildTree(t *testing.T) {
	p, err := Build(parse(
		"- Root",
		"  - Child1",
		"  - Child2",
		"    - Grandchild",
	))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := labels(p.Root.Children); !slices.Equal(got, []string{"Root"}) {
		t.Fatalf("root children = %v, want [Root]", got)
	}
	root := p.Root.Children[0]
	if got := labels(root.Children); !slices.Equal(got, []string{"Child1", "Child2"}) {
		t.Errorf("Root children = %v, want [Child1 Child2]", got)
	}
	if got := labels(root.Children[1].Children); !slices.Equal(got, []string{"Grandchild"}) {
		t.Errorf("Child2 children = %v, want [Grandchild]", got)
	}
	if p.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", p.NodeCount())
	}
	if p.Links.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", p.Links.EdgeCount())
	}
}

func TestBuildDedentToRoot(t *testing.T) {
	p, err := Build(parse(
		"- A",
		"  - B",
		"    - C",
		"      - D",
		"- E",
		"  - F",
	))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := labels(p.Root.Children); !slices.Equal(got, []string{"A", "E"}) {
		t.Errorf("root children = %v, want [A E]", got)
	}
	e := p.Root.Children[1]
	if got := labels(e.Children); !slices.Equal(got, []string{"F"}) {
		t.Errorf("E children = %v, want [F]", got)
	}
}

func TestBuildPartialDedent(t *testing.T) {
	p, err := Build(parse(
		"- A",
		"  - B",
		"    - C",
		"  - D",
	))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	a := p.Root.Children[0]
	if got := labels(a.Children); !slices.Equal(got, []string{"B", "D"}) {
		t.Errorf("A children = %v, want [B D]", got)
	}
}

func TestBuildSkipsNonNodeLines(t *testing.T) {
	p, err := Build(parse(
		"- A",
		"",
		"      // deeply indented comment",
		"$ render",
		"  - B",
	))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if p.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", p.NodeCount())
	}
	if got := labels(p.Root.Children[0].Children); !slices.Equal(got, []string{"B"}) {
		t.Errorf("A children = %v, want [B]", got)
	}
}

func TestBuildDepthSkip(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
	}{
		{"first line indented", []string{"  - A"}},
		{"skip two levels", []string{"- A", "    - B"}},
		{"skip after dedent", []string{"- A", "  - B", "- C", "    - D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(parse(tt.raw...))
			if err == nil {
				t.Fatal("Build() error = nil, want depth skip")
			}
			if p != nil {
				t.Error("Build() returned a partial graph")
			}
			if !errors.Is(err, ErrDepthSkip) {
				t.Errorf("errors.Is(err, ErrDepthSkip) = false; err = %v", err)
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidStructure) {
				t.Errorf("code = %q, want %q", apperrors.GetCode(err), apperrors.ErrCodeInvalidStructure)
			}
		})
	}
}

func TestBuildLinks(t *testing.T) {
	p, err := Build(parse(
		"- A | a >b >missing",
		"- B | b <c",
		"- C | c",
	))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []Edge{
		NewEdge("a", "b", EdgeLink),
		NewEdge("a", "missing", EdgeLink),
		NewEdge("c", "b", EdgeLink),
	}
	if got := p.Links.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if got := p.Links.Inputs("b"); len(got) != 2 {
		t.Errorf("Inputs(b) = %v, want 2 edges", got)
	}
	if err := p.Links.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuildMarkerSets(t *testing.T) {
	p, err := Build(parse(
		"- A | fold a",
		"  - B | hide b",
		"  - C | folded c",
		"- D | fold",
	))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := p.Fold.Values(); !slices.Equal(got, []string{"a", "tmp-n1"}) {
		t.Errorf("Fold = %v, want [a tmp-n1]", got)
	}
	if got := p.Hide.Values(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Hide = %v, want [b]", got)
	}
}

func TestBuildDuplicateIDs(t *testing.T) {
	raw := []string{
		"- A | x",
		"- B | y",
		"  - C | x",
	}

	p, err := Build(parse(raw...))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(p.Duplicates) != 1 {
		t.Fatalf("Duplicates = %v, want one entry", p.Duplicates)
	}
	if d := p.Duplicates[0]; d.ID != "x" || !slices.Equal(d.Lines, []int{0, 2}) {
		t.Errorf("Duplicates[0] = %+v, want x on lines [0 2]", d)
	}
	if n := p.Node("x"); n == nil || n.Label != "C" {
		t.Errorf("Node(x) = %+v, want the last declaration C", n)
	}

	_, err = BuildWithOptions(parse(raw...), BuildOptions{StrictIDs: true})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("strict build error = %v, want ErrDuplicateID", err)
	}
	if !apperrors.Is(err, apperrors.ErrCodeDuplicateID) {
		t.Errorf("code = %q, want %q", apperrors.GetCode(err), apperrors.ErrCodeDuplicateID)
	}
}

func TestBuildCopiesLineFields(t *testing.T) {
	p, err := Build(parse("> Step | ! s1"))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	n := p.Root.Children[0]
	if n.ID != "s1" || n.Label != "Step" || !n.Highlight || !n.IsProcess() || n.Line != 0 {
		t.Errorf("node = %+v", n)
	}
}
