package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/outlinegraph/pkg/outline"

	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
)

// ErrDepthSkip is returned when a line is indented more than one level past
// the line before it, so no parent exists at its depth.
var ErrDepthSkip = errors.New("indentation skips a level")

// ErrDuplicateID is returned in strict mode when two lines declare the same
// explicit id.
var ErrDuplicateID = errors.New("duplicate explicit id")

// BuildOptions configures [BuildWithOptions].
type BuildOptions struct {
	// StrictIDs fails the build when an explicit id is declared twice.
	// Otherwise duplicates are only reported in Parsed.Duplicates.
	StrictIDs bool
}

// frame is one entry of the builder's parent stack: lines at depth attach
// to parent.
type frame struct {
	depth  int
	parent *Node
}

// Build assembles parsed lines into a hierarchy tree and link graph.
// It is BuildWithOptions with zero options.
func Build(lines []outline.Line) (*Parsed, error) {
	return BuildWithOptions(lines, BuildOptions{})
}

// BuildWithOptions assembles parsed lines into a hierarchy tree and link
// graph, collecting the ids marked fold and hide.
//
// Lines must be in document order. Blank, comment and script lines are
// skipped and never affect nesting. A line nested more than one level below
// its predecessor aborts the build with an [apperrors.ErrCodeInvalidStructure]
// error wrapping [ErrDepthSkip]; no partial graph is returned.
//
// Lines should come from [outline.ParseDocument] so that every line has an
// id. Lines without one still become nodes but cannot carry markers.
func BuildWithOptions(lines []outline.Line, opts BuildOptions) (*Parsed, error) {
	p := NewParsed()
	stack := []frame{{depth: 0, parent: p.Root}}
	declared := make(map[string][]int)
	var order []string

	for _, l := range lines {
		if !l.Valid() {
			continue
		}

		for len(stack) > 1 && stack[len(stack)-1].depth > l.Depth {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if top.depth != l.Depth {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidStructure,
				fmt.Errorf("%w: line %d at depth %d, expected at most %d", ErrDepthSkip, l.Index+1, l.Depth, top.depth),
				"line %d: %q", l.Index+1, l.Raw)
		}

		n := NewNode(l)
		top.parent.AddChild(n)
		stack = append(stack, frame{depth: l.Depth + 1, parent: n})

		id := n.ID
		for _, to := range l.IDsOut {
			p.Links.AddEdge(id, to, EdgeLink)
		}
		for _, from := range l.IDsIn {
			p.Links.AddEdge(from, id, EdgeLink)
		}

		if id == "" {
			continue
		}
		switch l.Visibility {
		case outline.VisibilityFold:
			p.Fold.Add(id)
		case outline.VisibilityHide:
			p.Hide.Add(id)
		}

		if l.HasExplicitID() {
			if _, ok := declared[id]; !ok {
				order = append(order, id)
			}
			declared[id] = append(declared[id], l.Index)
		}
	}

	for _, id := range order {
		if at := declared[id]; len(at) > 1 {
			p.Duplicates = append(p.Duplicates, Duplicate{ID: id, Lines: at})
		}
	}
	if opts.StrictIDs && len(p.Duplicates) > 0 {
		d := p.Duplicates[0]
		return nil, apperrors.Wrap(apperrors.ErrCodeDuplicateID,
			fmt.Errorf("%w: %q", ErrDuplicateID, d.ID),
			"id %q declared on lines %s", d.ID, lineList(d.Lines))
	}
	return p, nil
}

func lineList(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ", ")
}
