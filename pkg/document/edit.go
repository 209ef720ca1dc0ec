package document

import (
	apperrors "github.com/matzehuels/outlinegraph/pkg/errors"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

// SetVisibility sets the visibility marker of a line and propagates folds.
//
// Folding a line marks folds below it as folded (nested in a fold); when
// the line is unfolded again they are restored. Hide and show do not
// propagate. VisibilityFoldHidden cannot be set directly.
func (d *Document) SetVisibility(index int, v outline.Visibility) error {
	if v == outline.VisibilityFoldHidden {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"%q is maintained by fold propagation and cannot be set", outline.TokenFoldHidden)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	l, err := d.node(index)
	if err != nil {
		return err
	}
	c := outline.ComponentsOf(l)
	c.Visibility = v
	d.lines[index] = outline.Rewrite(d.lines[index], c)
	d.propagateFolds()
	return nil
}

// Toggle switches a line between v and normal visibility and returns the
// resulting marker. A folded line counts as folded when toggling fold.
func (d *Document) Toggle(index int, v outline.Visibility) (outline.Visibility, error) {
	cur, err := d.Line(index)
	if err != nil {
		return outline.VisibilityNormal, err
	}

	next := v
	if cur.Visibility == v || (v == outline.VisibilityFold && cur.Visibility == outline.VisibilityFoldHidden) {
		next = outline.VisibilityNormal
	}
	if err := d.SetVisibility(index, next); err != nil {
		return cur.Visibility, err
	}

	l, err := d.Line(index)
	return l.Visibility, err
}

// SetHighlight sets or clears the highlight marker of a line.
func (d *Document) SetHighlight(index int, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, err := d.node(index)
	if err != nil {
		return err
	}
	c := outline.ComponentsOf(l)
	c.Highlight = on
	d.lines[index] = outline.Rewrite(d.lines[index], c)
	return nil
}

// MaterializeID returns the explicit id of a line, first writing a
// permanent id from the supplier into its metadata section if it has none.
func (d *Document) MaterializeID(index int) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.materialize(index)
}

func (d *Document) materialize(index int) (string, error) {
	l, err := d.node(index)
	if err != nil {
		return "", err
	}
	if l.HasExplicitID() {
		return l.ExplicitID, nil
	}
	c := outline.ComponentsOf(l)
	c.ID = d.ids.Permanent()
	d.lines[index] = outline.Rewrite(d.lines[index], c)
	return c.ID, nil
}

// Link adds an outgoing link from one line to another, materializing both
// ids. It reports false if the link already existed.
func (d *Document) Link(from, to int) (bool, error) {
	if from == to {
		return false, apperrors.New(apperrors.ErrCodeInvalidInput, "line %d cannot link to itself", from+1)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.node(from); err != nil {
		return false, err
	}
	target, err := d.materialize(to)
	if err != nil {
		return false, err
	}
	if _, err := d.materialize(from); err != nil {
		return false, err
	}

	l, _ := d.node(from)
	c := outline.ComponentsOf(l)
	if !c.AddOut(target) {
		return false, nil
	}
	d.lines[from] = outline.Rewrite(d.lines[from], c)
	return true, nil
}

// propagateFolds rewrites fold markers so that a fold with a folding
// ancestor reads "folded" and every other fold reads "fold".
func (d *Document) propagateFolds() {
	type level struct {
		depth   int
		folding bool
	}
	var stack []level

	for i, raw := range d.lines {
		l := d.parser.Parse(raw, i)
		if !l.Valid() {
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].depth >= l.Depth {
			stack = stack[:len(stack)-1]
		}
		under := len(stack) > 0 && stack[len(stack)-1].folding

		folds := l.Visibility == outline.VisibilityFold || l.Visibility == outline.VisibilityFoldHidden
		if folds {
			want := outline.VisibilityFold
			if under {
				want = outline.VisibilityFoldHidden
			}
			if l.Visibility != want {
				c := outline.ComponentsOf(l)
				c.Visibility = want
				d.lines[i] = outline.Rewrite(raw, c)
			}
		}
		stack = append(stack, level{depth: l.Depth, folding: under || folds})
	}
}
