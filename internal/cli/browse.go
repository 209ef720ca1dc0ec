package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/pkg/document"
	"github.com/matzehuels/outlinegraph/pkg/graph/transform"
	"github.com/matzehuels/outlinegraph/pkg/outline"
	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

// Line styles
var (
	lineCursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	lineNormalStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	lineDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
	lineFoldStyle      = lipgloss.NewStyle().Foreground(colorBlue)
	lineHiddenStyle    = lipgloss.NewStyle().Foreground(colorRed).Strikethrough(true)
	lineHighlightStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// browseCommand creates the browse command, an interactive view for
// toggling markers and watching the compiled graph change.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Toggle fold, hide and highlight markers interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			// The TUI owns the terminal; keep log lines out of it.
			runner.Logger = newLogger(io.Discard, LogInfo)

			m := NewBrowseModel(ctx, doc, runner)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if bm, ok := final.(BrowseModel); ok && bm.Dirty {
				printWarning("Unsaved changes to %s were discarded", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// =============================================================================
// BrowseModel - Interactive marker editing
// =============================================================================

// BrowseModel is the bubbletea model for the browse command.
type BrowseModel struct {
	ctx    context.Context
	doc    *document.Document
	runner *pipeline.Runner

	Lines  []outline.Line
	Cursor int
	Offset int
	Height int

	Stats  transform.Stats
	Status string
	Err    error
	Dirty  bool
}

// NewBrowseModel creates a browse model and compiles doc once.
func NewBrowseModel(ctx context.Context, doc *document.Document, runner *pipeline.Runner) BrowseModel {
	m := BrowseModel{
		ctx:    ctx,
		doc:    doc,
		runner: runner,
		Height: 20,
	}
	m.refresh()
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Status = ""
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Lines)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "f", " ":
			m.toggle(outline.VisibilityFold)
		case "h":
			m.toggle(outline.VisibilityHide)
		case "!":
			m.edit(func(i int) error { return m.doc.SetHighlight(i, !m.Lines[i].Highlight) })
		case "s":
			if err := m.doc.Save(); err != nil {
				m.Status = err.Error()
			} else {
				m.Dirty = false
				m.Status = "saved " + m.doc.Path()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *BrowseModel) toggle(v outline.Visibility) {
	m.edit(func(i int) error {
		got, err := m.doc.Toggle(i, v)
		if err == nil {
			m.Status = fmt.Sprintf("line %d: %s", i+1, got)
		}
		return err
	})
}

func (m *BrowseModel) edit(fn func(int) error) {
	if len(m.Lines) == 0 {
		return
	}
	if err := fn(m.Cursor); err != nil {
		m.Status = err.Error()
		return
	}
	m.Dirty = true
	m.refresh()
}

// refresh re-reads the lines and recompiles.
func (m *BrowseModel) refresh() {
	m.Lines = m.doc.Lines()
	compiled, err := m.runner.Compile(m.ctx, m.doc, pipeline.Options{})
	m.Err = err
	if err == nil {
		m.Stats = compiled.Stats
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	title := "outline"
	if p := m.doc.Path(); p != "" {
		title = p
	}
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(lineDimStyle.Render("↑/↓ navigate  f fold  h hide  ! highlight  s save  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		num := lineDimStyle.Render(fmt.Sprintf("%4d ", i+1))
		b.WriteString(cursor + num + lineStyle(m.Lines[i], i == m.Cursor).Render(m.Lines[i].Raw))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
	} else {
		b.WriteString(statsLine(m.Stats, false))
	}
	if m.Status != "" {
		b.WriteString("\n" + lineDimStyle.Render("  "+m.Status))
	}
	return b.String()
}

func lineStyle(l outline.Line, current bool) lipgloss.Style {
	switch {
	case !l.Valid():
		return lineDimStyle
	case l.Visibility == outline.VisibilityHide:
		return lineHiddenStyle
	case current:
		return lineCursorStyle
	case l.Highlight:
		return lineHighlightStyle
	case l.Visibility == outline.VisibilityFold, l.Visibility == outline.VisibilityFoldHidden:
		return lineFoldStyle
	default:
		return lineNormalStyle
	}
}
