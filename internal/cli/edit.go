package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/pkg/document"
	"github.com/matzehuels/outlinegraph/pkg/outline"
)

const refHelp = `Lines are referenced by 1-based line number or by explicit id.`

// visibilityCommand creates the fold, hide and show commands. Each rewrites
// the marker of the referenced lines and saves the file.
func (c *CLI) visibilityCommand(name, short string) *cobra.Command {
	v, _ := outline.ParseVisibility(name)
	var (
		toggle bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   name + " [file] [line|id]...",
		Short: short,
		Long:  short + ".\n\n" + refHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDocument(args[0], dryRun, func(doc *document.Document) error {
				for _, ref := range args[1:] {
					index, err := doc.Resolve(ref)
					if err != nil {
						return err
					}
					got := v
					if toggle {
						if got, err = doc.Toggle(index, v); err != nil {
							return err
						}
					} else if err := doc.SetVisibility(index, v); err != nil {
						return err
					}
					c.Logger.Info("set marker", "line", index+1, "visibility", got)
				}
				return nil
			})
		},
	}

	if v != outline.VisibilityNormal {
		cmd.Flags().BoolVarP(&toggle, "toggle", "t", false, "switch back to normal if already "+name)
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of saving")
	return cmd
}

// highlightCommand creates the highlight command.
func (c *CLI) highlightCommand() *cobra.Command {
	var (
		off    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "highlight [file] [line|id]...",
		Short: "Mark lines with ! so they stand out in the diagram",
		Long:  "Mark lines with ! so they stand out in the diagram.\n\n" + refHelp,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDocument(args[0], dryRun, func(doc *document.Document) error {
				for _, ref := range args[1:] {
					index, err := doc.Resolve(ref)
					if err != nil {
						return err
					}
					if err := doc.SetHighlight(index, !off); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "remove the highlight instead")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of saving")
	return cmd
}

// idCommand creates the id command, which writes permanent ids into lines
// that only have a placeholder.
func (c *CLI) idCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "id [file] [line]...",
		Short: "Give lines a permanent id so they can be referenced",
		Long: `Give lines a permanent id so they can be referenced.

Lines that already have an explicit id keep it. The id of every line is
printed, ready to be used in a >id or <id reference.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDocument(args[0], dryRun, func(doc *document.Document) error {
				for _, ref := range args[1:] {
					index, err := doc.Resolve(ref)
					if err != nil {
						return err
					}
					id, err := doc.MaterializeID(index)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.stdout, "%d\t%s\n", index+1, id)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of saving")
	return cmd
}

// linkCommand creates the link command, which adds a >id reference from one
// line to another.
func (c *CLI) linkCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "link [file] [from] [to]",
		Short: "Add a link from one line to another",
		Long:  "Add a link from one line to another, assigning ids where needed.\n\n" + refHelp,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDocument(args[0], dryRun, func(doc *document.Document) error {
				from, err := doc.Resolve(args[1])
				if err != nil {
					return err
				}
				to, err := doc.Resolve(args[2])
				if err != nil {
					return err
				}
				added, err := doc.Link(from, to)
				if err != nil {
					return err
				}
				if !added {
					c.Logger.Warn("link already present", "from", from+1, "to", to+1)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result instead of saving")
	return cmd
}

// editDocument loads path, applies edit and saves the result, or writes it
// to stdout for a dry run.
func (c *CLI) editDocument(path string, dryRun bool, edit func(*document.Document) error) error {
	if path == stdinPath {
		dryRun = true
	}
	doc, err := c.loadDocument(path)
	if err != nil {
		return err
	}
	if err := edit(doc); err != nil {
		return err
	}
	if dryRun {
		_, err := doc.WriteTo(c.stdout)
		return err
	}
	if err := doc.Save(); err != nil {
		return err
	}
	printSuccess("Updated %s", path)
	return nil
}
