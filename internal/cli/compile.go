package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/pkg/graph/transform"
	ogio "github.com/matzehuels/outlinegraph/pkg/io"
)

// compileCommand creates the compile command. It compiles an outline and
// either prints a summary or exports the graph as JSON or YAML.
func (c *CLI) compileCommand() *cobra.Command {
	var (
		flags  compileFlags
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "compile [file]",
		Short: "Compile an outline into a graph",
		Long: `Compile an outline into a graph and print a summary.

With --output the graph is exported as JSON or YAML (chosen by extension).
With --format the graph is written to standard output instead.
Use "-" as the file to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			compiled, err := runner.Compile(ctx, doc, c.options(flags))
			if err != nil {
				return err
			}
			prog.done("compiled", "lines", compiled.Stats.Lines, "cached", compiled.Hit)

			export := ogio.FromParsed(compiled.Graph, &compiled.Stats)
			switch {
			case output != "":
				if err := ogio.Export(export, output); err != nil {
					return err
				}
				printSuccess("Exported graph")
				printFile(output)
			case format != "":
				return ogio.Write(export, ogio.Format(format), c.stdout)
			default:
				printSummary(compiled.Stats, compiled.Hit)
			}
			warnDuplicates(compiled.Stats)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "export the graph to a .json or .yaml file")
	cmd.Flags().StringVarP(&format, "format", "f", "", "write the graph to stdout: json or yaml")

	return cmd
}

func printSummary(s transform.Stats, cached bool) {
	printSuccess("Compiled outline")
	printStats(s, cached)
	printKeyValue("lines", fmt.Sprint(s.Lines))
	printKeyValue("nodes", fmt.Sprint(s.Nodes))
	printKeyValue("visible", fmt.Sprint(s.Visible))
	printKeyValue("hierarchy", fmt.Sprint(s.Hierarchy))
	printKeyValue("flow", fmt.Sprint(s.Flow))
	printKeyValue("links", fmt.Sprint(s.Links))
	printKeyValue("bilinks", fmt.Sprint(s.BiLinks))
	if s.Scripts > 0 {
		printKeyValue("scripts", fmt.Sprint(s.Scripts))
	}
}

func warnDuplicates(s transform.Stats) {
	if s.Duplicates > 0 {
		printWarning("%d duplicate ids; the last declaration of each wins", s.Duplicates)
		printNextStep("Fail instead", "outlinegraph compile --strict")
	}
}
