package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/pkg/document"
	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	compileFlags
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: svg, png, pdf, dot, json, yaml
	detailed bool     // show ids and sizes in node labels
	rankDir  string   // Graphviz layout direction
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render an outline to SVG, PNG, PDF, DOT, JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr == "" {
				formatsStr = c.Config.Render.Format
			}
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), doc, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json, yaml (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids and sizes in node labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "layout direction: TB (default), LR, BT, RL")

	return cmd
}

// pipelineOptions merges render flags over the configured defaults.
func (c *CLI) pipelineOptions(opts *renderOpts) pipeline.Options {
	po := c.options(opts.compileFlags)
	po.Formats = opts.formats
	po.Detailed = opts.detailed || po.Detailed
	if opts.rankDir != "" {
		po.RankDir = strings.ToUpper(opts.rankDir)
	}
	return po
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, doc *document.Document, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, doc, c.pipelineOptions(opts))
	if err != nil {
		return err
	}
	prog.done("rendered", "formats", len(result.Artifacts), "visible", result.Stats.Visible)

	paths, err := writeArtifacts(result.Artifacts, opts.formats, outputBase(opts.output, input), opts.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats, result.CacheInfo.CompileHit && result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	warnDuplicates(result.Stats)
	return nil
}

// outputBase derives the base output path. With no output it strips the
// extension from input; stdin renders to "outline". A known format
// extension on output is stripped as well.
func outputBase(output, input string) string {
	if output == "" {
		if input == stdinPath {
			return "outline"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each artifact to base.format, or to output verbatim
// when a single format was requested with an explicit path.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	var paths []string
	for _, format := range slices.Compact(slices.Clone(formats)) {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
