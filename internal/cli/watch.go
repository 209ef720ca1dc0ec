package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

const defaultPollInterval = 500 * time.Millisecond

// watchCommand creates the watch command, which re-renders an outline
// whenever the file changes.
func (c *CLI) watchCommand() *cobra.Command {
	var formatsStr string
	var interval time.Duration
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render an outline whenever it changes",
		Long: `Re-render an outline whenever it changes.

The file is polled for changes to its modification time or size. Render
errors are reported and watching continues. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if formatsStr == "" {
				formatsStr = c.Config.Render.Format
			}
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], interval, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s) (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show ids and sizes in node labels")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "layout direction: TB (default), LR, BT, RL")
	cmd.Flags().DurationVar(&interval, "interval", defaultPollInterval, "polling interval")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, path string, interval time.Duration, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	w := newPoller(path)

	render := func() {
		doc, err := c.loadDocument(path)
		if err == nil {
			err = c.runRender(ctx, doc, path, opts)
		}
		if err != nil {
			printError("%v", err)
		}
	}

	if _, err := w.changed(); err != nil {
		return err
	}
	render()
	printInfo("Watching %s", path)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			changed, err := w.changed()
			if err != nil {
				logger.Warn("stat failed", "path", path, "error", err)
				continue
			}
			if changed {
				logger.Debug("file changed", "path", path)
				render()
			}
		}
	}
}

// poller detects file changes by comparing modification time and size.
type poller struct {
	path    string
	modTime time.Time
	size    int64
}

func newPoller(path string) *poller {
	return &poller{path: path, size: -1}
}

// changed reports whether the file differs from the previous call. The
// first successful call always reports a change.
func (p *poller) changed() (bool, error) {
	info, err := os.Stat(p.path)
	if err != nil {
		return false, err
	}
	if info.ModTime().Equal(p.modTime) && info.Size() == p.size {
		return false, nil
	}
	p.modTime = info.ModTime()
	p.size = info.Size()
	return true, nil
}
