package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/pkg/buildinfo"
	"github.com/matzehuels/outlinegraph/pkg/cache"
	"github.com/matzehuels/outlinegraph/pkg/config"
	"github.com/matzehuels/outlinegraph/pkg/document"
	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "outlinegraph"

// stdinPath is the input argument that reads the outline from standard input.
const stdinPath = "-"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	stdin      io.Reader
	stdout     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "outlinegraph turns indented outlines into diagrams",
		Long:         `outlinegraph compiles plain-text outlines into graphs. Nesting becomes hierarchy, "> " bullets become process flows, and ">id" references become links. Lines marked fold or hide are collapsed before rendering.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.Source != "" {
				c.Logger.Debug("loaded config", "path", cfg.Source)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./outlinegraph.toml)")

	// Register all subcommands
	root.AddCommand(c.compileCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.visibilityCommand("fold", "Collapse lines into their parent node"))
	root.AddCommand(c.visibilityCommand("hide", "Remove lines and their subtrees from the diagram"))
	root.AddCommand(c.visibilityCommand("show", "Clear fold and hide markers"))
	root.AddCommand(c.highlightCommand())
	root.AddCommand(c.idCommand())
	root.AddCommand(c.linkCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, c.Config.Cache.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", c.Config.Cache.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// =============================================================================
// Documents
// =============================================================================

// loadDocument reads the outline at path, or standard input for "-".
func (c *CLI) loadDocument(path string) (*document.Document, error) {
	opts := []document.Option{document.WithIndentWidth(c.Config.Indent)}
	if path == stdinPath {
		return document.Read(c.stdin, opts...)
	}
	return document.Load(path, opts...)
}

// =============================================================================
// Options Helpers
// =============================================================================

// compileFlags are the flags shared by every command that compiles.
type compileFlags struct {
	fold    []string
	hide    []string
	strict  bool
	noPrune bool
	noCache bool
	refresh bool
}

func (f *compileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.fold, "fold", nil, "additional ids to fold (comma-separated)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "additional ids to hide (comma-separated)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on duplicate ids")
	cmd.Flags().BoolVar(&f.noPrune, "no-prune", false, "ignore fold and hide markers")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompile even if cached")
}

// options merges the flags over the configured defaults.
func (c *CLI) options(f compileFlags) pipeline.Options {
	return pipeline.Options{
		StrictIDs:   f.strict || c.Config.StrictIDs,
		NoPrune:     f.noPrune,
		Fold:        f.fold,
		Hide:        f.hide,
		Refresh:     f.refresh,
		RankDir:     c.Config.Render.RankDir,
		Detailed:    c.Config.Render.Detailed,
		Logger:      c.Logger,
		ArtifactTTL: c.Config.Cache.TTL.Duration,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
