package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/outlinegraph/internal/server"
	"github.com/matzehuels/outlinegraph/pkg/cache"
	"github.com/matzehuels/outlinegraph/pkg/pipeline"
)

// serveKeyPrefix separates server entries from CLI entries in a shared cache.
const serveKeyPrefix = "server:"

// serveCommand creates the serve command, which exposes compile and render
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compile and render pipeline over HTTP",
		Long: `Serve the compile and render pipeline over HTTP.

  POST /compile?fold=a,b&hide=c&format=json   outline body in, graph out
  POST /render?format=svg&rankdir=LR          outline body in, diagram out
  GET  /healthz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			store, err := c.openCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, serveKeyPrefix), c.Logger)
			defer runner.Close()

			printInfo("Listening on %s", addr)
			if strings.HasPrefix(addr, ":") {
				printNextStep("Try", "curl --data-binary @plan.outline 'http://localhost"+addr+"/render?format=svg'")
			}
			return server.New(addr, runner, c.Config.Indent, c.Logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
