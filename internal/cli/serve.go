package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techcloud/internal/api"
	"github.com/matzehuels/techcloud/pkg/cache"
	"github.com/matzehuels/techcloud/pkg/observability"
	"github.com/matzehuels/techcloud/pkg/pipeline"
)

// apiKeyScope namespaces the API's cache keys so a shared backend can also
// serve the CLI.
const apiKeyScope = "api"

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Run the HTTP API.

  POST /v1/layout              place tokens and store the layout under an id
  GET  /v1/layout/{id}         fetch a stored layout
  GET  /v1/layout/{id}/{fmt}   render a stored layout
  POST /v1/render/{fmt}        place and render in one call
  GET  /healthz                liveness

Defaults come from the [layout], [render] and [server] config sections.
Layouts are stored in the configured cache, so ids survive restarts with the
file, redis and mongo backends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			ctx := cmd.Context()

			cc, err := c.openCache(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			if _, ok := cc.(*cache.NullCache); ok {
				c.Logger.Warn("caching is disabled; stored layouts will not be retrievable")
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyScope), c.Logger)
			defer runner.Close()

			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := api.New(runner, api.Options{
				Timeout:      c.Config.Server.Timeout,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
				Defaults:     c.Config.Options(),
				Logger:       c.Logger,
			})

			out := newPrinter(cmd.OutOrStdout())
			out.info("Serving on %s", StyleLink.Render("http://"+displayAddr(c.Config.Server.Addr)))
			out.keyValue("cache", c.Config.Cache.Backend)
			out.keyValue("timeout", c.Config.Server.Timeout.String())
			return srv.ListenAndServe(ctx, c.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
