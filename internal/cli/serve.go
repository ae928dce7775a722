package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/hobohm/pkg/cache"
	"github.com/matzehuels/hobohm/pkg/pipeline"
	"github.com/matzehuels/hobohm/pkg/server"
)

// apiKeyPrefix keeps API results apart from CLI results in a shared cache.
const apiKeyPrefix = "api:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reductions over a JSON HTTP API",
		Long: `Serve starts an HTTP server with two endpoints:

  GET  /healthz     liveness probe
  POST /v1/reduce   {"triples": [{"a": "x", "b": "y", "value": 0.9}, ...],
                     "relation": "sim", "cutoff": 0.8, "keep": ["x"]}

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			stop, err := c.startTracing(ctx, trace)
			if err != nil {
				return err
			}
			defer stop()

			cc, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, apiKeyPrefix), logger)
			runner.TTL = c.cfg.Cache.TTL
			defer runner.Close()

			return server.New(runner, logger).Serve(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&trace, "trace", false, "write OpenTelemetry spans to stderr")

	return cmd
}
