package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hobohm/pkg/buildinfo"
	"github.com/matzehuels/hobohm/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
// Global flags: --verbose/-v (debug logs), --quiet/-q (warnings only) and
// --config (config file path).
func (c *CLI) RootCommand() *cobra.Command {
	var (
		verbose    bool
		quiet      bool
		configPath string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "Hobohm reduces a set of items to a subset with no close neighbors",
		Long: `Hobohm reads pairwise similarities or distances ("name1 name2 value"),
links every pair that crosses the cutoff, and greedily drops the most
connected items until no two remaining items are neighbors.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.SetLogLevel(levelFor(verbose, quiet))
			if err := c.loadConfig(configPath); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOBOHM_CONFIG or $XDG_CONFIG_HOME/hobohm/config.toml)")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(c.reduceCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// startTracing installs an exporter writing spans to stderr when enabled by
// flag or config. The returned function flushes it.
func (c *CLI) startTracing(ctx context.Context, flag bool) (func(), error) {
	if !flag && !c.cfg.Trace {
		return func() {}, nil
	}
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName: appName,
		Version:     buildinfo.Version,
		Writer:      os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := shutdown(context.Background()); err != nil {
			c.Logger.Warn("flush traces", "err", err)
		}
	}, nil
}
