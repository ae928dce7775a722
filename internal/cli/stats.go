package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/hobohm/pkg/io"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		f      inputFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats INFILE",
		Short: "Print neighbor graph statistics without reducing",
		Long: `Stats reads INFILE like reduce does and prints the item count, neighbor
degrees and average value of the neighbor graph. Use it to pick a cutoff.`,
		Example: `  hobohm stats pairs.txt --val sim -c 0.8
  hobohm stats dists.txt --val dist -c 0.3 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.options(cmd, &f, args[0])
			if err != nil {
				return err
			}
			stop, err := c.startTracing(ctx, f.trace)
			if err != nil {
				return err
			}
			defer stop()

			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			sum, read, err := runner.Summarize(ctx, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return pio.WriteJSON(c.Out, map[string]any{"summary": sum, "read": read})
			}
			printSummary(c.Out, sum, -1, false)
			if read.Malformed > 0 {
				printWarning(c.Out, "skipped %d malformed lines", read.Malformed)
			}
			printDetail(c.Out, "%s lines, %s pairs", formatCount(read.Lines), formatCount(read.Triples))
			return nil
		},
	}

	f.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")

	return cmd
}

// statsLine is the one-line summary logged by commands that reduce.
func statsLine(items, edges int) string {
	return fmt.Sprintf("%s items · %s neighbor pairs", formatCount(items), formatCount(edges))
}
