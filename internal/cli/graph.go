package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hobohm/pkg/render/nodelink"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		f        inputFlags
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph INFILE",
		Short: "Draw the neighbor graph colored by reduction outcome",
		Long: `Graph builds the neighbor graph of INFILE, runs the reduction, and draws
the graph as it was before reduction. Nodes are colored by outcome: kept
(gold), retained (green), reinstated (blue), removed as a keep neighbor
(salmon) and eliminated (grey).

The format defaults to the output file extension, else DOT.`,
		Example: `  hobohm graph pairs.txt --val sim -c 0.8 -o graph.svg
  hobohm graph pairs.txt --val sim -c 0.8 -k keep.txt --format dot | dot -Tpdf > graph.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if format == "" {
				format = formatFromPath(output)
			}
			opts, err := c.options(cmd, &f, args[0])
			if err != nil {
				return err
			}
			opts.WithGraph = true

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

			res, err := runner.Execute(ctx, opts)
			if err != nil {
				return err
			}
			logger.Info(statsLine(res.Summary.Items, res.Summary.Edges))

			dot := nodelink.ToDOT(res.Graph.Nodes, res.Graph.Edges, nodelink.Options{
				Status:   nodelink.StatusOf(&res.Reduction, res.Keep),
				Detailed: detailed,
			})

			var data []byte
			if format == nodelink.FormatDOT {
				data = []byte(dot)
			} else {
				spin := newSpinnerWithContext(ctx, c.Err, "Rendering "+strings.ToUpper(format)+"...")
				spin.Start()
				data, err = nodelink.Render(ctx, dot, format)
				spin.Stop()
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}
			}

			out, err := c.createOutput(output)
			if err != nil {
				return err
			}
			if _, err := out.Write(data); err != nil {
				out.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := out.Close(); err != nil {
				return err
			}
			if !isStdio(output) {
				printSuccess(c.Err, "Rendered %s", statsLine(res.Summary.Items, res.Summary.Edges))
				printFile(c.Err, output)
			}
			return nil
		},
	}

	f.register(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().StringVar(&format, "format", "", "output format: dot, svg or png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include degree and outcome in node labels")

	return cmd
}

// formatFromPath infers a render format from a file extension.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return nodelink.FormatSVG
	case ".png":
		return nodelink.FormatPNG
	default:
		return nodelink.FormatDOT
	}
}
