package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	pio "github.com/matzehuels/hobohm/pkg/io"
	"github.com/matzehuels/hobohm/pkg/pipeline"
)

// Output formats for reduce.
const (
	formatNames = "names"
	formatJSON  = "json"
)

// inputFlags are the flags shared by every command that reads a pair list.
type inputFlags struct {
	relation      string
	cutoff        float64
	keepFile      string
	keep          []string
	skipMalformed bool
	noCache       bool
	refresh       bool
	trace         bool
}

func (f *inputFlags) register(cmd *cobra.Command, withKeep bool) {
	cmd.Flags().StringVar(&f.relation, "val", "", "value type, required: sim (neighbors above cutoff) or dist (neighbors below cutoff)")
	cmd.Flags().Float64VarP(&f.cutoff, "cutoff", "c", 0, "neighbor cutoff")
	cmd.Flags().BoolVar(&f.skipMalformed, "skip-malformed", false, "skip unparsable lines with a warning instead of failing")
	if withKeep {
		cmd.Flags().StringVarP(&f.keepFile, "keep", "k", "", "file of names to keep (one per line)")
		cmd.Flags().StringSliceVar(&f.keep, "keep-name", nil, "name to keep (repeatable)")
		cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable result caching")
		cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	}
	cmd.Flags().BoolVar(&f.trace, "trace", false, "write OpenTelemetry spans to stderr")
}

// options merges flags with config-file defaults. Explicit flags win.
func (c *CLI) options(cmd *cobra.Command, f *inputFlags, input string) (pipeline.Options, error) {
	flags := cmd.Flags()
	opts := pipeline.Options{
		Input:         input,
		Relation:      f.relation,
		Cutoff:        f.cutoff,
		Keep:          f.keep,
		KeepFile:      f.keepFile,
		SkipMalformed: f.skipMalformed,
		Refresh:       f.refresh,
		Logger:        loggerFromContext(cmd.Context()),
	}
	if !flags.Changed("val") {
		opts.Relation = c.cfg.Relation
	}
	if opts.Relation == "" {
		return opts, fmt.Errorf("relation is required (--val sim|dist or config file)")
	}
	if !flags.Changed("cutoff") {
		if c.cfg.Cutoff == nil {
			return opts, fmt.Errorf("cutoff is required (--cutoff or config file)")
		}
		opts.Cutoff = *c.cfg.Cutoff
	}
	if flags.Lookup("keep") != nil && !flags.Changed("keep") && c.cfg.KeepFile != "" {
		opts.KeepFile = c.cfg.KeepFile
	}
	if !flags.Changed("skip-malformed") && c.cfg.SkipMalformed {
		opts.SkipMalformed = true
	}
	return opts, nil
}

// reduceCommand creates the reduce command.
func (c *CLI) reduceCommand() *cobra.Command {
	var (
		f        inputFlags
		format   string
		noReport bool
	)

	cmd := &cobra.Command{
		Use:   "reduce INFILE OUTFILE",
		Short: "Reduce a pair list to a subset with no neighbors",
		Long: `Reduce reads "name1 name2 value" lines from INFILE and writes the retained
names to OUTFILE, one per line. Use "-" for stdin or stdout.

With --val sim two items are neighbors when their value exceeds the cutoff;
with --val dist when it is below the cutoff. Both --val and --cutoff must be
given, on the command line or in the config file. Items listed in the keep
file are always retained and their neighbors removed.`,
		Example: `  # Similarity scores, neighbors above 0.8
  hobohm reduce pairs.txt reduced.txt --val sim -c 0.8

  # Distances, neighbors below 0.3, forcing some items to stay
  hobohm reduce dists.txt - --val dist -c 0.3 -k keep.txt

  # Full result as JSON
  hobohm reduce pairs.txt result.json --val sim -c 0.8 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatNames && format != formatJSON {
				return fmt.Errorf("invalid format %q (must be one of: names, json)", format)
			}
			return c.runReduce(cmd, &f, args[0], args[1], format, noReport)
		},
	}

	f.register(cmd, true)
	cmd.Flags().StringVar(&format, "format", formatNames, "output format: names or json")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "do not print the summary report")

	return cmd
}

func (c *CLI) runReduce(cmd *cobra.Command, f *inputFlags, input, output, format string, noReport bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := c.options(cmd, f, input)
	if err != nil {
		return err
	}

	stop, err := c.startTracing(ctx, f.trace)
	if err != nil {
		return err
	}
	defer stop()

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Reduced %s %s %s items", formatCount(res.Summary.Items), iconArrow, formatCount(len(res.Retained))))

	out, err := c.createOutput(output)
	if err != nil {
		return err
	}
	if err := writeResult(out, res, format); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", output, err)
	}

	if noReport {
		return nil
	}
	report := c.Out
	if isStdio(output) {
		report = c.Err
	}
	printSummary(report, res.Summary, len(res.Retained), res.CacheHit)
	for _, cf := range res.Conflicts {
		printWarning(report, "keep items %s", cf)
	}
	if n := len(res.MissingKeep); n > 0 {
		printWarning(report, "%d keep names not found in input", n)
	}
	if !isStdio(output) {
		printSuccess(report, "Wrote %s names", formatCount(len(res.Retained)))
		printFile(report, output)
	}
	return nil
}

func writeResult(w io.Writer, res *pipeline.Result, format string) error {
	if format == formatJSON {
		return pio.WriteJSON(w, res)
	}
	return pio.WriteNames(w, res.Retained)
}

func isStdio(path string) bool { return path == "-" || path == "" }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput opens path for writing; "-" writes to c.Out.
func (c *CLI) createOutput(path string) (io.WriteCloser, error) {
	if isStdio(path) {
		return nopWriteCloser{c.Out}, nil
	}
	return pio.CreateOutput(path)
}
