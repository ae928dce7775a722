package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/hobohm/pkg/cache"
	"github.com/matzehuels/hobohm/pkg/errors"
	pio "github.com/matzehuels/hobohm/pkg/io"
	"github.com/matzehuels/hobohm/pkg/neighbor"
	"github.com/matzehuels/hobohm/pkg/observability"
)

// cacheKeyType labels result entries in cache hooks.
const cacheKeyType = "result"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so results are cached and logged the same way.
//
// The Runner holds no per-run state; multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is how long results stay cached; zero means cache.TTLResult.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs ingest → keep → reduce → reinstate with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	start := time.Now()

	ctx, span := observability.Tracer().Start(ctx, "pipeline.Execute")
	defer span.End()

	keep, err := loadKeep(opts)
	if err != nil {
		return nil, fail(span, err)
	}

	data, hash, err := loadInput(opts)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(
		attribute.String("hobohm.relation", opts.relation.String()),
		attribute.Float64("hobohm.cutoff", opts.Cutoff),
		attribute.Int("hobohm.keep", len(keep)),
	)

	key := r.Keyer.ResultKey(hash, opts.keyOpts(keep))
	if !opts.Refresh && !opts.WithGraph {
		if res, ok := r.lookup(ctx, key); ok {
			logger.Debug("using cached result", "key", key)
			res.CacheHit = true
			res.Stats.Total = time.Since(start)
			span.SetAttributes(attribute.Bool("hobohm.cache_hit", true))
			return res, nil
		}
	}

	res, err := r.run(ctx, opts, data, keep)
	if err != nil {
		return nil, fail(span, err)
	}
	res.InputHash = hash
	res.Keep = keep
	res.Stats.Total = time.Since(start)

	if !opts.WithGraph {
		r.store(ctx, key, res)
	}
	return res, nil
}

// Summarize ingests the input and returns its statistics without reducing.
// Keep options are ignored and nothing is cached.
func (r *Runner) Summarize(ctx context.Context, opts Options) (neighbor.Summary, pio.ReadStats, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return neighbor.Summary{}, pio.ReadStats{}, fmt.Errorf("invalid options: %w", err)
	}
	data, _, err := loadInput(opts)
	if err != nil {
		return neighbor.Summary{}, pio.ReadStats{}, err
	}
	b, stats, err := Ingest(ctx, opts, data)
	if err != nil {
		return neighbor.Summary{}, stats, fmt.Errorf("ingest: %w", err)
	}
	return b.Summary(), stats, nil
}

// run executes both stages without consulting the cache.
func (r *Runner) run(ctx context.Context, opts Options, data []byte, keep []string) (*Result, error) {
	logger := opts.Logger
	res := &Result{}

	ingestStart := time.Now()
	b, stats, err := Ingest(ctx, opts, data)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	res.Read = stats
	res.Summary = b.Summary()
	res.Stats.IngestTime = time.Since(ingestStart)

	g := b.Graph()
	if opts.WithGraph {
		res.Graph = &GraphSnapshot{Nodes: g.Nodes(), Edges: g.Edges()}
	}
	logger.Info("ingested pairs",
		"items", res.Summary.Items,
		"edges", res.Summary.Edges,
		"malformed", stats.Malformed,
		"duration", res.Stats.IngestTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reduceStart := time.Now()
	red, err := Reduce(ctx, g, keep, logger)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	res.Reduction = *red
	res.Stats.ReduceTime = time.Since(reduceStart)

	logger.Info("reduced set",
		"original", res.Summary.Items,
		"retained", len(red.Retained),
		"duration", res.Stats.ReduceTime)
	return res, nil
}

// Ingest reads the input into a neighbor graph builder. data holds the raw
// input bytes for file input and is ignored when opts.Triples is set.
// Options must already be validated.
func Ingest(ctx context.Context, opts Options, data []byte) (*neighbor.Builder, pio.ReadStats, error) {
	ctx, span := observability.Tracer().Start(ctx, "pipeline.Ingest")
	defer span.End()

	hooks := observability.Pipeline()
	src := opts.source()
	hooks.OnIngestStart(ctx, src)
	start := time.Now()

	b := neighbor.NewBuilder(opts.relation, opts.Cutoff)
	stats, err := ingestInto(ctx, b, opts, data)

	hooks.OnIngestComplete(ctx, src, b.Graph().NodeCount(), b.Graph().EdgeCount(), time.Since(start), err)
	if err != nil {
		return nil, stats, fail(span, err)
	}
	span.SetAttributes(
		attribute.Int("hobohm.items", b.Graph().NodeCount()),
		attribute.Int("hobohm.edges", b.Graph().EdgeCount()),
	)
	return b, stats, nil
}

// ctxCheckEvery is how many triples are ingested between context checks.
const ctxCheckEvery = 4096

func ingestInto(ctx context.Context, b *neighbor.Builder, opts Options, data []byte) (pio.ReadStats, error) {
	if opts.Triples != nil {
		for i, t := range opts.Triples {
			if i%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return pio.ReadStats{Triples: i}, err
				}
			}
			if err := validateTriple(t); err != nil {
				return pio.ReadStats{Triples: i}, fmt.Errorf("triple %d: %w", i, err)
			}
			b.Add(t)
		}
		return pio.ReadStats{Triples: len(opts.Triples)}, nil
	}

	logger := opts.Logger
	ro := pio.ReadOptions{
		SkipMalformed: opts.SkipMalformed,
		OnMalformed: func(fe *neighbor.FormatError) {
			logger.Warn("skipping malformed line", "line", fe.Line, "reason", fe.Reason)
		},
	}
	n := 0
	stats, err := pio.ReadPairs(bytes.NewReader(data), ro, func(t neighbor.Triple) error {
		n++
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		b.Add(t)
		return nil
	})
	if err != nil {
		if goerrors.Is(err, neighbor.ErrMalformedTriple) {
			return stats, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s", opts.source())
		}
		return stats, err
	}
	return stats, nil
}

func validateTriple(t neighbor.Triple) error {
	if err := errors.ValidateName(t.A); err != nil {
		return err
	}
	if err := errors.ValidateName(t.B); err != nil {
		return err
	}
	if err := errors.ValidateCutoff(t.Value); err != nil {
		return errors.New(errors.ErrCodeInvalidFormat, "value must be a finite number, got %v", t.Value)
	}
	return nil
}

// Reduce applies the keep list to g and reduces it to a neighbor-free set.
// g is mutated. An edgeless graph is returned as is, with only missing keep
// names reported.
func Reduce(ctx context.Context, g *neighbor.Graph, keep []string, logger *log.Logger) (*neighbor.Reduction, error) {
	ctx, span := observability.Tracer().Start(ctx, "pipeline.Reduce")
	defer span.End()

	hooks := observability.Pipeline()
	hooks.OnReduceStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()

	var (
		red *neighbor.Reduction
		err error
	)
	if g.EdgeCount() == 0 {
		logger.Debug("no neighbor pairs, retaining every item")
		red = &neighbor.Reduction{
			Retained:    g.Nodes(),
			Conflicts:   []neighbor.Conflict{},
			MissingKeep: missingKeep(g, keep),
		}
		if red.Retained == nil {
			red.Retained = []string{}
		}
	} else {
		red, err = neighbor.Reduce(g, keep)
		switch {
		case err == nil:
		case goerrors.Is(err, neighbor.ErrNotNeighbors):
			err = errors.Wrap(errors.ErrCodeNotNeighbors, err, "reduce")
		default:
			err = errors.Wrap(errors.ErrCodeInternal, err, "reduce")
		}
	}

	retained, conflicts := 0, 0
	if red != nil {
		retained, conflicts = len(red.Retained), len(red.Conflicts)
	}
	hooks.OnReduceComplete(ctx, retained, conflicts, time.Since(start), err)
	if err != nil {
		return nil, fail(span, err)
	}

	for _, c := range red.Conflicts {
		logger.Warn("keep list conflict", "a", c.A, "b", c.B)
	}
	for _, m := range red.MissingKeep {
		logger.Warn("keep item not in input", "name", m)
	}
	if n := len(red.RemovedAsKeepNeighbor); n > 0 {
		logger.Debug("removed keep neighbors", "count", n, "reinstated", len(red.Reinstated))
	}
	span.SetAttributes(
		attribute.Int("hobohm.retained", len(red.Retained)),
		attribute.Int("hobohm.conflicts", len(red.Conflicts)),
	)
	return red, nil
}

func missingKeep(g *neighbor.Graph, keep []string) []string {
	var missing []string
	for _, k := range keep {
		if !g.HasNode(k) {
			missing = append(missing, k)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}

// loadKeep merges Options.Keep with the names in Options.KeepFile and
// returns them sorted and deduplicated.
func loadKeep(opts Options) ([]string, error) {
	keep := slices.Clone(opts.Keep)
	if opts.KeepFile != "" {
		names, err := pio.ReadKeepFile(opts.KeepFile)
		if err != nil {
			return nil, classifyOpenErr(err, "keep file")
		}
		for _, n := range names {
			if err := errors.ValidateName(n); err != nil {
				return nil, fmt.Errorf("keep file %s: %w", opts.KeepFile, err)
			}
		}
		keep = append(keep, names...)
	}
	slices.Sort(keep)
	return slices.Compact(keep), nil
}

// loadInput returns the raw input and its content hash. In-memory triples
// are hashed through their JSON encoding.
func loadInput(opts Options) ([]byte, string, error) {
	if opts.Triples != nil {
		enc, err := json.Marshal(opts.Triples)
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "encode triples")
		}
		return nil, cache.Hash(enc), nil
	}
	f, err := pio.OpenInput(opts.Input)
	if err != nil {
		return nil, "", classifyOpenErr(err, "input")
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, "", fmt.Errorf("read %s: %w", opts.source(), err)
	}
	return buf.Bytes(), cache.Hash(buf.Bytes()), nil
}

func classifyOpenErr(err error, what string) error {
	if goerrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s not found", what)
	}
	if goerrors.Is(err, fs.ErrPermission) || goerrors.Is(err, os.ErrPermission) {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s not readable", what)
	}
	return err
}

// lookup returns a cached result for key. Undecodable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Debug("result not cacheable", "err", err)
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLResult
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// fail marks span as failed and returns err.
func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
