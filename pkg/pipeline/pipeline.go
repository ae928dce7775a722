// Package pipeline runs the complete reduction of a pair list.
//
// This package implements the ingest → keep → reduce → reinstate sequence
// shared by the CLI and the HTTP API. By centralizing it, both entry points
// classify, log, cache and report results identically.
//
// # Stages
//
//  1. Ingest: read "name1 name2 value" triples into a neighbor graph and
//     take the post-ingestion [neighbor.Summary].
//  2. Reduce: resolve the keep list, greedily remove maximum-degree items
//     and reinstate keep-removed items with no surviving neighbor.
//
// When ingestion finds no neighbor pairs the reduce stage is skipped and
// every item is retained.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:    "pairs.txt",
//	    Relation: "sim",
//	    Cutoff:   0.5,
//	    KeepFile: "keep.txt",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Retained)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hobohm/pkg/cache"
	"github.com/matzehuels/hobohm/pkg/errors"
	pio "github.com/matzehuels/hobohm/pkg/io"
	"github.com/matzehuels/hobohm/pkg/neighbor"
)

// DefaultRelation is used when Options.Relation is empty. The CLI and the
// HTTP API never rely on it; both require the relation to be named.
const DefaultRelation = "sim"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one reduction.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input is a file path, or "-" for stdin. Ignored when Triples is set.
	Input string `json:"input,omitempty"`
	// Triples is an in-memory input used instead of Input.
	Triples []neighbor.Triple `json:"triples,omitempty"`

	Relation string   `json:"relation,omitempty"`
	Cutoff   float64  `json:"cutoff"`
	Keep     []string `json:"keep,omitempty"`
	KeepFile string   `json:"keep_file,omitempty"`

	// SkipMalformed skips unparsable lines with a warning instead of failing.
	SkipMalformed bool `json:"skip_malformed,omitempty"`
	// Refresh ignores cached results but stores the new one.
	Refresh bool `json:"refresh,omitempty"`

	// WithGraph records the ingested graph in Result.Graph. Results that
	// carry a graph are never served from cache.
	WithGraph bool `json:"-"`

	Logger *log.Logger `json:"-"`

	relation  neighbor.Relation
	validated bool
}

// Result contains the outputs of a pipeline run. The embedded Reduction
// and Summary are what gets cached and serialized.
type Result struct {
	neighbor.Reduction
	Summary   neighbor.Summary `json:"summary"`
	Read      pio.ReadStats    `json:"read"`
	InputHash string           `json:"input_hash"`
	// Keep is the resolved keep list, sorted.
	Keep []string `json:"keep,omitempty"`

	// Graph is the ingested graph, set only with Options.WithGraph.
	Graph *GraphSnapshot `json:"-"`

	Stats    Stats `json:"-"`
	CacheHit bool  `json:"-"`
}

// GraphSnapshot is the neighbor graph as it stood after ingestion.
type GraphSnapshot struct {
	Nodes []string
	Edges []neighbor.Edge
}

// Stats contains pipeline execution statistics.
type Stats struct {
	IngestTime time.Duration
	ReduceTime time.Duration
	Total      time.Duration
}

// =============================================================================
// Validation
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Triples == nil {
		if err := errors.ValidatePath(o.Input); err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "input path or triples required")
		}
	}
	if o.Relation == "" {
		o.Relation = DefaultRelation
	}
	rel, err := neighbor.ParseRelation(o.Relation)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRelation, err, "relation")
	}
	o.relation = rel
	if err := errors.ValidateCutoff(o.Cutoff); err != nil {
		return err
	}
	for _, k := range o.Keep {
		if err := errors.ValidateName(k); err != nil {
			return err
		}
	}
	if o.KeepFile != "" {
		if err := errors.ValidatePath(o.KeepFile); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ParsedRelation returns the relation after ValidateAndSetDefaults.
func (o *Options) ParsedRelation() neighbor.Relation { return o.relation }

// keyOpts returns cache key options for a run with the resolved keep list.
func (o *Options) keyOpts(keep []string) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Relation:      o.relation.String(),
		Cutoff:        o.Cutoff,
		Keep:          keep,
		SkipMalformed: o.SkipMalformed,
	}
}

func (o *Options) source() string {
	if o.Triples != nil {
		return fmt.Sprintf("<%d triples>", len(o.Triples))
	}
	if o.Input == "-" {
		return "<stdin>"
	}
	return o.Input
}
