// Package cache stores reduction results so identical runs are served
// without re-reading and re-reducing the input.
//
// Three backends share the [Cache] interface:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys come from a [Keyer], which hashes every input that influences a
// result. [ScopedKeyer] prefixes keys to separate namespaces that share one
// backend.
package cache

import (
	"context"
	"time"
)

// TTLResult is how long a reduction result stays cached.
const TTLResult = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with expiry.
// Get reports a miss as (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ResultKeyOpts holds every option that changes a reduction result.
type ResultKeyOpts struct {
	Relation      string   `json:"relation"`
	Cutoff        float64  `json:"cutoff"`
	Keep          []string `json:"keep,omitempty"`
	SkipMalformed bool     `json:"skip_malformed,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key for a reduction of the input whose content
	// hash is inputHash.
	ResultKey(inputHash string, opts ResultKeyOpts) string
}

// DefaultKeyer builds keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(inputHash string, opts ResultKeyOpts) string {
	return hashKey("result", inputHash, opts)
}
