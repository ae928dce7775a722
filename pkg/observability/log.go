package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnIngestStart(_ context.Context, source string) {
	h.Logger.Debug("ingest start", "source", source)
}

func (h LogHooks) OnIngestComplete(_ context.Context, source string, items, edges int, d time.Duration, err error) {
	h.Logger.Debug("ingest complete", "source", source, "items", items, "edges", edges, "duration", d, "err", err)
}

func (h LogHooks) OnReduceStart(_ context.Context, items, edges int) {
	h.Logger.Debug("reduce start", "items", items, "edges", edges)
}

func (h LogHooks) OnReduceComplete(_ context.Context, retained, conflicts int, d time.Duration, err error) {
	h.Logger.Debug("reduce complete", "retained", retained, "conflicts", conflicts, "duration", d, "err", err)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
)
