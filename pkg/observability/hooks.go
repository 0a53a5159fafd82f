// Package observability lets callers watch the export pipeline without the
// pipeline knowing who listens.
//
// The runner reports each stage (load, build, write) and each cache lookup to
// the registered hooks. Until something is registered the hooks do nothing.
// The CLI registers a logger-backed implementation at debug level:
//
//	observability.SetPipelineHooks(h)
//	observability.SetCacheHooks(h)
//
// Emitting side, inside the runner:
//
//	observability.Pipeline().OnBuildStart(ctx, len(src.PointAttributes()))
//	doc, err := tree.Build(ctx, src)
//	observability.Pipeline().OnBuildComplete(ctx, len(doc.Emitters), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives stage events from the export pipeline. Complete
// events carry the stage duration and its error, if any.
type PipelineHooks interface {
	// OnLoadStart fires before a geometry file is decoded.
	OnLoadStart(ctx context.Context, path string)
	// OnLoadComplete reports the number of points decoded.
	OnLoadComplete(ctx context.Context, path string, points int, duration time.Duration, err error)

	// OnBuildStart reports how many point attributes the source declares.
	OnBuildStart(ctx context.Context, attributes int)
	// OnBuildComplete reports the number of emitter elements built.
	OnBuildComplete(ctx context.Context, emitters int, duration time.Duration, err error)

	// OnWriteStart fires before the XML file is written.
	OnWriteStart(ctx context.Context, path string)
	// OnWriteComplete reports the number of bytes written.
	OnWriteComplete(ctx context.Context, path string, size int, duration time.Duration, err error)
}

// CacheHooks receives lookups and stores against the export cache. keyType
// names the kind of entry, e.g. "export".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks ignores every event. Embed it to implement only some of
// PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopPipelineHooks) OnBuildStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnWriteStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// registry holds the process-wide hooks.
type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks = &registry{pipeline: NoopPipelineHooks{}, cache: NoopCacheHooks{}}

// SetPipelineHooks replaces the pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// Pipeline returns the current pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset puts the no-op hooks back. Tests that register hooks defer it.
func Reset() {
	hooks.mu.Lock()
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
	hooks.mu.Unlock()
}
