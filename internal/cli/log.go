package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Exported 12 emitters (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// logHooks reports pipeline stages and cache lookups at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load start", "path", path)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, points int, d time.Duration, err error) {
	h.logger.Debug("load done", "path", path, "points", points, "duration", d, "err", err)
}

func (h *logHooks) OnBuildStart(_ context.Context, attributes int) {
	h.logger.Debug("build start", "attributes", attributes)
}

func (h *logHooks) OnBuildComplete(_ context.Context, emitters int, d time.Duration, err error) {
	h.logger.Debug("build done", "emitters", emitters, "duration", d, "err", err)
}

func (h *logHooks) OnWriteStart(_ context.Context, path string) {
	h.logger.Debug("write start", "path", path)
}

func (h *logHooks) OnWriteComplete(_ context.Context, path string, size int, d time.Duration, err error) {
	h.logger.Debug("write done", "path", path, "bytes", size, "duration", d, "err", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
