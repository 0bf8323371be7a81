// Package timeouts holds the request-scoped deadlines used by handlers and
// stores. Values start at the defaults and may be overridden once at startup.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Class groups operations by expected cost.
type Class int

const (
	// ClassPing covers health checks.
	ClassPing Class = iota
	// ClassShort covers single-document reads and writes.
	ClassShort
	// ClassMedium covers list queries and guarded deletes.
	ClassMedium
	// ClassLong covers fan-out reads such as listing every sub-category,
	// and uploads.
	ClassLong
	// ClassBatch covers backfills and CSV exports.
	ClassBatch
	numClasses
)

var defaults = [numClasses]time.Duration{
	ClassPing:   2 * time.Second,
	ClassShort:  5 * time.Second,
	ClassMedium: 10 * time.Second,
	ClassLong:   30 * time.Second,
	ClassBatch:  2 * time.Minute,
}

var (
	mu      sync.RWMutex
	current = defaults
)

// Get returns the configured timeout for c.
func Get(c Class) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return current[c]
}

func Ping() time.Duration   { return Get(ClassPing) }
func Short() time.Duration  { return Get(ClassShort) }
func Medium() time.Duration { return Get(ClassMedium) }
func Long() time.Duration   { return Get(ClassLong) }
func Batch() time.Duration  { return Get(ClassBatch) }

// Config overrides individual classes. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}

// Configure applies cfg. Call it during startup before serving.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	for c, d := range [numClasses]time.Duration{cfg.Ping, cfg.Short, cfg.Medium, cfg.Long, cfg.Batch} {
		if d > 0 {
			current[c] = d
		}
	}
}

// Reset restores the defaults.
func Reset() {
	mu.Lock()
	current = defaults
	mu.Unlock()
}

// Current reports the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:   current[ClassPing],
		Short:  current[ClassShort],
		Medium: current[ClassMedium],
		Long:   current[ClassLong],
		Batch:  current[ClassBatch],
	}
}

// WithTimeout derives a context bounded by class c. The returned cancel
// logs a warning when the deadline was hit.
func WithTimeout(parent context.Context, c Class, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	d := Get(c)
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out", zap.String("operation", operation), zap.Duration("timeout", d))
		}
		cancel()
	}
}
