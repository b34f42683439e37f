package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process counters for the dashboard's ops
// endpoints. All methods are safe on a nil receiver so wiring stays
// optional.
type Collector struct {
	totalRequests    uint64
	errorRequests    uint64
	rateLimited      uint64
	totalDurationMs  uint64
	matricesComputed uint64
	cacheHits        uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) MarkMatrixComputed() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.matricesComputed, 1)
}

func (c *Collector) MarkCacheHit() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.cacheHits, 1)
}

func (c *Collector) Snapshot() map[string]any {
	if c == nil {
		return map[string]any{}
	}
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal": atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":    avg,
		"matricesComputed": atomic.LoadUint64(&c.matricesComputed),
		"cacheHits":        atomic.LoadUint64(&c.cacheHits),
	}
}
