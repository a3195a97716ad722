package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request volume plus booking-transition outcomes with
// atomic counters. Cheap enough to sit on every request.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	clockIns        uint64
	clockOuts       uint64
	clockConflicts  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordClockIn() {
	atomic.AddUint64(&c.clockIns, 1)
}

func (c *Collector) RecordClockOut() {
	atomic.AddUint64(&c.clockOuts, 1)
}

// RecordClockConflict counts rejected duplicate transitions, the expected
// outcome of retried taps.
func (c *Collector) RecordClockConflict() {
	atomic.AddUint64(&c.clockConflicts, 1)
}

func (c *Collector) Snapshot() map[string]any {
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
		"clockInsTotal":    atomic.LoadUint64(&c.clockIns),
		"clockOutsTotal":   atomic.LoadUint64(&c.clockOuts),
		"clockConflicts":   atomic.LoadUint64(&c.clockConflicts),
	}
}
