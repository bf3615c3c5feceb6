// FILE: macrolog/src/internal/sink/sink.go
package sink

import (
	"sync/atomic"
	"time"

	"macrolog/src/internal/core"
)

// Sink is an independent output channel for log records. Emit reports
// failure to the router but never panics and never blocks unbounded.
type Sink interface {
	// Name returns the sink type name
	Name() string

	// Threshold returns the minimum severity this sink accepts. Sinks gated
	// by a record flag rather than severity return core.LevelPrint.
	Threshold() core.Level

	// Emit writes one record. rendered is the formatted line; flag-gated
	// sinks use the raw record fields instead.
	Emit(rec core.Record, rendered string) error

	// Stats returns sink statistics
	Stats() Stats
}

// Stats contains statistics about a sink
type Stats struct {
	Type         string
	TotalEmitted uint64
	TotalFailed  uint64
	LastEmit     time.Time
	Details      map[string]any
}

// counters is the shared bookkeeping embedded by every sink.
type counters struct {
	totalEmitted atomic.Uint64
	totalFailed  atomic.Uint64
	lastEmit     atomic.Value // time.Time
}

func (c *counters) emitted() {
	c.totalEmitted.Add(1)
	c.lastEmit.Store(time.Now())
}

func (c *counters) failed() {
	c.totalFailed.Add(1)
}

func (c *counters) snapshot(typ string, details map[string]any) Stats {
	last, _ := c.lastEmit.Load().(time.Time)
	if details == nil {
		details = map[string]any{}
	}
	return Stats{
		Type:         typ,
		TotalEmitted: c.totalEmitted.Load(),
		TotalFailed:  c.totalFailed.Load(),
		LastEmit:     last,
		Details:      details,
	}
}
