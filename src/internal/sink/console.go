// FILE: macrolog/src/internal/sink/console.go
package sink

import (
	"fmt"
	"io"

	"macrolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// ConsoleSink writes rendered lines to the host's console stream. The
// writer is injected so tests can capture output; the daemon passes stdout.
type ConsoleSink struct {
	counters
	output    io.Writer
	threshold core.Level
	logger    *log.Logger
}

// NewConsoleSink creates a console sink with the given threshold.
func NewConsoleSink(output io.Writer, threshold core.Level, logger *log.Logger) *ConsoleSink {
	return &ConsoleSink{
		output:    output,
		threshold: threshold,
		logger:    logger,
	}
}

func (s *ConsoleSink) Name() string {
	return "console"
}

func (s *ConsoleSink) Threshold() core.Level {
	return s.threshold
}

func (s *ConsoleSink) Emit(rec core.Record, rendered string) error {
	if _, err := fmt.Fprintln(s.output, rendered); err != nil {
		s.failed()
		return fmt.Errorf("console write failed: %w", err)
	}
	s.emitted()
	return nil
}

func (s *ConsoleSink) Stats() Stats {
	return s.snapshot("console", map[string]any{
		"threshold": s.threshold.String(),
	})
}
