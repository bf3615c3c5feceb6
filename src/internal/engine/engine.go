// FILE: macrolog/src/internal/engine/engine.go
package engine

import (
	"fmt"
	"sync/atomic"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"
	"macrolog/src/internal/format"
	"macrolog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// Engine routes each record to the enabled sinks. Dispatch order is fixed:
// file first so persisted history is unaffected by console, display or
// notification failures, then console, display, notification. The engine
// holds no mutable state between calls.
type Engine struct {
	cfg       config.EngineConfig
	formatter *format.Formatter
	file      sink.Sink
	console   sink.Sink
	display   sink.Sink
	notify    sink.Sink
	logger    *log.Logger

	totalCalls    atomic.Uint64
	totalRejected atomic.Uint64
}

// SinkResult reports one sink's outcome for a dispatch.
type SinkResult struct {
	Sink    string
	Emitted bool
	Err     error
}

// DispatchResult carries per-sink outcomes. Macro callers are
// fire-and-forget and may ignore it.
type DispatchResult struct {
	Sinks []SinkResult
}

// Failed reports whether any attempted sink returned an error.
func (r DispatchResult) Failed() bool {
	for _, s := range r.Sinks {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// EngineStats summarizes routing activity.
type EngineStats struct {
	TotalCalls    uint64
	TotalRejected uint64
	Sinks         []sink.Stats
}

// New creates an engine. Nil sinks are treated as disabled.
func New(cfg config.EngineConfig, formatter *format.Formatter, file, console, display, notify sink.Sink, logger *log.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		formatter: formatter,
		file:      file,
		console:   console,
		display:   display,
		notify:    notify,
		logger:    logger,
	}
}

// Log dispatches one record. Caller misuse (empty name or message) is
// rejected before any sink write and echoed back through the console sink.
// Sink failures are isolated from each other and never escape this method;
// a failure notice goes through the console sink with re-entry guarded.
func (e *Engine) Log(rec core.Record) (DispatchResult, error) {
	e.totalCalls.Add(1)

	if err := validate(rec); err != nil {
		e.totalRejected.Add(1)
		e.consoleNotice(fmt.Sprintf("macrolog: rejected log call: %v", err))
		return DispatchResult{}, err
	}

	rendered := e.formatter.Render(rec)
	var result DispatchResult

	// File first: persisted history survives downstream failures
	if e.file != nil && passes(rec.Level, e.file.Threshold()) {
		result.Sinks = append(result.Sinks, e.dispatch(e.file, rec, rendered))
	}

	if e.console != nil && passes(rec.Level, e.console.Threshold()) {
		result.Sinks = append(result.Sinks, e.dispatch(e.console, rec, rendered))
	}

	if e.display != nil && rec.Display {
		result.Sinks = append(result.Sinks, e.dispatch(e.display, rec, rendered))
	}

	if e.notify != nil && rec.Notify {
		result.Sinks = append(result.Sinks, e.dispatch(e.notify, rec, rendered))
	}

	for _, s := range result.Sinks {
		if s.Err != nil && s.Sink != "console" {
			// Console failures are not re-reported through the console
			e.consoleNotice(fmt.Sprintf("macrolog: %s sink failed: %v", s.Sink, s.Err))
		}
	}

	return result, nil
}

// Stats returns routing and per-sink statistics.
func (e *Engine) Stats() EngineStats {
	stats := EngineStats{
		TotalCalls:    e.totalCalls.Load(),
		TotalRejected: e.totalRejected.Load(),
	}
	for _, s := range []sink.Sink{e.file, e.console, e.display, e.notify} {
		if s != nil {
			stats.Sinks = append(stats.Sinks, s.Stats())
		}
	}
	return stats
}

// ReportConfigNotice surfaces a one-time configuration problem to the
// operator without failing startup.
func (e *Engine) ReportConfigNotice(msg string) {
	e.consoleNotice("macrolog: " + msg)
}

func (e *Engine) dispatch(s sink.Sink, rec core.Record, rendered string) SinkResult {
	err := emitSafe(s, rec, rendered)
	if err != nil {
		e.logger.Warn("msg", "Sink emit failed",
			"component", "engine",
			"sink", s.Name(),
			"error", err)
		return SinkResult{Sink: s.Name(), Err: err}
	}
	return SinkResult{Sink: s.Name(), Emitted: true}
}

// emitSafe contains a sink panic so one broken sink cannot abort a print
// job or starve the remaining sinks.
func emitSafe(s sink.Sink, rec core.Record, rendered string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return s.Emit(rec, rendered)
}

// consoleNotice writes an internal notice through the console sink. The
// notice is itself best-effort: a failure here is dropped rather than
// re-entering the sink.
func (e *Engine) consoleNotice(msg string) {
	if e.console == nil {
		return
	}
	notice := core.NewRecord("macrolog", msg, core.LevelWarn, false, false)
	if err := emitSafe(e.console, notice, e.formatter.Render(notice)); err != nil {
		e.logger.Warn("msg", "Failed to report notice via console",
			"component", "engine",
			"error", err)
	}
}

func validate(rec core.Record) error {
	if rec.Name == "" {
		return fmt.Errorf("missing required NAME")
	}
	if rec.Message == "" {
		return fmt.Errorf("missing required MSG")
	}
	return nil
}

// passes applies threshold filtering. PRINT records bypass filtering
// entirely; otherwise the record's rank must reach the sink's threshold.
func passes(recLevel, threshold core.Level) bool {
	if recLevel == core.LevelPrint {
		return true
	}
	return core.CompareLevels(recLevel, threshold) >= 0
}
