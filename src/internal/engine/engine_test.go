// FILE: macrolog/src/internal/engine/engine_test.go
package engine

import (
	"fmt"
	"strings"
	"testing"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"
	"macrolog/src/internal/format"
	"macrolog/src/internal/sink"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

// stubSink captures emits and optionally fails or panics.
type stubSink struct {
	name      string
	threshold core.Level
	emitErr   error
	panicOn   bool

	records  []core.Record
	rendered []string
}

func (s *stubSink) Name() string          { return s.name }
func (s *stubSink) Threshold() core.Level { return s.threshold }
func (s *stubSink) Stats() sink.Stats     { return sink.Stats{Type: s.name} }

func (s *stubSink) Emit(rec core.Record, rendered string) error {
	if s.panicOn {
		panic("sink blew up")
	}
	if s.emitErr != nil {
		return s.emitErr
	}
	s.records = append(s.records, rec)
	s.rendered = append(s.rendered, rendered)
	return nil
}

func newTestEngine(t *testing.T, file, console, display, notify sink.Sink) *Engine {
	t.Helper()
	f, err := format.New("{{.Level}} <{{.Name}}>: {{.Message}}", "", newTestLogger())
	require.NoError(t, err)
	return New(config.EngineConfig{}, f, file, console, display, notify, newTestLogger())
}

func TestThresholdFiltering(t *testing.T) {
	testCases := []struct {
		name      string
		level     core.Level
		threshold core.Level
		passes    bool
	}{
		{name: "BelowThresholdSuppressed", level: core.LevelDebug, threshold: core.LevelInfo, passes: false},
		{name: "AtThresholdPasses", level: core.LevelInfo, threshold: core.LevelInfo, passes: true},
		{name: "AboveThresholdPasses", level: core.LevelError, threshold: core.LevelInfo, passes: true},
		{name: "TraceSuppressedByWarn", level: core.LevelTrace, threshold: core.LevelWarn, passes: false},
		{name: "WarnSuppressedByError", level: core.LevelWarn, threshold: core.LevelError, passes: false},
		{name: "PrintBypassesAnyThreshold", level: core.LevelPrint, threshold: core.LevelError, passes: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			console := &stubSink{name: "console", threshold: tc.threshold}
			e := newTestEngine(t, nil, console, nil, nil)

			_, err := e.Log(core.NewRecord("x", "hi", tc.level, false, false))
			require.NoError(t, err)

			if tc.passes {
				assert.Len(t, console.records, 1)
			} else {
				assert.Empty(t, console.records)
			}
		})
	}
}

func TestIndependentThresholds(t *testing.T) {
	// File at TRACE, console at ERROR: a DEBUG record reaches the file only
	file := &stubSink{name: "file", threshold: core.LevelTrace}
	console := &stubSink{name: "console", threshold: core.LevelError}
	e := newTestEngine(t, file, console, nil, nil)

	_, err := e.Log(core.NewRecord("x", "hi", core.LevelDebug, false, false))
	require.NoError(t, err)

	require.Len(t, file.records, 1)
	assert.Empty(t, console.records)
	assert.True(t, strings.HasSuffix(file.rendered[0], "hi"))
	assert.Equal(t, "x", file.records[0].Name)
}

func TestFileDispatchedBeforeConsole(t *testing.T) {
	var order []string
	file := &orderSink{stubSink: stubSink{name: "file", threshold: core.LevelTrace}, order: &order}
	console := &orderSink{stubSink: stubSink{name: "console", threshold: core.LevelTrace}, order: &order}

	e := newTestEngine(t, file, console, nil, nil)
	_, err := e.Log(core.NewRecord("x", "hi", core.LevelInfo, false, false))
	require.NoError(t, err)

	assert.Equal(t, []string{"file", "console"}, order)
}

type orderSink struct {
	stubSink
	order *[]string
}

func (s *orderSink) Emit(rec core.Record, rendered string) error {
	*s.order = append(*s.order, s.name)
	return s.stubSink.Emit(rec, rendered)
}

func TestDisplayFlag(t *testing.T) {
	t.Run("TriggeredExactlyOnce", func(t *testing.T) {
		display := &stubSink{name: "display", threshold: core.LevelPrint}
		console := &stubSink{name: "console", threshold: core.LevelError}
		e := newTestEngine(t, nil, console, display, nil)

		// Level is below console threshold; display fires regardless
		_, err := e.Log(core.NewRecord("x", "hi", core.LevelDebug, true, false))
		require.NoError(t, err)

		assert.Len(t, display.records, 1)
		assert.Empty(t, console.records)
	})

	t.Run("NotTriggeredWithoutFlag", func(t *testing.T) {
		display := &stubSink{name: "display", threshold: core.LevelPrint}
		e := newTestEngine(t, nil, nil, display, nil)

		_, err := e.Log(core.NewRecord("x", "hi", core.LevelError, false, false))
		require.NoError(t, err)

		assert.Empty(t, display.records)
	})
}

func TestPrintFanOut(t *testing.T) {
	// _PRINT NAME=a MSG=b DISPLAY=1 NOTIFY=1 reaches every sink; display
	// and notify see the raw message, console and file the rendered line
	file := &stubSink{name: "file", threshold: core.LevelTrace}
	console := &stubSink{name: "console", threshold: core.LevelError}
	display := &stubSink{name: "display", threshold: core.LevelPrint}
	notify := &stubSink{name: "notify", threshold: core.LevelPrint}
	e := newTestEngine(t, file, console, display, notify)

	_, err := e.Log(core.NewRecord("a", "b", core.LevelPrint, true, true))
	require.NoError(t, err)

	require.Len(t, console.rendered, 1)
	assert.Equal(t, "PRINT <a>: b", console.rendered[0])
	require.Len(t, file.records, 1)
	require.Len(t, display.records, 1)
	assert.Equal(t, "b", display.records[0].Message)
	require.Len(t, notify.records, 1)
	assert.Equal(t, "a", notify.records[0].Name)
	assert.Equal(t, "b", notify.records[0].Message)
}

func TestNotifyFailureIsolation(t *testing.T) {
	file := &stubSink{name: "file", threshold: core.LevelTrace}
	console := &stubSink{name: "console", threshold: core.LevelTrace}
	notify := &stubSink{name: "notify", threshold: core.LevelPrint, emitErr: fmt.Errorf("service unreachable")}
	e := newTestEngine(t, file, console, nil, notify)

	result, err := e.Log(core.NewRecord("x", "hi", core.LevelInfo, false, true))
	require.NoError(t, err, "sink failure must not reach the caller")

	// File and console still received the record
	assert.Len(t, file.records, 1)
	assert.True(t, result.Failed())

	// Console got the record plus the failure notice
	require.Len(t, console.records, 2)
	assert.Equal(t, "hi", console.records[0].Message)
	assert.Contains(t, console.records[1].Message, "notify sink failed")
	assert.Equal(t, core.LevelWarn, console.records[1].Level)
	assert.Equal(t, "macrolog", console.records[1].Name)
}

func TestConsoleFailureNotReentered(t *testing.T) {
	file := &stubSink{name: "file", threshold: core.LevelTrace}
	console := &stubSink{name: "console", threshold: core.LevelTrace, emitErr: fmt.Errorf("stream closed")}
	e := newTestEngine(t, file, console, nil, nil)

	result, err := e.Log(core.NewRecord("x", "hi", core.LevelInfo, false, false))
	require.NoError(t, err)

	// File unaffected, console failure recorded but not re-reported
	// through the console itself
	assert.Len(t, file.records, 1)
	assert.True(t, result.Failed())
	assert.Empty(t, console.records)
}

func TestSinkPanicContained(t *testing.T) {
	file := &stubSink{name: "file", threshold: core.LevelTrace, panicOn: true}
	console := &stubSink{name: "console", threshold: core.LevelTrace}
	e := newTestEngine(t, file, console, nil, nil)

	var result DispatchResult
	var err error
	require.NotPanics(t, func() {
		result, err = e.Log(core.NewRecord("x", "hi", core.LevelInfo, false, false))
	})
	require.NoError(t, err)
	assert.True(t, result.Failed())

	// Record plus failure notice
	assert.Len(t, console.records, 2)
}

func TestCallerMisuse(t *testing.T) {
	testCases := []struct {
		name    string
		recName string
		message string
		wantErr string
	}{
		{name: "EmptyName", recName: "", message: "hi", wantErr: "NAME"},
		{name: "EmptyMessage", recName: "x", message: "", wantErr: "MSG"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			file := &stubSink{name: "file", threshold: core.LevelTrace}
			console := &stubSink{name: "console", threshold: core.LevelTrace}
			display := &stubSink{name: "display", threshold: core.LevelPrint}
			e := newTestEngine(t, file, console, display, nil)

			_, err := e.Log(core.NewRecord(tc.recName, tc.message, core.LevelInfo, true, false))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			// No partial side effects: only the rejection notice on console
			assert.Empty(t, file.records)
			assert.Empty(t, display.records)
			require.Len(t, console.records, 1)
			assert.Contains(t, console.records[0].Message, "rejected log call")
		})
	}
}

func TestSharedRenderedLine(t *testing.T) {
	file := &stubSink{name: "file", threshold: core.LevelTrace}
	console := &stubSink{name: "console", threshold: core.LevelTrace}
	e := newTestEngine(t, file, console, nil, nil)

	_, err := e.Log(core.NewRecord("x", "hi", core.LevelInfo, false, false))
	require.NoError(t, err)

	require.Len(t, file.rendered, 1)
	require.Len(t, console.rendered, 1)
	assert.Equal(t, file.rendered[0], console.rendered[0])
	assert.Equal(t, "INFO <x>: hi", file.rendered[0])
}

func TestDisabledSinksSkipped(t *testing.T) {
	e := newTestEngine(t, nil, nil, nil, nil)

	result, err := e.Log(core.NewRecord("x", "hi", core.LevelError, true, true))
	require.NoError(t, err)
	assert.Empty(t, result.Sinks)
}

func TestStats(t *testing.T) {
	console := &stubSink{name: "console", threshold: core.LevelTrace}
	e := newTestEngine(t, nil, console, nil, nil)

	e.Log(core.NewRecord("x", "hi", core.LevelInfo, false, false))
	e.Log(core.NewRecord("", "hi", core.LevelInfo, false, false))

	stats := e.Stats()
	assert.Equal(t, uint64(2), stats.TotalCalls)
	assert.Equal(t, uint64(1), stats.TotalRejected)
	require.Len(t, stats.Sinks, 1)
	assert.Equal(t, "console", stats.Sinks[0].Type)
}
