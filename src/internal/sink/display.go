// FILE: macrolog/src/internal/sink/display.go
package sink

import (
	"fmt"
	"strings"
	"time"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
)

// gcodeScriptPath is the printer API endpoint that executes a G-code script.
const gcodeScriptPath = "/printer/gcode/script"

// DisplaySink forwards the raw message to the printer's on-screen status
// surface by submitting a SET_DISPLAY_TEXT script through the printer API
// service. It is gated by the record's display flag, never by level.
type DisplaySink struct {
	counters
	config *config.DisplayConfig
	client *fasthttp.Client
	logger *log.Logger
}

// NewDisplaySink creates a display sink targeting the printer API service.
func NewDisplaySink(cfg *config.DisplayConfig, logger *log.Logger) *DisplaySink {
	return &DisplaySink{
		config: cfg,
		client: &fasthttp.Client{
			MaxConnsPerHost:     2,
			MaxIdleConnDuration: 10 * time.Second,
		},
		logger: logger,
	}
}

func (s *DisplaySink) Name() string {
	return "display"
}

func (s *DisplaySink) Threshold() core.Level {
	// Flag-gated, never level-filtered
	return core.LevelPrint
}

func (s *DisplaySink) Emit(rec core.Record, rendered string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	script := fmt.Sprintf("SET_DISPLAY_TEXT MSG=%q", sanitizeDisplayText(rec.Message))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(strings.TrimRight(s.config.URL, "/") + gcodeScriptPath)
	req.URI().QueryArgs().Set("script", script)

	timeout := time.Duration(s.config.TimeoutMS) * time.Millisecond
	if err := s.client.DoTimeout(req, resp, timeout); err != nil {
		s.failed()
		return fmt.Errorf("display request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		s.failed()
		return fmt.Errorf("display request rejected: status %d", resp.StatusCode())
	}

	s.emitted()
	return nil
}

func (s *DisplaySink) Stats() Stats {
	return s.snapshot("display", map[string]any{
		"url": s.config.URL,
	})
}

// sanitizeDisplayText strips characters that would terminate the quoted
// G-code parameter.
func sanitizeDisplayText(msg string) string {
	msg = strings.ReplaceAll(msg, "\"", "'")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return msg
}
