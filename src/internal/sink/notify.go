// FILE: macrolog/src/internal/sink/notify.go
package sink

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// NotifySink forwards name and message to an external mobile
// push-notification relay. Calls are bounded by a timeout and throttled so
// a misbehaving macro cannot flood the operator's phone. It is gated by
// the record's notify flag, never by level.
type NotifySink struct {
	counters
	config  *config.NotifyConfig
	client  *fasthttp.Client
	limiter *rate.Limiter
	logger  *log.Logger

	throttled atomic.Uint64
}

// notifyPayload is the outbound JSON body.
type notifyPayload struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Level   string `json:"level"`
	Time    string `json:"time"`
}

// NewNotifySink creates a notification sink targeting the push relay.
func NewNotifySink(cfg *config.NotifyConfig, logger *log.Logger) *NotifySink {
	perMinute := cfg.PerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &NotifySink{
		config: cfg,
		client: &fasthttp.Client{
			MaxConnsPerHost:     2,
			MaxIdleConnDuration: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst),
		logger:  logger,
	}
}

func (s *NotifySink) Name() string {
	return "notify"
}

func (s *NotifySink) Threshold() core.Level {
	// Flag-gated, never level-filtered
	return core.LevelPrint
}

func (s *NotifySink) Emit(rec core.Record, rendered string) error {
	if !s.limiter.Allow() {
		s.throttled.Add(1)
		s.failed()
		return fmt.Errorf("notification throttled: limit %d/min exceeded", s.config.PerMinute)
	}

	body, err := json.Marshal(notifyPayload{
		Name:    rec.Name,
		Message: rec.Message,
		Level:   rec.Level.String(),
		Time:    rec.Time.Format(time.RFC3339),
	})
	if err != nil {
		s.failed()
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetRequestURI(s.config.URL)
	req.SetBody(body)

	timeout := time.Duration(s.config.TimeoutMS) * time.Millisecond
	if err := s.client.DoTimeout(req, resp, timeout); err != nil {
		s.failed()
		return fmt.Errorf("notification request failed: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		s.failed()
		return fmt.Errorf("notification rejected: status %d", status)
	}

	s.emitted()
	return nil
}

func (s *NotifySink) Stats() Stats {
	return s.snapshot("notify", map[string]any{
		"url":       s.config.URL,
		"throttled": s.throttled.Load(),
	})
}
