// FILE: macrolog/src/internal/server/http.go
package server

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"macrolog/src/internal/config"
	"macrolog/src/internal/engine"
	"macrolog/src/internal/macro"
	"macrolog/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/valyala/fasthttp"
)

const macroPathPrefix = "/macro/"

// Server is the macro ingestion surface: the printer host delivers macro
// log calls as HTTP requests. Caller misuse maps to 400; sink failures
// still return 200 because logging must never fail a print job.
type Server struct {
	cfg       *config.ServerConfig
	engine    *engine.Engine
	server    *fasthttp.Server
	listener  net.Listener
	logger    *log.Logger
	startTime time.Time

	totalRequests atomic.Uint64
	badRequests   atomic.Uint64
}

// New creates the ingestion server.
func New(cfg *config.ServerConfig, eng *engine.Engine, logger *log.Logger) *Server {
	return &Server{
		cfg:       cfg,
		engine:    eng,
		logger:    logger,
		startTime: time.Now(),
	}
}

// Start binds the listen address and begins serving. Bind errors surface
// synchronously.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}
	s.listener = ln

	s.server = &fasthttp.Server{
		Name:         fmt.Sprintf("macrolog/%s", version.Short()),
		Handler:      s.requestHandler,
		Logger:       compat.NewFastHTTPAdapter(s.logger),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutMS) * time.Millisecond,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutMS) * time.Millisecond,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil {
			s.logger.Error("msg", "HTTP server stopped",
				"component", "server",
				"error", err)
		}
	}()

	s.logger.Info("msg", "Macro ingestion server started",
		"component", "server",
		"address", addr)
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s.server != nil {
		if err := s.server.Shutdown(); err != nil {
			s.logger.Error("msg", "Error shutting down HTTP server",
				"component", "server",
				"error", err)
		}
	}
	s.logger.Info("msg", "Macro ingestion server stopped",
		"total_requests", s.totalRequests.Load(),
		"bad_requests", s.badRequests.Load())
}

func (s *Server) requestHandler(ctx *fasthttp.RequestCtx) {
	s.totalRequests.Add(1)
	path := string(ctx.Path())

	switch {
	case path == "/status":
		s.handleStatus(ctx)
	case strings.HasPrefix(path, macroPathPrefix):
		s.handleMacro(ctx, path[len(macroPathPrefix):])
	default:
		ctx.Error("not found", fasthttp.StatusNotFound)
	}
}

func (s *Server) handleMacro(ctx *fasthttp.RequestCtx, command string) {
	if !ctx.IsPost() {
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}

	kind, err := macro.ParseKind(command)
	if err != nil {
		s.badRequests.Add(1)
		ctx.Error(err.Error(), fasthttp.StatusNotFound)
		return
	}

	params := map[string]string{}
	ctx.QueryArgs().VisitAll(func(k, v []byte) {
		params[string(k)] = string(v)
	})
	ctx.PostArgs().VisitAll(func(k, v []byte) {
		params[string(k)] = string(v)
	})

	rec, err := macro.ParseArgs(kind, params)
	if err != nil {
		s.badRequests.Add(1)
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}

	result, err := s.engine.Log(rec)
	if err != nil {
		s.badRequests.Add(1)
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}

	// Sink failures are reported but never fail the call
	sinks := make([]map[string]any, 0, len(result.Sinks))
	for _, sr := range result.Sinks {
		entry := map[string]any{
			"sink":    sr.Sink,
			"emitted": sr.Emitted,
		}
		if sr.Err != nil {
			entry["error"] = sr.Err.Error()
		}
		sinks = append(sinks, entry)
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"ok":    true,
		"sinks": sinks,
	})
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	stats := s.engine.Stats()

	status := map[string]any{
		"version":        version.Short(),
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"total_requests": s.totalRequests.Load(),
		"bad_requests":   s.badRequests.Load(),
		"engine": map[string]any{
			"total_calls":    stats.TotalCalls,
			"total_rejected": stats.TotalRejected,
		},
		"sinks": stats.Sinks,
	}
	writeJSON(ctx, fasthttp.StatusOK, status)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		ctx.Error("failed to encode response", fasthttp.StatusInternalServerError)
	}
}
