// FILE: macrolog/src/internal/service/service.go
package service

import (
	"fmt"
	"os"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"
	"macrolog/src/internal/engine"
	"macrolog/src/internal/format"
	"macrolog/src/internal/server"
	"macrolog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// Service wires configuration into the formatter, sinks, engine and
// ingestion server, and owns their lifecycle.
type Service struct {
	cfg      *config.Config
	engine   *engine.Engine
	server   *server.Server
	fileSink *sink.FileSink
	logger   *log.Logger
}

// New builds the full routing stack from configuration. A malformed format
// template is a configuration error: it is reported once through the
// console sink and the stock template is used instead, never failing
// startup.
func New(cfg *config.Config, logger *log.Logger) (*Service, error) {
	formatter, tmplErr := format.New(cfg.Engine.Format, cfg.Engine.DateFormat, logger)
	if tmplErr != nil {
		logger.Warn("msg", "Invalid format template, falling back to default",
			"component", "service",
			"error", tmplErr)
		formatter = format.Default(logger)
	}

	console := sink.NewConsoleSink(os.Stdout, core.Level(cfg.Engine.LogLevel), logger)

	var fileSink *sink.FileSink
	var file sink.Sink
	if cfg.File.Enabled {
		fs, err := sink.NewFileSink(&cfg.File, core.Level(cfg.Engine.LogFileLevel), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create file sink: %w", err)
		}
		fileSink = fs
		file = fs
	}

	var display sink.Sink
	if cfg.Display.URL != "" {
		display = sink.NewDisplaySink(&cfg.Display, logger)
	}

	var notify sink.Sink
	if cfg.Notify.URL != "" {
		notify = sink.NewNotifySink(&cfg.Notify, logger)
	}

	eng := engine.New(cfg.Engine, formatter, file, console, display, notify, logger)
	if tmplErr != nil {
		eng.ReportConfigNotice(fmt.Sprintf("invalid format template (%v), using default", tmplErr))
	}

	return &Service{
		cfg:      cfg,
		engine:   eng,
		server:   server.New(&cfg.Server, eng, logger),
		fileSink: fileSink,
		logger:   logger,
	}, nil
}

// Engine exposes the router, mainly for startup notices and tests.
func (s *Service) Engine() *engine.Engine {
	return s.engine
}

// Start brings up the ingestion server.
func (s *Service) Start() error {
	if err := s.server.Start(); err != nil {
		return err
	}
	s.logger.Info("msg", "Service started",
		"component", "service",
		"file_sink", s.fileSink != nil,
		"display", s.cfg.Display.URL != "",
		"notify", s.cfg.Notify.URL != "")
	return nil
}

// Stop shuts down the server, then the file writer so the final records
// are flushed.
func (s *Service) Stop() {
	s.logger.Info("msg", "Service shutdown initiated", "component", "service")
	s.server.Stop()
	if s.fileSink != nil {
		s.fileSink.Close()
	}
	s.logger.Info("msg", "Service stopped", "component", "service")
}
