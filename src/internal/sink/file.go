// FILE: macrolog/src/internal/sink/file.go
package sink

import (
	"fmt"
	"time"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"

	"github.com/lixenwraith/log"
)

// FileSink appends rendered lines to the dedicated rotating macro log,
// kept separate from the daemon's own log. Rotation, retention and size
// caps are delegated to an internal log writer instance.
type FileSink struct {
	counters
	writer    *log.Logger // internal writer, file output only
	threshold core.Level
	logger    *log.Logger // application logger
}

// NewFileSink creates the macro log writer, creating the directory and
// file on first use.
func NewFileSink(cfg *config.FileConfig, threshold core.Level, logger *log.Logger) (*FileSink, error) {
	writerConfig := log.DefaultConfig()
	writerConfig.Directory = cfg.Directory
	writerConfig.Name = cfg.Name
	writerConfig.EnableConsole = false // file only
	writerConfig.ShowTimestamp = false // lines carry their own timestamps
	writerConfig.ShowLevel = false     // lines carry their own levels

	if cfg.MaxSizeMB > 0 {
		writerConfig.MaxSizeKB = cfg.MaxSizeMB * 1000
	}
	if cfg.MaxTotalSizeMB > 0 {
		writerConfig.MaxTotalSizeKB = cfg.MaxTotalSizeMB * 1000
	}
	if cfg.RetentionHours > 0 {
		writerConfig.RetentionPeriodHrs = cfg.RetentionHours
	}

	writer := log.NewLogger()
	if err := writer.ApplyConfig(writerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize macro log writer: %w", err)
	}
	if err := writer.Start(); err != nil {
		return nil, fmt.Errorf("failed to start macro log writer: %w", err)
	}

	return &FileSink{
		writer:    writer,
		threshold: threshold,
		logger:    logger,
	}, nil
}

func (fs *FileSink) Name() string {
	return "file"
}

func (fs *FileSink) Threshold() core.Level {
	return fs.threshold
}

func (fs *FileSink) Emit(rec core.Record, rendered string) error {
	// Writer adds the newline
	fs.writer.Message(rendered)
	fs.emitted()
	return nil
}

func (fs *FileSink) Stats() Stats {
	return fs.snapshot("file", map[string]any{
		"threshold": fs.threshold.String(),
	})
}

// Close flushes and shuts down the macro log writer.
func (fs *FileSink) Close() error {
	if err := fs.writer.Shutdown(2 * time.Second); err != nil {
		fs.logger.Error("msg", "Error shutting down macro log writer",
			"component", "file_sink",
			"error", err)
		return err
	}
	return nil
}
