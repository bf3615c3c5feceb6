// FILE: macrolog/src/internal/config/config.go
package config

import (
	"fmt"
)

// Config is the full daemon configuration, loaded once at startup and
// read-only afterwards.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	File    FileConfig    `toml:"file"`
	Display DisplayConfig `toml:"display"`
	Notify  NotifyConfig  `toml:"notify"`
	Server  ServerConfig  `toml:"server"`
	Logging *LogConfig    `toml:"logging"`

	// Quiet suppresses operational output; set from CLI
	Quiet bool `toml:"quiet"`
}

// EngineConfig holds the routing thresholds and line templates.
type EngineConfig struct {
	// Console threshold rank (0=TRACE .. 5=ERROR)
	LogLevel int `toml:"log_level"`

	// File sink threshold rank; defaults below console so the file captures
	// more than the operator sees
	LogFileLevel int `toml:"log_file_level"`

	// Line template for console and file output
	Format string `toml:"format"`

	// Timestamp layout used by the template's FmtTime helper
	DateFormat string `toml:"date_format"`
}

// FileConfig describes the dedicated rotating macro log, kept separate from
// the daemon's own log.
type FileConfig struct {
	Enabled bool `toml:"enabled"`

	// Directory for the macro log
	Directory string `toml:"directory"`

	// Base name for the macro log files
	Name string `toml:"name"`

	// Maximum size per file in MB before rotation
	MaxSizeMB int64 `toml:"max_size_mb"`

	// Maximum total size of all rotated files in MB
	MaxTotalSizeMB int64 `toml:"max_total_size_mb"`

	// Retention in hours (0 = disabled)
	RetentionHours float64 `toml:"retention_hours"`
}

// DisplayConfig points at the printer API service used to reach the
// on-device display.
type DisplayConfig struct {
	// Base URL of the printer API service, e.g. "http://127.0.0.1:7125"
	URL string `toml:"url"`

	// Request timeout in milliseconds
	TimeoutMS int64 `toml:"timeout_ms"`
}

// NotifyConfig points at the push-notification relay.
type NotifyConfig struct {
	// Endpoint receiving the JSON payload
	URL string `toml:"url"`

	// Request timeout in milliseconds
	TimeoutMS int64 `toml:"timeout_ms"`

	// Outbound throttle: pushes per minute and burst allowance
	PerMinute int `toml:"per_minute"`
	Burst     int `toml:"burst"`
}

// ServerConfig describes the macro ingestion endpoint.
type ServerConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	ReadTimeoutMS  int64  `toml:"read_timeout_ms"`
	WriteTimeoutMS int64  `toml:"write_timeout_ms"`
}

// Ranks accepted for threshold options; 4 is intentionally absent.
var validRanks = map[int]bool{0: true, 1: true, 2: true, 3: true, 5: true}

func (c *Config) validate() error {
	if !validRanks[c.Engine.LogLevel] {
		return fmt.Errorf("invalid log_level: %d (valid: 0, 1, 2, 3, 5)", c.Engine.LogLevel)
	}
	if !validRanks[c.Engine.LogFileLevel] {
		return fmt.Errorf("invalid log_file_level: %d (valid: 0, 1, 2, 3, 5)", c.Engine.LogFileLevel)
	}

	if c.File.Enabled {
		if c.File.Directory == "" {
			return fmt.Errorf("file.directory must be set when the file sink is enabled")
		}
		if c.File.Name == "" {
			return fmt.Errorf("file.name must be set when the file sink is enabled")
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}

	if c.Notify.URL != "" && c.Notify.PerMinute < 0 {
		return fmt.Errorf("notify.per_minute cannot be negative: %d", c.Notify.PerMinute)
	}

	if c.Logging != nil {
		if err := validateLogConfig(c.Logging); err != nil {
			return err
		}
	}

	return nil
}
