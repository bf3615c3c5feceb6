// FILE: macrolog/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			LogLevel:     2, // INFO
			LogFileLevel: 0, // TRACE, file captures more than console
			Format:       "",
			DateFormat:   "",
		},
		File: FileConfig{
			Enabled:        true,
			Directory:      "./log",
			Name:           "macrolog",
			MaxSizeMB:      10,
			MaxTotalSizeMB: 100,
			RetentionHours: 168, // 7 days
		},
		Display: DisplayConfig{
			URL:       "http://127.0.0.1:7125",
			TimeoutMS: 2000,
		},
		Notify: NotifyConfig{
			URL:       "",
			TimeoutMS: 5000,
			PerMinute: 30,
			Burst:     5,
		},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           7180,
			ReadTimeoutMS:  5000,
			WriteTimeoutMS: 5000,
		},
		Logging: DefaultLogConfig(),
	}
}

// LoadWithCLI builds the configuration with CLI > env > file > default
// precedence.
func LoadWithCLI(cliArgs []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("MACROLOG_").
		WithFile(configPath).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "MACROLOG_" + env
	return env
}

// GetConfigPath resolves the config file location from the environment,
// falling back to ~/.config/macrolog.toml.
func GetConfigPath() string {
	if configFile := os.Getenv("MACROLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("MACROLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("MACROLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "macrolog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "macrolog.toml")
	}

	return "macrolog.toml"
}
