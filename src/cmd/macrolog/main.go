// FILE: macrolog/src/cmd/macrolog/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"macrolog/src/internal/config"
	"macrolog/src/internal/core"
	"macrolog/src/internal/service"
	"macrolog/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	if err := parseFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if *configFile != "" {
		os.Setenv("MACROLOG_CONFIG_FILE", *configFile)
	}

	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *quiet {
		cfg.Quiet = true
	}

	if err := initializeLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer shutdownLogger()

	logger.Info("msg", "macrolog starting",
		"version", version.String(),
		"config_file", *configFile,
		"console_threshold", core.Level(cfg.Engine.LogLevel).String(),
		"file_threshold", core.Level(cfg.Engine.LogFileLevel).String())

	svc, err := service.New(cfg, logger)
	if err != nil {
		logger.Error("msg", "Failed to build service", "error", err)
		shutdownLogger()
		os.Exit(1)
	}

	if err := svc.Start(); err != nil {
		logger.Error("msg", "Failed to start service", "error", err)
		shutdownLogger()
		os.Exit(1)
	}

	sig := waitForSignal()
	logger.Info("msg", "Shutdown signal received", "signal", sig.String())

	svc.Stop()
}

func shutdownLogger() {
	if logger != nil {
		logger.Shutdown(2 * time.Second)
	}
}
