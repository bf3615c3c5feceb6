// FILE: macrolog/src/cmd/macrolog/signal.go
package main

import (
	"os"
	"os/signal"
	"syscall"
)

// waitForSignal blocks until a termination signal arrives.
func waitForSignal() os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	return <-sigChan
}
