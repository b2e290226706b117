//go:build windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"quipvid/bootstrap"
)

func setupSignalHandler(sigCh chan os.Signal) {
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
}

// handleCustomSignal is a no-op on Windows, which has no SIGUSR2.
func handleCustomSignal(sig os.Signal, runtime *bootstrap.Runtime) bool {
	return false
}
