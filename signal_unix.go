//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"

	"quipvid/bootstrap"
	"quipvid/logger"
)

func setupSignalHandler(sigCh chan os.Signal) {
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT, syscall.SIGUSR2)
}

// handleCustomSignal reports whether sig was a platform-specific signal
// that has been handled in place. SIGUSR2 triggers an ad-hoc feed sync.
func handleCustomSignal(sig os.Signal, runtime *bootstrap.Runtime) bool {
	if sig == syscall.SIGUSR2 {
		logger.Info("received SIGUSR2, running quip sync")
		go func() {
			if _, err := runtime.App.IngestService.Sync(); err != nil {
				logger.Errorf("quip sync failed: %v", err)
			}
		}()
		return true
	}
	return false
}
