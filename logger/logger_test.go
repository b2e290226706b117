package logger

import (
	"strings"
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestGetLogsFiltersByLevel(t *testing.T) {
	InitLogger(logging.DEBUG, false)
	logBuffer = nil

	Debug("debug entry")
	Info("info entry")
	Warning("warning entry")
	Error("error entry")

	errOnly := GetLogs(10, "ERROR")
	assert.Len(t, errOnly, 1)
	assert.Contains(t, errOnly[0], "error entry")

	warnAndUp := GetLogs(10, "WARNING")
	assert.Len(t, warnAndUp, 2)

	all := GetLogs(10, "DEBUG")
	assert.Len(t, all, 4)
	// Newest first.
	assert.True(t, strings.Contains(all[0], "error entry"))
}

func TestBufferCapped(t *testing.T) {
	InitLogger(logging.INFO, false)
	logBuffer = nil

	for i := 0; i < 1200; i++ {
		Infof("entry %d", i)
	}
	assert.LessOrEqual(t, len(logBuffer), 1000)
}
