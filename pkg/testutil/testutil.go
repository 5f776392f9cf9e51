// Package testutil provides testing utilities for slurmframe
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/slurmframe/slurmframe/pkg/logger"
)

// CaptureLogs routes the package-global logger through an observer for the
// duration of the test and returns the captured entry sink.
func CaptureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, sink := observer.New(zap.DebugLevel)
	prev := logger.Get()
	logger.SetGlobal(zap.New(core))
	t.Cleanup(func() { logger.SetGlobal(prev) })
	return sink
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
