package log

import (
	sdklog "go.temporal.io/sdk/log"
)

// TemporalLogger routes Temporal SDK logging through the global logger.
type TemporalLogger struct{}

var _ sdklog.Logger = TemporalLogger{}

// Debug logs a debug message.
func (TemporalLogger) Debug(msg string, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }

// Info logs an info message.
func (TemporalLogger) Info(msg string, keyvals ...interface{}) { Logger.Info(msg, keyvals...) }

// Warn logs a warning message.
func (TemporalLogger) Warn(msg string, keyvals ...interface{}) { Logger.Warn(msg, keyvals...) }

// Error logs an error message.
func (TemporalLogger) Error(msg string, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
