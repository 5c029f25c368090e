// Package logger provides the structured logging interface used across the
// Dovetale client and CLI.
//
// It wraps zerolog behind a small Logger interface so library code can log
// with fields without depending on a concrete backend:
//
//	cfg := &config.LoggingConfig{Level: "debug"}
//	if err := logger.Initialize(cfg); err != nil {
//	    return err
//	}
//
//	logger.WithField("list_id", 42).Info("adding profile")
//
// Console output is written to stderr. When LoggingConfig.File is set the
// same events are also appended to that file.
//
// Tests use NewNopLogger to silence output or NewTestLogger to capture and
// assert on emitted messages.
package logger
