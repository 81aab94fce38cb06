// Package logging provides structured logging for teamboard.
//
// It wraps Go's log/slog with a JSON handler and persistent context
// attributes, so every line written during a wizard session can be traced
// back to the session and step that produced it.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/state", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("wizard started", "steps", 4)
//
// # Context Propagation
//
//	sessionLogger := logger.WithSession("0b6c...")
//	stepLogger := sessionLogger.WithStep("profile")
//	stepLogger.Warn("commit rejected", "error", msg)
//
// Use [NopLogger] in tests or when logging is disabled.
package logging
