package ai

import "sync/atomic"

// debugLoggingEnabled gates debug logs on the tick hot path.
// Set via EnableDebugLogging() from main after parsing config.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for the AI subsystem.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard debug log calls made every tick:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("goal started", "objectID", id)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
