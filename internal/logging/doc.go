// Package logging provides structured logging for the KLF200 tools.
//
// Logging is built on go.uber.org/zap and is silent by default so that CLI
// output stays clean. Verbosity is controlled by the KLF200_LOG_LEVEL
// environment variable or an explicit Initialize call.
//
// # Log Levels
//
//   - debug: protocol frame hex dumps, queue and handshake tracing
//   - info: connection events, transaction outcomes
//   - warn: protocol anomalies (unexpected frames, session mismatches)
//   - error: transport failures
//
// # Usage Example
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
//	logging.Info("connected", zap.String("host", host))
//
// # Frame Dumps
//
// LogFrame and LogRawBytes attach hex and ASCII dumps of wire bytes at
// debug level, capped at 256 bytes per entry.
package logging
