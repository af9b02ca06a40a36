// Package logging provides structured logging for rowsift.
//
// It wraps log/slog to write one JSON object per line. The interactive
// dashboard logs to rowsift.log in the state directory so the terminal stays
// clean; non-interactive commands log to stderr.
//
// # Basic Usage
//
//	logger, err := logging.NewLoggerWithRotation(dir, "INFO", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.WithDataset("sales.csv").Info("dataset loaded", "rows", 1200)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"dataset loaded","dataset":"sales.csv","rows":1200}
//
// # Log Rotation
//
// [RotatingWriter] renames rowsift.log to rowsift.log.1 once it would grow
// past RotationConfig.MaxSizeMB, shifting older backups up and dropping the
// one past MaxBackups. Rotated files can optionally be gzipped.
//
// # Reading Logs
//
// [AggregateLogs] reads the live file and its uncompressed backups back into
// [LogEntry] values, which [FilterLogs] narrows and [WriteLogEntries]
// renders as text, JSON or CSV. The logs command is built on these.
//
// # Testing
//
// Use [NopLogger] to discard output, or [NewWriterLogger] with a
// bytes.Buffer to assert on what was logged.
package logging
