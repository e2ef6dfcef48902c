// Package logger provides a thin factory around log/slog with functional
// options, context attribute injection, and attribute helpers used across
// the ingestion packages.
//
// New builds a *slog.Logger from Option functions: output format (json or
// text), minimum level, static attributes, and ContextExtractor callbacks
// that pull request-scoped values out of a context on every log call.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithService("ingest"),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	)
//	logger.SetAsDefault(log)
package logger
