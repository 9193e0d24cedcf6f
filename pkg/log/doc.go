// Package log is the structured logging surface used across framepipe.
//
// Library code logs through the Logger interface so embedders can plug in
// their own backend. Two implementations ship with the package: a zerolog
// adapter for the command line tool and a no-op logger that is the library
// default.
//
//	logger := log.NewZerologAdapter(zerolog.InfoLevel)
//	logger.Info("frame received", log.Int("bytes", 384), log.Uint64("seq", 1))
//
// Status lines written for a supervising process are not log records and
// never go through this package.
package log
