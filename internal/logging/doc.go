// Package logging configures slog-based logging for the pipeline.
//
// It provides a human-oriented console handler and a JSON handler selected by
// configuration, alias helpers for building attributes without importing slog
// at every call site, and context plumbing that stamps chapter, stage, and
// correlation identifiers onto log lines.
package logging
