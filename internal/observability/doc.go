// Package observability builds the process logger.
//
// Logs are structured (zap). JSON is the default encoding; a console encoding
// is available for local runs. When a log file is configured, a JSON copy is
// written to it with size-based rotation.
package observability
