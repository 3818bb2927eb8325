// Package logger builds configured slog loggers with automatic context
// attribute injection. Components register ContextExtractor functions
// (e.g. the tenant package's LoggerExtractor) and every emitted record
// picks up the request-scoped values without manual threading.
package logger
