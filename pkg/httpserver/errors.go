package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to start listening.
	ErrStart = errors.New("failed to start HTTP server")

	// ErrShutdown indicates that graceful shutdown did not complete
	// within the configured timeout.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
