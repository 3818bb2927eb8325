// Package httpserver runs an http.Server with context-driven graceful
// shutdown and env-tagged timeout configuration.
//
// Run blocks until the context is canceled, then drains in-flight
// requests within the configured shutdown timeout. Listen failures are
// wrapped in ErrStart, shutdown failures in ErrShutdown.
package httpserver
