// Package config loads application configuration from environment
// variables into tagged structs, with optional .env bootstrap for local
// development. Each component declares its own config struct next to the
// code that consumes it; the loader is shared.
package config
