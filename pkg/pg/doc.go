// Package pg provides PostgreSQL connectivity: pooled connections with
// startup retry, goose-driven schema migrations, error classification
// helpers, and a health check closure.
package pg
