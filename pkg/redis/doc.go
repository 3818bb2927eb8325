// Package redis provides Redis connectivity with startup retry and a
// health check closure. The tenant package builds its distributed cache
// on the client returned from Connect.
package redis
