// Package metrics provides Prometheus metrics for monitoring the bootstrap.
//
// Key metrics:
//   - Current bootstrap state
//   - Connectivity check results
//   - Credential cache hits and misses
//   - Registration outcomes
//   - Per-step latency
package metrics
