// Package metrics exposes campaign counters and runtime memory readings as
// Prometheus collectors and writes them to a textfile after a run.
package metrics
