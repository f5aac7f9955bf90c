// Package observability provides Prometheus instrumentation for the survey
// engine. Metrics attaches collectors to engine hooks so hosts get outcome,
// rejection and finalization counters without writing hook plumbing
// themselves.
package observability
