// Package reactor provides the process-wide readiness registry: the table of
// (readiness source, resume callback) pairings awaiting a host "became ready"
// signal, drained by the executor on every stalled iteration.
package reactor
