// Package stream adapts host message bodies to the cooperative engine:
// a backpressure-aware chunked sink for outgoing bodies and a lazy,
// forward-only chunk sequence for incoming bodies. Both adapters finalize
// their host handles exactly once on every exit path, including
// cancellation mid-transfer.
package stream
