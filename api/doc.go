// Package api defines the host I/O capability contract consumed by the
// cooperative execution engine.
//
// A host exposes readiness-polled streams (backpressured writes, bounded
// reads with an explicit closed signal), message bodies that must be
// finalized exactly once, and a blocking multi-wait over readiness sources.
// The engine depends only on these interfaces, never on a concrete host.
package api
