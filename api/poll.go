// File: api/poll.go
//
// Readiness sources and the host-level blocking multi-wait.

package api

// Pollable is a one-shot readiness token for a single host resource.
// It is consumed the moment the multi-wait reports it ready.
type Pollable interface {
	// Ready reports, without blocking, whether the resource can make progress.
	Ready() bool
}

// Poller is the host's blocking multi-wait over readiness sources.
type Poller interface {
	// Poll blocks until at least one source is ready and returns the indices
	// of the ready subset. Polling an empty set is a contract violation by
	// the caller.
	Poll(sources []Pollable) ([]int, error)
}
