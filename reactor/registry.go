// File: reactor/registry.go
//
// Mutex-guarded registration table with atomic swap-and-rebuild semantics:
// each drain round takes the whole table, multi-waits on it, fires the ready
// pairings and re-inserts the rest.

package reactor

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/Aditya1404Sal/openai-component/api"
)

// Waker is the resume callback paired with a readiness source. With a single
// live computation, firing any waker justifies another progress step; the
// executor never targets a specific one.
type Waker func()

// NopWaker is the no-op wake token used by the single-computation executor.
func NopWaker() {}

type registration struct {
	source api.Pollable
	wake   Waker
}

// Registry holds pairings of readiness sources and wakers. A single Registry
// may be shared process-wide; the mutex keeps it usable from a multi-threaded
// host embedding even though exactly one goroutine drives it.
type Registry struct {
	mu      sync.Mutex
	pending *queue.Queue
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pending: queue.New()}
}

// Default is the shared process-wide registry.
var Default = NewRegistry()

// Register appends a (source, waker) pairing for the next wait round.
func (r *Registry) Register(source api.Pollable, wake Waker) {
	if source == nil {
		panic("reactor: nil readiness source")
	}
	if wake == nil {
		wake = NopWaker
	}
	r.mu.Lock()
	r.pending.Add(registration{source: source, wake: wake})
	r.mu.Unlock()
}

// Len returns the number of outstanding pairings.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending.Length()
}

// Drain performs one multi-wait round. It swaps the whole table out, blocks
// in the host poller until at least one source fires, invokes the wakers of
// the fired pairings and re-inserts the unfired ones.
//
// Draining an empty registry is a contract violation: a stalled computation
// must have registered at least one readiness source.
func (r *Registry) Drain(p api.Poller) (fired int, err error) {
	r.mu.Lock()
	n := r.pending.Length()
	if n == 0 {
		r.mu.Unlock()
		panic("reactor: drain of empty registry")
	}
	regs := make([]registration, n)
	sources := make([]api.Pollable, n)
	for i := 0; i < n; i++ {
		regs[i] = r.pending.Remove().(registration)
		sources[i] = regs[i].source
	}
	r.mu.Unlock()

	ready, err := p.Poll(sources)
	if err != nil {
		// Nothing fired; restore the table so the pairings are not lost.
		r.mu.Lock()
		for _, reg := range regs {
			r.pending.Add(reg)
		}
		r.mu.Unlock()
		return 0, err
	}

	isReady := make([]bool, n)
	for _, idx := range ready {
		if idx < 0 || idx >= n {
			panic("reactor: poller reported out-of-range index")
		}
		isReady[idx] = true
	}

	r.mu.Lock()
	for i, reg := range regs {
		if !isReady[i] {
			r.pending.Add(reg)
		}
	}
	r.mu.Unlock()

	for i, reg := range regs {
		if isReady[i] {
			reg.wake()
			fired++
		}
	}
	return fired, nil
}
