// File: hostio/hub.go
//
// Condition-variable wait hub. Host goroutines flip readiness flags and
// broadcast; the engine's multi-wait blocks on the hub until at least one
// registered source has fired.

package hostio

import (
	"sync"

	"github.com/Aditya1404Sal/openai-component/api"
)

// Hub coordinates readiness between host goroutines and the multi-wait.
type Hub struct {
	mu   sync.Mutex
	cond *sync.Cond
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	h := &Hub{}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Source allocates an unfired readiness source on the hub.
func (h *Hub) Source() *HubSource {
	return &HubSource{hub: h}
}

// FiredSource allocates an already-ready source, for resources that can
// make progress immediately.
func (h *Hub) FiredSource() *HubSource {
	return &HubSource{hub: h, fired: true}
}

// fireLocked marks sources ready. Caller holds h.mu.
func (h *Hub) fireLocked(sources []*HubSource) {
	for _, s := range sources {
		s.fired = true
	}
	h.cond.Broadcast()
}

// HubSource is a one-shot readiness token backed by a Hub.
type HubSource struct {
	hub   *Hub
	fired bool
}

// Ready implements api.Pollable.
func (s *HubSource) Ready() bool {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	return s.fired
}

// Fire marks the source ready and wakes the multi-wait.
func (s *HubSource) Fire() {
	s.hub.mu.Lock()
	s.fired = true
	s.hub.cond.Broadcast()
	s.hub.mu.Unlock()
}

// HubPoller is the blocking multi-wait over hub sources.
type HubPoller struct {
	hub *Hub
}

// Poller returns the hub's multi-wait.
func (h *Hub) Poller() *HubPoller {
	return &HubPoller{hub: h}
}

// Poll implements api.Poller. All sources must belong to this hub.
func (p *HubPoller) Poll(sources []api.Pollable) ([]int, error) {
	h := p.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	for {
		var ready []int
		for i, src := range sources {
			hs, ok := src.(*HubSource)
			if !ok || hs.hub != h {
				panic("hostio: foreign readiness source in hub multi-wait")
			}
			if hs.fired {
				ready = append(ready, i)
			}
		}
		if len(ready) > 0 {
			return ready, nil
		}
		h.cond.Wait()
	}
}
