// File: fake/poll.go
//
// Deterministic readiness sources and a deterministic multi-wait.

package fake

import (
	"github.com/Aditya1404Sal/openai-component/api"
)

// Source is a scripted readiness token.
type Source struct {
	ready func() bool
}

// NewSource creates a source whose readiness is computed by fn.
func NewSource(fn func() bool) *Source {
	return &Source{ready: fn}
}

// ReadySource creates a source that is always ready.
func ReadySource() *Source {
	return &Source{ready: func() bool { return true }}
}

// Ready implements api.Pollable.
func (s *Source) Ready() bool {
	if s.ready == nil {
		return true
	}
	return s.ready()
}

// Poller is a deterministic multi-wait. Each Poll returns the sources that
// report ready; if none do, it wakes every source so scripted hosts can
// advance one time step instead of stalling the test.
type Poller struct {
	// MaxRounds aborts a test that would otherwise wait forever.
	MaxRounds int
	// Rounds counts completed Poll calls.
	Rounds int
	// Err, when set, is returned by the next Poll.
	Err error
}

// NewPoller creates a poller with the round limit set.
func NewPoller() *Poller {
	return &Poller{MaxRounds: 10000}
}

// Poll implements api.Poller.
func (p *Poller) Poll(sources []api.Pollable) ([]int, error) {
	if len(sources) == 0 {
		panic("fake: poll of empty source set")
	}
	if p.Err != nil {
		err := p.Err
		p.Err = nil
		return nil, err
	}
	p.Rounds++
	if p.MaxRounds > 0 && p.Rounds > p.MaxRounds {
		panic("fake: poll round limit exceeded")
	}
	var ready []int
	for i, src := range sources {
		if src.Ready() {
			ready = append(ready, i)
		}
	}
	if len(ready) == 0 {
		for i := range sources {
			ready = append(ready, i)
		}
	}
	return ready, nil
}
