// File: core/sched/executor.go
//
// The task executor: step the computation; if it reports pending, take the
// registry, assert it is non-empty, multi-wait, fire the ready wakers and
// step again. The executor never interprets errors; the computation's result
// passes through unchanged.

package sched

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/control"
	"github.com/Aditya1404Sal/openai-component/reactor"
)

// StepFunc is one progress step of a suspended operation. It returns
// done == false to report "not ready yet"; in that case the step must have
// registered at least one readiness source with the executor. The error is
// meaningful only when done.
type StepFunc func() (done bool, err error)

// Executor drives computations over a readiness registry and a host poller.
type Executor struct {
	reg    *reactor.Registry
	poller api.Poller
	log    logrus.FieldLogger
	met    *control.Metrics
	rounds uint64
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger attaches a logger for wait-loop tracing.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Executor) { e.log = log }
}

// WithMetrics attaches wait-loop metrics.
func WithMetrics(m *control.Metrics) Option {
	return func(e *Executor) { e.met = m }
}

// New creates an executor bound to reg and poller.
func New(reg *reactor.Registry, poller api.Poller, opts ...Option) *Executor {
	if reg == nil {
		reg = reactor.Default
	}
	e := &Executor{reg: reg, poller: poller}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register pairs source with a no-op waker for the next wait round.
func (e *Executor) Register(source api.Pollable) {
	e.reg.Register(source, reactor.NopWaker)
}

// Rounds returns the number of multi-wait rounds issued so far.
func (e *Executor) Rounds() uint64 { return e.rounds }

// Registry returns the executor's readiness registry.
func (e *Executor) Registry() *reactor.Registry { return e.reg }

// Await repeatedly steps the operation until it reports done, waiting for
// readiness between steps. A pending step with an empty registry is a logic
// bug in the operation and panics rather than being masked.
func (e *Executor) Await(step StepFunc) error {
	for {
		done, err := step()
		if done {
			return err
		}
		if err := e.wait(); err != nil {
			return err
		}
	}
}

func (e *Executor) wait() error {
	if e.reg.Len() == 0 {
		panic("sched: computation pending with no readiness sources registered")
	}
	start := time.Now()
	fired, err := e.reg.Drain(e.poller)
	if err != nil {
		return fmt.Errorf("sched: multi-wait: %w", err)
	}
	e.rounds++
	e.met.ObserveWait(start, fired)
	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"round":       e.rounds,
			"fired":       fired,
			"outstanding": e.reg.Len(),
		}).Trace("multi-wait round complete")
	}
	return nil
}

// Run executes fn to completion on e and returns its result unchanged.
// This is the engine's single public entry point for driving a computation.
func Run[T any](e *Executor, fn func(e *Executor) (T, error)) (T, error) {
	return fn(e)
}
