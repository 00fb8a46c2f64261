// File: core/dispatch/bridge.go
//
// Dispatch bridge: wraps the host's non-blocking send into a single
// resolvable value. One readiness registration per unresolved poll, no
// retry; a protocol-level failure is terminal and surfaced as-is.

package dispatch

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/control"
	"github.com/Aditya1404Sal/openai-component/core/sched"
)

// Bridge dispatches requests through a host client.
type Bridge struct {
	exec   *sched.Executor
	client api.Client
	log    logrus.FieldLogger
	met    *control.Metrics
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger attaches a logger for dispatch tracing.
func WithLogger(log logrus.FieldLogger) BridgeOption {
	return func(b *Bridge) { b.log = log }
}

// WithMetrics attaches request counters.
func WithMetrics(m *control.Metrics) BridgeOption {
	return func(b *Bridge) { b.met = m }
}

// New creates a bridge over exec and client.
func New(exec *sched.Executor, client api.Client, opts ...BridgeOption) *Bridge {
	b := &Bridge{exec: exec, client: client}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RoundTrip dispatches req and suspends until the host resolves the
// response future, returning the terminal result unchanged.
func (b *Bridge) RoundTrip(req api.Request) (api.Response, error) {
	requestID := uuid.NewString()
	start := time.Now()

	future, err := b.client.Send(req)
	if err != nil {
		b.met.ObserveRequest(0, start, err)
		return nil, &api.ProtocolError{Reason: "dispatch", Err: err}
	}

	var resp api.Response
	err = b.exec.Await(func() (bool, error) {
		r, ok, err := future.Get()
		if !ok {
			b.exec.Register(future.Subscribe())
			return false, nil
		}
		if err != nil {
			return true, err
		}
		resp = r
		return true, nil
	})
	if err != nil {
		b.met.ObserveRequest(0, start, err)
		if b.log != nil {
			b.log.WithField("request_id", requestID).WithError(err).Warn("dispatch failed")
		}
		return nil, err
	}

	b.met.ObserveRequest(resp.Status(), start, nil)
	if b.log != nil {
		b.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     resp.Status(),
		}).Debug("response resolved")
	}
	return resp, nil
}
