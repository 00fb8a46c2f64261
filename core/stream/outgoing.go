// File: core/stream/outgoing.go
//
// Outgoing body sink. Each chunk is written under the host's reported write
// capacity, then flushed; the flush is acknowledged by capacity becoming
// nonzero again. Write progress is monotonic: acknowledged bytes are never
// re-sent.

package stream

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/control"
	"github.com/Aditya1404Sal/openai-component/core/sched"
)

// ErrSinkClosed is returned by Send after the sink has been finalized or
// has failed.
var ErrSinkClosed = errors.New("stream: sink closed")

// BodySink writes byte chunks to a host outgoing body.
type BodySink struct {
	exec      *sched.Executor
	stream    api.OutputStream
	body      api.OutgoingBody
	log       logrus.FieldLogger
	met       *control.Metrics
	err       error
	finalized bool
}

// SinkOption configures a BodySink.
type SinkOption func(*BodySink)

// WithSinkLogger attaches a logger.
func WithSinkLogger(log logrus.FieldLogger) SinkOption {
	return func(s *BodySink) { s.log = log }
}

// WithSinkMetrics attaches byte and chunk counters.
func WithSinkMetrics(m *control.Metrics) SinkOption {
	return func(s *BodySink) { s.met = m }
}

// NewBodySink takes exclusive ownership of body and its write stream.
// The caller must Close the sink on every path once done with it.
func NewBodySink(exec *sched.Executor, body api.OutgoingBody, opts ...SinkOption) (*BodySink, error) {
	out, err := body.Stream()
	if err != nil {
		return nil, err
	}
	s := &BodySink{exec: exec, stream: out, body: body}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Send writes one chunk in full, flushes it and waits for the flush to be
// acknowledged. A host failure aborts the sink; later Sends fail fast and
// Close still finalizes the body.
func (s *BodySink) Send(chunk []byte) error {
	if s.finalized || s.err != nil {
		return ErrSinkClosed
	}

	offset := 0
	flushing := false
	err := s.exec.Await(func() (bool, error) {
		for {
			capacity, err := s.stream.CheckWrite()
			if err != nil {
				return true, &api.IOError{Op: "check-write", Err: err}
			}
			if capacity == 0 {
				s.exec.Register(s.stream.Subscribe())
				return false, nil
			}
			if offset == len(chunk) {
				if flushing {
					// Nonzero capacity after the flush request: acknowledged.
					return true, nil
				}
				if err := s.stream.Flush(); err != nil {
					return true, &api.IOError{Op: "flush", Err: err}
				}
				flushing = true
				continue
			}
			n := min(capacity, len(chunk)-offset)
			if err := s.stream.Write(chunk[offset : offset+n]); err != nil {
				return true, &api.IOError{Op: "write", Err: err}
			}
			offset += n
			s.met.AddBytesWritten(n)
		}
	})
	if err != nil {
		s.err = err
		return err
	}
	s.met.IncChunkWritten()
	if s.log != nil {
		s.log.WithField("bytes", len(chunk)).Debug("chunk written and flushed")
	}
	return nil
}

// Close finalizes the sink exactly once: the stream handle is released
// first, then the body is finished with no trailers. Safe to call on every
// exit path; repeated calls are no-ops.
func (s *BodySink) Close() error {
	if s.finalized {
		return nil
	}
	s.finalized = true
	s.stream.Close()
	return s.body.Finish(nil)
}
