// File: core/stream/incoming.go
//
// Incoming body stream. Yields a lazy, finite, forward-only sequence of
// byte chunks, crossing from the data phase to the trailer phase to closed.
// An empty read means "no data yet", never end-of-data; only the host's
// explicit closed signal ends the data phase.

package stream

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/control"
	"github.com/Aditya1404Sal/openai-component/core/sched"
)

// ReadSize is the per-pull read ceiling.
const ReadSize = 16 * 1024

type streamState int

const (
	stateReading streamState = iota
	stateAwaitingTrailers
	stateClosed
)

// BodyStream pulls the chunks of a host incoming body. It is single-pass
// and non-restartable.
type BodyStream struct {
	exec     *sched.Executor
	state    streamState
	stream   api.InputStream
	body     api.IncomingBody
	trailers api.FutureTrailers
	log      logrus.FieldLogger
	met      *control.Metrics
	err      error
}

// StreamOption configures a BodyStream.
type StreamOption func(*BodyStream)

// WithStreamLogger attaches a logger.
func WithStreamLogger(log logrus.FieldLogger) StreamOption {
	return func(s *BodyStream) { s.log = log }
}

// WithStreamMetrics attaches byte and chunk counters.
func WithStreamMetrics(m *control.Metrics) StreamOption {
	return func(s *BodyStream) { s.met = m }
}

// NewBodyStream takes exclusive ownership of body and its read stream.
// The caller must Close the stream on every path once done with it.
func NewBodyStream(exec *sched.Executor, body api.IncomingBody, opts ...StreamOption) (*BodyStream, error) {
	in, err := body.Stream()
	if err != nil {
		return nil, err
	}
	s := &BodyStream{exec: exec, stream: in, body: body}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Next returns the next chunk of the body. It returns io.EOF when the
// sequence ends. A read-level I/O failure or a trailer-level protocol error
// is returned once; afterwards the sequence is over.
func (s *BodyStream) Next() ([]byte, error) {
	if s.err != nil {
		return nil, io.EOF
	}

	var out []byte
	err := s.exec.Await(func() (bool, error) {
		for {
			switch s.state {
			case stateReading:
				buf, err := s.stream.Read(ReadSize)
				switch {
				case errors.Is(err, api.ErrClosed):
					// Data phase over: release the stream, finalize the body
					// into its trailer future and continue without yielding.
					s.stream.Close()
					s.stream = nil
					s.trailers = s.body.Finish()
					s.body = nil
					s.state = stateAwaitingTrailers
				case err != nil:
					return true, &api.IOError{Op: "read", Err: err}
				case len(buf) == 0:
					s.exec.Register(s.stream.Subscribe())
					return false, nil
				default:
					out = buf
					return true, nil
				}

			case stateAwaitingTrailers:
				trailers, ok, err := s.trailers.Get()
				if !ok {
					s.exec.Register(s.trailers.Subscribe())
					return false, nil
				}
				s.state = stateClosed
				s.trailers = nil
				if err != nil {
					return true, &api.ProtocolError{Reason: "trailers", Err: err}
				}
				// Present or absent trailers are the same successful close;
				// their content is not forwarded anywhere.
				_ = trailers

			case stateClosed:
				return true, io.EOF
			}
		}
	})
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
			if s.log != nil {
				s.log.WithError(err).Debug("body stream failed")
			}
		}
		return nil, err
	}
	s.met.AddBytesRead(len(out))
	s.met.IncChunkRead()
	return out, nil
}

// Collect drains the stream into a single buffer.
func (s *BodyStream) Collect() ([]byte, error) {
	var data []byte
	for {
		chunk, err := s.Next()
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		if err != nil {
			return data, err
		}
		data = append(data, chunk...)
	}
}

// Close releases the host handles still owned by the stream. Leaving the
// data phase already finalized the body, so Close only acts when the stream
// is dropped mid-read; the body is finalized at most once either way.
func (s *BodyStream) Close() error {
	if s.state == stateReading && s.stream != nil {
		s.stream.Close()
		s.stream = nil
		s.body.Finish()
		s.body = nil
	}
	s.state = stateClosed
	s.trailers = nil
	return nil
}
