// File: fake/streams.go
//
// Scripted stream and body handles. The output stream enforces the host's
// write contract (panics on writes past the reported capacity); the input
// stream replays a script of data, not-ready and closed steps.

package fake

import (
	"fmt"

	"github.com/Aditya1404Sal/openai-component/api"
)

// OutputStream is a scripted write channel. CheckWrite returns successive
// values from the capacity schedule; the final value repeats.
type OutputStream struct {
	schedule []int
	pos      int
	grant    int

	// Writes records every accepted Write payload in order.
	Writes [][]byte
	// Flushes counts Flush calls.
	Flushes int
	// Closes counts Close calls.
	Closes int
	// Subscriptions counts Subscribe calls.
	Subscriptions int

	writeErr error
	checkErr error
}

// NewOutputStream creates a stream with the given capacity schedule.
// An empty schedule means unlimited capacity.
func NewOutputStream(schedule ...int) *OutputStream {
	return &OutputStream{schedule: schedule}
}

// SetWriteError makes the next Write fail with err.
func (s *OutputStream) SetWriteError(err error) { s.writeErr = err }

// SetCheckWriteError makes the next CheckWrite fail with err.
func (s *OutputStream) SetCheckWriteError(err error) { s.checkErr = err }

// Written returns all accepted bytes concatenated.
func (s *OutputStream) Written() []byte {
	var out []byte
	for _, w := range s.Writes {
		out = append(out, w...)
	}
	return out
}

// CheckWrite implements api.OutputStream.
func (s *OutputStream) CheckWrite() (int, error) {
	if s.checkErr != nil {
		err := s.checkErr
		s.checkErr = nil
		return 0, err
	}
	if len(s.schedule) == 0 {
		s.grant = 64 * 1024
		return s.grant, nil
	}
	s.grant = s.schedule[s.pos]
	if s.pos < len(s.schedule)-1 {
		s.pos++
	}
	return s.grant, nil
}

// Write implements api.OutputStream.
func (s *OutputStream) Write(p []byte) error {
	if s.writeErr != nil {
		err := s.writeErr
		s.writeErr = nil
		return err
	}
	if len(p) > s.grant {
		panic(fmt.Sprintf("fake: write of %d bytes past reported capacity %d", len(p), s.grant))
	}
	buf := make([]byte, len(p))
	copy(buf, p)
	s.Writes = append(s.Writes, buf)
	s.grant -= len(p)
	return nil
}

// Flush implements api.OutputStream.
func (s *OutputStream) Flush() error {
	s.Flushes++
	return nil
}

// Subscribe implements api.OutputStream.
func (s *OutputStream) Subscribe() api.Pollable {
	s.Subscriptions++
	return ReadySource()
}

// Close implements api.OutputStream.
func (s *OutputStream) Close() error {
	s.Closes++
	return nil
}

type readStep struct {
	data   []byte
	closed bool
	err    error
}

// InputStream is a scripted read channel.
type InputStream struct {
	script []readStep
	pos    int

	// Closes counts Close calls.
	Closes int
	// Subscriptions counts Subscribe calls.
	Subscriptions int
}

// NewInputStream creates an empty-script stream. An exhausted script reads
// as closed.
func NewInputStream() *InputStream {
	return &InputStream{}
}

// PushData appends a data step.
func (s *InputStream) PushData(data []byte) *InputStream {
	s.script = append(s.script, readStep{data: data})
	return s
}

// PushNotReady appends an empty "no data yet" step.
func (s *InputStream) PushNotReady() *InputStream {
	s.script = append(s.script, readStep{})
	return s
}

// PushClosed appends the end-of-data signal.
func (s *InputStream) PushClosed() *InputStream {
	s.script = append(s.script, readStep{closed: true})
	return s
}

// PushError appends a read failure.
func (s *InputStream) PushError(err error) *InputStream {
	s.script = append(s.script, readStep{err: err})
	return s
}

// Read implements api.InputStream. Data longer than max is split, with the
// remainder kept at the front of the script.
func (s *InputStream) Read(max int) ([]byte, error) {
	if s.pos >= len(s.script) {
		return nil, api.ErrClosed
	}
	step := s.script[s.pos]
	switch {
	case step.closed:
		s.pos++
		return nil, api.ErrClosed
	case step.err != nil:
		s.pos++
		return nil, step.err
	case len(step.data) > max:
		out := step.data[:max]
		s.script[s.pos].data = step.data[max:]
		return out, nil
	default:
		s.pos++
		return step.data, nil
	}
}

// Subscribe implements api.InputStream.
func (s *InputStream) Subscribe() api.Pollable {
	s.Subscriptions++
	return ReadySource()
}

// Close implements api.InputStream.
func (s *InputStream) Close() error {
	s.Closes++
	return nil
}

// OutgoingBody is a scripted outgoing body handle.
type OutgoingBody struct {
	stream      *OutputStream
	streamTaken bool

	// FinishCount counts Finish calls. Tests assert it is exactly one.
	FinishCount int
	// FinishedWith records the trailers passed to Finish.
	FinishedWith api.Trailers
}

// NewOutgoingBody wraps stream in a body handle.
func NewOutgoingBody(stream *OutputStream) *OutgoingBody {
	return &OutgoingBody{stream: stream}
}

// OutStream returns the underlying scripted stream for assertions.
func (b *OutgoingBody) OutStream() *OutputStream { return b.stream }

// Stream implements api.OutgoingBody.
func (b *OutgoingBody) Stream() (api.OutputStream, error) {
	if b.streamTaken {
		return nil, api.ErrBodyConsumed
	}
	b.streamTaken = true
	return b.stream, nil
}

// Finish implements api.OutgoingBody.
func (b *OutgoingBody) Finish(trailers api.Trailers) error {
	b.FinishCount++
	b.FinishedWith = trailers
	return nil
}

// FutureTrailers is a scripted trailer future.
type FutureTrailers struct {
	// PendingPolls is how many Get calls report unresolved before the
	// terminal result becomes visible.
	PendingPolls int
	// Trailers is the resolved value.
	Trailers api.Trailers
	// Err is the resolved protocol-level error.
	Err error
	// Subscriptions counts Subscribe calls.
	Subscriptions int

	polls int
}

// Get implements api.FutureTrailers.
func (f *FutureTrailers) Get() (api.Trailers, bool, error) {
	if f.polls < f.PendingPolls {
		f.polls++
		return nil, false, nil
	}
	return f.Trailers, true, f.Err
}

// Subscribe implements api.FutureTrailers.
func (f *FutureTrailers) Subscribe() api.Pollable {
	f.Subscriptions++
	return ReadySource()
}

// IncomingBody is a scripted incoming body handle.
type IncomingBody struct {
	stream      *InputStream
	streamTaken bool

	// Trailers is the future handed out by Finish.
	Trailers *FutureTrailers
	// FinishCount counts Finish calls. Tests assert it is exactly one.
	FinishCount int
}

// NewIncomingBody wraps stream in a body handle with resolved-empty trailers.
func NewIncomingBody(stream *InputStream) *IncomingBody {
	return &IncomingBody{stream: stream, Trailers: &FutureTrailers{}}
}

// InStream returns the underlying scripted stream for assertions.
func (b *IncomingBody) InStream() *InputStream { return b.stream }

// Stream implements api.IncomingBody.
func (b *IncomingBody) Stream() (api.InputStream, error) {
	if b.streamTaken {
		return nil, api.ErrBodyConsumed
	}
	b.streamTaken = true
	return b.stream, nil
}

// Finish implements api.IncomingBody.
func (b *IncomingBody) Finish() api.FutureTrailers {
	b.FinishCount++
	return b.Trailers
}
