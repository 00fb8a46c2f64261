//go:build linux
// +build linux

// File: hostio/pipehost_linux.go
//
// Linux host binding over non-blocking file descriptors. poll(2) is the
// blocking multi-wait; readiness sources carry an fd and the event mask
// they wait for.

package hostio

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/Aditya1404Sal/openai-component/api"
)

// fdWriteBudget is the capacity grant reported for a drained fd stream.
const fdWriteBudget = 64 * 1024

// FDSource is a readiness source for one file descriptor. A negative fd
// marks a source that is ready without polling.
type FDSource struct {
	fd     int
	events int16
}

// Ready implements api.Pollable with a zero-timeout poll.
func (s *FDSource) Ready() bool {
	if s.fd < 0 {
		return true
	}
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: s.events}}
	n, err := unix.Poll(fds, 0)
	return err == nil && n > 0 && fds[0].Revents != 0
}

// FDPoller is the poll(2)-backed multi-wait.
type FDPoller struct{}

// Poll implements api.Poller. All sources must be FDSources.
func (FDPoller) Poll(sources []api.Pollable) ([]int, error) {
	fds := make([]unix.PollFd, 0, len(sources))
	idx := make([]int, 0, len(sources))
	var ready []int
	for i, src := range sources {
		fs, ok := src.(*FDSource)
		if !ok {
			panic("hostio: foreign readiness source in fd multi-wait")
		}
		if fs.fd < 0 {
			ready = append(ready, i)
			continue
		}
		fds = append(fds, unix.PollFd{Fd: int32(fs.fd), Events: fs.events})
		idx = append(idx, i)
	}

	// Instantly-ready sources turn the wait into a non-blocking sweep.
	timeout := -1
	if len(ready) > 0 {
		timeout = 0
	}
	if len(fds) > 0 {
		for {
			_, err := unix.Poll(fds, timeout)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("hostio: poll: %w", err)
			}
			break
		}
		for i, fd := range fds {
			if fd.Revents != 0 {
				ready = append(ready, idx[i])
			}
		}
	}
	return ready, nil
}

// NewPipe creates a non-blocking pipe and wraps both ends in body handles:
// bytes sent through the outgoing body appear on the incoming one.
func NewPipe() (*PipeOutgoingBody, *PipeIncomingBody, error) {
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		return nil, nil, fmt.Errorf("hostio: pipe2: %w", err)
	}
	out := &PipeOutgoingBody{stream: &FDOutputStream{fd: p[1]}}
	in := &PipeIncomingBody{stream: &FDInputStream{fd: p[0]}}
	return out, in, nil
}

// FDOutputStream writes to a non-blocking fd through a pending buffer.
type FDOutputStream struct {
	fd      int
	pending []byte
	closed  bool
	err     error
}

func (s *FDOutputStream) drain() {
	for len(s.pending) > 0 && s.err == nil {
		n, err := unix.Write(s.fd, s.pending)
		if err == unix.EAGAIN {
			return
		}
		if err != nil {
			s.err = &api.IOError{Op: "write", Err: err}
			return
		}
		s.pending = s.pending[n:]
	}
}

// CheckWrite implements api.OutputStream. Capacity is the budget minus
// bytes still pending against the kernel buffer.
func (s *FDOutputStream) CheckWrite() (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.drain()
	if s.err != nil {
		return 0, s.err
	}
	if len(s.pending) >= fdWriteBudget {
		return 0, nil
	}
	return fdWriteBudget - len(s.pending), nil
}

// Write implements api.OutputStream.
func (s *FDOutputStream) Write(p []byte) error {
	if s.err != nil {
		return s.err
	}
	if len(s.pending)+len(p) > fdWriteBudget {
		panic("hostio: write past reported capacity")
	}
	s.pending = append(s.pending, p...)
	s.drain()
	return s.err
}

// Flush implements api.OutputStream.
func (s *FDOutputStream) Flush() error {
	s.drain()
	return s.err
}

// Subscribe implements api.OutputStream.
func (s *FDOutputStream) Subscribe() api.Pollable {
	return &FDSource{fd: s.fd, events: unix.POLLOUT}
}

// Close implements api.OutputStream. Pending bytes are drained with a
// blocking poll before the descriptor is released.
func (s *FDOutputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for len(s.pending) > 0 && s.err == nil {
		s.drain()
		if len(s.pending) == 0 || s.err != nil {
			break
		}
		fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLOUT}}
		if _, err := unix.Poll(fds, -1); err != nil && err != unix.EINTR {
			s.err = &api.IOError{Op: "poll", Err: err}
		}
	}
	unix.Close(s.fd)
	return s.err
}

// PipeOutgoingBody owns the write end of a pipe.
type PipeOutgoingBody struct {
	stream      *FDOutputStream
	streamTaken bool
	finished    bool
}

// Stream implements api.OutgoingBody.
func (b *PipeOutgoingBody) Stream() (api.OutputStream, error) {
	if b.streamTaken {
		return nil, api.ErrBodyConsumed
	}
	b.streamTaken = true
	return b.stream, nil
}

// Finish implements api.OutgoingBody. Closing the write end is the pipe's
// end-of-data signal; pipes cannot carry trailers.
func (b *PipeOutgoingBody) Finish(trailers api.Trailers) error {
	if len(trailers) != 0 {
		return fmt.Errorf("hostio: trailers unsupported by pipe body")
	}
	b.finished = true
	return b.stream.Close()
}

// FDInputStream reads from a non-blocking fd.
type FDInputStream struct {
	fd     int
	closed bool
}

// Read implements api.InputStream.
func (s *FDInputStream) Read(max int) ([]byte, error) {
	buf := make([]byte, max)
	n, err := unix.Read(s.fd, buf)
	switch {
	case err == unix.EAGAIN:
		return nil, nil
	case err != nil:
		return nil, err
	case n == 0:
		return nil, api.ErrClosed
	default:
		return buf[:n], nil
	}
}

// Subscribe implements api.InputStream.
func (s *FDInputStream) Subscribe() api.Pollable {
	return &FDSource{fd: s.fd, events: unix.POLLIN}
}

// Close implements api.InputStream.
func (s *FDInputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return unix.Close(s.fd)
}

// PipeIncomingBody owns the read end of a pipe.
type PipeIncomingBody struct {
	stream      *FDInputStream
	streamTaken bool
}

// Stream implements api.IncomingBody.
func (b *PipeIncomingBody) Stream() (api.InputStream, error) {
	if b.streamTaken {
		return nil, api.ErrBodyConsumed
	}
	b.streamTaken = true
	return b.stream, nil
}

// Finish implements api.IncomingBody. Pipes have no trailers; the future
// resolves immediately and empty.
func (b *PipeIncomingBody) Finish() api.FutureTrailers {
	b.stream.Close()
	return resolvedTrailers{}
}

// resolvedTrailers is an immediately-resolved empty trailer future.
type resolvedTrailers struct{}

// Get implements api.FutureTrailers.
func (resolvedTrailers) Get() (api.Trailers, bool, error) { return nil, true, nil }

// Subscribe implements api.FutureTrailers.
func (resolvedTrailers) Subscribe() api.Pollable { return &FDSource{fd: -1} }
