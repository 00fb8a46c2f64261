// File: api/errors.go
//
// Error kinds shared across the engine: host I/O failures, the end-of-data
// signal, and protocol-level dispatch failures.

package api

import (
	"errors"
	"fmt"
)

// ErrClosed is the end-of-data signal returned by InputStream.Read.
// It is an expected state transition, not a failure.
var ErrClosed = errors.New("stream closed")

// ErrBodyConsumed is returned when a body's stream is requested twice.
var ErrBodyConsumed = errors.New("body already consumed")

// IOError reports a host read/write failure. It is terminal for the
// affected stream or sink.
type IOError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("host i/o: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying host error.
func (e *IOError) Unwrap() error { return e.Err }

// ProtocolError reports a failed request dispatch or malformed trailing
// metadata. It is terminal and never retried by the engine.
type ProtocolError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %v", e.Reason, e.Err)
	}
	return "protocol: " + e.Reason
}

// Unwrap returns the underlying cause, if any.
func (e *ProtocolError) Unwrap() error { return e.Err }
