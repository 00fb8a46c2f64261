// File: api/streams.go
//
// Host stream and body handles. Writes are bounded by reported capacity,
// reads distinguish "no data yet" from the closed signal, and bodies must
// be explicitly finalized to release host resources.

package api

// Trailers is the metadata delivered after the byte payload of a body.
type Trailers map[string][]string

// OutputStream is a writable host channel with host-owned backpressure.
type OutputStream interface {
	// CheckWrite returns the number of bytes the host currently accepts.
	// Zero means not ready.
	CheckWrite() (int, error)

	// Write submits p to the host. Writing more than the last reported
	// capacity is a contract violation by the caller.
	Write(p []byte) error

	// Flush requests that buffered bytes be sent. Completion is observed
	// by a subsequent CheckWrite returning nonzero.
	Flush() error

	// Subscribe returns a readiness source that fires when the stream can
	// accept more bytes or a flush has settled.
	Subscribe() Pollable

	// Close releases the stream handle.
	Close() error
}

// InputStream is a readable host channel.
type InputStream interface {
	// Read returns up to max bytes. An empty result with a nil error means
	// no data is available yet; end-of-data is reported as ErrClosed.
	Read(max int) ([]byte, error)

	// Subscribe returns a readiness source that fires when data arrives or
	// the stream closes.
	Subscribe() Pollable

	// Close releases the stream handle.
	Close() error
}

// OutgoingBody is a host-owned request body. It must be finalized exactly
// once; the host does not detect double-finalization.
type OutgoingBody interface {
	// Stream returns the body's write channel. Valid once per body.
	Stream() (OutputStream, error)

	// Finish finalizes the body, optionally attaching trailers.
	Finish(trailers Trailers) error
}

// IncomingBody is a host-owned response body.
type IncomingBody interface {
	// Stream returns the body's read channel. Valid once per body.
	Stream() (InputStream, error)

	// Finish consumes the body and yields the future for its trailers.
	// The stream handle must be closed before Finish is called.
	Finish() FutureTrailers
}

// FutureTrailers resolves to the trailers of a consumed body, or to a
// protocol-level error when the trailing metadata is malformed.
type FutureTrailers interface {
	// Get returns (trailers, true, err) once resolved. While unresolved it
	// returns ok == false.
	Get() (Trailers, bool, error)

	// Subscribe returns a readiness source that fires on resolution.
	Subscribe() Pollable
}
