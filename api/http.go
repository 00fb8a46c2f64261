// File: api/http.go
//
// Request dispatch surface: a non-blocking "send now, resolve later" call
// plus the handles it produces.

package api

// RequestSpec describes the wire-level request line and headers.
type RequestSpec struct {
	Method    string
	Scheme    string
	Authority string
	Path      string
	Header    map[string][]string
}

// Request is a host-owned outgoing request handle.
type Request interface {
	// Body returns the request's outgoing body. Valid once per request.
	Body() (OutgoingBody, error)
}

// Response is a host-owned incoming response handle.
type Response interface {
	// Status returns the HTTP status code.
	Status() int

	// Consume returns the response body. Valid once per response.
	Consume() (IncomingBody, error)
}

// ResponseFuture resolves to the response of a dispatched request, or to a
// protocol-level error when dispatch fails.
type ResponseFuture interface {
	// Get returns (response, true, err) once resolved. While unresolved it
	// returns ok == false.
	Get() (Response, bool, error)

	// Subscribe returns a readiness source that fires on resolution.
	Subscribe() Pollable
}

// Client issues requests against the host HTTP stack.
type Client interface {
	// NewRequest allocates a request handle for spec.
	NewRequest(spec RequestSpec) (Request, error)

	// Send dispatches req without blocking. Resolution is observed through
	// the returned future. A protocol-level failure surfaced by the future
	// is terminal; the engine never retries.
	Send(req Request) (ResponseFuture, error)
}
