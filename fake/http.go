// File: fake/http.go
//
// Scripted request dispatch: a client that records request specs and hands
// out a pre-arranged response future.

package fake

import (
	"errors"

	"github.com/Aditya1404Sal/openai-component/api"
)

// Request is a scripted outgoing request handle.
type Request struct {
	// Spec is the request line and headers the caller supplied.
	Spec api.RequestSpec
	// OutBody is the request body handle.
	OutBody *OutgoingBody
}

// Body implements api.Request.
func (r *Request) Body() (api.OutgoingBody, error) {
	if r.OutBody == nil {
		return nil, errors.New("fake: request has no body")
	}
	return r.OutBody, nil
}

// Response is a scripted incoming response handle.
type Response struct {
	// StatusCode is returned by Status.
	StatusCode int
	// InBody is the response body handle.
	InBody *IncomingBody

	consumed bool
}

// Status implements api.Response.
func (r *Response) Status() int { return r.StatusCode }

// Consume implements api.Response.
func (r *Response) Consume() (api.IncomingBody, error) {
	if r.consumed {
		return nil, api.ErrBodyConsumed
	}
	r.consumed = true
	return r.InBody, nil
}

// ResponseFuture is a scripted response future.
type ResponseFuture struct {
	// PendingPolls is how many Get calls report unresolved before the
	// terminal result becomes visible.
	PendingPolls int
	// Response is the resolved response.
	Response *Response
	// Err is the resolved protocol-level error.
	Err error
	// Subscriptions counts Subscribe calls.
	Subscriptions int

	polls int
}

// Get implements api.ResponseFuture.
func (f *ResponseFuture) Get() (api.Response, bool, error) {
	if f.polls < f.PendingPolls {
		f.polls++
		return nil, false, nil
	}
	if f.Err != nil {
		return nil, true, f.Err
	}
	return f.Response, true, nil
}

// Subscribe implements api.ResponseFuture.
func (f *ResponseFuture) Subscribe() api.Pollable {
	f.Subscriptions++
	return ReadySource()
}

// Client is a scripted host HTTP client.
type Client struct {
	// Future is handed out by Send.
	Future *ResponseFuture
	// SendErr, when set, fails Send immediately.
	SendErr error
	// Requests records every allocated request.
	Requests []*Request
}

// NewClient creates a client that resolves every request with future.
func NewClient(future *ResponseFuture) *Client {
	return &Client{Future: future}
}

// NewRequest implements api.Client.
func (c *Client) NewRequest(spec api.RequestSpec) (api.Request, error) {
	req := &Request{Spec: spec, OutBody: NewOutgoingBody(NewOutputStream())}
	c.Requests = append(c.Requests, req)
	return req, nil
}

// Send implements api.Client.
func (c *Client) Send(req api.Request) (api.ResponseFuture, error) {
	if c.SendErr != nil {
		return nil, c.SendErr
	}
	if _, ok := req.(*Request); !ok {
		return nil, errors.New("fake: foreign request handle")
	}
	return c.Future, nil
}
