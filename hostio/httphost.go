// File: hostio/httphost.go
//
// net/http-backed host. Request bodies buffer in memory; dispatch and body
// pumping run on host goroutines whose completions fire hub sources.

package hostio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Aditya1404Sal/openai-component/api"
)

// memWriteWindow is the capacity grant of the in-memory request body.
const memWriteWindow = 32 * 1024

// readPumpSize is the per-iteration read of the response body pump.
const readPumpSize = 16 * 1024

// HTTPClient implements api.Client over net/http.
type HTTPClient struct {
	hub    *Hub
	client *http.Client
	log    logrus.FieldLogger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPLogger attaches a logger.
func WithHTTPLogger(log logrus.FieldLogger) HTTPOption {
	return func(c *HTTPClient) { c.log = log }
}

// WithHTTPClient substitutes the underlying net/http client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.client = client }
}

// NewHTTPClient creates a host client with pooled connections.
func NewHTTPClient(opts ...HTTPOption) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,
	}
	c := &HTTPClient{
		hub:    NewHub(),
		client: &http.Client{Transport: transport},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hub returns the client's wait hub.
func (c *HTTPClient) Hub() *Hub { return c.hub }

// Poller returns the multi-wait matching this client's readiness sources.
func (c *HTTPClient) Poller() api.Poller { return c.hub.Poller() }

// NewRequest implements api.Client.
func (c *HTTPClient) NewRequest(spec api.RequestSpec) (api.Request, error) {
	if spec.Method == "" || spec.Authority == "" {
		return nil, fmt.Errorf("hostio: request spec missing method or authority")
	}
	return &httpRequest{spec: spec, body: &memOutgoingBody{hub: c.hub}}, nil
}

// Send implements api.Client. The request body must be finalized before
// dispatch; the host sends it as a single buffered payload.
func (c *HTTPClient) Send(req api.Request) (api.ResponseFuture, error) {
	hr, ok := req.(*httpRequest)
	if !ok {
		return nil, errors.New("hostio: foreign request handle")
	}
	if hr.sent {
		return nil, errors.New("hostio: request already dispatched")
	}
	hr.sent = true

	payload := hr.body.payload()
	if payload == nil {
		return nil, errors.New("hostio: request body not finalized before send")
	}

	scheme := hr.spec.Scheme
	if scheme == "" {
		scheme = "https"
	}
	url := scheme + "://" + hr.spec.Authority + hr.spec.Path
	httpReq, err := http.NewRequest(hr.spec.Method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("hostio: build request: %w", err)
	}
	for name, values := range hr.spec.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	future := &httpFuture{hub: c.hub}
	if c.log != nil {
		c.log.WithFields(logrus.Fields{
			"method": hr.spec.Method,
			"url":    url,
			"bytes":  len(payload),
		}).Debug("dispatching request")
	}

	go func() {
		resp, err := c.client.Do(httpReq)
		c.hub.mu.Lock()
		future.resolved = true
		future.resp = resp
		future.err = err
		c.hub.fireLocked(future.waiters)
		future.waiters = nil
		c.hub.mu.Unlock()
	}()
	return future, nil
}

type httpRequest struct {
	spec api.RequestSpec
	body *memOutgoingBody
	sent bool
}

// Body implements api.Request.
func (r *httpRequest) Body() (api.OutgoingBody, error) {
	return r.body, nil
}

// memOutgoingBody buffers the request body in memory until finalized.
type memOutgoingBody struct {
	hub         *Hub
	buf         bytes.Buffer
	streamTaken bool
	finished    bool
}

// Stream implements api.OutgoingBody.
func (b *memOutgoingBody) Stream() (api.OutputStream, error) {
	if b.streamTaken {
		return nil, api.ErrBodyConsumed
	}
	b.streamTaken = true
	return &memOutputStream{body: b}, nil
}

// Finish implements api.OutgoingBody. Trailers are not supported by the
// buffered host body.
func (b *memOutgoingBody) Finish(trailers api.Trailers) error {
	if len(trailers) != 0 {
		return errors.New("hostio: trailers unsupported by buffered body")
	}
	b.finished = true
	return nil
}

// payload returns the finalized body bytes, or nil when unfinished.
func (b *memOutgoingBody) payload() []byte {
	if !b.finished {
		return nil
	}
	return b.buf.Bytes()
}

// memOutputStream is always writable up to its window.
type memOutputStream struct {
	body   *memOutgoingBody
	closed bool
}

// CheckWrite implements api.OutputStream.
func (s *memOutputStream) CheckWrite() (int, error) {
	if s.closed {
		return 0, errors.New("hostio: write to closed stream")
	}
	return memWriteWindow, nil
}

// Write implements api.OutputStream.
func (s *memOutputStream) Write(p []byte) error {
	if s.closed {
		return errors.New("hostio: write to closed stream")
	}
	if len(p) > memWriteWindow {
		panic("hostio: write past reported capacity")
	}
	s.body.buf.Write(p)
	return nil
}

// Flush implements api.OutputStream. Memory-backed, nothing to settle.
func (s *memOutputStream) Flush() error { return nil }

// Subscribe implements api.OutputStream.
func (s *memOutputStream) Subscribe() api.Pollable {
	return s.body.hub.FiredSource()
}

// Close implements api.OutputStream.
func (s *memOutputStream) Close() error {
	s.closed = true
	return nil
}

// httpFuture resolves when the host goroutine finishes client.Do.
type httpFuture struct {
	hub      *Hub
	resolved bool
	resp     *http.Response
	err      error
	waiters  []*HubSource
}

// Get implements api.ResponseFuture.
func (f *httpFuture) Get() (api.Response, bool, error) {
	f.hub.mu.Lock()
	defer f.hub.mu.Unlock()
	if !f.resolved {
		return nil, false, nil
	}
	if f.err != nil {
		return nil, true, &api.ProtocolError{Reason: "send", Err: f.err}
	}
	return &httpResponse{hub: f.hub, resp: f.resp}, true, nil
}

// Subscribe implements api.ResponseFuture.
func (f *httpFuture) Subscribe() api.Pollable {
	f.hub.mu.Lock()
	defer f.hub.mu.Unlock()
	s := &HubSource{hub: f.hub, fired: f.resolved}
	if !f.resolved {
		f.waiters = append(f.waiters, s)
	}
	return s
}

type httpResponse struct {
	hub      *Hub
	resp     *http.Response
	consumed bool
}

// Status implements api.Response.
func (r *httpResponse) Status() int { return r.resp.StatusCode }

// Consume implements api.Response.
func (r *httpResponse) Consume() (api.IncomingBody, error) {
	if r.consumed {
		return nil, api.ErrBodyConsumed
	}
	r.consumed = true
	return &httpIncomingBody{hub: r.hub, resp: r.resp}, nil
}

// httpIncomingBody pumps the response body on a host goroutine.
type httpIncomingBody struct {
	hub         *Hub
	resp        *http.Response
	streamTaken bool
	trailers    *httpTrailers
}

// Stream implements api.IncomingBody and starts the body pump.
func (b *httpIncomingBody) Stream() (api.InputStream, error) {
	if b.streamTaken {
		return nil, api.ErrBodyConsumed
	}
	b.streamTaken = true
	b.trailers = &httpTrailers{hub: b.hub}
	in := &httpInputStream{hub: b.hub, resp: b.resp}
	go pumpBody(in, b.trailers)
	return in, nil
}

// Finish implements api.IncomingBody. The trailer future resolves once the
// pump drains the body; a body finished before its stream was taken has no
// trailers to wait for.
func (b *httpIncomingBody) Finish() api.FutureTrailers {
	if b.trailers == nil {
		b.resp.Body.Close()
		return &httpTrailers{hub: b.hub, resolved: true}
	}
	return b.trailers
}

// pumpBody moves response bytes into the stream buffer and resolves the
// trailer future when the body ends.
func pumpBody(in *httpInputStream, trailers *httpTrailers) {
	hub := in.hub
	buf := make([]byte, readPumpSize)
	for {
		n, err := in.resp.Body.Read(buf)
		hub.mu.Lock()
		if n > 0 {
			in.buf = append(in.buf, buf[:n]...)
			hub.fireLocked(in.waiters)
			in.waiters = nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) || in.userClosed {
				in.closed = true
			} else {
				in.readErr = err
			}
			hub.fireLocked(in.waiters)
			in.waiters = nil

			// Trailers become visible after the body is drained.
			trailers.resolved = true
			trailers.trailers = api.Trailers(in.resp.Trailer)
			hub.fireLocked(trailers.waiters)
			trailers.waiters = nil
			hub.mu.Unlock()
			return
		}
		hub.mu.Unlock()
	}
}

// httpInputStream hands out pumped bytes without blocking.
type httpInputStream struct {
	hub        *Hub
	resp       *http.Response
	buf        []byte
	closed     bool
	userClosed bool
	readErr    error
	waiters    []*HubSource
}

// Read implements api.InputStream.
func (s *httpInputStream) Read(max int) ([]byte, error) {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	if len(s.buf) > 0 {
		n := min(max, len(s.buf))
		out := make([]byte, n)
		copy(out, s.buf[:n])
		s.buf = s.buf[n:]
		return out, nil
	}
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.closed {
		return nil, api.ErrClosed
	}
	return nil, nil
}

// Subscribe implements api.InputStream.
func (s *httpInputStream) Subscribe() api.Pollable {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	src := &HubSource{hub: s.hub}
	if len(s.buf) > 0 || s.closed || s.readErr != nil {
		src.fired = true
		return src
	}
	s.waiters = append(s.waiters, src)
	return src
}

// Close implements api.InputStream. Closing unblocks the pump.
func (s *httpInputStream) Close() error {
	s.hub.mu.Lock()
	s.userClosed = true
	s.hub.mu.Unlock()
	return s.resp.Body.Close()
}

// httpTrailers resolves once the body pump completes.
type httpTrailers struct {
	hub      *Hub
	resolved bool
	trailers api.Trailers
	waiters  []*HubSource
}

// Get implements api.FutureTrailers.
func (t *httpTrailers) Get() (api.Trailers, bool, error) {
	t.hub.mu.Lock()
	defer t.hub.mu.Unlock()
	if !t.resolved {
		return nil, false, nil
	}
	if len(t.trailers) == 0 {
		return nil, true, nil
	}
	return t.trailers, true, nil
}

// Subscribe implements api.FutureTrailers.
func (t *httpTrailers) Subscribe() api.Pollable {
	t.hub.mu.Lock()
	defer t.hub.mu.Unlock()
	s := &HubSource{hub: t.hub, fired: t.resolved}
	if !t.resolved {
		t.waiters = append(t.waiters, s)
	}
	return s
}
