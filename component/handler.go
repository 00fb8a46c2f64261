// File: component/handler.go
//
// The prompt entry point: runs one request/response cycle through the
// cooperative engine. Every host handle acquired along the way is released
// through the adapters' finalize-on-exit logic, on success and failure alike.

package component

import (
	"fmt"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/Aditya1404Sal/openai-component/api"
	"github.com/Aditya1404Sal/openai-component/control"
	"github.com/Aditya1404Sal/openai-component/core/dispatch"
	"github.com/Aditya1404Sal/openai-component/core/sched"
	"github.com/Aditya1404Sal/openai-component/core/stream"
	"github.com/Aditya1404Sal/openai-component/reactor"
)

// Handler answers prompts through a host client.
type Handler struct {
	cfg    *control.Config
	client api.Client
	poller api.Poller
	log    logrus.FieldLogger
	met    *control.Metrics
	cache  *lru.Cache[string, string]
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger attaches a logger.
func WithLogger(log logrus.FieldLogger) HandlerOption {
	return func(h *Handler) { h.log = log }
}

// WithMetrics attaches component metrics.
func WithMetrics(m *control.Metrics) HandlerOption {
	return func(h *Handler) { h.met = m }
}

// NewHandler validates cfg and builds a handler over client and poller.
func NewHandler(cfg *control.Config, client api.Client, poller api.Poller, opts ...HandlerOption) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h := &Handler{cfg: cfg, client: client, poller: poller}
	for _, opt := range opts {
		opt(h)
	}
	if cfg.Cache.Enabled {
		cache, err := lru.New[string, string](cfg.Cache.Size)
		if err != nil {
			return nil, fmt.Errorf("build prompt cache: %w", err)
		}
		h.cache = cache
	}
	return h, nil
}

// Handle answers prompt. Failures are reported in the returned string so
// the embedding host always receives a printable result.
func (h *Handler) Handle(prompt string) string {
	text, err := h.Respond(prompt)
	if err != nil {
		if h.log != nil {
			h.log.WithError(err).Error("prompt handling failed")
		}
		return fmt.Sprintf("Error: %v", err)
	}
	return text
}

// Respond answers prompt, returning errors to the caller unformatted.
func (h *Handler) Respond(prompt string) (string, error) {
	if h.cache != nil {
		if text, ok := h.cache.Get(prompt); ok {
			h.met.IncCacheHit()
			if h.log != nil {
				h.log.Debug("prompt served from cache")
			}
			return text, nil
		}
		h.met.IncCacheMiss()
	}

	exec := sched.New(reactor.NewRegistry(), h.poller,
		sched.WithLogger(h.log), sched.WithMetrics(h.met))

	text, err := sched.Run(exec, func(e *sched.Executor) (string, error) {
		return h.roundTrip(e, prompt)
	})
	if err != nil {
		return "", err
	}
	if h.cache != nil {
		h.cache.Add(prompt, text)
	}
	return text, nil
}

func (h *Handler) roundTrip(exec *sched.Executor, prompt string) (string, error) {
	payload, err := BuildPayload(h.cfg.Model, prompt)
	if err != nil {
		return "", err
	}
	spec, err := BuildSpec(h.cfg.BaseURL, h.cfg.APIKey)
	if err != nil {
		return "", err
	}

	req, err := h.client.NewRequest(spec)
	if err != nil {
		return "", fmt.Errorf("allocate request: %w", err)
	}
	body, err := req.Body()
	if err != nil {
		return "", fmt.Errorf("open request body: %w", err)
	}

	sink, err := stream.NewBodySink(exec, body,
		stream.WithSinkLogger(h.log), stream.WithSinkMetrics(h.met))
	if err != nil {
		return "", err
	}
	if err := sink.Send(payload); err != nil {
		sink.Close()
		return "", fmt.Errorf("send request body: %w", err)
	}
	// The body must be finalized before dispatch.
	if err := sink.Close(); err != nil {
		return "", fmt.Errorf("finish request body: %w", err)
	}

	bridge := dispatch.New(exec, h.client,
		dispatch.WithLogger(h.log), dispatch.WithMetrics(h.met))
	resp, err := bridge.RoundTrip(req)
	if err != nil {
		return "", err
	}

	in, err := resp.Consume()
	if err != nil {
		return "", fmt.Errorf("consume response: %w", err)
	}
	bs, err := stream.NewBodyStream(exec, in,
		stream.WithStreamLogger(h.log), stream.WithStreamMetrics(h.met))
	if err != nil {
		return "", err
	}
	defer bs.Close()

	if status := resp.Status(); status < 200 || status >= 300 {
		return "", fmt.Errorf("HTTP %d from upstream", status)
	}

	data, err := bs.Collect()
	if err != nil {
		return "", fmt.Errorf("collect response body: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid UTF-8 response")
	}
	if h.log != nil {
		h.log.WithField("bytes", len(data)).Debug("response collected")
	}

	text, err := ExtractOutputText(data)
	if err != nil {
		// Keep the caller's answer usable even when the shape is foreign.
		if h.log != nil {
			h.log.WithError(err).Warn("falling back to raw response body")
		}
		return string(data), nil
	}
	return text, nil
}
