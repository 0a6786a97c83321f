// FILE: transport.go
package logship

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

// Transport sends one batch of records to the remote ingestion endpoint.
// A nil return means the batch was accepted; every non-nil error (rejected
// status, network failure, timeout) is treated uniformly by the caller as
// one "flush failed" outcome. Retry is achieved by requeueing and waiting
// for the next trigger; Send itself makes exactly one attempt and never
// retries or backs off.
type Transport interface {
	Send(batch []Record) error
}

// RejectedError reports a response status other than 201 Created.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("logship: batch rejected with status %d", e.StatusCode)
}

// ErrTimeout marks a send attempt that exceeded the configured HTTP timeout.
var ErrTimeout = errors.New("logship: send timed out")

// HTTPTransport ships batches over HTTP using a fasthttp client.
type HTTPTransport struct {
	client  *fasthttp.Client
	url     string
	apiKey  string
	timeout time.Duration
}

// NewHTTPTransport builds a transport from endpoint settings.
func NewHTTPTransport(cfg *Config) *HTTPTransport {
	return &HTTPTransport{
		client:  &fasthttp.Client{},
		url:     strings.TrimRight(cfg.BaseURL, "/") + cfg.EndpointPath,
		apiKey:  cfg.APIKey,
		timeout: time.Duration(cfg.HTTPTimeoutS) * time.Second,
	}
}

// Send posts the batch as {"logs": [...]} and succeeds only on 201 Created.
func (t *HTTPTransport) Send(batch []Record) error {
	body, err := json.Marshal(batchEnvelope{Logs: batch})
	if err != nil {
		return fmtErrorf("failed to encode batch: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(t.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if t.apiKey != "" {
		req.Header.Set(apiKeyHeader, t.apiKey)
	}
	req.SetBody(body)

	if err := t.client.DoTimeout(req, resp, t.timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmtErrorf("send failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusCreated {
		return &RejectedError{
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}
	return nil
}
