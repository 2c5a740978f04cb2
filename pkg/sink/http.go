package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-signup/pkg/model"
	"github.com/goliatone/go-signup/pkg/render"
)

const maxErrorBody = 64 << 10

// RejectedError is returned by HTTP when the endpoint answers with a non-2xx
// status. Field and form messages are mapped from the response body when it
// carries an error payload.
type RejectedError struct {
	StatusCode int
	Fields     map[model.Field][]string
	Form       []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("sink: endpoint rejected submission (status %d)", e.StatusCode)
}

// HTTP posts each submission as JSON to an endpoint.
type HTTP struct {
	endpoint string
	client   *http.Client
	headers  http.Header
}

// HTTPOption configures an HTTP sink.
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the client (default: 10s timeout).
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithHeader adds a request header sent with every submission.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) {
		if strings.TrimSpace(key) != "" {
			h.headers.Set(key, value)
		}
	}
}

// NewHTTP validates endpoint and returns an HTTP sink.
func NewHTTP(endpoint string, options ...HTTPOption) (*HTTP, error) {
	parsed, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("sink: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("sink: endpoint must be http(s), got %q", endpoint)
	}

	h := &HTTP{
		endpoint: parsed.String(),
		client:   &http.Client{Timeout: 10 * time.Second},
		headers:  make(http.Header),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

func (h *HTTP) Submit(ctx context.Context, submission Submission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("sink: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sink: build request: %w", err)
	}
	for key, values := range h.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", submission.ID)

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("sink: post submission %s: %w", submission.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	rejected := &RejectedError{StatusCode: resp.StatusCode}
	mapping := render.MapErrorPayload(decodeErrorPayload(raw))
	rejected.Fields = mapping.Fields
	rejected.Form = mapping.Form
	return rejected
}

// decodeErrorPayload accepts {"errors": {"field": ["msg"]}},
// {"errors": {"field": "msg"}} and {"error": "msg"} bodies.
func decodeErrorPayload(raw []byte) map[string][]string {
	var envelope struct {
		Error  string                     `json:"error"`
		Errors map[string]json.RawMessage `json:"errors"`
	}
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &envelope) != nil {
		return nil
	}

	out := make(map[string][]string, len(envelope.Errors)+1)
	for path, value := range envelope.Errors {
		var many []string
		if err := json.Unmarshal(value, &many); err == nil {
			out[path] = append(out[path], many...)
			continue
		}
		var one string
		if err := json.Unmarshal(value, &one); err == nil {
			out[path] = append(out[path], one)
		}
	}
	if envelope.Error != "" {
		out["form"] = append(out["form"], envelope.Error)
	}
	return out
}

// AsRejected unwraps a RejectedError from err.
func AsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
