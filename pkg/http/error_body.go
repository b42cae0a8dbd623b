package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
)

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 64 << 10

// ErrorBody receives the body of error responses (status 400 and above) for
// requests made with a context from ContextWithErrorBody.
type ErrorBody struct {
	mu   sync.Mutex
	body []byte
}

type errorBodyKey struct{}

func ContextWithErrorBody(ctx context.Context) (context.Context, *ErrorBody) {
	eb := &ErrorBody{}
	return context.WithValue(ctx, errorBodyKey{}, eb), eb
}

// Bytes returns the last captured error body, or nil
func (b *ErrorBody) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.body
}

func (b *ErrorBody) set(body []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.body = body
}

type errorBodyTransport struct {
	transport http.RoundTripper
}

func (t *errorBodyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.transport.RoundTrip(req)
	if err != nil || resp.StatusCode < http.StatusBadRequest {
		return resp, err
	}

	eb, ok := req.Context().Value(errorBodyKey{}).(*ErrorBody)
	if !ok {
		return resp, nil
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if readErr == nil {
		eb.set(body)
	}

	return resp, nil
}

// WithErrorBodyCapture copies error response bodies into the ErrorBody of the
// request context. The response body is still readable by the caller.
func WithErrorBodyCapture() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &errorBodyTransport{
			transport: rt,
		}
	})
}
