package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPTransport sends Request descriptors over HTTP and returns the raw
// response body. Responses outside the 2xx range fail with a *StatusError
// carrying the status code and body.
//
// HTTPTransport is stateless apart from the underlying *http.Client and is
// safe for concurrent use.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport creates a transport rooted at baseURL. If client is nil,
// a default client with a 30 second timeout is used.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client, _ = NewBuilder().Build()
	}

	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Send performs the described request and returns the response body bytes.
// Request parameters travel as query parameters for GET requests and as a
// form-encoded body otherwise. The context's cancellation and deadline apply
// to the whole exchange.
func (t *HTTPTransport) Send(ctx context.Context, req Request) ([]byte, error) {
	method := req.method()
	requestURL := t.baseURL + req.Path

	var body io.Reader
	if len(req.Params) > 0 {
		if method == http.MethodGet {
			requestURL += "?" + req.Params.Encode()
		} else {
			body = strings.NewReader(req.Params.Encode())
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request %s %s: %w", method, req.Path, err)
	}

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.bearer)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("httpclient: send %s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read response %s %s: %w", method, req.Path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: data}
	}

	return data, nil
}
