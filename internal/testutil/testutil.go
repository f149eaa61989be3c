package testutil

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// NewLocalHTTPServer starts an HTTP server bound to IPv4 loopback only.
// The sandbox blocks IPv6 listeners, so force tcp4 to keep tests runnable.
func NewLocalHTTPServer(tb testing.TB, handler http.Handler) *httptest.Server {
	tb.Helper()

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to create IPv4 listener: %v", err)
	}

	server := httptest.NewUnstartedServer(handler)
	server.Listener = listener
	server.Start()
	tb.Cleanup(server.Close)

	return server
}

// RoundTripFunc allows inlining http.RoundTripper implementations.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip calls the underlying function.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// TokenEndpoint is an http.Handler that simulates a client-credentials token
// endpoint. It counts fetches and records the submitted form and the
// Authorization header of every request, so tests can assert how often and
// how the pipeline authenticated.
type TokenEndpoint struct {
	// AccessToken is the token served. Defaults to "test-access-token".
	AccessToken string

	// ExpiresIn is the lifetime in seconds served. Defaults to 3600.
	ExpiresIn int64

	// Status forces an error status when non-zero and not 200.
	Status int

	// Body overrides the response body when non-empty.
	Body string

	mu          sync.Mutex
	fetches     int
	forms       []url.Values
	authHeaders []string
}

// ServeHTTP implements http.Handler.
func (e *TokenEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	e.mu.Lock()
	e.fetches++
	e.forms = append(e.forms, r.PostForm)
	e.authHeaders = append(e.authHeaders, r.Header.Get("Authorization"))
	status := e.Status
	body := e.Body
	token := e.AccessToken
	expiresIn := e.ExpiresIn
	e.mu.Unlock()

	if status != 0 && status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	if token == "" {
		token = "test-access-token"
	}
	if expiresIn == 0 {
		expiresIn = 3600
	}
	if body == "" {
		body = fmt.Sprintf(`{"access_token":%q,"token_type":"Bearer","expires_in":%d}`, token, expiresIn)
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// Fetches returns how many token requests were served.
func (e *TokenEndpoint) Fetches() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.fetches
}

// LastForm returns the form of the most recent token request.
func (e *TokenEndpoint) LastForm() url.Values {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.forms) == 0 {
		return nil
	}

	return e.forms[len(e.forms)-1]
}

// AuthHeaders returns the Authorization header of every token request, in
// order. A correctly composed pipeline only ever produces empty entries.
func (e *TokenEndpoint) AuthHeaders() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	headers := make([]string, len(e.authHeaders))
	copy(headers, e.authHeaders)
	return headers
}

// StaticJSONHandler returns a handler that always responds 200 with body.
func StaticJSONHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}
