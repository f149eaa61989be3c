package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/AmmannChristian/go-petfinder/decode"
	"github.com/AmmannChristian/go-petfinder/httpclient"
	"github.com/AmmannChristian/go-petfinder/internal/testutil"
	"github.com/AmmannChristian/go-petfinder/oauth2client"
)

type okResponse struct {
	OK bool `json:"ok"`
}

// apiRecorder serves a fixed response and records the Authorization header
// of every request.
type apiRecorder struct {
	mu          sync.Mutex
	status      int
	body        string
	authHeaders []string
}

func (a *apiRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.authHeaders = append(a.authHeaders, r.Header.Get("Authorization"))
	status := a.status
	body := a.body
	a.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	if body == "" {
		body = `{"ok":true}`
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (a *apiRecorder) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.authHeaders)
}

func (a *apiRecorder) lastAuth() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.authHeaders) == 0 {
		return ""
	}

	return a.authHeaders[len(a.authHeaders)-1]
}

type stubLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *stubLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func (l *stubLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.messages)
}

// newTestPipeline wires a pipeline against a local server that hosts both the
// token endpoint and the API surface.
func newTestPipeline(t *testing.T, endpoint *testutil.TokenEndpoint, api http.Handler, opts ...Option) (*Client, *oauth2client.Store) {
	t.Helper()

	mux := http.NewServeMux()
	mux.Handle(oauth2client.DefaultTokenPath, endpoint)
	if api != nil {
		mux.Handle("/v2/animals", api)
	}
	server := testutil.NewLocalHTTPServer(t, mux)

	transport := httpclient.NewHTTPTransport(server.URL, server.Client())
	store := oauth2client.NewStore()
	fetcher := oauth2client.NewFetcher(transport, "test-client", "test-secret")

	return NewClient(transport, store, fetcher, opts...), store
}

func animalsRequest() httpclient.Request {
	return httpclient.Request{Path: "/v2/animals", Method: http.MethodGet, RequiresAuth: true}
}

func TestDo_ReusesCachedToken(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{}
	client, store := newTestPipeline(t, endpoint, api)

	store.Update(oauth2client.NewToken("cached-token", time.Now().Add(time.Hour)))

	resp, err := Do[okResponse](context.Background(), client, animalsRequest())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !resp.OK {
		t.Error("unexpected response")
	}

	if endpoint.Fetches() != 0 {
		t.Errorf("valid cached token must not trigger a fetch, got %d", endpoint.Fetches())
	}

	if api.lastAuth() != "Bearer cached-token" {
		t.Errorf("expected cached token on the wire, got %q", api.lastAuth())
	}
}

func TestDo_ExpiredTokenTriggersSingleRefresh(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{AccessToken: "fresh-token"}
	api := &apiRecorder{}
	client, store := newTestPipeline(t, endpoint, api)

	store.Update(oauth2client.NewToken("stale-token", time.Now().Add(-time.Second)))

	if _, err := Do[okResponse](context.Background(), client, animalsRequest()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if endpoint.Fetches() != 1 {
		t.Errorf("expected exactly one refresh, got %d", endpoint.Fetches())
	}

	if api.lastAuth() != "Bearer fresh-token" {
		t.Errorf("expected refreshed token on the wire, got %q", api.lastAuth())
	}
}

func TestDo_ExpiryScenario(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{AccessToken: "abc123", ExpiresIn: 3600}
	api := &apiRecorder{}
	client, store := newTestPipeline(t, endpoint, api)

	// First call at T0 fetches and caches abc123 with expiry T0+3600s.
	before := time.Now()
	if _, err := Do[okResponse](context.Background(), client, animalsRequest()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	cached, err := store.Cached()
	if err != nil {
		t.Fatalf("Cached failed: %v", err)
	}
	if cached.ExpiresAt().Before(before.Add(3599 * time.Second)) {
		t.Errorf("expiry %v not anchored at fetch time + 3600s", cached.ExpiresAt())
	}

	// A call inside the expiry window reuses abc123.
	if _, err := Do[okResponse](context.Background(), client, animalsRequest()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if endpoint.Fetches() != 1 {
		t.Errorf("call inside window must reuse the token, got %d fetches", endpoint.Fetches())
	}
	if api.lastAuth() != "Bearer abc123" {
		t.Errorf("expected abc123 on the wire, got %q", api.lastAuth())
	}

	// Past the expiry instant, the next call refreshes exactly once.
	store.Update(oauth2client.NewToken("abc123", time.Now().Add(-time.Second)))
	if _, err := Do[okResponse](context.Background(), client, animalsRequest()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if endpoint.Fetches() != 2 {
		t.Errorf("expected exactly one more refresh, got %d fetches total", endpoint.Fetches())
	}
}

func TestDo_ConcurrentColdStart_SingleFetch(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{}

	// Slow the token endpoint down so the goroutines overlap inside the
	// refresh window.
	mux := http.NewServeMux()
	mux.Handle(oauth2client.DefaultTokenPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		endpoint.ServeHTTP(w, r)
	}))
	mux.Handle("/v2/animals", api)
	server := testutil.NewLocalHTTPServer(t, mux)

	transport := httpclient.NewHTTPTransport(server.URL, server.Client())
	fetcher := oauth2client.NewFetcher(transport, "test-client", "test-secret")
	client := NewClient(transport, oauth2client.NewStore(), fetcher)

	const goroutines = 10
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			_, err := Do[okResponse](context.Background(), client, animalsRequest())
			errs <- err
		}()
	}

	for i := 0; i < goroutines; i++ {
		select {
		case err := <-errs:
			if err != nil {
				t.Errorf("Do failed in goroutine: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for goroutine")
		}
	}

	if endpoint.Fetches() != 1 {
		t.Errorf("expected single token fetch under concurrency, got %d", endpoint.Fetches())
	}

	if api.calls() != goroutines {
		t.Errorf("expected %d API calls, got %d", goroutines, api.calls())
	}
}

func TestDo_NoAuthHeaderWhenNotRequired(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{}
	client, store := newTestPipeline(t, endpoint, api)

	// Even with a valid token cached, an unauthenticated request stays bare.
	store.Update(oauth2client.NewToken("cached-token", time.Now().Add(time.Hour)))

	req := httpclient.Request{Path: "/v2/animals", Method: http.MethodGet, RequiresAuth: false}
	if _, err := Do[okResponse](context.Background(), client, req); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if api.lastAuth() != "" {
		t.Errorf("request without RequiresAuth carried Authorization header %q", api.lastAuth())
	}

	if endpoint.Fetches() != 0 {
		t.Errorf("unauthenticated request must not fetch a token, got %d", endpoint.Fetches())
	}
}

func TestDo_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantDecode bool
	}{
		{name: "401 maps to status error", status: http.StatusUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "500 maps to status error", status: http.StatusInternalServerError, wantStatus: http.StatusInternalServerError},
		{name: "200 with garbage maps to decode error", status: http.StatusOK, body: `<html>oops</html>`, wantDecode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := &testutil.TokenEndpoint{}
			api := &apiRecorder{status: tt.status, body: tt.body}
			client, store := newTestPipeline(t, endpoint, api)
			store.Update(oauth2client.NewToken("cached-token", time.Now().Add(time.Hour)))

			_, err := Do[okResponse](context.Background(), client, animalsRequest())
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			var statusErr *httpclient.StatusError
			var decodeErr *decode.DecodeError

			switch {
			case tt.wantDecode:
				if !errors.As(err, &decodeErr) {
					t.Fatalf("expected *DecodeError, got %T: %v", err, err)
				}
				if errors.As(err, &statusErr) {
					t.Error("decode failure must not surface as status error")
				}
			default:
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected *StatusError, got %T: %v", err, err)
				}
				if statusErr.StatusCode != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, statusErr.StatusCode)
				}
			}
		})
	}
}

func TestDo_AuthFailureIsDistinct(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{Status: http.StatusInternalServerError}
	api := &apiRecorder{}
	client, _ := newTestPipeline(t, endpoint, api)

	_, err := Do[okResponse](context.Background(), client, animalsRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var authErr *oauth2client.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("token acquisition failure must surface as *AuthError, got %T: %v", err, err)
	}

	if api.calls() != 0 {
		t.Error("API request must not be sent when authentication fails")
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{}
	client, store := newTestPipeline(t, endpoint, api)
	store.Update(oauth2client.NewToken("cached-token", time.Now().Add(time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do[okResponse](ctx, client, animalsRequest())
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestDo_RetryOnUnauthorized(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{AccessToken: "fresh-token"}

	// Reject the stale token once, accept the refreshed one.
	var mu sync.Mutex
	var apiAuth []string
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		apiAuth = append(apiAuth, r.Header.Get("Authorization"))
		mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	client, store := newTestPipeline(t, endpoint, api, WithRetryOnUnauthorized())

	// Locally the revoked token still looks valid.
	store.Update(oauth2client.NewToken("revoked-token", time.Now().Add(time.Hour)))

	resp, err := Do[okResponse](context.Background(), client, animalsRequest())
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !resp.OK {
		t.Error("unexpected response")
	}

	if endpoint.Fetches() != 1 {
		t.Errorf("expected exactly one forced refresh, got %d", endpoint.Fetches())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(apiAuth) != 2 {
		t.Fatalf("expected 2 API attempts, got %d", len(apiAuth))
	}
	if apiAuth[1] != "Bearer fresh-token" {
		t.Errorf("retry must carry the refreshed token, got %q", apiAuth[1])
	}
}

func TestDo_NoRetryByDefault(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{status: http.StatusUnauthorized}
	client, store := newTestPipeline(t, endpoint, api)
	store.Update(oauth2client.NewToken("revoked-token", time.Now().Add(time.Hour)))

	_, err := Do[okResponse](context.Background(), client, animalsRequest())

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 StatusError, got %v", err)
	}

	if api.calls() != 1 {
		t.Errorf("default pipeline must not retry, got %d attempts", api.calls())
	}

	if endpoint.Fetches() != 0 {
		t.Errorf("default pipeline must not force a refresh, got %d", endpoint.Fetches())
	}
}

func TestClient_WithLogger_LogsOnRefresh(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{}
	logger := &stubLogger{}
	client, _ := newTestPipeline(t, endpoint, api, WithLogger(logger))

	if _, err := Do[okResponse](context.Background(), client, animalsRequest()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if logger.count() == 0 {
		t.Fatal("expected logger to receive a refresh message")
	}
}

func TestClient_WithDecode(t *testing.T) {
	endpoint := &testutil.TokenEndpoint{}
	api := &apiRecorder{body: `ignored`}
	called := false
	client, store := newTestPipeline(t, endpoint, api, WithDecode(func(data []byte, v any) error {
		called = true
		return nil
	}))
	store.Update(oauth2client.NewToken("cached-token", time.Now().Add(time.Hour)))

	if _, err := Do[okResponse](context.Background(), client, animalsRequest()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}

	if !called {
		t.Error("custom decode function was not used")
	}
}

// benchTransport avoids network I/O for the cached hot path.
type benchTransport struct {
	body []byte
}

func (b *benchTransport) Send(ctx context.Context, req httpclient.Request) ([]byte, error) {
	return b.body, nil
}

type benchFetcher struct{}

func (benchFetcher) FetchToken(ctx context.Context) (oauth2client.Token, error) {
	return oauth2client.NewToken("bench-token", time.Now().Add(time.Hour)), nil
}

func BenchmarkDo_CachedToken(b *testing.B) {
	client := NewClient(&benchTransport{body: []byte(`{"ok":true}`)}, oauth2client.NewStore(), benchFetcher{})

	// Pre-fetch token
	if _, err := client.Token(context.Background()); err != nil {
		b.Fatalf("Token failed: %v", err)
	}

	ctx := context.Background()
	req := animalsRequest()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Do[okResponse](ctx, client, req)
	}
}

func BenchmarkClient_Token_Concurrent(b *testing.B) {
	client := NewClient(&benchTransport{body: []byte(`{}`)}, oauth2client.NewStore(), benchFetcher{})

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = client.Token(context.Background())
		}
	})
}
