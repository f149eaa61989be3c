package apiclient

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/AmmannChristian/go-petfinder/decode"
	"github.com/AmmannChristian/go-petfinder/httpclient"
	"github.com/AmmannChristian/go-petfinder/oauth2client"
)

// Transport sends a request descriptor and returns the raw response body.
// *httpclient.HTTPTransport satisfies it.
type Transport interface {
	Send(ctx context.Context, req httpclient.Request) ([]byte, error)
}

// TokenFetcher obtains a fresh access token. *oauth2client.Fetcher satisfies it.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (oauth2client.Token, error)
}

// DecodeFunc decodes a response body into the value pointed to by v.
// It matches the signature of json.Unmarshal.
type DecodeFunc func(data []byte, v any) error

// Logger is an interface for optional logging in Client.
// Implementations can log token refresh events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// Client is the authenticated request pipeline. It ensures a valid token
// exists before each authenticated request (reusing the Store or invoking the
// fetcher), attaches it as a bearer credential, sends the request, and
// decodes the response.
//
// Client is safe for concurrent use. Concurrent calls that find the cache
// cold serialize on an internal mutex so only one token fetch happens per
// expiry window; the losers reuse the winner's token.
type Client struct {
	transport Transport
	store     *oauth2client.Store
	fetcher   TokenFetcher
	decode    DecodeFunc
	logger    Logger

	retryUnauthorized bool

	refreshMu sync.Mutex
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithLogger sets a custom logger for token refresh events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(c *Client) {
		c.logger = log.Default()
	}
}

// WithDecode replaces the response decoder. The default is decode.Into
// (encoding/json with typed errors).
func WithDecode(fn DecodeFunc) Option {
	return func(c *Client) {
		c.decode = fn
	}
}

// WithRetryOnUnauthorized makes the pipeline refresh the token and retry
// exactly once when an authenticated request comes back 401 despite a
// locally valid looking token, e.g. after the server revoked it early.
// Off by default.
func WithRetryOnUnauthorized() Option {
	return func(c *Client) {
		c.retryUnauthorized = true
	}
}

// NewClient creates a request pipeline from its collaborators. A nil store
// is replaced with an empty one.
func NewClient(transport Transport, store *oauth2client.Store, fetcher TokenFetcher, opts ...Option) *Client {
	if store == nil {
		store = oauth2client.NewStore()
	}

	c := &Client{
		transport: transport,
		store:     store,
		fetcher:   fetcher,
		decode:    decode.Into,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns a valid access token, fetching one if the cache is empty or
// expired. It implements oauth2client.TokenProvider and uses double-checked
// locking so concurrent cache misses cause exactly one fetch.
func (c *Client) Token(ctx context.Context) (oauth2client.Token, error) {
	// Fast path: reuse the cached token without taking the refresh lock.
	if c.store.Valid() {
		if token, err := c.store.Cached(); err == nil {
			return token, nil
		}
		// Token expired between the check and the read; fall through to refresh.
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Double-check after acquiring the lock (another goroutine might have refreshed).
	if c.store.Valid() {
		if token, err := c.store.Cached(); err == nil {
			return token, nil
		}
	}

	return c.fetchAndStore(ctx)
}

// fetchAndStore must be called with refreshMu held.
func (c *Client) fetchAndStore(ctx context.Context) (oauth2client.Token, error) {
	token, err := c.fetcher.FetchToken(ctx)
	if err != nil {
		return oauth2client.Token{}, err
	}

	c.store.Update(token)

	if c.logger != nil {
		c.logger.Printf("apiclient: obtained new access token (expires: %s)", token.ExpiresAt().Format(time.RFC3339))
	}

	return token, nil
}

// send attaches a bearer token when the request requires one and performs the
// exchange, optionally refreshing and retrying once after a 401.
func (c *Client) send(ctx context.Context, req httpclient.Request) ([]byte, error) {
	outgoing := req
	if req.RequiresAuth {
		token, err := c.Token(ctx)
		if err != nil {
			return nil, err
		}
		outgoing = req.WithBearer(token.AccessToken())
	}

	data, err := c.transport.Send(ctx, outgoing)
	if err == nil || !c.retryUnauthorized || !req.RequiresAuth {
		return data, err
	}

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusUnauthorized {
		return nil, err
	}

	// The server rejected a token that still looked valid locally.
	// Force one refresh and retry; a second 401 propagates.
	c.refreshMu.Lock()
	token, refreshErr := c.fetchAndStore(ctx)
	c.refreshMu.Unlock()
	if refreshErr != nil {
		return nil, refreshErr
	}

	return c.transport.Send(ctx, req.WithBearer(token.AccessToken()))
}

// Do performs the described request and decodes the response into T.
//
// It fails with *oauth2client.AuthError when the token could not be obtained,
// *httpclient.StatusError when the server answered outside the 2xx range, and
// *decode.DecodeError when the body does not match T. Cancelling ctx aborts
// the underlying network call and surfaces ctx.Err through error wrapping.
func Do[T any](ctx context.Context, c *Client, req httpclient.Request) (T, error) {
	var out T

	data, err := c.send(ctx, req)
	if err != nil {
		return out, err
	}

	if err := c.decode(data, &out); err != nil {
		return out, err
	}

	return out, nil
}
