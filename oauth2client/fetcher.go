package oauth2client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/AmmannChristian/go-petfinder/decode"
	"github.com/AmmannChristian/go-petfinder/httpclient"
)

// DefaultTokenPath is the token endpoint path of the pet API.
const DefaultTokenPath = "/v2/oauth2/token"

// grantType is fixed: this package implements the client-credentials flow only.
const grantType = "client_credentials"

// Transport sends a request descriptor and returns the raw response body.
// *httpclient.HTTPTransport satisfies it.
type Transport interface {
	Send(ctx context.Context, req httpclient.Request) ([]byte, error)
}

// Fetcher obtains access tokens from the token endpoint using the
// client-credentials grant. It holds fixed credentials injected at
// construction and keeps no other state; caching belongs to Store.
type Fetcher struct {
	transport    Transport
	tokenPath    string
	clientID     string
	clientSecret string
	decode       func(data []byte, v any) error
}

// FetcherOption is a functional option for configuring a Fetcher.
type FetcherOption func(*Fetcher)

// WithTokenPath overrides the token endpoint path.
func WithTokenPath(path string) FetcherOption {
	return func(f *Fetcher) {
		f.tokenPath = path
	}
}

// NewFetcher creates a token fetcher for the given client credentials.
func NewFetcher(transport Transport, clientID, clientSecret string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		transport:    transport,
		tokenPath:    DefaultTokenPath,
		clientID:     clientID,
		clientSecret: clientSecret,
		decode:       decode.Into,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchToken requests a fresh access token. Any transport or decoding
// failure is wrapped in *AuthError. The request bootstraps authentication
// and therefore never carries a bearer token itself.
func (f *Fetcher) FetchToken(ctx context.Context) (Token, error) {
	params := url.Values{}
	params.Set("grant_type", grantType)
	params.Set("client_id", f.clientID)
	params.Set("client_secret", f.clientSecret)

	req := httpclient.Request{
		Path:         f.tokenPath,
		Method:       http.MethodPost,
		Params:       params,
		RequiresAuth: false,
	}

	data, err := f.transport.Send(ctx, req)
	if err != nil {
		return Token{}, &AuthError{Err: err}
	}

	var resp tokenResponse
	if err := f.decode(data, &resp); err != nil {
		return Token{}, &AuthError{Err: err}
	}

	token, err := resp.token(time.Now())
	if err != nil {
		return Token{}, &AuthError{Err: err}
	}

	return token, nil
}
