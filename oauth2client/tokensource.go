package oauth2client

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider supplies a valid access token, fetching or refreshing as
// needed. *apiclient.Client implements it.
type TokenProvider interface {
	Token(ctx context.Context) (Token, error)
}

// TokenSource adapts a TokenProvider to the golang.org/x/oauth2 TokenSource
// interface, so the cached pipeline token can feed libraries that expect one
// (Google API clients, oauth2.NewClient, and similar).
//
// The context is captured at construction because oauth2.TokenSource.Token
// takes none.
func TokenSource(ctx context.Context, p TokenProvider) oauth2.TokenSource {
	if ctx == nil {
		ctx = context.Background()
	}

	return &tokenSource{ctx: ctx, provider: p}
}

type tokenSource struct {
	ctx      context.Context
	provider TokenProvider
}

// Token implements oauth2.TokenSource.
func (s *tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.provider.Token(s.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: token.AccessToken(),
		TokenType:   "Bearer",
		Expiry:      token.ExpiresAt(),
	}, nil
}
