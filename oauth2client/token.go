package oauth2client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is an immutable bearer access token together with the instant it
// expires. Tokens are created by decoding a token-endpoint response; the
// expiry is always a concrete instant, derived from the endpoint's
// "expires in N seconds" answer plus the fetch time.
type Token struct {
	accessToken string
	expiresAt   time.Time
}

// NewToken creates a token value.
func NewToken(accessToken string, expiresAt time.Time) Token {
	return Token{accessToken: accessToken, expiresAt: expiresAt}
}

// AccessToken returns the opaque bearer value.
func (t Token) AccessToken() string {
	return t.accessToken
}

// ExpiresAt returns the instant the token expires.
func (t Token) ExpiresAt() time.Time {
	return t.expiresAt
}

// tokenResponse mirrors the token endpoint's JSON body. The field names are
// an external contract owned by the remote API.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token converts the endpoint response into a Token, anchoring the expiry at
// the fetch time. When the endpoint omits expires_in but issues JWTs, the
// exp claim serves as fallback.
func (r tokenResponse) token(fetchedAt time.Time) (Token, error) {
	if r.AccessToken == "" {
		return Token{}, errors.New("token endpoint returned an empty access_token")
	}

	if r.ExpiresIn > 0 {
		return NewToken(r.AccessToken, fetchedAt.Add(time.Duration(r.ExpiresIn)*time.Second)), nil
	}

	if exp, ok := jwtExpiry(r.AccessToken); ok {
		return NewToken(r.AccessToken, exp), nil
	}

	return Token{}, errors.New("token endpoint returned no expires_in and the token carries no exp claim")
}

// jwtExpiry extracts the exp claim from a JWT without verifying its
// signature. Verification belongs to the issuing server; the client only
// needs the expiry instant.
func jwtExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
