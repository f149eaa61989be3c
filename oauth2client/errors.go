package oauth2client

import "errors"

// ErrNoTokenCached is returned by Store.Cached when no valid token is held.
// A correctly composed pipeline checks validity first and never observes it.
var ErrNoTokenCached = errors.New("oauth2client: no valid token cached")

// AuthError wraps a transport or decoding failure that occurred while
// obtaining a token, so callers can tell "couldn't authenticate" apart from
// an ordinary failed API call.
type AuthError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return "oauth2client: authentication failed: " + e.Err.Error()
}

// Unwrap returns the wrapped failure. Context cancellation stays visible
// through errors.Is.
func (e *AuthError) Unwrap() error {
	return e.Err
}
