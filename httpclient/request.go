package httpclient

import (
	"net/http"
	"net/url"
)

// Request describes a single API call: where it goes, how it is sent, and
// whether it must carry a bearer credential. It is a plain description that
// is built per call and discarded afterwards; constructing one performs no I/O.
type Request struct {
	// Path is the request path relative to the transport's base URL,
	// e.g. "/v2/animals".
	Path string

	// Method is the HTTP method. Defaults to GET when empty.
	Method string

	// Params are the request parameters. They are sent as query parameters
	// for GET requests and as a form-encoded body for POST requests.
	Params url.Values

	// RequiresAuth marks whether the transport must attach an
	// Authorization header. The token endpoint itself sets this to false.
	RequiresAuth bool

	bearer string
}

// WithBearer returns a copy of the request carrying the given access token.
// The transport turns it into an "Authorization: Bearer <token>" header.
// The zero value means no credential is attached.
func (r Request) WithBearer(token string) Request {
	r.bearer = token
	return r
}

// method returns the effective HTTP method.
func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}
