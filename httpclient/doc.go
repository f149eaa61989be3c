// Package httpclient sends declarative API requests over HTTP.
//
// A Request describes a single call (path, method, parameters, whether it
// needs authentication) without holding any live connection. HTTPTransport
// turns that description into an HTTP exchange against a fixed base URL and
// returns the raw response bytes, failing with *StatusError whenever the
// server answers outside the 2xx range. The Builder constructs the underlying
// *http.Client with timeouts, TLS and mTLS support.
//
// # Quick Start
//
//	client, err := httpclient.NewBuilder().
//	    WithTimeout(10 * time.Second).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	transport := httpclient.NewHTTPTransport("https://api.petfinder.com", client)
//	data, err := transport.Send(ctx, httpclient.Request{
//	    Path:         "/v2/animals",
//	    RequiresAuth: true,
//	}.WithBearer(token))
//
// # Notes
//
//   - Parameters are sent as query parameters for GET and as a form-encoded body otherwise.
//   - The transport attaches no credentials on its own; the request pipeline in
//     package apiclient decides per request whether a bearer token is added.
package httpclient
