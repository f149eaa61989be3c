// Package testutil provides test helpers for go-petfinder packages.
//
// It includes utilities to spin up IPv4-only local HTTP servers (avoiding
// IPv6 in sandboxes), a recording client-credentials token endpoint, and
// inline http.RoundTripper implementations.
//
// # Utilities
//
//   - NewLocalHTTPServer: start an httptest server bound to 127.0.0.1
//   - TokenEndpoint: stub token endpoint that counts fetches and records
//     submitted forms and Authorization headers
//   - StaticJSONHandler: fixed 200 JSON responses
//   - RoundTripFunc: inline http.RoundTripper implementations
package testutil
