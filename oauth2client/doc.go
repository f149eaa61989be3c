// Package oauth2client implements the client-credentials side of the pet
// API's authentication: the token value, the process-wide token cache, and
// the fetcher that obtains tokens from the token endpoint.
//
// Token is an immutable access-token/expiry pair. Store caches the current
// token behind an RWMutex and answers validity queries with a configurable
// expiry leeway, so a token never lapses between the check and the request
// that uses it. Fetcher posts the fixed grant parameters to the token
// endpoint, without ever attaching a bearer token to that request, and wraps
// any failure in *AuthError so callers can distinguish "couldn't
// authenticate" from an authenticated call that failed.
//
// # Features
//
//   - Client-credentials grant against POST /v2/oauth2/token
//   - Process-wide token cache with early-expiry leeway (Store)
//   - Expiry from expires_in, with a JWT exp-claim fallback
//   - golang.org/x/oauth2 TokenSource adapter for interop
//   - gRPC unary and stream client interceptors over any TokenProvider
//
// # Quick Start
//
//	transport := httpclient.NewHTTPTransport("https://api.petfinder.com", nil)
//	fetcher := oauth2client.NewFetcher(transport, "client-id", "client-secret")
//	store := oauth2client.NewStore()
//
//	token, err := fetcher.FetchToken(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	store.Update(token)
//
// Most callers never use Fetcher and Store directly; the request pipeline in
// package apiclient composes them and refreshes lazily on expiry.
package oauth2client
