// Package apiclient is the authenticated request pipeline of go-petfinder.
//
// Client composes a Transport, a token Store, a TokenFetcher and a decode
// function, all injected at construction so each can be replaced with a test
// double. Do sends a request descriptor through the pipeline: it ensures a
// valid access token exists (reusing the cache or fetching lazily), attaches
// it as a bearer credential only when the request asks for one, performs the
// exchange, and decodes the response body into the caller's type.
//
// Token refresh is serialized: concurrent calls that all observe an expired
// cache take a single internal lock, so exactly one token request reaches the
// OAuth2 endpoint per expiry window and every caller reuses its result.
//
// # Quick Start
//
//	httpClient, _ := httpclient.NewBuilder().Build()
//	transport := httpclient.NewHTTPTransport("https://api.petfinder.com", httpClient)
//	fetcher := oauth2client.NewFetcher(transport, clientID, clientSecret)
//
//	client := apiclient.NewClient(transport, oauth2client.NewStore(), fetcher,
//	    apiclient.WithLoggingEnabled(),
//	)
//
//	animals, err := apiclient.Do[petapi.SearchAnimalsResponse](ctx, client,
//	    petapi.NewSearchAnimalsRequest(1, 20))
//
// # Notes
//
//   - Errors are never swallowed: auth failures surface as *oauth2client.AuthError,
//     non-2xx responses as *httpclient.StatusError, schema mismatches as
//     *decode.DecodeError.
//   - WithRetryOnUnauthorized opts into a single refresh-and-retry after a 401
//     against a locally valid looking token; there is no retry loop.
package apiclient
