package petapi

import (
	"context"
	"net/http"

	"github.com/AmmannChristian/go-petfinder/apiclient"
	"github.com/AmmannChristian/go-petfinder/httpclient"
	"github.com/AmmannChristian/go-petfinder/oauth2client"
)

// DefaultBaseURL is the production pet API endpoint.
const DefaultBaseURL = "https://api.petfinder.com"

// Client is a convenience wrapper that wires the full pipeline (transport,
// token store, token fetcher) for the pet API and exposes one method per
// request variant.
type Client struct {
	api *apiclient.Client
}

// Config holds the constants injected at construction. ClientID and
// ClientSecret are the OAuth2 client credentials of the calling application.
type Config struct {
	// BaseURL defaults to DefaultBaseURL when empty.
	BaseURL string

	ClientID     string
	ClientSecret string

	// HTTPClient defaults to the Builder's default client when nil.
	HTTPClient *http.Client
}

// NewClient wires transport, store and fetcher into a ready pipeline.
// Additional pipeline behavior (logging, 401 retry) is configured through
// apiclient options.
func NewClient(cfg Config, opts ...apiclient.Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	transport := httpclient.NewHTTPTransport(baseURL, cfg.HTTPClient)
	fetcher := oauth2client.NewFetcher(transport, cfg.ClientID, cfg.ClientSecret)

	return &Client{
		api: apiclient.NewClient(transport, oauth2client.NewStore(), fetcher, opts...),
	}
}

// API exposes the underlying pipeline, e.g. for oauth2client.TokenSource or
// the gRPC interceptors.
func (c *Client) API() *apiclient.Client {
	return c.api
}

// SearchAnimals lists adoptable animals. Zero page or limit leaves the
// server defaults in place.
func (c *Client) SearchAnimals(ctx context.Context, page, limit int) (SearchAnimalsResponse, error) {
	return apiclient.Do[SearchAnimalsResponse](ctx, c.api, NewSearchAnimalsRequest(page, limit))
}

// GetAnimal fetches a single animal by id.
func (c *Client) GetAnimal(ctx context.Context, id int64) (Animal, error) {
	resp, err := apiclient.Do[GetAnimalResponse](ctx, c.api, NewGetAnimalRequest(id))
	if err != nil {
		return Animal{}, err
	}

	return resp.Animal, nil
}

// AnimalTypes lists the species the API serves.
func (c *Client) AnimalTypes(ctx context.Context) ([]AnimalType, error) {
	resp, err := apiclient.Do[AnimalTypesResponse](ctx, c.api, NewAnimalTypesRequest())
	if err != nil {
		return nil, err
	}

	return resp.Types, nil
}
