package petapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/AmmannChristian/go-petfinder/httpclient"
)

// The pet API exposes a small, closed set of calls. Each constructor below
// maps one call to its request descriptor; there is no open-ended
// path-and-params surface.

// NewSearchAnimalsRequest describes GET /v2/animals with optional paging.
// Zero values leave the server defaults in place.
func NewSearchAnimalsRequest(page, limit int) httpclient.Request {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	return httpclient.Request{
		Path:         "/v2/animals",
		Method:       http.MethodGet,
		Params:       params,
		RequiresAuth: true,
	}
}

// NewGetAnimalRequest describes GET /v2/animals/{id}.
func NewGetAnimalRequest(id int64) httpclient.Request {
	return httpclient.Request{
		Path:         "/v2/animals/" + strconv.FormatInt(id, 10),
		Method:       http.MethodGet,
		RequiresAuth: true,
	}
}

// NewAnimalTypesRequest describes GET /v2/types.
func NewAnimalTypesRequest() httpclient.Request {
	return httpclient.Request{
		Path:         "/v2/types",
		Method:       http.MethodGet,
		RequiresAuth: true,
	}
}
