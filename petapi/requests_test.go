package petapi

import (
	"net/http"
	"testing"

	"github.com/AmmannChristian/go-petfinder/httpclient"
)

func TestRequestVariants(t *testing.T) {
	tests := []struct {
		name       string
		request    httpclient.Request
		wantPath   string
		wantMethod string
		wantParams map[string]string
	}{
		{
			name:       "search animals with paging",
			request:    NewSearchAnimalsRequest(2, 20),
			wantPath:   "/v2/animals",
			wantMethod: http.MethodGet,
			wantParams: map[string]string{"page": "2", "limit": "20"},
		},
		{
			name:       "search animals with defaults",
			request:    NewSearchAnimalsRequest(0, 0),
			wantPath:   "/v2/animals",
			wantMethod: http.MethodGet,
			wantParams: map[string]string{},
		},
		{
			name:       "animal by id",
			request:    NewGetAnimalRequest(124),
			wantPath:   "/v2/animals/124",
			wantMethod: http.MethodGet,
		},
		{
			name:       "animal types",
			request:    NewAnimalTypesRequest(),
			wantPath:   "/v2/types",
			wantMethod: http.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.request.Path != tt.wantPath {
				t.Errorf("expected path %s, got %s", tt.wantPath, tt.request.Path)
			}

			if tt.request.Method != tt.wantMethod {
				t.Errorf("expected method %s, got %s", tt.wantMethod, tt.request.Method)
			}

			if !tt.request.RequiresAuth {
				t.Error("every pet API variant requires authentication")
			}

			for key, want := range tt.wantParams {
				if got := tt.request.Params.Get(key); got != want {
					t.Errorf("expected param %s=%s, got %s", key, want, got)
				}
			}

			if len(tt.wantParams) == 0 && len(tt.request.Params) != 0 {
				t.Errorf("expected no params, got %v", tt.request.Params)
			}
		})
	}
}
