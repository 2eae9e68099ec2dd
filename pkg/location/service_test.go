package location_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicemap/pkg/geo"
	"servicemap/pkg/location"
)

func TestClient_Reverse(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"place_id": 1,
			"type": "residential",
			"name": "",
			"display_name": "Kebele 05, Jigjiga, Somali Region, Ethiopia",
			"address": {"suburb": "Kebele 05", "city": "Jigjiga", "state": "Somali Region", "country": "Ethiopia"}
		}`))
	}))
	defer srv.Close()

	c := location.NewClient(srv.URL, srv.Client())
	loc, err := c.Reverse(context.Background(), geo.Coordinates{Lat: 9.35, Lng: 42.8})

	require.NoError(t, err)
	assert.Contains(t, gotQuery, "lat=9.350000")
	assert.Contains(t, gotQuery, "lon=42.800000")
	assert.Equal(t, "servicemap/1.0", gotAgent)
	assert.Equal(t, "Jigjiga", loc.City)
	assert.Equal(t, "Somali Region", loc.Region)
	assert.Equal(t, "Kebele 05, Jigjiga", loc.Label())
}

func TestClient_Describe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "town fallback",
			status: http.StatusOK,
			body:   `{"name":"Taiwan Market","address":{"town":"Jigjiga","country":"Ethiopia"}}`,
			want:   "Taiwan Market, Jigjiga",
		},
		{
			name:   "display name only",
			status: http.StatusOK,
			body:   `{"display_name":"Somewhere"}`,
			want:   "Somewhere",
		},
		{
			name:    "api error",
			status:  http.StatusOK,
			body:    `{"error":"Unable to geocode"}`,
			wantErr: true,
		},
		{
			name:    "bad status",
			status:  http.StatusTooManyRequests,
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := location.NewClient(srv.URL, srv.Client()).Describe(context.Background(), geo.Coordinates{Lat: 9.35, Lng: 42.8})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_RejectsInvalidPosition(t *testing.T) {
	c := location.NewClient("http://127.0.0.1:0", nil)
	_, err := c.Reverse(context.Background(), geo.Coordinates{Lat: 91})
	assert.Error(t, err)
}
