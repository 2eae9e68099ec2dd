package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicemap/internal/models"
)

const twoServices = `[
  {"id": 1, "name": "Jigjiga General Hospital", "type": "hospital", "phone": "+251900000001", "lat": 9.3501, "lng": 42.8001, "address": "Main Road, Jigjiga"},
  {"id": "p-7", "name": "Corner Pharmacy", "type": "pharmacy", "phone": "+251900000007", "lat": 9.351, "lng": 42.801}
]`

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{name: "array", input: twoServices, wantLen: 2},
		{name: "empty array", input: `[]`, wantLen: 0},
		{name: "empty document", input: ``, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "object", input: `{"services": []}`, wantErr: true},
		{name: "truncated", input: `[{"id": 1,`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestDecode_Fields(t *testing.T) {
	got, err := Decode(strings.NewReader(twoServices))
	require.NoError(t, err)

	assert.Equal(t, models.ServiceRecord{
		ID: "1", Name: "Jigjiga General Hospital", Type: "hospital", Phone: "+251900000001",
		Lat: 9.3501, Lng: 42.8001, Address: "Main Road, Jigjiga",
	}, got[0])
	assert.Equal(t, models.ID("p-7"), got[1].ID)
	assert.Empty(t, got[1].Address)
}

func TestHTTPSource_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/data/services.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoServices))
	})
	mux.HandleFunc("/broken.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tests := []struct {
		name    string
		path    string
		wantLen int
		wantErr bool
	}{
		{name: "ok", path: "/data/services.json", wantLen: 2},
		{name: "not found", path: "/missing.json", wantErr: true},
		{name: "malformed", path: "/broken.json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewHTTPSource(server.URL+tt.path, server.Client())
			got, err := src.Fetch(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPSource(url, nil).Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.json")
	require.NoError(t, os.WriteFile(path, []byte(twoServices), 0o600))

	got, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	assert.Error(t, err)
}

type stubSource struct {
	name    string
	records []models.ServiceRecord
	err     error
	calls   int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(context.Context) ([]models.ServiceRecord, error) {
	s.calls++
	return s.records, s.err
}

func TestChain_Fetch(t *testing.T) {
	failing := &stubSource{name: "a", err: errors.New("down")}
	working := &stubSource{name: "b", records: models.FallbackServices()}
	unused := &stubSource{name: "c"}

	chain := Chain{failing, working, unused}
	got, err := chain.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 6)
	assert.Equal(t, 0, unused.calls)
	assert.Equal(t, "chain(a,b,c)", chain.Name())

	_, err = Chain{failing}.Fetch(context.Background())
	assert.ErrorContains(t, err, "a: down")

	_, err = Chain{}.Fetch(context.Background())
	assert.Error(t, err)
}
