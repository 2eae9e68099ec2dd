package source

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"servicemap/internal/models"
)

const userAgent = "servicemap/1.0"

// HTTPSource fetches the dataset from a URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource returns a source for url. A nil client means http.DefaultClient.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, httpClient: client}
}

func (s *HTTPSource) Name() string { return "http:" + s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.ServiceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return Decode(resp.Body)
}

// FileSource reads the dataset from a local JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string { return "file:" + s.path }

func (s *FileSource) Fetch(ctx context.Context) ([]models.ServiceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
