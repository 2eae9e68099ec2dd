// Package location is a small Nominatim client used to name the place a
// user has been located at.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"servicemap/pkg/geo"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Location holds the useful parts of a reverse lookup.
type Location struct {
	Name        string
	DisplayName string
	Road        string
	Suburb      string
	City        string
	Region      string
	Country     string
	Type        string
}

// nominatimResponse is shaped for the /reverse API response.
type nominatimResponse struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Type        string `json:"type"`
	AddressType string `json:"addresstype"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
	Address     struct {
		Road    string `json:"road"`
		Suburb  string `json:"suburb"`
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"address"`
}

type Client struct {
	baseURL   string
	userAgent string
	language  string
	http      *http.Client
}

// NewClient creates a client for baseURL, or the public instance when empty.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "servicemap/1.0",
		language:  "en",
		http:      httpClient,
	}
}

// Reverse looks up the place at pos.
func (c *Client) Reverse(ctx context.Context, pos geo.Coordinates) (*Location, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("invalid position %v", pos)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(pos.Lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(pos.Lng, 'f', 6, 64))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("accept-language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Error != "" {
		return nil, fmt.Errorf("nominatim: %s", result.Error)
	}

	city := result.Address.City
	if city == "" {
		city = result.Address.Town
	}
	if city == "" {
		city = result.Address.Village
	}
	region := result.Address.State
	if region == "" {
		region = result.Address.Region
	}

	return &Location{
		Name:        result.Name,
		DisplayName: result.DisplayName,
		Road:        result.Address.Road,
		Suburb:      result.Address.Suburb,
		City:        city,
		Region:      region,
		Country:     result.Address.Country,
		Type:        result.Type,
	}, nil
}

// Describe returns a short "suburb, city" style label for pos.
func (c *Client) Describe(ctx context.Context, pos geo.Coordinates) (string, error) {
	loc, err := c.Reverse(ctx, pos)
	if err != nil {
		return "", err
	}
	return loc.Label(), nil
}

// Label joins the most specific known parts of the location.
func (l *Location) Label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Suburb, l.Road, l.City, l.Country} {
		if p == "" || contains(parts, p) {
			continue
		}
		parts = append(parts, p)
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) == 0 {
		return l.DisplayName
	}
	return strings.Join(parts, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
