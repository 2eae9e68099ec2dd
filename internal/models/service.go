package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"servicemap/pkg/geo"
)

// Known service categories. Anything else is rendered with the generic icon.
const (
	Hospital = "hospital"
	Hostel   = "hostel"
	Taxi     = "taxi"
	Other    = "other"

	// FilterAll selects every record regardless of type.
	FilterAll = "all"
)

// ID is a record identifier. The JSON feed uses integers but strings are accepted too.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or a string: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// ServiceRecord is a single point of interest shown on the map.
type ServiceRecord struct {
	ID      ID      `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Coordinates returns the record position.
func (s ServiceRecord) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lat: s.Lat, Lng: s.Lng}
}

// Plottable reports whether the record has a usable WGS84 position.
// A record sitting exactly on (0,0) is treated as having no position at all.
func (s ServiceRecord) Plottable() bool {
	c := s.Coordinates()
	return c.Valid() && !c.IsZero()
}

// TypeLabel is the type with its first letter upper-cased, as shown in popups.
func (s ServiceRecord) TypeLabel() string {
	if s.Type == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s.Type)
	return string(unicode.ToUpper(r)) + s.Type[size:]
}

// Matches reports whether the lower-cased term occurs in the name or the address.
func (s ServiceRecord) Matches(term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(s.Name), term) {
		return true
	}
	return s.Address != "" && strings.Contains(strings.ToLower(s.Address), term)
}
