package mapview

import (
	"fmt"

	cluster "github.com/MadAppGang/gocluster"
	"github.com/google/uuid"

	"servicemap/pkg/geo"
)

// DefaultIconSize is the pixel size used for div icons.
const DefaultIconSize = 30

// Icon describes a marker icon drawn from HTML, e.g. a Font Awesome glyph.
type Icon struct {
	ClassName string `json:"className"`
	HTML      string `json:"html"`
	Size      [2]int `json:"iconSize"`
}

// DivIcon builds a square icon rendering the Font Awesome glyph (e.g. "fa-taxi").
func DivIcon(className, glyph string) Icon {
	return Icon{
		ClassName: className,
		HTML:      fmt.Sprintf(`<i class="fas %s"></i>`, glyph),
		Size:      [2]int{DefaultIconSize, DefaultIconSize},
	}
}

// Marker is a single point on the map.
type Marker struct {
	ID       string            `json:"id"`
	Position geo.Coordinates   `json:"position"`
	Icon     Icon              `json:"icon"`
	Popup    string            `json:"popup,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// NewMarker creates a marker with a fresh layer ID.
func NewMarker(pos geo.Coordinates, icon Icon) *Marker {
	return &Marker{ID: uuid.NewString(), Position: pos, Icon: icon}
}

// BindPopup sets the popup HTML.
func (m *Marker) BindPopup(html string) *Marker {
	m.Popup = html
	return m
}

// Tag attaches a key/value label to the marker.
func (m *Marker) Tag(key, value string) *Marker {
	if m.Tags == nil {
		m.Tags = make(map[string]string)
	}
	m.Tags[key] = value
	return m
}

func (m *Marker) LayerID() string { return m.ID }

// GetCoordinates lets markers be indexed by gocluster.
func (m *Marker) GetCoordinates() cluster.GeoCoordinates {
	return cluster.GeoCoordinates{Lon: m.Position.Lng, Lat: m.Position.Lat}
}
