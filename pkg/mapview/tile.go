package mapview

import "github.com/google/uuid"

const (
	// OSMTileURL is the public OpenStreetMap tile template.
	OSMTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	// OSMAttribution is the attribution OpenStreetMap requires next to its tiles.
	OSMAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// TileLayer is a raster tile source. Tiles are fetched by the client.
type TileLayer struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// NewTileLayer creates a tile layer for the URL template.
func NewTileLayer(url, attribution string) *TileLayer {
	return &TileLayer{ID: uuid.NewString(), URL: url, Attribution: attribution}
}

func (t *TileLayer) LayerID() string { return t.ID }
