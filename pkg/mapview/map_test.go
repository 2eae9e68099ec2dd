package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicemap/pkg/geo"
)

func TestMap_AddLayerIsIdempotent(t *testing.T) {
	m := New(geo.Coordinates{Lat: 9.35, Lng: 42.8}, 14)
	tiles := NewTileLayer(OSMTileURL, OSMAttribution)

	m.AddLayer(tiles).AddLayer(tiles)

	require.Len(t, m.Layers(), 1)
	assert.True(t, m.HasLayer(tiles))
}

func TestMap_RemoveLayerTwiceIsNoop(t *testing.T) {
	m := New(geo.Coordinates{}, 3)
	marker := NewMarker(geo.Coordinates{Lat: 1, Lng: 1}, DivIcon("custom-icon", "fa-user"))
	m.AddLayer(marker)

	assert.True(t, m.RemoveLayer(marker))
	assert.NotPanics(t, func() {
		assert.False(t, m.RemoveLayer(marker))
	})
	assert.False(t, m.HasLayer(marker))
	assert.False(t, m.RemoveLayer(nil))
}

func TestMap_SetView(t *testing.T) {
	m := New(geo.Coordinates{Lat: 9.35, Lng: 42.8}, 14)
	m.SetView(geo.Coordinates{Lat: 1, Lng: 2}, 15)

	center, zoom := m.View()
	assert.Equal(t, geo.Coordinates{Lat: 1, Lng: 2}, center)
	assert.Equal(t, 15, zoom)
}

func TestDivIcon(t *testing.T) {
	icon := DivIcon("custom-icon taxi-icon", "fa-taxi")
	assert.Equal(t, `<i class="fas fa-taxi"></i>`, icon.HTML)
	assert.Equal(t, [2]int{30, 30}, icon.Size)
}

func TestMarker_Tag(t *testing.T) {
	m := NewMarker(geo.Coordinates{Lat: 1, Lng: 2}, Icon{}).Tag("type", "taxi").Tag("name", "city taxi")
	assert.Equal(t, map[string]string{"type": "taxi", "name": "city taxi"}, m.Tags)
	assert.NotEmpty(t, m.LayerID())

	c := m.GetCoordinates()
	assert.Equal(t, 2.0, c.Lon)
	assert.Equal(t, 1.0, c.Lat)
}
