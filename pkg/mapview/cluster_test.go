package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicemap/pkg/geo"
)

var jigjiga = []geo.Coordinates{
	{Lat: 9.3501, Lng: 42.8001},
	{Lat: 9.3512, Lng: 42.8032},
	{Lat: 9.3530, Lng: 42.7978},
	{Lat: 9.3550, Lng: 42.8050},
	{Lat: 9.3480, Lng: 42.8020},
	{Lat: 9.3520, Lng: 42.7950},
}

func newGroup(t *testing.T) *ClusterGroup {
	t.Helper()
	g := NewClusterGroup(DefaultClusterOptions())
	for _, pos := range jigjiga {
		g.AddLayer(NewMarker(pos, DivIcon("custom-icon", "fa-map-marker-alt")))
	}
	return g
}

func TestClusterGroup_LowZoomGroupsEverything(t *testing.T) {
	g := newGroup(t)

	features, err := g.Clusters(0, geo.World())
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, 6, features[0].Count)
	assert.Nil(t, features[0].Marker)
}

func TestClusterGroup_BeyondMaxZoomReturnsMarkers(t *testing.T) {
	g := newGroup(t)

	features, err := g.Clusters(22, geo.World())
	require.NoError(t, err)
	require.Len(t, features, 6)

	seen := make(map[string]bool)
	for _, f := range features {
		require.NotNil(t, f.Marker)
		assert.Equal(t, 1, f.Count)
		seen[f.Marker.ID] = true
	}
	assert.Len(t, seen, 6)
}

func TestClusterGroup_BoundingBoxFilters(t *testing.T) {
	g := newGroup(t)

	box := geo.BBox{West: 42.79, South: 9.35, East: 42.80, North: 9.36}
	features, err := g.Clusters(22, box)
	require.NoError(t, err)
	for _, f := range features {
		assert.True(t, box.Contains(f.Position))
	}
	assert.Len(t, features, 2)
}

func TestClusterGroup_ClearLayers(t *testing.T) {
	g := newGroup(t)
	_, err := g.Clusters(0, geo.World())
	require.NoError(t, err)

	g.ClearLayers()

	assert.Equal(t, 0, g.Len())
	features, err := g.Clusters(0, geo.World())
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestClusterGroup_RebuildsAfterAdd(t *testing.T) {
	g := NewClusterGroup(ClusterOptions{})
	g.AddLayer(NewMarker(jigjiga[0], Icon{}))

	features, err := g.Clusters(22, geo.World())
	require.NoError(t, err)
	require.Len(t, features, 1)

	g.AddLayer(NewMarker(geo.Coordinates{Lat: -33.9, Lng: 18.4}, Icon{}))
	features, err = g.Clusters(22, geo.World())
	require.NoError(t, err)
	assert.Len(t, features, 2)
}
