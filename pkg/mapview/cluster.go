package mapview

import (
	"fmt"
	"sync"

	cluster "github.com/MadAppGang/gocluster"
	"github.com/google/uuid"

	"servicemap/pkg/geo"
)

// ClusterOptions tune the clustering index.
// PointSize is the clustering radius in pixels for tiles of TileSize pixels.
type ClusterOptions struct {
	MinZoom   int
	MaxZoom   int
	PointSize int
	TileSize  int
}

// DefaultClusterOptions groups markers within 80px on 256px tiles up to zoom 18.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{MinZoom: 0, MaxZoom: 18, PointSize: 80, TileSize: 256}
}

// Feature is one entry of a clustered view. Count is 1 for a single marker,
// in which case Marker is set.
type Feature struct {
	ID       string          `json:"id"`
	Position geo.Coordinates `json:"position"`
	Count    int             `json:"count"`
	Marker   *Marker         `json:"marker,omitempty"`
}

// ClusterGroup is a layer that owns markers and groups nearby ones per zoom level.
// The index is rebuilt lazily after the marker set changes.
type ClusterGroup struct {
	id   string
	opts ClusterOptions

	mu      sync.Mutex
	markers []*Marker
	index   *cluster.Cluster
	dirty   bool
}

// NewClusterGroup creates an empty clustering layer.
func NewClusterGroup(opts ClusterOptions) *ClusterGroup {
	if opts.TileSize <= 0 || opts.PointSize <= 0 || opts.MaxZoom < opts.MinZoom {
		opts = DefaultClusterOptions()
	}
	return &ClusterGroup{id: uuid.NewString(), opts: opts}
}

func (g *ClusterGroup) LayerID() string { return g.id }

// AddLayer adds a marker to the group.
func (g *ClusterGroup) AddLayer(m *Marker) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markers = append(g.markers, m)
	g.dirty = true
}

// ClearLayers drops every marker.
func (g *ClusterGroup) ClearLayers() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markers = nil
	g.index = nil
	g.dirty = false
}

// Markers returns a copy of the markers in insertion order.
func (g *ClusterGroup) Markers() []*Marker {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*Marker, len(g.markers))
	copy(out, g.markers)
	return out
}

// Len is the number of markers in the group.
func (g *ClusterGroup) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.markers)
}

// Clusters returns the clustered view of the markers inside box at zoom.
func (g *ClusterGroup) Clusters(zoom int, box geo.BBox) ([]Feature, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.markers) == 0 {
		return nil, nil
	}
	if g.index == nil || g.dirty {
		if err := g.rebuild(); err != nil {
			return nil, err
		}
	}

	var features []Feature
	for _, cp := range g.index.AllClusters(zoom) {
		pos := geo.Coordinates{Lat: cp.Y, Lng: cp.X}
		if !box.Contains(pos) {
			continue
		}
		if cp.NumPoints > 1 {
			features = append(features, Feature{
				ID:       fmt.Sprintf("cluster-%d", cp.Id),
				Position: pos,
				Count:    cp.NumPoints,
			})
			continue
		}
		if cp.Id < 0 || cp.Id >= len(g.markers) {
			continue
		}
		m := g.markers[cp.Id]
		features = append(features, Feature{ID: m.ID, Position: m.Position, Count: 1, Marker: m})
	}
	return features, nil
}

func (g *ClusterGroup) rebuild() error {
	c := cluster.NewCluster()
	c.MinZoom = g.opts.MinZoom
	c.MaxZoom = g.opts.MaxZoom
	c.PointSize = g.opts.PointSize
	c.TileSize = g.opts.TileSize

	points := make([]cluster.GeoPoint, len(g.markers))
	for i, m := range g.markers {
		points[i] = m
	}
	if err := c.ClusterPoints(points); err != nil {
		return fmt.Errorf("failed to build cluster index: %w", err)
	}
	g.index = c
	g.dirty = false
	return nil
}
