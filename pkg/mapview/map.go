// Package mapview is a small server-side model of a slippy map: a view
// (center and zoom), a set of layers, markers with icons and popups, and a
// clustering layer backed by gocluster. It holds no rendering code; clients
// draw whatever the model exposes.
package mapview

import (
	"sync"

	"servicemap/pkg/geo"
)

// Layer is anything that can be attached to a Map.
type Layer interface {
	LayerID() string
}

// Map holds the current view and the attached layers in insertion order.
// It is safe for concurrent use.
type Map struct {
	mu     sync.RWMutex
	center geo.Coordinates
	zoom   int
	layers []Layer
}

// New creates a map view at center and zoom.
func New(center geo.Coordinates, zoom int) *Map {
	return &Map{center: center, zoom: zoom}
}

// SetView recenters the map.
func (m *Map) SetView(center geo.Coordinates, zoom int) *Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = center
	m.zoom = zoom
	return m
}

// View returns the current center and zoom.
func (m *Map) View() (geo.Coordinates, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center, m.zoom
}

// AddLayer attaches l. Adding a layer that is already attached does nothing.
func (m *Map) AddLayer(l Layer) *Map {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(l) >= 0 {
		return m
	}
	m.layers = append(m.layers, l)
	return m
}

// RemoveLayer detaches l and reports whether it was attached.
// Removing a layer that is not attached is a no-op.
func (m *Map) RemoveLayer(l Layer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(l)
	if i < 0 {
		return false
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	return true
}

// HasLayer reports whether l is attached.
func (m *Map) HasLayer(l Layer) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexOf(l) >= 0
}

// Layers returns a copy of the attached layers.
func (m *Map) Layers() []Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

func (m *Map) indexOf(l Layer) int {
	if l == nil {
		return -1
	}
	id := l.LayerID()
	for i, existing := range m.layers {
		if existing.LayerID() == id {
			return i
		}
	}
	return -1
}
