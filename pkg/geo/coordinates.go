// Package geo holds WGS84 coordinate helpers shared by the map and the data layer.
package geo

import "math"

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both values are finite and inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// IsZero reports whether c is the zero value, which is what a record without a position decodes to.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// BBox is a lon/lat bounding box.
type BBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// World covers every valid position.
func World() BBox {
	return BBox{West: -180, South: -90, East: 180, North: 90}
}

// Valid reports whether the box corners are valid positions and south is not above north.
// West may be greater than east for boxes crossing the antimeridian.
func (b BBox) Valid() bool {
	sw := Coordinates{Lat: b.South, Lng: b.West}
	ne := Coordinates{Lat: b.North, Lng: b.East}
	return sw.Valid() && ne.Valid() && b.South <= b.North
}

// Contains reports whether c lies inside the box, edges included.
func (b BBox) Contains(c Coordinates) bool {
	if c.Lat < b.South || c.Lat > b.North {
		return false
	}
	if b.West <= b.East {
		return c.Lng >= b.West && c.Lng <= b.East
	}
	return c.Lng >= b.West || c.Lng <= b.East
}
