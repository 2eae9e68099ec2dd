package controller

import (
	"context"
	"errors"
	"log/slog"

	"servicemap/pkg/geo"
	"servicemap/pkg/mapview"
)

const (
	msgUnsupported    = "Geolocation is not supported by your browser"
	msgLocationFailed = "Unable to get your location: "
)

// ErrUnsupported is returned by a Locator that has no position provider.
var ErrUnsupported = errors.New("geolocation is not supported")

// PositionOptions are passed to the position provider.
type PositionOptions struct {
	EnableHighAccuracy bool
}

// Locator provides the user's position.
type Locator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (geo.Coordinates, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context, opts PositionOptions) (geo.Coordinates, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context, opts PositionOptions) (geo.Coordinates, error) {
	return f(ctx, opts)
}

// PlaceDescriber turns a position into a human readable place name.
type PlaceDescriber interface {
	Describe(ctx context.Context, pos geo.Coordinates) (string, error)
}

// LocateResult describes one LocateUser call. Exactly one of Marker, Err,
// Unsupported or Superseded is meaningful. Alert repeats the message passed
// to UI.Alert by this call, if any.
type LocateResult struct {
	Position    geo.Coordinates
	Place       string
	Marker      *mapview.Marker
	Err         error
	Alert       string
	Unsupported bool
	Superseded  bool
}

// LocateUser asks the Locator for the user's position. On success it shows a
// "you are here" marker, replacing any previous one, recenters the map and
// schedules the marker's removal. Failures are reported through UI.Alert.
// A newer call cancels an older one that is still waiting for a position.
func (c *Controller) LocateUser(ctx context.Context) LocateResult {
	if c.locator == nil {
		return LocateResult{Unsupported: true, Alert: c.alert(msgUnsupported)}
	}

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancelPrev != nil {
		c.cancelPrev()
	}
	c.locateSeq++
	seq := c.locateSeq
	c.cancelPrev = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.locateSeq == seq {
			c.cancelPrev = nil
		}
		c.mu.Unlock()
	}()

	pos, err := c.locator.CurrentPosition(reqCtx, PositionOptions{EnableHighAccuracy: true})
	if reqCtx.Err() != nil && ctx.Err() == nil {
		return LocateResult{Superseded: true}
	}
	if errors.Is(err, ErrUnsupported) {
		return LocateResult{Unsupported: true, Err: err, Alert: c.alert(msgUnsupported)}
	}
	if err == nil && !pos.Valid() {
		err = errors.New("position out of range")
	}
	if err != nil {
		return LocateResult{Err: err, Alert: c.alert(msgLocationFailed + err.Error())}
	}

	var place string
	if c.describer != nil {
		place, err = c.describer.Describe(reqCtx, pos)
		if err != nil {
			c.log.Warn("reverse_geocode_failed", slog.String("error", err.Error()))
			place = ""
		}
	}

	marker := mapview.NewMarker(pos, c.icons.User()).BindPopup(locationPopup(place))

	c.mu.Lock()
	if c.locateSeq != seq {
		c.mu.Unlock()
		return LocateResult{Superseded: true}
	}
	m := c.initLocked()
	if c.userMarker != nil {
		m.RemoveLayer(c.userMarker)
	}
	m.AddLayer(marker)
	m.SetView(pos, c.settings.LocateZoom)
	c.userMarker = marker
	c.mu.Unlock()

	c.after(c.settings.UserMarkerTTL, func() { c.removeUserMarker(marker) })
	return LocateResult{Position: pos, Place: place, Marker: marker}
}

// alert shows message through the UI and returns it.
func (c *Controller) alert(message string) string {
	c.ui.Alert(message)
	return message
}

// removeUserMarker takes marker off the map. It is a no-op if the marker is
// already gone.
func (c *Controller) removeUserMarker(marker *mapview.Marker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m != nil {
		c.m.RemoveLayer(marker)
	}
	if c.userMarker == marker {
		c.userMarker = nil
	}
}

// UserMarker returns the current "you are here" marker, or nil.
func (c *Controller) UserMarker() *mapview.Marker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userMarker
}
