// Package controller binds the services dataset to the map: it loads the
// data, renders one marker per record into the clustering layer and reacts
// to the filter, search and locate controls.
//
// The controller never touches UI elements directly. Whatever drives it
// (the HTTP adapter in production, fakes in tests) implements UI and,
// optionally, Locator.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"servicemap/internal/enrich"
	"servicemap/internal/logger"
	"servicemap/internal/models"
	"servicemap/internal/source"
	"servicemap/pkg/geo"
	"servicemap/pkg/mapview"
	"servicemap/pkg/phone"
)

// Marker tags set on every service marker.
const (
	TagID   = "id"
	TagType = "type"
	TagName = "name"
)

// OriginFallback is the State origin used for the embedded dataset.
const OriginFallback = "fallback"

var errNoSource = errors.New("no services source configured")

// UI is what the controller needs from the controls around the map.
// Implementations must not call back into the Controller.
type UI interface {
	// ActiveFilter is the filter button currently marked active, "" if none.
	ActiveFilter() string
	// SetActiveFilter marks exactly one filter button as active.
	SetActiveFilter(filter string)
	// Alert shows a blocking message to the user.
	Alert(message string)
}

// Settings configure the map view.
type Settings struct {
	Center          geo.Coordinates
	Zoom            int
	LocateZoom      int
	TileURL         string
	TileAttribution string
	UserMarkerTTL   time.Duration
	FetchTimeout    time.Duration
	Cluster         mapview.ClusterOptions
}

// DefaultSettings centers the map on Jigjiga.
func DefaultSettings() Settings {
	return Settings{
		Center:          geo.Coordinates{Lat: 9.35, Lng: 42.8},
		Zoom:            14,
		LocateZoom:      15,
		TileURL:         mapview.OSMTileURL,
		TileAttribution: mapview.OSMAttribution,
		UserMarkerTTL:   30 * time.Second,
		FetchTimeout:    10 * time.Second,
		Cluster:         mapview.DefaultClusterOptions(),
	}
}

// Scheduler runs f once after d. time.AfterFunc is the default.
type Scheduler func(d time.Duration, f func())

type Option func(*Controller)

func WithSettings(s Settings) Option { return func(c *Controller) { c.settings = s } }
func WithLocator(l Locator) Option   { return func(c *Controller) { c.locator = l } }
func WithDescriber(d PlaceDescriber) Option {
	return func(c *Controller) { c.describer = d }
}
func WithLogger(l *logger.Logger) Option { return func(c *Controller) { c.log = l } }
func WithScheduler(s Scheduler) Option  { return func(c *Controller) { c.after = s } }
func WithDialer(d *phone.Dialer) Option { return func(c *Controller) { c.dialer = d } }
func WithIcons(icons IconSet) Option    { return func(c *Controller) { c.icons = icons } }

// LoadResult describes one LoadServices call. Err is the fetch error that
// caused the fallback, if any.
type LoadResult struct {
	Source   string
	Count    int
	Fallback bool
	Err      error
}

// RenderResult describes one render pass. Services is the list handed to the
// renderer; records without a usable position are counted in Skipped.
type RenderResult struct {
	Services []models.ServiceRecord
	Rendered int
	Skipped  int
}

// Controller is safe for concurrent use. Every state change is serialized.
type Controller struct {
	settings  Settings
	source    source.Source
	ui        UI
	locator   Locator
	describer PlaceDescriber
	log       *logger.Logger
	after     Scheduler
	icons     IconSet
	dialer    *phone.Dialer
	pipeline  *enrich.Pipeline[models.ServiceRecord]

	mu         sync.Mutex
	state      State
	m          *mapview.Map
	tiles      *mapview.TileLayer
	markers    *mapview.ClusterGroup
	visible    []models.ServiceRecord
	renders    int
	userMarker *mapview.Marker
	locateSeq  uint64
	cancelPrev context.CancelFunc
}

// New creates a controller reading from src and driving ui.
func New(src source.Source, ui UI, opts ...Option) *Controller {
	c := &Controller{
		settings: DefaultSettings(),
		source:   src,
		ui:       ui,
		icons:    DefaultIcons(),
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ui == nil {
		c.ui = noopUI{}
	}
	if c.log == nil {
		c.log = logger.Discard()
	}
	if c.dialer == nil {
		c.dialer = phone.NewDialer("")
	}
	c.pipeline = enrich.ServicePipeline(c.dialer).WithLogger(c.log.Logger)
	return c
}

// InitializeMap creates the map view, its tile layer and the empty clustering
// layer. Later calls return the same map.
func (c *Controller) InitializeMap() *mapview.Map {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked()
}

func (c *Controller) initLocked() *mapview.Map {
	if c.m != nil {
		return c.m
	}
	c.m = mapview.New(c.settings.Center, c.settings.Zoom)
	c.tiles = mapview.NewTileLayer(c.settings.TileURL, c.settings.TileAttribution)
	c.m.AddLayer(c.tiles)
	c.markers = mapview.NewClusterGroup(c.settings.Cluster)
	return c.m
}

// LoadServices replaces the dataset with a fresh fetch, or with the embedded
// fallback list when the fetch fails, and renders it. Exactly one render pass
// happens per call.
func (c *Controller) LoadServices(ctx context.Context) LoadResult {
	name := "none"
	var (
		records []models.ServiceRecord
		err     error
	)
	if c.source == nil {
		err = errNoSource
	} else {
		name = c.source.Name()
		fetchCtx := ctx
		if c.settings.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, c.settings.FetchTimeout)
			defer cancel()
		}
		records, err = c.source.Fetch(fetchCtx)
	}

	res := LoadResult{Source: name, Err: err}
	var state State
	if err != nil {
		c.log.DataLoadFailed(name, err)
		state = NewState(models.FallbackServices(), OriginFallback, true)
		res.Fallback = true
	} else {
		prepared := enrich.Prepare(context.WithoutCancel(ctx), c.pipeline, records)
		state = NewState(prepared, name, false)
	}
	res.Count = state.Len()

	c.mu.Lock()
	c.state = state
	c.renderLocked(state.services)
	c.mu.Unlock()

	c.log.DataLoad(state.Origin(), res.Count, res.Fallback)
	return res
}

// RenderServices replaces every marker with one marker per plottable record in list.
func (c *Controller) RenderServices(list []models.ServiceRecord) RenderResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked(list)
}

func (c *Controller) renderLocked(list []models.ServiceRecord) RenderResult {
	c.initLocked()
	c.markers.ClearLayers()

	res := RenderResult{Services: make([]models.ServiceRecord, len(list))}
	copy(res.Services, list)

	visible := make([]models.ServiceRecord, 0, len(list))
	for _, rec := range list {
		if !rec.Plottable() {
			res.Skipped++
			c.log.Warn("service_not_plotted",
				slog.String("id", string(rec.ID)),
				slog.String("name", rec.Name),
				slog.Float64("lat", rec.Lat),
				slog.Float64("lng", rec.Lng),
			)
			continue
		}
		marker := mapview.NewMarker(rec.Coordinates(), c.icons.For(rec.Type)).
			BindPopup(servicePopup(rec, c.dialer)).
			Tag(TagID, string(rec.ID)).
			Tag(TagType, rec.Type).
			Tag(TagName, strings.ToLower(rec.Name))
		c.markers.AddLayer(marker)
		visible = append(visible, rec)
	}
	c.m.AddLayer(c.markers)

	c.visible = visible
	c.renders++
	res.Rendered = len(visible)
	return res
}

// ApplyFilter renders the records of one type, or all of them for "all",
// and marks filter as the active button.
func (c *Controller) ApplyFilter(filter string) RenderResult {
	filter = normalizeFilter(filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ui.SetActiveFilter(filter)
	return c.renderLocked(c.state.Filter(filter))
}

// Search renders the records whose name or address contains term, ignoring
// case. The term is matched as given, so " " matches any name with a space.
// Only the empty term re-applies the active filter instead.
func (c *Controller) Search(term string) RenderResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if term == "" {
		return c.renderLocked(c.state.Filter(normalizeFilter(c.ui.ActiveFilter())))
	}
	return c.renderLocked(c.state.Search(term))
}

// normalizeFilter maps "no active button" to "all". Any other token is
// compared with record types verbatim.
func normalizeFilter(filter string) string {
	if filter == "" {
		return models.FilterAll
	}
	return filter
}

// Map returns the map view, creating it if needed.
func (c *Controller) Map() *mapview.Map {
	return c.InitializeMap()
}

// TileLayer returns the map's tile layer.
func (c *Controller) TileLayer() *mapview.TileLayer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initLocked()
	return c.tiles
}

// Markers returns the clustering layer.
func (c *Controller) Markers() *mapview.ClusterGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initLocked()
	return c.markers
}

// State returns the current dataset.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visible returns the records currently shown as markers.
func (c *Controller) Visible() []models.ServiceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ServiceRecord, len(c.visible))
	copy(out, c.visible)
	return out
}

// RenderCount is the number of render passes so far.
func (c *Controller) RenderCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renders
}

type noopUI struct{}

func (noopUI) ActiveFilter() string   { return models.FilterAll }
func (noopUI) SetActiveFilter(string) {}
func (noopUI) Alert(string)           {}
