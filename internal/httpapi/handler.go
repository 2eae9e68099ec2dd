// Package httpapi exposes the map controller over HTTP. The browser page
// drives the map through these endpoints; alerts raised while a request is
// handled come back in its response.
package httpapi

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicemap/internal/apperr"
	"servicemap/internal/controller"
	"servicemap/internal/logger"
	"servicemap/internal/models"
	"servicemap/internal/validator"
	"servicemap/pkg/geo"
	"servicemap/pkg/mapview"
)

type Handler struct {
	ctrl    *controller.Controller
	session *Session
	val     *validator.Validator
	log     *logger.Logger
}

func NewHandler(ctrl *controller.Controller, session *Session, val *validator.Validator, log *logger.Logger) *Handler {
	if val == nil {
		val = validator.New()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{ctrl: ctrl, session: session, val: val, log: log}
}

// RegisterRoutes mounts the API on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/map", h.GetMap)
	rg.GET("/markers", h.GetMarkers)
	rg.GET("/services", h.GetServices)
	rg.POST("/filter", h.Filter)
	rg.POST("/search", h.Search)
	rg.POST("/locate", h.Locate)
	rg.POST("/reload", h.Reload)
}

type FilterRequest struct {
	Filter string `json:"filter" validate:"required,max=32"`
}

type SearchRequest struct {
	Term string `json:"term" validate:"max=200"`
}

// LocateRequest carries the browser's geolocation outcome. An empty body
// means the browser has no geolocation support.
type LocateRequest struct {
	Lat   *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng   *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Error string   `json:"error" validate:"max=200"`
}

type ServicesResponse struct {
	Services     []models.ServiceRecord `json:"services"`
	Rendered     int                    `json:"rendered"`
	Skipped      int                    `json:"skipped"`
	ActiveFilter string                 `json:"activeFilter"`
	Alerts       []string               `json:"alerts"`
}

type MapResponse struct {
	Center     geo.Coordinates    `json:"center"`
	Zoom       int                `json:"zoom"`
	TileLayer  *mapview.TileLayer `json:"tileLayer"`
	Markers    int                `json:"markers"`
	UserMarker *mapview.Marker    `json:"userMarker,omitempty"`
	LastAlert  string             `json:"lastAlert,omitempty"`
}

type MarkersResponse struct {
	Zoom     int               `json:"zoom"`
	BBox     geo.BBox          `json:"bbox"`
	Features []mapview.Feature `json:"features"`
}

type LocateResponse struct {
	Position   *geo.Coordinates `json:"position,omitempty"`
	Place      string           `json:"place,omitempty"`
	UserMarker *mapview.Marker  `json:"userMarker,omitempty"`
	Alerts     []string         `json:"alerts"`
}

type ReloadResponse struct {
	Source   string   `json:"source"`
	Count    int      `json:"count"`
	Fallback bool     `json:"fallback"`
	Error    string   `json:"error,omitempty"`
	Alerts   []string `json:"alerts"`
}

func (h *Handler) GetMap(c *gin.Context) {
	m := h.ctrl.Map()
	center, zoom := m.View()
	OK(c, MapResponse{
		Center:     center,
		Zoom:       zoom,
		TileLayer:  h.ctrl.TileLayer(),
		Markers:    h.ctrl.Markers().Len(),
		UserMarker: h.ctrl.UserMarker(),
		LastAlert:  h.session.LastAlert(),
	})
}

func (h *Handler) GetMarkers(c *gin.Context) {
	_, zoom := h.ctrl.Map().View()
	if raw := c.Query("zoom"); raw != "" {
		z, err := strconv.Atoi(raw)
		if err != nil || z < 0 || z > 22 {
			HandleError(c, apperr.BadRequest("zoom must be an integer between 0 and 22"))
			return
		}
		zoom = z
	}

	box, err := parseBBox(c)
	if HandleError(c, err) {
		return
	}

	features, err := h.ctrl.Markers().Clusters(zoom, box)
	if err != nil {
		h.log.Error("cluster_failed", "error", err.Error())
		HandleError(c, apperr.Wrap(apperr.KindInternal, "failed to cluster markers", err))
		return
	}
	if features == nil {
		features = []mapview.Feature{}
	}
	OK(c, MarkersResponse{Zoom: zoom, BBox: box, Features: features})
}

func parseBBox(c *gin.Context) (geo.BBox, error) {
	box := geo.World()
	fields := []struct {
		name string
		dst  *float64
	}{
		{"west", &box.West},
		{"south", &box.South},
		{"east", &box.East},
		{"north", &box.North},
	}
	for _, f := range fields {
		raw := c.Query(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return box, apperr.BadRequest(f.name + " must be a number")
		}
		*f.dst = v
	}
	if !box.Valid() {
		return box, apperr.Validation("invalid bounding box").WithDetails(box)
	}
	return box, nil
}

func (h *Handler) GetServices(c *gin.Context) {
	visible := h.ctrl.Visible()
	OK(c, ServicesResponse{
		Services:     visible,
		Rendered:     len(visible),
		ActiveFilter: h.session.ActiveFilter(),
		Alerts:       []string{},
	})
}

func (h *Handler) Filter(c *gin.Context) {
	var req FilterRequest
	if HandleError(c, h.bind(c, &req, false)) {
		return
	}

	OK(c, h.servicesResponse(h.ctrl.ApplyFilter(req.Filter)))
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if HandleError(c, h.bind(c, &req, true)) {
		return
	}

	OK(c, h.servicesResponse(h.ctrl.Search(req.Term)))
}

func (h *Handler) Locate(c *gin.Context) {
	var req LocateRequest
	if HandleError(c, h.bind(c, &req, true)) {
		return
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		HandleError(c, apperr.Validation("lat and lng must be sent together"))
		return
	}

	ctx := c.Request.Context()
	switch {
	case req.Error != "":
		ctx = WithPositionError(ctx, req.Error)
	case req.Lat != nil:
		ctx = WithPosition(ctx, geo.Coordinates{Lat: *req.Lat, Lng: *req.Lng})
	}

	res := h.ctrl.LocateUser(ctx)

	resp := LocateResponse{Place: res.Place, UserMarker: res.Marker, Alerts: []string{}}
	if res.Alert != "" {
		resp.Alerts = append(resp.Alerts, res.Alert)
	}
	if res.Marker != nil {
		pos := res.Position
		resp.Position = &pos
	}
	OK(c, resp)
}

func (h *Handler) Reload(c *gin.Context) {
	res := h.ctrl.LoadServices(c.Request.Context())

	resp := ReloadResponse{Source: res.Source, Count: res.Count, Fallback: res.Fallback, Alerts: []string{}}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	OK(c, resp)
}

func (h *Handler) servicesResponse(res controller.RenderResult) ServicesResponse {
	return ServicesResponse{
		Services:     res.Services,
		Rendered:     res.Rendered,
		Skipped:      res.Skipped,
		ActiveFilter: h.session.ActiveFilter(),
		Alerts:       []string{},
	}
}

// bind decodes the JSON body into dst and validates it. allowEmpty accepts a
// missing body as the zero request.
func (h *Handler) bind(c *gin.Context, dst any, allowEmpty bool) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return apperr.Wrap(apperr.KindBadRequest, "invalid request body", err)
		}
	}
	if err := h.val.Struct(dst); err != nil {
		return apperr.Wrap(apperr.KindValidation, "validation failed", err).WithDetails(err.Error())
	}
	return nil
}
