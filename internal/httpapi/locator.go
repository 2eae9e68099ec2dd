package httpapi

import (
	"context"
	"errors"

	"servicemap/internal/controller"
	"servicemap/pkg/geo"
)

type reportKey struct{}

// positionReport is what the browser sent to /api/locate.
type positionReport struct {
	pos    geo.Coordinates
	errMsg string
}

// WithPosition attaches a position reported by the client to ctx.
func WithPosition(ctx context.Context, pos geo.Coordinates) context.Context {
	return context.WithValue(ctx, reportKey{}, positionReport{pos: pos})
}

// WithPositionError attaches a client-side geolocation failure to ctx.
func WithPositionError(ctx context.Context, msg string) context.Context {
	return context.WithValue(ctx, reportKey{}, positionReport{errMsg: msg})
}

// RequestLocator answers with whatever the client reported in the request
// context. A request carrying no report means the client has no geolocation.
type RequestLocator struct{}

func (RequestLocator) CurrentPosition(ctx context.Context, _ controller.PositionOptions) (geo.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinates{}, err
	}
	report, ok := ctx.Value(reportKey{}).(positionReport)
	if !ok {
		return geo.Coordinates{}, controller.ErrUnsupported
	}
	if report.errMsg != "" {
		return geo.Coordinates{}, errors.New(report.errMsg)
	}
	return report.pos, nil
}
