package enrich

import (
	"context"
	"fmt"
	"strings"

	"servicemap/internal/models"
	"servicemap/pkg/phone"
)

// TrimText trims the display strings.
func TrimText(_ context.Context, rec *models.ServiceRecord) error {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Address = strings.TrimSpace(rec.Address)
	if rec.Name == "" {
		return fmt.Errorf("service %s has no name", rec.ID)
	}
	return nil
}

// NormalizePhone rewrites the contact number to E.164 when it can be parsed.
func NormalizePhone(d *phone.Dialer) Step[models.ServiceRecord] {
	return func(_ context.Context, rec *models.ServiceRecord) error {
		rec.Phone = d.Normalize(rec.Phone)
		return nil
	}
}

// ServicePipeline is the preparation applied to every fetched dataset. The
// type token is left exactly as fetched: icons and filters match it verbatim.
func ServicePipeline(d *phone.Dialer) *Pipeline[models.ServiceRecord] {
	return NewPipeline(
		NewStage(TrimText, NormalizePhone(d)),
	)
}

// Prepare runs p over a copy of records and returns the prepared copy.
func Prepare(ctx context.Context, p *Pipeline[models.ServiceRecord], records []models.ServiceRecord) []models.ServiceRecord {
	out := make([]models.ServiceRecord, len(records))
	copy(out, records)

	items := make([]*models.ServiceRecord, len(out))
	for i := range out {
		items[i] = &out[i]
	}
	p.Run(ctx, items)
	return out
}
