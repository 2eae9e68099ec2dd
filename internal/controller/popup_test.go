package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"servicemap/internal/models"
	"servicemap/pkg/phone"
)

func TestServicePopup(t *testing.T) {
	d := phone.NewDialer("ET")

	tests := []struct {
		name     string
		rec      models.ServiceRecord
		contains []string
		excludes []string
	}{
		{
			name: "full record",
			rec:  models.FallbackServices()[0],
			contains: []string{
				"<h3>Jigjiga General Hospital</h3>",
				"<strong>Type:</strong> Hospital",
				"<strong>Address:</strong> Main Road, Jigjiga",
				`href="tel:+251900000001"`,
				"Call: +251900000001",
			},
		},
		{
			name:     "no address",
			rec:      models.ServiceRecord{Name: "Taxi Rank", Type: "taxi", Phone: "+251900000003"},
			contains: []string{"<strong>Type:</strong> Taxi"},
			excludes: []string{"Address:"},
		},
		{
			name:     "no phone",
			rec:      models.ServiceRecord{Name: "Taxi Rank", Type: "taxi"},
			excludes: []string{"call-button"},
		},
		{
			name:     "escapes markup",
			rec:      models.ServiceRecord{Name: `<script>alert("x")</script>`, Type: "hostel"},
			contains: []string{"&lt;script&gt;"},
			excludes: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := servicePopup(tt.rec, d)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestIconSet_With(t *testing.T) {
	base := DefaultIcons()
	pharmacy := base.Fallback()
	pharmacy.ClassName = "custom-icon pharmacy-icon"

	extended := base.With("pharmacy", pharmacy)

	assert.Equal(t, pharmacy, extended.For("pharmacy"))
	assert.Equal(t, base.Fallback(), base.For("pharmacy"))
}
