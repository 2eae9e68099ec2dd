package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"integer", `{"id": 42}`, "42"},
		{"string", `{"id": "abc-1"}`, "abc-1"},
		{"null", `{"id": null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec ServiceRecord
			require.NoError(t, json.Unmarshal([]byte(tt.input), &rec))
			assert.Equal(t, tt.want, rec.ID)
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}{A: "7", B: "x7"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 7, "b": "x7"}`, string(out))
}

func TestID_RejectsObjects(t *testing.T) {
	var rec ServiceRecord
	assert.Error(t, json.Unmarshal([]byte(`{"id": {"nested": 1}}`), &rec))
}

func TestServiceRecord_Plottable(t *testing.T) {
	cases := []struct {
		name string
		rec  ServiceRecord
		want bool
	}{
		{"valid", ServiceRecord{Lat: 9.35, Lng: 42.8}, true},
		{"latitude out of range", ServiceRecord{Lat: 91, Lng: 42.8}, false},
		{"longitude out of range", ServiceRecord{Lat: 9.35, Lng: -181}, false},
		{"missing position", ServiceRecord{}, false},
		{"not a number", ServiceRecord{Lat: math.NaN(), Lng: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rec.Plottable())
		})
	}
}

func TestServiceRecord_TypeLabel(t *testing.T) {
	assert.Equal(t, "Hospital", ServiceRecord{Type: "hospital"}.TypeLabel())
	assert.Equal(t, "Pharmacy", ServiceRecord{Type: "pharmacy"}.TypeLabel())
	assert.Equal(t, "", ServiceRecord{}.TypeLabel())
}

func TestServiceRecord_Matches(t *testing.T) {
	rec := ServiceRecord{Name: "City Taxi Service", Address: "Market Area, Jigjiga"}
	assert.True(t, rec.Matches("taxi"))
	assert.True(t, rec.Matches("MARKET"))
	assert.False(t, rec.Matches("hospital"))
	assert.False(t, ServiceRecord{Name: "Peace Hostel"}.Matches("market"))
}

func TestFallbackServices(t *testing.T) {
	first := FallbackServices()
	require.Len(t, first, 6)
	for i, rec := range first {
		assert.True(t, rec.Plottable(), "record %d", i)
	}

	first[0].Name = "changed"
	assert.Equal(t, "Jigjiga General Hospital", FallbackServices()[0].Name)
}
