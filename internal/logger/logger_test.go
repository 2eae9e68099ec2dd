package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.DataLoad("file:data/services.json", 6, false)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "services_loaded", entry["msg"])
	assert.Equal(t, float64(6), entry["count"])
	assert.Equal(t, false, entry["fallback"])
}

func TestNew_DevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("Development", &buf)

	log.Debug("render", "markers", 3)

	assert.Contains(t, buf.String(), "markers=3")
}

func TestDataLoadFailed(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf).With("component", "loader")

	log.DataLoadFailed("http", errors.New("connection refused"))

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"component":"loader"`)
	assert.Contains(t, buf.String(), "connection refused")
}
