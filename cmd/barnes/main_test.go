package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	barnes "github.com/flywave/go-barnes"
)

func TestParseBBox(t *testing.T) {
	r, err := parseBBox("140, -60,160,-40")
	require.NoError(t, err)
	assert.Equal(t, vec2d.Rect{Min: vec2d.T{140, -60}, Max: vec2d.T{160, -40}}, r)

	_, err = parseBBox("140,-60,160")
	assert.Error(t, err)
	_, err = parseBBox("140,-60,east,-40")
	assert.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	a := assert.New(t)

	cfg, err := parseFlags([]string{"stations.geojson"})
	require.NoError(t, err)
	a.Equal("stations.geojson", cfg.input)
	a.Equal(barnes.DefaultPasses, cfg.passes)
	a.Equal(barnes.DefaultGain, cfg.gain)
	a.Nil(cfg.bbox)

	cfg, err = parseFlags([]string{"-passes", "4", "-gain", "0.3", "-bbox", "0,0,10,5", "-radii", "-rms", "in.json"})
	require.NoError(t, err)
	a.Equal(4, cfg.passes)
	a.Equal(0.3, cfg.gain)
	a.True(cfg.radii)
	a.True(cfg.rms)
	require.NotNil(t, cfg.bbox)
	a.Equal(vec2d.T{10, 5}, cfg.bbox.Max)

	_, err = parseFlags(nil)
	a.Error(err)
	_, err = parseFlags([]string{"a.json", "b.json"})
	a.Error(err)
	_, err = parseFlags([]string{"-bbox", "1,2", "a.json"})
	a.Error(err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
}

func TestWriteGrid(t *testing.T) {
	grid, err := barnes.NewGridFromRows(
		barnes.Axes{Lon: []float64{0, 1}, Lat: []float64{10, 20}},
		[][]float64{{1, 2}, {3, 4.5}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeGrid(&buf, grid))
	assert.Equal(t, "0 10 1\n0 20 2\n1 10 3\n1 20 4.5\n", buf.String())
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [140.0, -40.0, 1.0]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [150.0, -50.0, 2.0]}},
    {"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [160.0, -60.0, 3.0]}}
  ]
}`), 0o644))

	var logs, out bytes.Buffer
	cfg, err := parseFlags([]string{"-rms", path})
	require.NoError(t, err)
	require.NoError(t, run(cfg, newLogger(&logs, "info", "text"), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], "140 -60 "), lines[0])
	assert.Contains(t, logs.String(), "recommended parameters")

	cfg.input = filepath.Join(t.TempDir(), "missing.geojson")
	assert.Error(t, run(cfg, slog.New(slog.NewTextHandler(&logs, nil)), &out))
}
