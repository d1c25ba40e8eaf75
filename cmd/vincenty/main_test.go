package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tidwall/vincenty"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []string{"-c", filepath.Join(t.TempDir(), "missing.yaml"), "--log-level", "disabled"}
	err := run(append(base, args...), &out)
	return out.String(), err
}

func TestInverseCommand(t *testing.T) {
	out, err := runArgs(t, "inverse", "--from=-37.81996667,144.98345", "--to=-33.85678333,151.2152972")
	require.NoError(t, err)

	var res InverseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 714102.60631513281, res.Distance, 1e-6)
	assert.InDelta(t, vincenty.Degrees(0.94019000526431273), res.InitialBearing, 1e-7)
	assert.True(t, res.Converged)
	assert.InDelta(t, -37.81996667, res.From[0], 1e-12)
	assert.InDelta(t, 144.98345, res.From[1], 1e-12)
}

func TestDirectCommandYAML(t *testing.T) {
	out, err := runArgs(t, "-f", "yaml", "direct",
		"--from=-37.95103342,144.4248679",
		"--bearing", "306.8681583076682", "--distance", "54972.271")
	require.NoError(t, err)

	var res DirectOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.InDelta(t, -37.652821149, res.Destination[0], 1e-6)
	assert.InDelta(t, 143.926495534, res.Destination[1], 1e-6)
	assert.True(t, res.Converged)
}

func TestOverrides(t *testing.T) {
	out, err := runArgs(t, "--max-iterations", "1", "inverse",
		"--from=-37.81996667,144.98345", "--to=-33.85678333,151.2152972")
	require.NoError(t, err)
	var res InverseOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)

	out, err = runArgs(t, "--spherical", "inverse", "--from=0,0", "--to=0,90")
	require.NoError(t, err)
	res = InverseOutput{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 0, res.Iterations)
	assert.InDelta(t, vincenty.SemiMajorAxis*3.141592653589793/2, res.Distance, 1e-6)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vincenty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iterations: 1\n"), 0o644))

	var out bytes.Buffer
	err := run([]string{"-c", path, "--log-level", "disabled", "inverse",
		"--from=-37.81996667,144.98345", "--to=-33.85678333,151.2152972"}, &out)
	require.NoError(t, err)
	var res InverseOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 1, res.Iterations)
}

func TestCommandErrors(t *testing.T) {
	_, err := runArgs(t, "inverse", "--from=95,0", "--to=0,0")
	assert.ErrorIs(t, err, vincenty.ErrInvalidArgument)

	_, err = runArgs(t, "direct", "--from=0,0", "--bearing", "10", "--distance", "-5")
	assert.ErrorIs(t, err, vincenty.ErrInvalidArgument)

	_, err = runArgs(t, "inverse", "--from=abc", "--to=0,0")
	var flagsErr *flags.Error
	assert.ErrorAs(t, err, &flagsErr)

	_, err = runArgs(t, "inverse", "--from=1,2")
	assert.ErrorAs(t, err, &flagsErr)
	assert.Equal(t, flags.ErrRequired, flagsErr.Type)
}

const batchInput = `{
  "inverse": [
    {"name": "mel-syd", "from": [-37.81996667, 144.98345], "to": [-33.85678333, 151.2152972]},
    {"name": "nyc-par", "from": [40.68925, -74.0445], "to": [48.85836944, 2.294480556]}
  ],
  "direct": [
    {"name": "flinders", "from": [-37.95103342, 144.4248679], "bearing": 306.8681583076682, "distance": 54972.271}
  ]
}`

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	outPath := filepath.Join(dir, "out.yaml")
	require.NoError(t, os.WriteFile(in, []byte(batchInput), 0o644))

	_, err := runArgs(t, "-f", "yaml", "batch", "-i", in, "-o", outPath, "-w", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var res BatchOutput
	require.NoError(t, yaml.Unmarshal(data, &res))
	require.Len(t, res.Inverse, 2)
	require.Len(t, res.Direct, 1)
	assert.Equal(t, "mel-syd", res.Inverse[0].Name)
	assert.InDelta(t, 714102.60631513281, res.Inverse[0].Distance, 1e-6)
	assert.Equal(t, "nyc-par", res.Inverse[1].Name)
	assert.InDelta(t, 5853100.327933725, res.Inverse[1].Distance, 1e-6)
	assert.InDelta(t, -37.652821149, res.Direct[0].Destination[0], 1e-6)
}

func TestBatchGeoJSON(t *testing.T) {
	var out bytes.Buffer
	a := &app{out: &out}
	parser := newParser(a)
	a.opts.Batch.stdin = strings.NewReader(batchInput)
	_, err := parser.ParseArgs([]string{"-c", filepath.Join(t.TempDir(), "none.yaml"),
		"--log-level", "disabled", "-f", "geojson", "batch", "--segments", "4"})
	require.NoError(t, err)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)

	line := fc.Features[0]
	assert.Equal(t, "LineString", line.Geometry.Type)
	assert.Equal(t, "mel-syd", line.Properties["name"])
	var coords [][]float64
	require.NoError(t, json.Unmarshal(line.Geometry.Coordinates, &coords))
	require.Len(t, coords, 5)
	assert.InDelta(t, 144.98345, coords[0][0], 1e-9)
	assert.InDelta(t, 151.2152972, coords[4][0], 1e-9)
	for i := 1; i < len(coords); i++ {
		assert.Greater(t, coords[i][0], coords[i-1][0])
	}

	point := fc.Features[2]
	assert.Equal(t, "Point", point.Geometry.Type)
	var pos []float64
	require.NoError(t, json.Unmarshal(point.Geometry.Coordinates, &pos))
	assert.InDelta(t, 143.926495534, pos[0], 1e-6)
	assert.InDelta(t, -37.652821149, pos[1], 1e-6)
}

func TestBatchInvalidInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	require.NoError(t, os.WriteFile(in, []byte("inverse:\n  - from: [1]\n    to: [2, 3]\n"), 0o644))
	_, err := runArgs(t, "batch", "-i", in)
	assert.ErrorContains(t, err, "inverse 0 from")

	require.NoError(t, os.WriteFile(in, []byte("inverse:\n  - from: [100, 0]\n    to: [2, 3]\n"), 0o644))
	_, err = runArgs(t, "batch", "-i", in)
	assert.ErrorIs(t, err, vincenty.ErrInvalidArgument)
}
