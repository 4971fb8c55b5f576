package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	logger = zap.NewNop()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestValidateCmd(t *testing.T) {
	cmd, out := newTestCmd()
	require.NoError(t, runValidate(cmd, nil))
	assert.Equal(t, "OK: 26 countries, 16 cities\n", out.String())
}

func TestCountriesCmd(t *testing.T) {
	cmd, out := newTestCmd()
	require.NoError(t, runCountries(cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 27)
	assert.Contains(t, lines[11], "India")
	assert.Contains(t, lines[11], "1428.6")
}

func TestCitiesCmd(t *testing.T) {
	cmd, out := newTestCmd()
	require.NoError(t, runCities(cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 17)
	assert.True(t, strings.HasPrefix(lines[1], "Mumbai"))
}

func TestNearestCmd(t *testing.T) {
	cmd, out := newTestCmd()
	nearestLat, nearestLon, nearestMaxKm = 12.9, 77.6, 0
	defer func() { nearestLat, nearestLon, nearestMaxKm = 0, 0, 0 }()

	require.NoError(t, runNearest(cmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "Bengaluru\t"))

	nearestLat, nearestLon, nearestMaxKm = -33.87, 151.21, 100
	assert.Error(t, runNearest(cmd, nil))
}

func TestPathsCmd(t *testing.T) {
	cmd, out := newTestCmd()
	require.NoError(t, runPaths(cmd, nil))
	assert.Contains(t, out.String(), "inatDatasetKey\t50c9509d-22c7-4a22-a47d-8c48425ef4a7")
	assert.Contains(t, out.String(), "splotFiltered\t")
}

func TestExportCmd_WithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "refdata.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("base_dir: "+dir+"\n"), 0644))

	configPath = cfgPath
	defer func() { configPath = "" }()

	cmd, out := newTestCmd()
	require.NoError(t, runExport(cmd, nil))

	written := strings.Fields(out.String())
	require.Len(t, written, 2)
	for _, path := range written {
		assert.FileExists(t, path)
		assert.True(t, strings.HasPrefix(path, filepath.Join(dir, "_cache")))
	}
}

func TestPlotCmd(t *testing.T) {
	plotOut = filepath.Join(t.TempDir(), "chart.png")
	defer func() { plotOut = "species_area.png" }()

	cmd, out := newTestCmd()
	require.NoError(t, runPlot(cmd, nil))
	assert.FileExists(t, plotOut)
	assert.Equal(t, plotOut+"\n", out.String())
}
