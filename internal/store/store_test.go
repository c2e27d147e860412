package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	require.NoError(t, s.Init())
	return s
}

func testSamples() []Sample {
	return []Sample{
		{T: 0, Rate: 0},
		{T: 0.5, Rate: 1.2},
		{T: 1.0, Rate: 2.4},
		{T: 1.5, Rate: 1.8},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := testStore(t)

	params := map[string]float64{"voltage": 80, "wireWidth": 40}
	runID, err := s.Save("electric", "C/s", 30, 1.5, 12, params, testSamples())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "electric_"))

	meta, err := s.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "electric", meta.Circuit)
	assert.Equal(t, 30, meta.FPS)
	assert.Equal(t, 12, meta.Count)
	assert.Equal(t, "C/s", meta.RateUnit)
	assert.Equal(t, 80.0, meta.Params["voltage"])
	assert.InDelta(t, 1.35, meta.MeanRate, 1e-9)
	assert.Equal(t, 2.4, meta.PeakRate)
}

func TestLoadSamplesRoundTrip(t *testing.T) {
	s := testStore(t)

	runID, err := s.Save("water", "L/s", 30, 1.5, 10, nil, testSamples())
	require.NoError(t, err)

	samples, err := s.LoadSamples(runID)
	require.NoError(t, err)
	require.Len(t, samples, 4)
	assert.Equal(t, 0.5, samples[1].T)
	assert.Equal(t, 1.2, samples[1].Rate)
	assert.Equal(t, 1.8, samples[3].Rate)
}

func TestSaveEmptySamples(t *testing.T) {
	s := testStore(t)

	runID, err := s.Save("playground", "kids/s", 30, 0, 6, nil, nil)
	require.NoError(t, err)

	meta, err := s.Load(runID)
	require.NoError(t, err)
	assert.Zero(t, meta.MeanRate)
	assert.Zero(t, meta.PeakRate)

	samples, err := s.LoadSamples(runID)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestLoadUnknownRun(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("water_deadbeef")
	assert.Error(t, err)
	_, err = s.LoadSamples("water_deadbeef")
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)

	first, err := s.Save("electric", "C/s", 30, 1, 12, nil, testSamples())
	require.NoError(t, err)
	second, err := s.Save("water", "L/s", 30, 1, 10, nil, testSamples())
	require.NoError(t, err)

	runs, err := s.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Saved back to back; both orders are valid only if timestamps tie,
	// so assert membership and that no run is lost.
	ids := []string{runs[0].ID, runs[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
}

func TestListMissingBaseDir(t *testing.T) {
	s := New(t.TempDir() + "/never-created")
	runs, err := s.List()
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)

	runID, err := s.Save("electric", "C/s", 30, 1.5, 12,
		map[string]float64{"voltage": 50}, testSamples())
	require.NoError(t, err)

	meta, err := s.Load(runID)
	require.NoError(t, err)
	samples, err := s.LoadSamples(runID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, samples))

	var out ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, runID, out.ID)
	assert.Equal(t, "C/s", out.RateUnit)
	require.Len(t, out.Samples, 4)
	assert.Equal(t, 2.4, out.Samples[2].Rate)
}
