// Package store persists recorded measurement runs: per-run metadata plus
// the sampled rate readout over time.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Sample is one rate readout at T seconds into the run.
type Sample struct {
	T    float64 `json:"t"`
	Rate float64 `json:"rate"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Circuit   string             `json:"circuit"`
	Timestamp time.Time          `json:"timestamp"`
	FPS       int                `json:"fps"`
	Duration  float64            `json:"duration"`
	Count     int                `json:"count"`
	RateUnit  string             `json:"rate_unit"`
	Params    map[string]float64 `json:"params"`
	MeanRate  float64            `json:"mean_rate"`
	PeakRate  float64            `json:"peak_rate"`
}

// Save writes metadata.json and samples.csv under a fresh run directory and
// returns the run ID.
func (s *Store) Save(circuit, rateUnit string, fps int, duration float64, count int, params map[string]float64, samples []Sample) (string, error) {
	runID := fmt.Sprintf("%s_%s", circuit, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	mean, peak := 0.0, 0.0
	for _, sm := range samples {
		mean += sm.Rate
		if sm.Rate > peak {
			peak = sm.Rate
		}
	}
	if len(samples) > 0 {
		mean /= float64(len(samples))
	}

	meta := RunMetadata{
		ID:        runID,
		Circuit:   circuit,
		Timestamp: time.Now(),
		FPS:       fps,
		Duration:  duration,
		Count:     count,
		RateUnit:  rateUnit,
		Params:    params,
		MeanRate:  mean,
		PeakRate:  peak,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "rate"}); err != nil {
		return "", err
	}
	for _, sm := range samples {
		row := []string{
			strconv.FormatFloat(sm.T, 'f', 3, 64),
			strconv.FormatFloat(sm.Rate, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("store: bad sample row %d: %w", i, err)
		}
		rate, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("store: bad sample row %d: %w", i, err)
		}
		samples = append(samples, Sample{T: t, Rate: rate})
	}
	return samples, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}
