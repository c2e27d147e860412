package store

import (
	"encoding/json"
	"io"
)

// ExportData is the flattened JSON form of a recorded run.
type ExportData struct {
	ID       string             `json:"id"`
	Circuit  string             `json:"circuit"`
	FPS      int                `json:"fps"`
	Duration float64            `json:"duration"`
	Count    int                `json:"count"`
	RateUnit string             `json:"rate_unit"`
	Params   map[string]float64 `json:"params"`
	MeanRate float64            `json:"mean_rate"`
	PeakRate float64            `json:"peak_rate"`
	Samples  []Sample           `json:"samples"`
}

// ExportJSON writes one run as an indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []Sample) error {
	data := ExportData{
		ID:       meta.ID,
		Circuit:  meta.Circuit,
		FPS:      meta.FPS,
		Duration: meta.Duration,
		Count:    meta.Count,
		RateUnit: meta.RateUnit,
		Params:   meta.Params,
		MeanRate: meta.MeanRate,
		PeakRate: meta.PeakRate,
		Samples:  samples,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
