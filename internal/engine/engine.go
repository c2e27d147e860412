// Package engine drives one circuit's animation: entity kinematics, playback
// state, checkpoint detection and the rate readout.
//
// An Engine never schedules itself. Whatever owns the frame loop (the TUI
// tick, the web server's ticker, a headless recorder) calls Step once per
// frame; pausing or tearing down a view is that owner cancelling its tick
// source. This keeps the core single-threaded: parameter writes and entity
// updates always happen on the caller's loop, so no locking is needed here.
package engine

import (
	"math"
	"strconv"
	"time"

	"github.com/flowlab/flowlab/internal/flow"
	"github.com/flowlab/flowlab/internal/rate"
)

// historyCapacity bounds the rate-history buffer used by the charts.
const historyCapacity = 300

// Clock supplies wall time; tests inject a fake.
type Clock func() time.Time

// Frame is the per-tick output consumed by the rendering layers.
type Frame struct {
	Circuit   string             `json:"circuit"`
	Points    []flow.Point       `json:"points"`
	Rate      float64            `json:"rate"`
	RateLabel string             `json:"rate_label"`
	Playing   bool               `json:"playing"`
	Measuring bool               `json:"measuring"`
	Params    map[string]float64 `json:"params"`
}

// Engine owns the ephemeral state of one circuit instance. All state is
// re-derivable; Reset rebuilds it from constants.
type Engine struct {
	circuit     flow.Circuit
	entities    []flow.Entity
	count       int
	playing     bool
	measuring   bool
	estimator   rate.Estimator
	displayRate float64
	history     []float64
	initial     map[string]float64
	clock       Clock
}

// New builds an engine for the circuit with count entities (the circuit's
// default when count <= 0). A nil clock means wall time.
func New(c flow.Circuit, count int, clock Clock) *Engine {
	if clock == nil {
		clock = time.Now
	}
	if count <= 0 {
		count = c.DefaultCount()
	}
	initial := make(map[string]float64)
	for k, v := range c.GetParams() {
		initial[k] = v
	}
	e := &Engine{
		circuit:   c,
		count:     count,
		playing:   true,
		estimator: newEstimator(c),
		initial:   initial,
		clock:     clock,
		history:   make([]float64, 0, historyCapacity),
	}
	e.seed()
	return e
}

func newEstimator(c flow.Circuit) rate.Estimator {
	if c.RatePolicy() == flow.RateBucket {
		return rate.NewBucket(c.UnitPerEntity())
	}
	return rate.NewWindow()
}

// seed places count entities evenly along the path.
func (e *Engine) seed() {
	e.entities = e.entities[:0]
	for i := 0; i < e.count; i++ {
		e.entities = append(e.entities, flow.Entity{
			ID:       i,
			Progress: float64(i) / float64(e.count) * flow.TotalPathLength,
		})
	}
}

func (e *Engine) Circuit() flow.Circuit { return e.circuit }
func (e *Engine) Playing() bool         { return e.playing }
func (e *Engine) Measuring() bool       { return e.measuring }
func (e *Engine) Rate() float64         { return e.displayRate }

// Entities returns a copy of the current entity set.
func (e *Engine) Entities() []flow.Entity {
	out := make([]flow.Entity, len(e.entities))
	copy(out, e.entities)
	return out
}

// History is the recent rate readouts, oldest first.
func (e *Engine) History() []float64 { return e.history }

func (e *Engine) SetPlaying(on bool) { e.playing = on }
func (e *Engine) TogglePlay()        { e.playing = !e.playing }

// SetMeasuring toggles the rate readout. Disabling clears the crossing log
// and zeroes the displayed rate immediately.
func (e *Engine) SetMeasuring(on bool) {
	e.measuring = on
	if !on {
		e.estimator.Reset()
		e.displayRate = 0
		e.history = e.history[:0]
	}
}

// Step advances the simulation by one frame. It is a no-op while paused, so
// a caller that keeps ticking for other panels cannot mutate a paused one.
func (e *Engine) Step() {
	if !e.playing {
		return
	}
	now := e.clock()
	if e.measuring {
		e.displayRate = e.estimator.Rate(now)
		e.history = append(e.history, e.displayRate)
		if len(e.history) > historyCapacity {
			e.history = e.history[1:]
		}
	}
	cp := e.circuit.Checkpoint()
	for i := range e.entities {
		oldMod := pathMod(e.entities[i].Progress)
		e.entities[i].Progress += e.circuit.Speed(oldMod)
		newMod := pathMod(e.entities[i].Progress)
		if e.measuring && crossed(oldMod, newMod, cp) {
			e.estimator.Record(now)
		}
	}
}

// Reset stops playback, restores the initial parameters, reseeds the
// entities evenly along the path and clears all measurement state.
func (e *Engine) Reset() {
	e.playing = false
	for k, v := range e.initial {
		// Initial values came from the circuit itself, so this cannot fail.
		_ = e.circuit.SetParam(k, v)
	}
	e.seed()
	e.estimator.Reset()
	e.displayRate = 0
	e.history = e.history[:0]
}

// Frame snapshots the current entity positions and readout.
func (e *Engine) Frame() Frame {
	pts := make([]flow.Point, len(e.entities))
	for i, en := range e.entities {
		pts[i] = e.circuit.Position(en.Progress, en.ID, len(e.entities))
	}
	return Frame{
		Circuit:   e.circuit.Name(),
		Points:    pts,
		Rate:      e.displayRate,
		RateLabel: e.FormatRate(),
		Playing:   e.playing,
		Measuring: e.measuring,
		Params:    e.circuit.GetParams(),
	}
}

// FormatRate renders the readout with the circuit's decimal precision.
func (e *Engine) FormatRate() string {
	return strconv.FormatFloat(e.displayRate, 'f', e.circuit.RatePrecision(), 64) +
		" " + e.circuit.RateUnit()
}

func pathMod(progress float64) float64 {
	m := math.Mod(progress, flow.TotalPathLength)
	if m < 0 {
		m += flow.TotalPathLength
	}
	return m
}

// crossed reports whether advancing from oldMod to newMod passed the
// checkpoint. The test is an interval check, not an equality check, so a
// fast entity that overshoots the checkpoint in one frame still counts,
// exactly once.
func crossed(oldMod, newMod, cp float64) bool {
	if newMod >= oldMod {
		return oldMod < cp && cp <= newMod
	}
	// Wrapped past zero this frame.
	return cp > oldMod || cp <= newMod
}
