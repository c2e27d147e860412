package circuits

import (
	"fmt"

	"github.com/flowlab/flowlab/internal/flow"
	"github.com/flowlab/flowlab/internal/geom"
)

// Water models drops circulating a closed hydraulic loop: a gravity-fed
// slope from the upper tank down to the lower tank (progress < 350), then a
// pump line carrying the water back up. Gravity speed follows the height
// difference between the tanks; the pump runs at a constant pace. Both are
// scaled by the pipe-width factor.
type Water struct {
	HeightDifference float64
	PipeWidth        float64

	path *geom.Path
}

const (
	waterCheckpoint = 350.0
	litersPerDrop   = 0.5
	gravityEnd      = 350.0
)

var waterBounds = map[string]flow.Bounds{
	"heightDifference": {Min: 10, Max: 100},
	"pipeWidth":        {Min: 10, Max: 100},
}

func NewWater() *Water {
	return &Water{
		HeightDifference: 50,
		PipeWidth:        50,
		path:             waterPath(),
	}
}

// waterPath loops from the upper tank outlet down the slope to the lower
// tank, along the bottom to the pump, and up the riser back to the outlet.
func waterPath() *geom.Path {
	outlet := geom.Vec{X: 100, Y: 60}
	basin := geom.Vec{X: 300, Y: 220}
	pump := geom.Vec{X: 100, Y: 220}
	return geom.NewPath(flow.TotalPathLength,
		geom.NewLine(0, gravityEnd, outlet, basin),
		geom.NewLine(gravityEnd, 650, basin, pump),
		geom.NewLine(650, 1000, pump, outlet),
	)
}

func (w *Water) Name() string { return "water" }

func (w *Water) Position(progress float64, id, count int) flow.Point {
	return positionOn(w.path, progress, id, count, w.PipeWidth, false)
}

func (w *Water) Speed(progress float64) float64 {
	wf := widthFactor(w.PipeWidth)
	if progress < gravityEnd {
		return (0.5 + (w.HeightDifference/100)*4) * wf
	}
	return 3 * wf
}

func (w *Water) Checkpoint() float64         { return waterCheckpoint }
func (w *Water) UnitPerEntity() float64      { return litersPerDrop }
func (w *Water) RateUnit() string            { return "L/s" }
func (w *Water) RatePrecision() int          { return 2 }
func (w *Water) RatePolicy() flow.RatePolicy { return flow.RateWindow }
func (w *Water) DefaultCount() int           { return 10 }

func (w *Water) ViewBox() (float64, float64) { return 400, 300 }
func (w *Water) Outline(step float64) []flow.Point {
	return outline(w.path, step)
}
func (w *Water) StrokeWidth() float64 { return strokeFor(w.PipeWidth) }

func (w *Water) GetParams() map[string]float64 {
	return map[string]float64{
		"heightDifference": w.HeightDifference,
		"pipeWidth":        w.PipeWidth,
	}
}

func (w *Water) ParamBounds(name string) (flow.Bounds, bool) {
	b, ok := waterBounds[name]
	return b, ok
}

func (w *Water) SetParam(name string, value float64) error {
	b, ok := waterBounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", flow.ErrUnknownParam, name)
	}
	if !b.Contains(value) {
		return fmt.Errorf("%w: %s=%g (valid %g..%g)", flow.ErrParameterBounds, name, value, b.Min, b.Max)
	}
	switch name {
	case "heightDifference":
		w.HeightDifference = value
	case "pipeWidth":
		w.PipeWidth = value
	}
	return nil
}
