package circuits

import (
	"fmt"

	"github.com/flowlab/flowlab/internal/flow"
	"github.com/flowlab/flowlab/internal/geom"
)

// Electric models charges circulating a rectangular wire loop. Speed is a
// linear function of the voltage slider; the wire width only spreads the
// charges across lanes, it does not change their speed.
type Electric struct {
	Voltage   float64
	WireWidth float64

	path *geom.Path
}

const (
	electricCheckpoint = 250.0
	coulombsPerCharge  = 0.01
)

var electricBounds = map[string]flow.Bounds{
	"voltage":   {Min: 0, Max: 100},
	"wireWidth": {Min: 10, Max: 100},
}

func NewElectric() *Electric {
	return &Electric{
		Voltage:   50,
		WireWidth: 50,
		path:      electricPath(),
	}
}

// electricPath is a 300x200 rectangle, perimeter exactly 1000, traversed
// clockwise from the bottom-left corner. The battery sits on the bottom run,
// so the checkpoint at 250 is just before the bottom-right corner.
func electricPath() *geom.Path {
	bl := geom.Vec{X: 50, Y: 250}
	br := geom.Vec{X: 350, Y: 250}
	tr := geom.Vec{X: 350, Y: 50}
	tl := geom.Vec{X: 50, Y: 50}
	return geom.NewPath(flow.TotalPathLength,
		geom.NewLine(0, 300, bl, br),
		geom.NewLine(300, 500, br, tr),
		geom.NewLine(500, 800, tr, tl),
		geom.NewLine(800, 1000, tl, bl),
	)
}

func (e *Electric) Name() string { return "electric" }

func (e *Electric) Position(progress float64, id, count int) flow.Point {
	return positionOn(e.path, progress, id, count, e.WireWidth, false)
}

func (e *Electric) Speed(progress float64) float64 {
	return (e.Voltage / 100) * 4
}

func (e *Electric) Checkpoint() float64       { return electricCheckpoint }
func (e *Electric) UnitPerEntity() float64    { return coulombsPerCharge }
func (e *Electric) RateUnit() string          { return "C/s" }
func (e *Electric) RatePrecision() int        { return 3 }
func (e *Electric) RatePolicy() flow.RatePolicy { return flow.RateBucket }
func (e *Electric) DefaultCount() int         { return 12 }

func (e *Electric) ViewBox() (float64, float64) { return 400, 300 }
func (e *Electric) Outline(step float64) []flow.Point {
	return outline(e.path, step)
}
func (e *Electric) StrokeWidth() float64 { return strokeFor(e.WireWidth) }

func (e *Electric) GetParams() map[string]float64 {
	return map[string]float64{
		"voltage":   e.Voltage,
		"wireWidth": e.WireWidth,
	}
}

func (e *Electric) ParamBounds(name string) (flow.Bounds, bool) {
	b, ok := electricBounds[name]
	return b, ok
}

func (e *Electric) SetParam(name string, value float64) error {
	b, ok := electricBounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", flow.ErrUnknownParam, name)
	}
	if !b.Contains(value) {
		return fmt.Errorf("%w: %s=%g (valid %g..%g)", flow.ErrParameterBounds, name, value, b.Min, b.Max)
	}
	switch name {
	case "voltage":
		e.Voltage = value
	case "wireWidth":
		e.WireWidth = value
	}
	return nil
}
