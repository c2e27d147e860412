package circuits

import (
	"fmt"

	"github.com/flowlab/flowlab/internal/flow"
	"github.com/flowlab/flowlab/internal/geom"
)

// Playground models kids on a slide loop: down the Bezier slide from the
// platform (progress < 300), a run across the yard back to the elevator
// (300..600), then the elevator up and a short platform walk (600..1000).
// Kids on the slide are rotated to follow the curve's tangent.
type Playground struct {
	SlideHeight float64
	SlideWidth  float64

	path  *geom.Path
	slide *geom.Bezier
}

const (
	playgroundCheckpoint = 300.0
	slideEnd             = 300.0
	runEnd               = 600.0
)

var playgroundBounds = map[string]flow.Bounds{
	"slideHeight": {Min: 10, Max: 100},
	"slideWidth":  {Min: 10, Max: 100},
}

func NewPlayground() *Playground {
	slide := geom.NewBezier(0, slideEnd,
		geom.Vec{X: 110, Y: 70},  // platform lip
		geom.Vec{X: 190, Y: 80},  // eases off the platform
		geom.Vec{X: 180, Y: 240}, // steep middle drop
		geom.Vec{X: 300, Y: 240}, // flattens onto the ground
	)
	ground := geom.Vec{X: 300, Y: 240}
	elevatorBase := geom.Vec{X: 80, Y: 240}
	elevatorTop := geom.Vec{X: 80, Y: 70}
	platform := geom.Vec{X: 110, Y: 70}
	return &Playground{
		SlideHeight: 50,
		SlideWidth:  50,
		slide:       slide,
		path: geom.NewPath(flow.TotalPathLength,
			slide,
			geom.NewLine(slideEnd, runEnd, ground, elevatorBase),
			geom.NewLine(runEnd, 800, elevatorBase, elevatorTop),
			geom.NewLine(800, 1000, elevatorTop, platform),
		),
	}
}

func (p *Playground) Name() string { return "playground" }

func (p *Playground) Position(progress float64, id, count int) flow.Point {
	return positionOn(p.path, progress, id, count, p.SlideWidth, true)
}

func (p *Playground) Speed(progress float64) float64 {
	wf := widthFactor(p.SlideWidth)
	switch {
	case progress < slideEnd:
		return (1.5 + (p.SlideHeight/100)*4) * wf
	case progress < runEnd:
		return 2 * wf
	default:
		return 3 * wf
	}
}

func (p *Playground) Checkpoint() float64         { return playgroundCheckpoint }
func (p *Playground) UnitPerEntity() float64      { return 1 }
func (p *Playground) RateUnit() string            { return "kids/s" }
func (p *Playground) RatePrecision() int          { return 2 }
func (p *Playground) RatePolicy() flow.RatePolicy { return flow.RateWindow }
func (p *Playground) DefaultCount() int           { return 6 }

func (p *Playground) ViewBox() (float64, float64) { return 400, 300 }
func (p *Playground) Outline(step float64) []flow.Point {
	return outline(p.path, step)
}
func (p *Playground) StrokeWidth() float64 { return strokeFor(p.SlideWidth) }

func (p *Playground) GetParams() map[string]float64 {
	return map[string]float64{
		"slideHeight": p.SlideHeight,
		"slideWidth":  p.SlideWidth,
	}
}

func (p *Playground) ParamBounds(name string) (flow.Bounds, bool) {
	b, ok := playgroundBounds[name]
	return b, ok
}

func (p *Playground) SetParam(name string, value float64) error {
	b, ok := playgroundBounds[name]
	if !ok {
		return fmt.Errorf("%w: %s", flow.ErrUnknownParam, name)
	}
	if !b.Contains(value) {
		return fmt.Errorf("%w: %s=%g (valid %g..%g)", flow.ErrParameterBounds, name, value, b.Min, b.Max)
	}
	switch name {
	case "slideHeight":
		p.SlideHeight = value
	case "slideWidth":
		p.SlideWidth = value
	}
	return nil
}
