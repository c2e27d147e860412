package circuits

import (
	"fmt"

	"github.com/flowlab/flowlab/internal/flow"
	"github.com/flowlab/flowlab/internal/geom"
)

// New returns a fresh circuit with all parameters at their initial values.
func New(name string) (flow.Circuit, error) {
	switch name {
	case "electric":
		return NewElectric(), nil
	case "water":
		return NewWater(), nil
	case "playground":
		return NewPlayground(), nil
	default:
		return nil, fmt.Errorf("%w: %s", flow.ErrUnknownCircuit, name)
	}
}

// Names lists the circuits in their canonical panel order.
func Names() []string {
	return []string{"electric", "water", "playground"}
}

// All instantiates every circuit in canonical order.
func All() []flow.Circuit {
	cs := make([]flow.Circuit, 0, 3)
	for _, name := range Names() {
		c, _ := New(name)
		cs = append(cs, c)
	}
	return cs
}

// widthFactor normalizes a width-type slider (10..100) into a multiplicative
// speed scalar in [0.2, 1.0]: a narrow conduit slows everything down.
func widthFactor(width float64) float64 {
	return 0.2 + 0.8*((width-10)/90)
}

// strokeFor derives the rendered conduit width from a width parameter.
func strokeFor(width float64) float64 {
	return width * 0.2
}

// positionOn evaluates the path at progress and applies the lane offset
// along the local normal.
func positionOn(p *geom.Path, progress float64, id, count int, width float64, withAngle bool) flow.Point {
	pos, tan := p.At(progress)
	off := geom.LaneOffset(id, count, width, strokeFor(width))
	n := tan.Perp()
	pt := flow.Point{X: pos.X + n.X*off, Y: pos.Y + n.Y*off}
	if withAngle {
		pt.Angle = tan.Angle()
	}
	return pt
}

// outline converts sampled centerline points for the rendering layers.
func outline(p *geom.Path, step float64) []flow.Point {
	vs := p.Sample(step)
	pts := make([]flow.Point, len(vs))
	for i, v := range vs {
		pts[i] = flow.Point{X: v.X, Y: v.Y}
	}
	return pts
}
