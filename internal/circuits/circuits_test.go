package circuits

import (
	"errors"
	"math"
	"testing"

	"github.com/flowlab/flowlab/internal/flow"
)

func allCircuits() []flow.Circuit {
	return []flow.Circuit{NewElectric(), NewWater(), NewPlayground()}
}

// Positions must be continuous at segment boundaries: a discontinuity shows
// up on screen as an entity jumping sideways.
func TestPositionContinuityAtBoundaries(t *testing.T) {
	const eps = 1e-7

	paths := map[string][]float64{
		"electric":   {300, 500, 800},
		"water":      {350, 650},
		"playground": {300, 600, 800},
	}

	for _, c := range allCircuits() {
		for _, boundary := range paths[c.Name()] {
			below := c.Position(boundary-eps, 0, 1)
			at := c.Position(boundary, 0, 1)
			dx, dy := at.X-below.X, at.Y-below.Y
			if math.Hypot(dx, dy) > 1e-3 {
				t.Errorf("%s: discontinuity at %v: %v vs %v", c.Name(), boundary, below, at)
			}
		}
	}
}

func TestPositionContinuityAtWrap(t *testing.T) {
	const eps = 1e-7
	for _, c := range allCircuits() {
		end := c.Position(flow.TotalPathLength-eps, 0, 1)
		start := c.Position(0, 0, 1)
		if math.Hypot(end.X-start.X, end.Y-start.Y) > 1e-3 {
			t.Errorf("%s: path does not close: %v vs %v", c.Name(), end, start)
		}
	}
}

func TestPositionWraparound(t *testing.T) {
	for _, c := range allCircuits() {
		a := c.Position(flow.TotalPathLength+5, 0, 1)
		b := c.Position(5, 0, 1)
		if math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 {
			t.Errorf("%s: Position(1005) = %v, want Position(5) = %v", c.Name(), a, b)
		}
	}
}

func TestSingleEntityRidesCenterline(t *testing.T) {
	for _, c := range allCircuits() {
		for _, progress := range []float64{0, 100, 400, 700, 950} {
			single := c.Position(progress, 0, 1)
			// With many entities id 0 may be offset; with one it may not.
			for id := 0; id < 5; id++ {
				got := c.Position(progress, id, 1)
				if got.X != single.X || got.Y != single.Y {
					t.Errorf("%s: count=1 position depends on id %d", c.Name(), id)
				}
			}
		}
	}
}

func TestElectricSpeed(t *testing.T) {
	e := NewElectric()

	tests := []struct {
		voltage float64
		want    float64
	}{
		{0, 0},
		{25, 1},
		{50, 2},
		{100, 4},
	}
	for _, tt := range tests {
		e.Voltage = tt.voltage
		if got := e.Speed(0); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("voltage %v: speed = %v, want %v", tt.voltage, got, tt.want)
		}
	}

	// Wire width never changes electric speed.
	e.Voltage = 50
	e.WireWidth = 10
	narrow := e.Speed(0)
	e.WireWidth = 100
	wide := e.Speed(0)
	if narrow != wide {
		t.Errorf("speed depends on wire width: %v vs %v", narrow, wide)
	}
}

func TestWaterSpeedSegments(t *testing.T) {
	w := NewWater()
	w.HeightDifference = 50
	w.PipeWidth = 100 // widthFactor 1.0

	gravity := w.Speed(100)
	if math.Abs(gravity-2.5) > 1e-12 {
		t.Errorf("gravity speed = %v, want 2.5", gravity)
	}
	pump := w.Speed(500)
	if math.Abs(pump-3.0) > 1e-12 {
		t.Errorf("pump speed = %v, want 3.0", pump)
	}
	if w.Speed(349.999) == w.Speed(350) {
		t.Error("expected speed regime change at 350")
	}
}

func TestPlaygroundSpeedSegments(t *testing.T) {
	p := NewPlayground()
	p.SlideHeight = 100
	p.SlideWidth = 100 // widthFactor 1.0

	if got := p.Speed(100); math.Abs(got-5.5) > 1e-12 {
		t.Errorf("slide speed = %v, want 5.5", got)
	}
	if got := p.Speed(450); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("run speed = %v, want 2.0", got)
	}
	if got := p.Speed(700); math.Abs(got-3.0) > 1e-12 {
		t.Errorf("elevator speed = %v, want 3.0", got)
	}
}

func TestWidthFactor(t *testing.T) {
	if got := widthFactor(10); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("widthFactor(10) = %v, want 0.2", got)
	}
	if got := widthFactor(100); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("widthFactor(100) = %v, want 1.0", got)
	}
	if got := widthFactor(55); math.Abs(got-0.6) > 1e-12 {
		t.Errorf("widthFactor(55) = %v, want 0.6", got)
	}
}

func TestSetParamBounds(t *testing.T) {
	for _, c := range allCircuits() {
		for name := range c.GetParams() {
			b, ok := c.ParamBounds(name)
			if !ok {
				t.Fatalf("%s: no bounds for %s", c.Name(), name)
			}
			if err := c.SetParam(name, b.Min); err != nil {
				t.Errorf("%s: SetParam(%s, min) failed: %v", c.Name(), name, err)
			}
			if err := c.SetParam(name, b.Max); err != nil {
				t.Errorf("%s: SetParam(%s, max) failed: %v", c.Name(), name, err)
			}
			err := c.SetParam(name, b.Max+1)
			if !errors.Is(err, flow.ErrParameterBounds) {
				t.Errorf("%s: SetParam(%s, out of range) = %v, want ErrParameterBounds", c.Name(), name, err)
			}
		}
		err := c.SetParam("bogus", 50)
		if !errors.Is(err, flow.ErrUnknownParam) {
			t.Errorf("%s: unknown param error = %v", c.Name(), err)
		}
	}
}

func TestPlaygroundSlideAngle(t *testing.T) {
	p := NewPlayground()

	// Mid-slide the kid should be heading down and to the right.
	pt := p.Position(150, 0, 1)
	if pt.Angle <= 0 || pt.Angle >= math.Pi {
		t.Errorf("mid-slide angle = %v, want downward heading in (0, pi)", pt.Angle)
	}
}

func TestNewByName(t *testing.T) {
	for _, name := range Names() {
		c, err := New(name)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("New(%s).Name() = %s", name, c.Name())
		}
	}

	_, err := New("steam")
	if !errors.Is(err, flow.ErrUnknownCircuit) {
		t.Errorf("New(steam) error = %v, want ErrUnknownCircuit", err)
	}
}

func TestDefaultParams(t *testing.T) {
	for _, c := range allCircuits() {
		for name, val := range c.GetParams() {
			if val != 50 {
				t.Errorf("%s: initial %s = %v, want 50", c.Name(), name, val)
			}
		}
	}
}
