package flow

// TotalPathLength is the closed-path length shared by all three circuits.
// Entity progress is taken modulo this value to locate a position.
const TotalPathLength = 1000.0

// Entity is one moving particle on a circuit's closed path: a charge in the
// electric circuit, a drop in the water circuit, a kid on the playground.
// Progress grows without bound; the position on the path is
// Progress mod TotalPathLength.
type Entity struct {
	ID       int
	Progress float64
}

// Point is a per-frame output record consumed by the rendering layers.
// Angle is in radians from the positive x axis; circuits that do not rotate
// their entities leave it 0.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Bounds is the inclusive valid range of a circuit parameter.
type Bounds struct {
	Min, Max float64
}

// Clamp forces v into the bounds.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Contains reports whether v lies inside the bounds.
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// RatePolicy selects how a circuit's flow rate is estimated from checkpoint
// crossings.
type RatePolicy int

const (
	// RateBucket counts crossings in fixed 1-second buckets and reports a
	// stepped readout once per bucket.
	RateBucket RatePolicy = iota
	// RateWindow derives a smoothed readout from the timestamps retained in
	// a rolling 5-second window.
	RateWindow
)

// Configurable exposes runtime-tunable parameters with declared bounds.
// Setters reject out-of-range values instead of clamping, matching the
// slider widgets that feed them.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
	ParamBounds(name string) (Bounds, bool)
}

// Circuit is one of the three animated analogies. Implementations are pure
// kinematics: a position function over a closed path plus a speed law driven
// by the current parameter values.
type Circuit interface {
	Configurable

	Name() string

	// Position maps an entity's progress to a point on the path. Progress is
	// taken modulo TotalPathLength. The entity id and total count select a
	// lane offset perpendicular to the path; a count of 1 always rides the
	// centerline.
	Position(progress float64, id, count int) Point

	// Speed returns the per-frame progress increment for an entity at the
	// given position (progress already reduced modulo TotalPathLength).
	Speed(progress float64) float64

	// Checkpoint is the fixed progress value whose crossing is counted by
	// the rate estimator.
	Checkpoint() float64

	// UnitPerEntity converts one checkpoint crossing into the circuit's
	// physical unit (Coulombs, Liters, kids).
	UnitPerEntity() float64

	RateUnit() string
	RatePrecision() int
	RatePolicy() RatePolicy

	// DefaultCount is the number of entities seeded at reset.
	DefaultCount() int

	// ViewBox is the drawing extent of the circuit in path coordinates.
	ViewBox() (width, height float64)

	// Outline samples the path centerline every step progress units for the
	// rendering layers.
	Outline(step float64) []Point

	// StrokeWidth is the rendered conduit width derived from the current
	// width parameter.
	StrokeWidth() float64
}
