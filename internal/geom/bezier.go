package geom

// Bezier is a cubic Bezier segment. The tangent comes from the analytic
// derivative, which also supplies the normal for lane offsets and the
// rotation angle for entities riding the curve.
type Bezier struct {
	start, end     float64
	p0, p1, p2, p3 Vec
}

func NewBezier(start, end float64, p0, p1, p2, p3 Vec) *Bezier {
	return &Bezier{start: start, end: end, p0: p0, p1: p1, p2: p2, p3: p3}
}

func (b *Bezier) Range() (float64, float64) { return b.start, b.end }

func (b *Bezier) At(p float64) (Vec, Vec) {
	span := b.end - b.start
	t := 0.0
	if span != 0 {
		t = (p - b.start) / span
	}
	return b.Eval(t), b.Derivative(t).Unit()
}

// Eval computes the curve point at parameter t in [0,1].
func (b *Bezier) Eval(t float64) Vec {
	u := 1 - t
	uu := u * u
	tt := t * t
	pos := b.p0.Scale(uu * u)
	pos = pos.Add(b.p1.Scale(3 * uu * t))
	pos = pos.Add(b.p2.Scale(3 * u * tt))
	pos = pos.Add(b.p3.Scale(tt * t))
	return pos
}

// Derivative computes dB/dt at parameter t.
func (b *Bezier) Derivative(t float64) Vec {
	u := 1 - t
	d := b.p1.Sub(b.p0).Scale(3 * u * u)
	d = d.Add(b.p2.Sub(b.p1).Scale(6 * u * t))
	d = d.Add(b.p3.Sub(b.p2).Scale(3 * t * t))
	if d.X == 0 && d.Y == 0 {
		// Degenerate control layout (coincident points); fall back to the
		// chord so the tangent never vanishes.
		return b.p3.Sub(b.p0)
	}
	return d
}
