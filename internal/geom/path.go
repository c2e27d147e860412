package geom

import "math"

// Segment is one piece of a closed path, covering the half-open progress
// range [Start, End). Adjacent segments must share endpoint coordinates so
// the assembled path is continuous.
type Segment interface {
	Range() (start, end float64)
	// At evaluates the centerline position and unit tangent at progress p,
	// start <= p <= end.
	At(p float64) (pos, tangent Vec)
}

// Line is a straight segment with a fixed orientation.
type Line struct {
	start, end float64
	from, to   Vec
	tangent    Vec
}

func NewLine(start, end float64, from, to Vec) *Line {
	return &Line{start: start, end: end, from: from, to: to, tangent: to.Sub(from).Unit()}
}

func (l *Line) Range() (float64, float64) { return l.start, l.end }

func (l *Line) At(p float64) (Vec, Vec) {
	span := l.end - l.start
	if span == 0 {
		return l.from, l.tangent
	}
	t := (p - l.start) / span
	return Lerp(l.from, l.to, t), l.tangent
}

// Path is a closed sequence of contiguous segments covering [0, Total).
type Path struct {
	segs  []Segment
	total float64
}

// NewPath assembles a closed path. Segments must be ordered and contiguous;
// the last segment's end must equal total.
func NewPath(total float64, segs ...Segment) *Path {
	return &Path{segs: segs, total: total}
}

func (p *Path) Total() float64 { return p.total }

// Boundaries returns the progress values where one segment hands over to the
// next, including the wrap point at 0.
func (p *Path) Boundaries() []float64 {
	bs := make([]float64, 0, len(p.segs))
	for _, s := range p.segs {
		start, _ := s.Range()
		bs = append(bs, start)
	}
	return bs
}

// Segments exposes the pieces for continuity checks.
func (p *Path) Segments() []Segment { return p.segs }

// At evaluates position and unit tangent at progress mod Total.
func (p *Path) At(progress float64) (Vec, Vec) {
	pr := math.Mod(progress, p.total)
	if pr < 0 {
		pr += p.total
	}
	for _, s := range p.segs {
		start, end := s.Range()
		if pr >= start && pr < end {
			return s.At(pr)
		}
	}
	// Float rounding can land pr on the seam; treat it as the path start.
	return p.segs[0].At(0)
}

// Sample walks the path every step progress units and returns the centerline
// points, closing the loop with a final point at progress 0.
func (p *Path) Sample(step float64) []Vec {
	if step <= 0 {
		step = p.total / 100
	}
	pts := make([]Vec, 0, int(p.total/step)+2)
	for pr := 0.0; pr < p.total; pr += step {
		pos, _ := p.At(pr)
		pts = append(pts, pos)
	}
	pos, _ := p.At(0)
	pts = append(pts, pos)
	return pts
}
