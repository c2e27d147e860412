package rate

import "time"

// Bucket counts crossings within a fixed wall-clock bucket and reports
// count*unit when the bucket closes. The readout is quantized: it changes
// once per bucket and holds steady in between.
type Bucket struct {
	unit   float64
	length time.Duration
	start  time.Time
	count  int
	last   float64
}

// NewBucket reports in units per second using 1-second buckets, converting
// each crossing into unit physical units.
func NewBucket(unit float64) *Bucket {
	return &Bucket{unit: unit, length: time.Second}
}

func (b *Bucket) Record(t time.Time) {
	if b.start.IsZero() {
		b.start = t
	}
	b.count++
}

func (b *Bucket) Rate(now time.Time) float64 {
	if b.start.IsZero() {
		b.start = now
		return b.last
	}
	if now.Sub(b.start) >= b.length {
		b.last = float64(b.count) * b.unit
		b.count = 0
		b.start = now
	}
	return b.last
}

func (b *Bucket) Reset() {
	b.start = time.Time{}
	b.count = 0
	b.last = 0
}
