package rate

import (
	"math"
	"testing"
	"time"
)

func at(ms int) time.Time {
	return time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
}

func TestBucketReportsCountTimesUnit(t *testing.T) {
	b := NewBucket(0.01)

	// Five crossings spread across one 1-second bucket.
	for _, ms := range []int{0, 150, 400, 650, 900} {
		b.Record(at(ms))
	}

	// Mid-bucket the previous readout (zero) still holds.
	if got := b.Rate(at(500)); got != 0 {
		t.Errorf("mid-bucket rate = %v, want 0", got)
	}

	if got := b.Rate(at(1000)); math.Abs(got-0.05) > 1e-12 {
		t.Errorf("bucket rate = %v, want 0.05", got)
	}

	// A quiet second steps the readout back to zero.
	if got := b.Rate(at(2000)); got != 0 {
		t.Errorf("quiet bucket rate = %v, want 0", got)
	}
}

func TestBucketHoldsBetweenBoundaries(t *testing.T) {
	b := NewBucket(1)

	b.Record(at(0))
	b.Record(at(100))
	first := b.Rate(at(1000))
	if first != 2 {
		t.Fatalf("rate = %v, want 2", first)
	}

	// Readout is quantized: it must not change until the next boundary.
	if got := b.Rate(at(1500)); got != first {
		t.Errorf("rate moved mid-bucket: %v", got)
	}
}

func TestBucketReset(t *testing.T) {
	b := NewBucket(1)

	b.Record(at(0))
	b.Record(at(10))
	b.Rate(at(1000))

	b.Reset()
	if got := b.Rate(at(1001)); got != 0 {
		t.Errorf("rate after reset = %v, want 0", got)
	}
}

func TestWindowRate(t *testing.T) {
	w := NewWindow()

	// Timestamps at 0, 1 and 2 seconds: (3-1)/2s = 1 crossing per second.
	w.Record(at(0))
	w.Record(at(1000))
	w.Record(at(2000))

	if got := w.Rate(at(2000)); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("rate = %v, want 1.0", got)
	}
}

func TestWindowFewTimestamps(t *testing.T) {
	w := NewWindow()
	if got := w.Rate(at(0)); got != 0 {
		t.Errorf("empty rate = %v, want 0", got)
	}

	w.Record(at(100))
	if got := w.Rate(at(500)); got != 0 {
		t.Errorf("single-timestamp rate = %v, want 0", got)
	}
}

func TestWindowPrunesStaleEntries(t *testing.T) {
	w := NewWindow()

	w.Record(at(0))
	w.Record(at(5500))
	w.Record(at(6500))

	// At t=7s the first entry is outside the 5-second window and must be
	// gone: rate derives from the remaining pair.
	got := w.Rate(at(7000))
	want := 1.0 // (2-1)/1s
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("pruned rate = %v, want %v", got, want)
	}
	if len(w.stamps) != 2 {
		t.Errorf("retained %d stamps, want 2", len(w.stamps))
	}
}

func TestWindowThrottle(t *testing.T) {
	w := NewWindow()

	w.Record(at(0))
	w.Record(at(1000))
	first := w.Rate(at(1000))

	// A crossing landing inside the throttle interval is not reflected
	// until the next recomputation.
	w.Record(at(1050))
	if got := w.Rate(at(1060)); got != first {
		t.Errorf("throttled rate = %v, want cached %v", got, first)
	}

	after := w.Rate(at(1200))
	if after == first {
		t.Error("rate did not refresh after throttle interval")
	}
}

func TestWindowReset(t *testing.T) {
	w := NewWindow()

	w.Record(at(0))
	w.Record(at(500))
	if w.Rate(at(500)) == 0 {
		t.Fatal("expected non-zero rate before reset")
	}

	w.Reset()
	if got := w.Rate(at(501)); got != 0 {
		t.Errorf("rate after reset = %v, want 0", got)
	}
	if len(w.stamps) != 0 {
		t.Errorf("stamps not cleared: %d", len(w.stamps))
	}
}
