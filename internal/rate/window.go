package rate

import "time"

const (
	defaultWindow   = 5 * time.Second
	defaultThrottle = 100 * time.Millisecond
)

// Window retains crossing timestamps from a trailing window and derives the
// rate from their span: (n-1)/(newest-oldest). Entries falling out of the
// window are pruned on every recomputation, so memory stays bounded no
// matter how long the simulation runs. Recomputation is throttled so a
// per-frame caller does not churn the log sixty times a second.
type Window struct {
	window   time.Duration
	throttle time.Duration
	stamps   []time.Time
	lastAt   time.Time
	last     float64
}

func NewWindow() *Window {
	return &Window{window: defaultWindow, throttle: defaultThrottle}
}

func (w *Window) Record(t time.Time) {
	w.stamps = append(w.stamps, t)
}

func (w *Window) Rate(now time.Time) float64 {
	if !w.lastAt.IsZero() && now.Sub(w.lastAt) < w.throttle {
		return w.last
	}
	w.lastAt = now
	w.prune(now)
	if len(w.stamps) < 2 {
		w.last = 0
		return 0
	}
	span := w.stamps[len(w.stamps)-1].Sub(w.stamps[0]).Seconds()
	if span <= 0 {
		w.last = 0
		return 0
	}
	w.last = float64(len(w.stamps)-1) / span
	return w.last
}

func (w *Window) prune(now time.Time) {
	cutoff := now.Add(-w.window)
	i := 0
	for i < len(w.stamps) && w.stamps[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

func (w *Window) Reset() {
	w.stamps = w.stamps[:0]
	w.lastAt = time.Time{}
	w.last = 0
}
