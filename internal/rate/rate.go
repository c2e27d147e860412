// Package rate estimates checkpoint-crossing rates from timestamps.
//
// Two policies coexist because the three circuits historically measured
// differently: [Bucket] counts crossings in fixed 1-second buckets and steps
// its readout once per bucket, while [Window] keeps a rolling 5-second
// window of timestamps and reports a smoothed, continuously updated rate.
// Both bound their memory by construction and zero out on Reset.
package rate

import "time"

// Estimator turns checkpoint-crossing timestamps into a displayed rate.
// Implementations are driven from a single frame loop and are not safe for
// concurrent use.
type Estimator interface {
	// Record logs one checkpoint crossing at time t.
	Record(t time.Time)
	// Rate returns the current rate estimate as of now.
	Rate(now time.Time) float64
	// Reset discards all recorded crossings and zeroes the estimate.
	Reset()
}
