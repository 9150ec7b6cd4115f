package control

import (
	"math"
	"time"
)

const (
	// skipThreshold is the fraction of MaxTilt at which a tilt stops
	// driving levels and fires a one-shot skip instead.
	skipThreshold = 0.9

	// skipDebounce is the minimum gap between fired skips.
	skipDebounce = 500 * time.Millisecond

	// skipAmount is the fixed skip size in seconds.
	skipAmount = 10.0
)

// SkipDetector intercepts extreme tilt and turns it into one-shot
// timed seeks. A fired skip is mutually exclusive with a level update
// in the same frame; the controller checks it first.
type SkipDetector struct {
	lastSkip time.Time
}

// InBand reports whether the effective tilt sits in the skip band.
// Frames in the band never reach the mode mapper, fired or debounced:
// an extreme tilt is a skip gesture, not a speed request.
func (d *SkipDetector) InBand(effective, maxTilt float64) bool {
	return math.Abs(effective) >= maxTilt*skipThreshold
}

// Detect reports whether the effective tilt crosses the skip band and
// the debounce window has elapsed. On fire it records the skip time
// and returns the signed skip delta in seconds (positive = forward).
func (d *SkipDetector) Detect(effective, maxTilt float64, now time.Time) (delta float64, fired bool) {
	if math.Abs(effective) < maxTilt*skipThreshold {
		return 0, false
	}
	if !d.lastSkip.IsZero() && now.Sub(d.lastSkip) < skipDebounce {
		return 0, false
	}
	d.lastSkip = now
	if effective > 0 {
		return skipAmount, true
	}
	return -skipAmount, true
}

// Reset clears the debounce window.
func (d *SkipDetector) Reset() {
	d.lastSkip = time.Time{}
}
