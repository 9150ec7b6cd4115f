package control

import "math"

// EffectiveTilt turns a raw roll angle into the angle the mapper and
// skip detector act on. Inside the dead zone the result is zero;
// outside, the magnitude shrinks by the dead-zone width so the curve
// stays continuous at the boundary, then sensitivity scales it.
// The dead zone must be applied before sensitivity: the other order
// would change the effective dead-zone width.
func EffectiveTilt(raw float64, s Settings) float64 {
	if math.Abs(raw) < s.DeadZone {
		return 0
	}
	eff := raw - math.Copysign(s.DeadZone, raw)
	return eff * s.Sensitivity
}
