package control

import "math"

const (
	// centerSnapDeg snaps the mapper to the neutral level when the
	// effective tilt is nearly flat.
	centerSnapDeg = 2.0

	// hysteresisMargin inflates the effective tilt when retreating
	// toward neutral, so dropping a level takes a larger rollback than
	// gaining it took.
	hysteresisMargin = 0.15
)

// Mapper converts an effective tilt into an index of a level table.
// It carries the current and previous index so it can bias against
// flicker at level boundaries.
type Mapper struct {
	table    LevelTable
	current  int
	previous int
}

// NewMapper creates a mapper resting at the table's neutral level.
func NewMapper(table LevelTable) *Mapper {
	return &Mapper{table: table, current: table.Center, previous: table.Center}
}

// Table returns the level table the mapper selects from.
func (m *Mapper) Table() LevelTable {
	return m.table
}

// Current returns the committed level index.
func (m *Mapper) Current() int {
	return m.current
}

// Reset re-arms the mapper at the neutral level.
func (m *Mapper) Reset() {
	m.current = m.table.Center
	m.previous = m.table.Center
}

// Target computes the index the effective tilt maps to, without
// committing it. Hysteresis is one-directional: only a step back
// toward neutral on the same side of center re-derives the offset from
// an inflated tilt, clamped between the neutral and current index.
// Advancing away from neutral is never inflated.
func (m *Mapper) Target(effective, maxTilt float64) int {
	center := m.table.Center
	if math.Abs(effective) < centerSnapDeg {
		return center
	}

	target := m.rawTarget(effective, maxTilt)
	if m.retreating(target) {
		target = m.rawTarget(effective*(1+hysteresisMargin), maxTilt)
		if m.current > center {
			target = clampInt(target, center, m.current)
		} else {
			target = clampInt(target, m.current, center)
		}
	}
	return target
}

// Commit records a new level index. Returns false when the target is
// already current, so callers skip redundant sink calls.
func (m *Mapper) Commit(target int) bool {
	if target == m.current {
		return false
	}
	m.previous = m.current
	m.current = target
	return true
}

// rawTarget scales the tilt into a ceil-rounded offset from center.
// The two directions span different level counts, so each uses its own
// range.
func (m *Mapper) rawTarget(effective, maxTilt float64) int {
	center := m.table.Center
	if effective > 0 {
		offset := int(math.Ceil(effective / maxTilt * float64(m.table.Above())))
		return clampInt(center+offset, center, m.table.Last())
	}
	offset := int(math.Ceil(-effective / maxTilt * float64(center)))
	return clampInt(center-offset, 0, center)
}

// retreating reports whether target is a step toward neutral while the
// current index sits on the same side of center.
func (m *Mapper) retreating(target int) bool {
	center := m.table.Center
	sameSide := (m.current > center && target > center) ||
		(m.current < center && target < center)
	toward := absInt(target-center) < absInt(m.current-center)
	return sameSide && toward
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
