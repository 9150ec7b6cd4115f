package control

// LevelTable is an ordered set of discrete output values with a
// designated neutral entry. Speed tables hold playback rates, seek
// tables hold signed seek rates in media-seconds per wall-second.
type LevelTable struct {
	Values []float64
	Center int
}

// SpeedLevels is the playback-rate table. Index 2 (1.0×) is neutral.
func SpeedLevels() LevelTable {
	return LevelTable{
		Values: []float64{0.25, 0.5, 1.0, 1.5, 2.0, 3.0, 4.0},
		Center: 2,
	}
}

// SeekRates is the seek-rate table. Index 3 (+1, normal forward play)
// is neutral; negative entries scrub backward.
func SeekRates() LevelTable {
	return LevelTable{
		Values: []float64{-60, -15, -5, 1, 15, 60},
		Center: 3,
	}
}

// Last returns the highest valid index.
func (t LevelTable) Last() int {
	return len(t.Values) - 1
}

// Above returns the number of levels above the neutral entry.
func (t LevelTable) Above() int {
	return t.Last() - t.Center
}

// Value returns the output value at index i.
func (t LevelTable) Value(i int) float64 {
	return t.Values[i]
}

// Neutral returns the neutral output value.
func (t LevelTable) Neutral() float64 {
	return t.Values[t.Center]
}
