package control

// PlayerState is the coarse playback state reported by the sink.
type PlayerState int

const (
	StateUnknown PlayerState = iota
	StatePlaying
	StatePaused
)

func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// Player is the playback sink the controller drives. Implementations
// may reject calls (for example a rate outside the sink's accepted
// range); the controller treats every error as non-fatal and retries
// naturally on the next frame.
type Player interface {
	SetPlaybackRate(rate float64) error
	SeekTo(seconds float64, exact bool) error
	CurrentTime() (float64, error)
	Play() error
	Pause() error
	State() PlayerState
}
