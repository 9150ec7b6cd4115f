package control

import "time"

// PresenceState tracks face visibility across frames.
type PresenceState int

const (
	// PresenceActive means the face is visible and tilt drives playback.
	PresenceActive PresenceState = iota
	// PresenceLost means the face is absent but within the grace period.
	PresenceLost
	// PresencePaused means the grace period expired and the sink was paused.
	PresencePaused
)

func (s PresenceState) String() string {
	switch s {
	case PresenceActive:
		return "active"
	case PresenceLost:
		return "lost"
	case PresencePaused:
		return "paused"
	}
	return "unknown"
}

// PresenceEvent is the side effect a presence update asks for.
type PresenceEvent int

const (
	// PresenceNone: carry on.
	PresenceNone PresenceEvent = iota
	// PresencePause: grace period expired, pause the sink once.
	PresencePause
	// PresenceResume: face back after a pause, resume the sink.
	PresenceResume
)

// Presence is the face-detected / face-lost state machine that gates
// the mapper and skip detector. While paused the only meaningful input
// is "face detected again".
type Presence struct {
	state    PresenceState
	lastSeen time.Time
	pausing  bool
}

// NewPresence starts the machine in the active state, treating now as
// the last sighting so an initially empty camera view still gets the
// full grace period.
func NewPresence(now time.Time) *Presence {
	return &Presence{state: PresenceActive, lastSeen: now}
}

// Update advances the machine for one frame and returns the event the
// caller must dispatch. A pause is requested exactly once per loss;
// the pausing flag is cleared only by face re-detection.
func (p *Presence) Update(faceVisible bool, pauseDelay time.Duration, now time.Time) PresenceEvent {
	if faceVisible {
		p.lastSeen = now
		wasPaused := p.state == PresencePaused
		p.state = PresenceActive
		if wasPaused {
			p.pausing = false
			return PresenceResume
		}
		return PresenceNone
	}

	switch p.state {
	case PresenceActive:
		p.state = PresenceLost
	case PresenceLost:
		if now.Sub(p.lastSeen) > pauseDelay && !p.pausing {
			p.state = PresencePaused
			p.pausing = true
			return PresencePause
		}
	}
	return PresenceNone
}

// State returns the current presence state.
func (p *Presence) State() PresenceState {
	return p.state
}

// Pausing reports whether the last dispatched sink command was a pause
// that has not yet been cleared by a re-detection.
func (p *Presence) Pausing() bool {
	return p.pausing
}

// LastSeen returns when a face was last visible.
func (p *Presence) LastSeen() time.Time {
	return p.lastSeen
}
