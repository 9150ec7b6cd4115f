package control

// CommandKind classifies what a processed frame resulted in.
type CommandKind string

const (
	CommandNone     CommandKind = "none"
	CommandSpeed    CommandKind = "speed"
	CommandSeekRate CommandKind = "seek_rate"
	CommandSkip     CommandKind = "skip"
	CommandPause    CommandKind = "pause"
	CommandResume   CommandKind = "resume"
)

// Command is what ProcessFrame reports back to the host: at most one
// sink-visible action per frame, plus the effective tilt that led to
// it (for dashboards).
type Command struct {
	Kind  CommandKind `json:"kind"`
	Level int         `json:"level,omitempty"`
	Value float64     `json:"value,omitempty"`
	Tilt  float64     `json:"tilt"`
}

// none is the no-op command for a given tilt.
func none(tilt float64) Command {
	return Command{Kind: CommandNone, Tilt: tilt}
}
