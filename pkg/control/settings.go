package control

import (
	"fmt"
	"sync"
	"time"
)

// Mode selects what the tilt drives: discrete playback speeds or
// signed seek rates.
type Mode string

const (
	ModeSpeed Mode = "speed"
	ModeSeek  Mode = "seek"
)

// Settings holds the user-tunable parameters read by every pipeline
// stage. Angles are degrees, PauseDelay is seconds.
type Settings struct {
	Sensitivity float64 `json:"sensitivity" yaml:"sensitivity"`
	DeadZone    float64 `json:"dead_zone" yaml:"dead_zone"`
	MaxTilt     float64 `json:"max_tilt" yaml:"max_tilt"`
	PauseDelay  float64 `json:"pause_delay" yaml:"pause_delay"`
	Mode        Mode    `json:"mode" yaml:"mode"`
}

// DefaultSettings returns the recommended starting configuration.
func DefaultSettings() Settings {
	return Settings{
		Sensitivity: 1.0,
		DeadZone:    3.0,
		MaxTilt:     25.0,
		PauseDelay:  2.0,
		Mode:        ModeSpeed,
	}
}

// Validate rejects configurations the pipeline cannot run on.
// MaxTilt must exceed DeadZone or the mapper would divide by a
// non-positive range.
func (s Settings) Validate() error {
	switch {
	case s.Sensitivity < 0:
		return fmt.Errorf("sensitivity must be >= 0, got %g", s.Sensitivity)
	case s.DeadZone < 0:
		return fmt.Errorf("dead zone must be >= 0, got %g", s.DeadZone)
	case s.MaxTilt <= s.DeadZone:
		return fmt.Errorf("max tilt (%g) must exceed dead zone (%g)", s.MaxTilt, s.DeadZone)
	case s.PauseDelay < 0:
		return fmt.Errorf("pause delay must be >= 0, got %g", s.PauseDelay)
	case s.Mode != ModeSpeed && s.Mode != ModeSeek:
		return fmt.Errorf("unknown control mode %q", s.Mode)
	}
	return nil
}

// pauseDelay returns PauseDelay as a duration.
func (s Settings) pauseDelay() time.Duration {
	return time.Duration(s.PauseDelay * float64(time.Second))
}

// SettingsStore guards settings against concurrent mutation from UI
// handlers while the frame loop reads them. The controller fetches a
// fresh copy every frame and never caches across frames.
type SettingsStore struct {
	mu sync.RWMutex
	s  Settings
}

// NewSettingsStore creates a store with validated initial settings.
func NewSettingsStore(s Settings) (*SettingsStore, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &SettingsStore{s: s}, nil
}

// Get returns the current settings.
func (st *SettingsStore) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// Set replaces the settings after validation.
func (st *SettingsStore) Set(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
	return nil
}
