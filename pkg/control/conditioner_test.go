package control

import (
	"math"
	"testing"
)

func TestEffectiveTilt(t *testing.T) {
	s := Settings{Sensitivity: 1, DeadZone: 3, MaxTilt: 25, Mode: ModeSpeed}

	tests := []struct {
		name string
		raw  float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside dead zone", 2.9, 0},
		{"inside dead zone negative", -2.9, 0},
		{"just outside", 3.0, 0},
		{"ten degrees", 10, 7},
		{"ten degrees negative", -10, -7},
		{"large", 40, 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveTilt(tt.raw, s); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EffectiveTilt(%g) = %g, want %g", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEffectiveTilt_ContinuousAtBoundary(t *testing.T) {
	s := Settings{Sensitivity: 1.5, DeadZone: 3, MaxTilt: 25, Mode: ModeSpeed}

	below := EffectiveTilt(3.0-1e-9, s)
	above := EffectiveTilt(3.0+1e-9, s)
	if math.Abs(below-above) > 1e-6 {
		t.Errorf("discontinuity at dead-zone edge: %g vs %g", below, above)
	}
}

func TestEffectiveTilt_DeadZoneBeforeSensitivity(t *testing.T) {
	// With sensitivity 2 the dead zone must still be 3 raw degrees
	// wide: (10-3)*2, never (10*2)-3.
	s := Settings{Sensitivity: 2, DeadZone: 3, MaxTilt: 25, Mode: ModeSpeed}

	if got := EffectiveTilt(10, s); got != 14 {
		t.Errorf("EffectiveTilt(10) = %g, want 14", got)
	}
	if got := EffectiveTilt(2.5, s); got != 0 {
		t.Errorf("EffectiveTilt(2.5) = %g, want 0 inside dead zone", got)
	}
}

func TestEffectiveTilt_ZeroSensitivity(t *testing.T) {
	s := Settings{Sensitivity: 0, DeadZone: 3, MaxTilt: 25, Mode: ModeSpeed}
	if got := EffectiveTilt(20, s); got != 0 {
		t.Errorf("EffectiveTilt(20) = %g, want 0 with zero sensitivity", got)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"negative sensitivity", func(s *Settings) { s.Sensitivity = -0.1 }, true},
		{"negative dead zone", func(s *Settings) { s.DeadZone = -1 }, true},
		{"max tilt below dead zone", func(s *Settings) { s.MaxTilt = 2 }, true},
		{"max tilt equal dead zone", func(s *Settings) { s.MaxTilt = s.DeadZone }, true},
		{"negative pause delay", func(s *Settings) { s.PauseDelay = -1 }, true},
		{"bad mode", func(s *Settings) { s.Mode = "shuffle" }, true},
		{"seek mode", func(s *Settings) { s.Mode = ModeSeek }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsStore_RejectsInvalid(t *testing.T) {
	st, err := NewSettingsStore(DefaultSettings())
	if err != nil {
		t.Fatalf("NewSettingsStore() error = %v", err)
	}

	bad := DefaultSettings()
	bad.MaxTilt = bad.DeadZone
	if err := st.Set(bad); err == nil {
		t.Error("Set() accepted max tilt <= dead zone")
	}
	if got := st.Get(); got != DefaultSettings() {
		t.Errorf("store mutated by rejected Set: %+v", got)
	}
}
