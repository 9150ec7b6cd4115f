package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alvarohub/tiltplay/pkg/control"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, "sensitivity: 1.5\ndead_zone: 4\nmax_tilt: 30\nmode: seek\n")

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got.Sensitivity != 1.5 || got.DeadZone != 4 || got.MaxTilt != 30 || got.Mode != control.ModeSeek {
		t.Errorf("LoadSettings() = %+v", got)
	}
	// Omitted keys keep defaults.
	if got.PauseDelay != control.DefaultSettings().PauseDelay {
		t.Errorf("PauseDelay = %g, want default", got.PauseDelay)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := writeSettings(t, "dead_zone: 30\nmax_tilt: 10\n")
	if _, err := LoadSettings(path); err == nil {
		t.Error("LoadSettings() accepted max_tilt <= dead_zone")
	}
}

func TestLoadSettings_Missing(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadSettings() accepted a missing file")
	}
}

func TestPort(t *testing.T) {
	t.Setenv("PORT", "")
	if got := Port(); got != DefaultPort {
		t.Errorf("Port() = %q, want default %q", got, DefaultPort)
	}
	t.Setenv("PORT", "9000")
	if got := Port(); got != "9000" {
		t.Errorf("Port() = %q, want 9000", got)
	}
}
