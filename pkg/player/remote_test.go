package player

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alvarohub/tiltplay/pkg/control"
	"github.com/alvarohub/tiltplay/pkg/protocol"
)

func TestRemote_NotConnected(t *testing.T) {
	r := NewRemote()

	if err := r.SetPlaybackRate(2.0); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SetPlaybackRate() error = %v, want ErrNotConnected", err)
	}
	if err := r.Pause(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Pause() error = %v, want ErrNotConnected", err)
	}
	if _, err := r.CurrentTime(); !errors.Is(err, ErrNoStatus) {
		t.Errorf("CurrentTime() error = %v, want ErrNoStatus", err)
	}
	if got := r.State(); got != control.StateUnknown {
		t.Errorf("State() = %v, want unknown", got)
	}
}

func TestRemote_SendsCommands(t *testing.T) {
	r := NewRemote()
	var sent []protocol.CommandData
	r.SetSender(func(msg *protocol.Message) error {
		if msg.Type != protocol.TypeCommand {
			t.Errorf("message type = %v, want command", msg.Type)
		}
		var data protocol.CommandData
		if err := msg.ParseData(&data); err != nil {
			t.Fatalf("ParseData() error = %v", err)
		}
		sent = append(sent, data)
		return nil
	})

	if err := r.SetPlaybackRate(1.5); err != nil {
		t.Fatalf("SetPlaybackRate() error = %v", err)
	}
	if err := r.SeekTo(42, true); err != nil {
		t.Fatalf("SeekTo() error = %v", err)
	}
	if err := r.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := r.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}

	want := []protocol.CommandData{
		{Action: protocol.ActionSetRate, Rate: 1.5},
		{Action: protocol.ActionSeek, Time: 42, Exact: true},
		{Action: protocol.ActionPlay},
		{Action: protocol.ActionPause},
	}
	if len(sent) != len(want) {
		t.Fatalf("sent %d commands, want %d", len(sent), len(want))
	}
	for i := range want {
		if sent[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, sent[i], want[i])
		}
	}
}

func TestRemote_StatusAndExtrapolation(t *testing.T) {
	r := NewRemote()
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	r.UpdateStatus(protocol.PlayerData{CurrentTime: 100, State: "playing", Rate: 2.0})

	if got := r.State(); got != control.StatePlaying {
		t.Errorf("State() = %v, want playing", got)
	}

	now = now.Add(3 * time.Second)
	got, err := r.CurrentTime()
	if err != nil {
		t.Fatalf("CurrentTime() error = %v", err)
	}
	if math.Abs(got-106) > 1e-9 { // 100 + 3s × 2.0
		t.Errorf("CurrentTime() = %g, want 106", got)
	}

	// Paused: no extrapolation.
	r.UpdateStatus(protocol.PlayerData{CurrentTime: 50, State: "paused"})
	now = now.Add(10 * time.Second)
	got, err = r.CurrentTime()
	if err != nil {
		t.Fatalf("CurrentTime() error = %v", err)
	}
	if got != 50 {
		t.Errorf("CurrentTime() = %g, want 50 while paused", got)
	}
	if r.State() != control.StatePaused {
		t.Errorf("State() = %v, want paused", r.State())
	}
}

func TestRemote_SeekUpdatesCachedPosition(t *testing.T) {
	r := NewRemote()
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }
	r.SetSender(func(*protocol.Message) error { return nil })
	r.UpdateStatus(protocol.PlayerData{CurrentTime: 100, State: "paused"})

	if err := r.SeekTo(30, true); err != nil {
		t.Fatalf("SeekTo() error = %v", err)
	}
	got, err := r.CurrentTime()
	if err != nil {
		t.Fatalf("CurrentTime() error = %v", err)
	}
	if got != 30 {
		t.Errorf("CurrentTime() = %g, want 30 after seek", got)
	}
}

func TestRemote_ClearSender(t *testing.T) {
	r := NewRemote()
	r.SetSender(func(*protocol.Message) error { return nil })
	if !r.Connected() {
		t.Fatal("Connected() = false after SetSender")
	}
	r.ClearSender()
	if r.Connected() {
		t.Fatal("Connected() = true after ClearSender")
	}
	if err := r.Play(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Play() error = %v, want ErrNotConnected", err)
	}
}
