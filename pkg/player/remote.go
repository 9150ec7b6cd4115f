// Package player implements the playback sink over the WebSocket
// session to the browser client that owns the actual video element.
// Commands go out as protocol messages; the browser reports status
// back, which the bridge caches to answer CurrentTime and State.
package player

import (
	"errors"
	"sync"
	"time"

	"github.com/alvarohub/tiltplay/pkg/control"
	"github.com/alvarohub/tiltplay/pkg/protocol"
)

var (
	// ErrNotConnected means no browser client currently owns playback.
	ErrNotConnected = errors.New("player: no client connected")
	// ErrNoStatus means the client has not reported playback status yet.
	ErrNoStatus = errors.New("player: no status reported yet")
)

// Sender delivers one protocol message to the connected client.
type Sender func(*protocol.Message) error

// Remote is the websocket-backed playback sink. Safe for concurrent
// use: the engine goroutine issues commands while websocket read
// handlers feed status reports.
type Remote struct {
	mu         sync.RWMutex
	send       Sender
	reported   protocol.PlayerData
	reportedAt time.Time
	hasReport  bool

	now func() time.Time
}

// NewRemote creates a bridge with no client attached.
func NewRemote() *Remote {
	return &Remote{now: time.Now}
}

// SetSender attaches the active control client's write path.
func (r *Remote) SetSender(s Sender) {
	r.mu.Lock()
	r.send = s
	r.mu.Unlock()
}

// ClearSender detaches the client (on disconnect). Cached status is
// kept; it just stops extrapolating once state reports stop.
func (r *Remote) ClearSender() {
	r.mu.Lock()
	r.send = nil
	r.mu.Unlock()
}

// Connected reports whether a client currently owns playback.
func (r *Remote) Connected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.send != nil
}

// UpdateStatus records a status report from the client.
func (r *Remote) UpdateStatus(d protocol.PlayerData) {
	r.mu.Lock()
	r.reported = d
	r.reportedAt = r.now()
	r.hasReport = true
	r.mu.Unlock()
}

// command sends one playback command to the client.
func (r *Remote) command(data protocol.CommandData) error {
	r.mu.RLock()
	send := r.send
	r.mu.RUnlock()
	if send == nil {
		return ErrNotConnected
	}
	msg, err := protocol.NewMessage(protocol.TypeCommand, data)
	if err != nil {
		return err
	}
	return send(msg)
}

// SetPlaybackRate asks the sink to change its native playback rate.
func (r *Remote) SetPlaybackRate(rate float64) error {
	if err := r.command(protocol.CommandData{Action: protocol.ActionSetRate, Rate: rate}); err != nil {
		return err
	}
	r.mu.Lock()
	r.reported.Rate = rate
	r.mu.Unlock()
	return nil
}

// SeekTo asks the sink to jump to an absolute position.
func (r *Remote) SeekTo(seconds float64, exact bool) error {
	if err := r.command(protocol.CommandData{Action: protocol.ActionSeek, Time: seconds, Exact: exact}); err != nil {
		return err
	}
	// Optimistic: the next status report corrects any drift.
	r.mu.Lock()
	if r.hasReport {
		r.reported.CurrentTime = seconds
		r.reportedAt = r.now()
	}
	r.mu.Unlock()
	return nil
}

// Play asks the sink to start playback.
func (r *Remote) Play() error {
	return r.command(protocol.CommandData{Action: protocol.ActionPlay})
}

// Pause asks the sink to pause playback.
func (r *Remote) Pause() error {
	return r.command(protocol.CommandData{Action: protocol.ActionPause})
}

// CurrentTime returns the playback position, extrapolated from the
// last report while the sink is playing.
func (r *Remote) CurrentTime() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasReport {
		return 0, ErrNoStatus
	}
	t := r.reported.CurrentTime
	if r.reported.State == "playing" {
		rate := r.reported.Rate
		if rate <= 0 {
			rate = 1
		}
		t += r.now().Sub(r.reportedAt).Seconds() * rate
	}
	return t, nil
}

// State maps the last reported sink state.
func (r *Remote) State() control.PlayerState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasReport || r.reported.State == "" {
		return control.StateUnknown
	}
	if r.reported.State == "playing" {
		return control.StatePlaying
	}
	return control.StatePaused
}
