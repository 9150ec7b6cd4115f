// Package control implements the tilt-to-playback pipeline: signal
// conditioning, discrete level mapping with hysteresis, skip
// detection, the presence/pause state machine and command dispatch.
package control

import (
	"sync"
	"time"

	"github.com/alvarohub/tiltplay/internal/log"
	"github.com/alvarohub/tiltplay/pkg/landmarks"
)

// seekStepInterval paces the repeating timed seek that emulates
// non-native seek rates. Steps are driven from the frame loop, not a
// timer, so the core stays free of background tasks.
const seekStepInterval = 100 * time.Millisecond

// Controller runs the per-frame pipeline. It is not safe for
// concurrent use: feed frames from a single goroutine and let UI code
// mutate settings only through the SettingsStore.
type Controller struct {
	settings *SettingsStore
	player   Player

	speed    *Mapper
	seek     *Mapper
	skip     *SkipDetector
	presence *Presence

	currentTilt  float64
	currentRate  float64
	lastMode     Mode
	lastSeekStep time.Time

	now func() time.Time

	snapMu sync.RWMutex
	snap   Snapshot
}

// Snapshot is a copy of the controller's observable state, safe to
// read from other goroutines (dashboards, status endpoints).
type Snapshot struct {
	Presence  string  `json:"presence"`
	Mode      Mode    `json:"mode"`
	Tilt      float64 `json:"tilt"`
	Effective float64 `json:"effective_tilt"`
	Level     int     `json:"level"`
	Rate      float64 `json:"rate"`
}

// New creates a controller resting at the neutral level of both
// tables.
func New(settings *SettingsStore, player Player) *Controller {
	speed := NewMapper(SpeedLevels())
	c := &Controller{
		settings:    settings,
		player:      player,
		speed:       speed,
		seek:        NewMapper(SeekRates()),
		skip:        &SkipDetector{},
		currentRate: speed.Table().Neutral(),
		lastMode:    settings.Get().Mode,
		now:         time.Now,
	}
	c.presence = NewPresence(c.now())
	return c
}

// ProcessFrame runs one landmark frame through the pipeline and
// dispatches at most one sink command. Frames are processed to
// completion before the next is accepted; the worst case on any bad
// frame is "no command issued".
func (c *Controller) ProcessFrame(frame landmarks.FaceFrame) Command {
	now := c.now()
	s := c.settings.Get() // fresh every frame, never cached
	c.syncMode(s.Mode)

	tilt, faceVisible := frame.Tilt()

	var cmd Command
	switch c.presence.Update(faceVisible, s.pauseDelay(), now) {
	case PresencePause:
		cmd = c.dispatchPause()
	case PresenceResume:
		cmd = c.dispatchResume(now)
	default:
		if !faceVisible || c.presence.State() == PresencePaused {
			cmd = none(0)
			break
		}
		c.currentTilt = tilt
		eff := EffectiveTilt(tilt, s)

		if c.skip.InBand(eff, s.MaxTilt) {
			cmd = none(eff)
			if delta, fired := c.skip.Detect(eff, s.MaxTilt, now); fired {
				cmd = c.dispatchSkip(delta, eff)
			}
			break
		}

		switch s.Mode {
		case ModeSeek:
			cmd = c.dispatchSeekRate(c.seek.Target(eff, s.MaxTilt), eff, now)
		default:
			cmd = c.dispatchSpeed(c.speed.Target(eff, s.MaxTilt), eff)
		}
	}

	c.publish(s.Mode, cmd)
	return cmd
}

// Snapshot returns the latest observable state.
func (c *Controller) Snapshot() Snapshot {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snap
}

// syncMode re-arms both mappers when the control mode flips between
// frames, so a stale level from the other table never leaks through.
func (c *Controller) syncMode(mode Mode) {
	if mode == c.lastMode {
		return
	}
	c.lastMode = mode
	c.speed.Reset()
	c.seek.Reset()
	c.restoreNeutralRate()
}

// dispatchSpeed applies a speed-level change, only when the target
// differs from the current level.
func (c *Controller) dispatchSpeed(target int, eff float64) Command {
	if target == c.speed.Current() {
		return none(eff)
	}
	rate := c.speed.Table().Value(target)
	if err := c.player.SetPlaybackRate(rate); err != nil {
		log.Warn("playback rate rejected", "rate", rate, "err", err)
		return none(eff)
	}
	c.speed.Commit(target)
	c.currentRate = rate
	return Command{Kind: CommandSpeed, Level: target, Value: rate, Tilt: eff}
}

// dispatchSeekRate applies a seek-level change and steps the repeating
// timed seek while an off-center level is held. Sinks cannot play
// backward natively, so both scrub directions are emulated by seeks.
func (c *Controller) dispatchSeekRate(target int, eff float64, now time.Time) Command {
	table := c.seek.Table()
	changed := c.seek.Commit(target)
	if changed {
		c.lastSeekStep = now
		if target == table.Center {
			c.restoreNeutralRate()
		}
	}

	if c.seek.Current() != table.Center {
		c.stepSeek(now)
	}

	if !changed {
		return none(eff)
	}
	return Command{Kind: CommandSeekRate, Level: target, Value: table.Value(target), Tilt: eff}
}

// stepSeek advances playback position by rate × elapsed, at most once
// per seekStepInterval, clamped at the start of the video.
func (c *Controller) stepSeek(now time.Time) {
	elapsed := now.Sub(c.lastSeekStep)
	if elapsed < seekStepInterval {
		return
	}
	current, err := c.player.CurrentTime()
	if err != nil {
		log.Warn("current time unavailable", "err", err)
		return
	}
	c.lastSeekStep = now

	rate := c.seek.Table().Value(c.seek.Current())
	target := current + rate*elapsed.Seconds()
	if target < 0 {
		target = 0
	}
	if err := c.player.SeekTo(target, true); err != nil {
		log.Warn("seek rejected", "to", target, "err", err)
	}
}

// dispatchSkip issues the one-shot seek for a fired skip. The level
// mappers are deliberately untouched: a skip and a level update never
// share a frame.
func (c *Controller) dispatchSkip(delta, eff float64) Command {
	current, err := c.player.CurrentTime()
	if err != nil {
		log.Warn("current time unavailable", "err", err)
		return none(eff)
	}
	target := current + delta
	if target < 0 {
		target = 0
	}
	if err := c.player.SeekTo(target, true); err != nil {
		log.Warn("skip seek rejected", "to", target, "err", err)
		return none(eff)
	}
	return Command{Kind: CommandSkip, Value: delta, Tilt: eff}
}

// dispatchPause pauses the sink once when the grace period expires.
func (c *Controller) dispatchPause() Command {
	c.currentTilt = 0
	if err := c.player.Pause(); err != nil {
		log.Warn("pause rejected", "err", err)
	}
	log.Info("viewer gone, playback paused")
	return Command{Kind: CommandPause}
}

// dispatchResume resets the pipeline to neutral and resumes playback
// on face re-detection: level back to center, neutral rate, then play
// if the sink is not already playing.
func (c *Controller) dispatchResume(now time.Time) Command {
	c.speed.Reset()
	c.seek.Reset()
	c.skip.Reset()
	c.lastSeekStep = now

	neutral := c.speed.Table().Neutral()
	if err := c.player.SetPlaybackRate(neutral); err != nil {
		log.Warn("playback rate rejected", "rate", neutral, "err", err)
	}
	c.currentRate = neutral
	if c.player.State() != StatePlaying {
		if err := c.player.Play(); err != nil {
			log.Warn("play rejected", "err", err)
		}
	}
	log.Info("viewer back, playback resumed")
	return Command{Kind: CommandResume, Value: neutral}
}

// restoreNeutralRate puts the sink back at the neutral playback rate
// if it is not already there.
func (c *Controller) restoreNeutralRate() {
	neutral := c.speed.Table().Neutral()
	if c.currentRate == neutral {
		return
	}
	if err := c.player.SetPlaybackRate(neutral); err != nil {
		log.Warn("playback rate rejected", "rate", neutral, "err", err)
		return
	}
	c.currentRate = neutral
}

// publish refreshes the cross-goroutine snapshot after a frame.
func (c *Controller) publish(mode Mode, cmd Command) {
	level := c.speed.Current()
	if mode == ModeSeek {
		level = c.seek.Current()
	}
	c.snapMu.Lock()
	c.snap = Snapshot{
		Presence:  c.presence.State().String(),
		Mode:      mode,
		Tilt:      c.currentTilt,
		Effective: cmd.Tilt,
		Level:     level,
		Rate:      c.currentRate,
	}
	c.snapMu.Unlock()
}
