// Package protocol defines the WebSocket message types between the
// tiltplay server and the browser client that owns the camera,
// landmark model and video element.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alvarohub/tiltplay/pkg/landmarks"
)

// MessageType identifies the type of WebSocket message
type MessageType string

const (
	// Client → Server messages
	TypeFrame    MessageType = "frame"    // Landmark frame
	TypePlayer   MessageType = "player"   // Playback sink status report
	TypeSettings MessageType = "settings" // Settings update request

	// Server → Client messages
	TypeCommand MessageType = "command" // Playback command
	TypeState   MessageType = "state"   // Engine state for dashboards

	// Bidirectional
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"
)

// Message is the base wrapper for all WebSocket messages
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// =============================================================================
// Client → Server Message Types
// =============================================================================

// FrameData carries one camera frame's landmarks. Detected=false (or
// a missing point set) means "no face this frame".
type FrameData struct {
	Detected bool              `json:"detected"`
	Layout   string            `json:"layout,omitempty"` // "pair" (default), "mesh", "yunet"
	Points   []landmarks.Point `json:"points,omitempty"`
}

// FaceFrame converts the wire frame into the core's landmark model.
// Unknown layouts and undetected frames both come back as no-face.
func (f FrameData) FaceFrame() landmarks.FaceFrame {
	if !f.Detected {
		return landmarks.FaceFrame{}
	}
	layout, ok := landmarks.LayoutByName(f.Layout)
	if !ok {
		return landmarks.FaceFrame{}
	}
	return landmarks.NewFrame(f.Points, layout)
}

// PlayerData is the sink status the browser reports back: playback
// position, coarse state and current rate.
type PlayerData struct {
	CurrentTime float64 `json:"current_time"`
	State       string  `json:"state"` // "playing", "paused", "buffering", ...
	Rate        float64 `json:"rate,omitempty"`
}

// =============================================================================
// Server → Client Message Types
// =============================================================================

// Command actions understood by the browser player shim.
const (
	ActionSetRate = "set_rate"
	ActionSeek    = "seek"
	ActionPlay    = "play"
	ActionPause   = "pause"
)

// CommandData is one playback command for the sink.
type CommandData struct {
	Action string  `json:"action"`
	Rate   float64 `json:"rate,omitempty"`
	Time   float64 `json:"time,omitempty"`
	Exact  bool    `json:"exact,omitempty"`
}

// StateData is the engine state broadcast to dashboard clients.
type StateData struct {
	Presence  string  `json:"presence"`
	Mode      string  `json:"mode"`
	Tilt      float64 `json:"tilt"`
	Effective float64 `json:"effective_tilt"`
	Level     int     `json:"level"`
	Rate      float64 `json:"rate"`
	Command   string  `json:"command,omitempty"`
}
