// tiltplay-sim - scripted landmark replay
//
// Connects to a running server as a control client and replays a tilt
// trajectory as landmark frames: ramp right, hold, flat, extreme tilt
// (skip), face loss, recovery. Prints every command the engine sends
// back. Useful for demos and end-to-end smoke checks without a camera.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alvarohub/tiltplay/pkg/landmarks"
	"github.com/alvarohub/tiltplay/pkg/protocol"
)

// client serializes writes: frames and status reports come from
// different goroutines.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) send(msgType protocol.MessageType, data interface{}) error {
	msg, err := protocol.NewMessage(msgType, data)
	if err != nil {
		return err
	}
	raw, err := msg.Bytes()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, raw)
}

type step struct {
	label   string
	degrees float64
	noFace  bool
	frames  int
}

func script(grace time.Duration, fps int) []step {
	graceFrames := int(grace/time.Second)*fps + fps
	return []step{
		{label: "flat", degrees: 0, frames: fps},
		{label: "ramp to 10°", degrees: 10, frames: 2 * fps},
		{label: "hold 10°", degrees: 10, frames: 2 * fps},
		{label: "ease to 6°", degrees: 6, frames: fps},
		{label: "flat", degrees: 0, frames: fps},
		{label: "hard tilt (skip)", degrees: 28, frames: fps},
		{label: "flat", degrees: 0, frames: fps},
		{label: "face lost", noFace: true, frames: graceFrames},
		{label: "face back", degrees: 0, frames: fps},
	}
}

func main() {
	var (
		url = flag.String("url", "ws://localhost:8080/ws/control", "control socket URL")
		fps = flag.Int("fps", 30, "frame rate")
	)
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: dial %s: %v\n", *url, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("🎭 tiltplay-sim connected to %s\n", *url)

	c := &client{conn: conn}

	// Pretend to be a playing sink so seeks and rates have something
	// to act on.
	go reportStatus(c)
	go printCommands(c)

	interval := time.Second / time.Duration(*fps)
	for _, st := range script(3*time.Second, *fps) {
		fmt.Printf("▶ %s (%d frames)\n", st.label, st.frames)
		for i := 0; i < st.frames; i++ {
			if err := c.send(protocol.TypeFrame, frameData(st)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: send frame: %v\n", err)
				os.Exit(1)
			}
			time.Sleep(interval)
		}
	}

	fmt.Println("✅ script complete")
}

// frameData builds one two-point landmark frame at the given roll.
func frameData(st step) protocol.FrameData {
	data := protocol.FrameData{}
	if !st.noFace {
		rad := st.degrees * math.Pi / 180
		data.Detected = true
		data.Points = []landmarks.Point{
			{X: 0.4, Y: 0.5},
			{X: 0.6, Y: 0.5 - 0.2*math.Tan(rad)},
		}
	}
	return data
}

// reportStatus plays the sink's role: a steady position report.
func reportStatus(c *client) {
	start := time.Now()
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		err := c.send(protocol.TypePlayer, protocol.PlayerData{
			CurrentTime: 100 + time.Since(start).Seconds(),
			State:       "playing",
			Rate:        1.0,
		})
		if err != nil {
			return
		}
	}
}

// printCommands echoes every command the engine dispatches.
func printCommands(c *client) {
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := protocol.ParseMessage(raw)
		if err != nil || msg.Type != protocol.TypeCommand {
			continue
		}
		var cmd protocol.CommandData
		if err := msg.ParseData(&cmd); err != nil {
			continue
		}
		switch cmd.Action {
		case protocol.ActionSetRate:
			fmt.Printf("  ⏩ rate %.2g×\n", cmd.Rate)
		case protocol.ActionSeek:
			fmt.Printf("  ⏭  seek to %.1fs\n", cmd.Time)
		case protocol.ActionPlay:
			fmt.Println("  ▶ play")
		case protocol.ActionPause:
			fmt.Println("  ⏸ pause")
		}
	}
}
