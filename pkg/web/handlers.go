package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/alvarohub/tiltplay/internal/log"
	"github.com/alvarohub/tiltplay/pkg/control"
	"github.com/alvarohub/tiltplay/pkg/hub"
	"github.com/alvarohub/tiltplay/pkg/protocol"
)

// handleState returns the engine's current snapshot.
func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(s.snapshot())
}

// handleGetSettings returns the current settings.
func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	return c.JSON(s.settings.Get())
}

// handlePutSettings replaces the settings; invalid combinations are
// rejected at assignment time, before the engine ever sees them.
func (s *Server) handlePutSettings(c *fiber.Ctx) error {
	var req control.Settings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := s.settings.Set(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	log.Info("settings updated", "settings", req)
	return c.JSON(req)
}

// wsWriter serializes writes to a control connection: commands arrive
// from the engine goroutine while pongs come from the read loop.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) write(msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, data)
}

// handleControlWS is the browser client's socket: landmark frames and
// player status in, playback commands out. One client owns playback at
// a time; a new connection takes over.
func (s *Server) handleControlWS(c *websocket.Conn) {
	writer := &wsWriter{conn: c}
	s.remote.SetSender(writer.write)
	log.Info("control client connected", "addr", c.RemoteAddr())

	defer func() {
		s.remote.ClearSender()
		c.Close()
		log.Info("control client disconnected")
	}()

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			log.Warn("bad control message", "err", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeFrame:
			var frame protocol.FrameData
			if err := msg.ParseData(&frame); err != nil {
				log.Warn("bad frame payload", "err", err)
				continue
			}
			s.PushFrame(frame.FaceFrame())

		case protocol.TypePlayer:
			var status protocol.PlayerData
			if err := msg.ParseData(&status); err != nil {
				log.Warn("bad player payload", "err", err)
				continue
			}
			s.remote.UpdateStatus(status)

		case protocol.TypeSettings:
			var req control.Settings
			if err := msg.ParseData(&req); err != nil {
				log.Warn("bad settings payload", "err", err)
				continue
			}
			if err := s.settings.Set(req); err != nil {
				log.Warn("settings rejected", "err", err)
			}

		case protocol.TypePing:
			if pong, err := protocol.NewMessage(protocol.TypePong, nil); err == nil {
				writer.write(pong)
			}
		}
	}
}

// handleStatusWS subscribes a dashboard client to engine state
// broadcasts.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	hub.NewClient(s.statusHub, c).Run()
}

// handlePreviewWS subscribes a dashboard client to camera preview
// frames (local-capture mode only).
func (s *Server) handlePreviewWS(c *websocket.Conn) {
	hub.NewClient(s.previewHub, c).Run()
}
