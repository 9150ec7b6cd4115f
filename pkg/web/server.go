// Package web provides the HTTP/WebSocket host for the tilt engine:
// the control socket the browser client drives, a status broadcast
// for dashboards, and a small settings API.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/alvarohub/tiltplay/internal/log"
	"github.com/alvarohub/tiltplay/pkg/control"
	"github.com/alvarohub/tiltplay/pkg/hub"
	"github.com/alvarohub/tiltplay/pkg/landmarks"
	"github.com/alvarohub/tiltplay/pkg/player"
)

// Server is the tiltplay web host.
type Server struct {
	app  *fiber.App
	port string

	settings *control.SettingsStore
	remote   *player.Remote

	// Snapshot of the engine state, for /api/state
	snapshot func() control.Snapshot

	// Hubs for websocket broadcast
	statusHub  *hub.Hub
	previewHub *hub.Hub

	// Incoming landmark frames for the engine loop. Bounded: if the
	// engine falls behind, frames are dropped at the door.
	frames chan landmarks.FaceFrame
}

// NewServer creates the web host.
func NewServer(port string, settings *control.SettingsStore, remote *player.Remote, snapshot func() control.Snapshot) *Server {
	s := &Server{
		port:       port,
		settings:   settings,
		remote:     remote,
		snapshot:   snapshot,
		statusHub:  hub.New("status"),
		previewHub: hub.New("preview"),
		frames:     make(chan landmarks.FaceFrame, 4),
	}

	app := fiber.New(fiber.Config{
		AppName:               "tiltplay",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files (browser client + dashboard)
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/settings", s.handleGetSettings)
	api.Put("/settings", s.handlePutSettings)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/control", websocket.New(s.handleControlWS))
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))

	s.app = app
	return s
}

// Start starts the hubs and the web server. Blocks.
func (s *Server) Start() error {
	log.Info("web server listening", "port", s.port)

	go s.statusHub.Run()
	go s.previewHub.Run()

	return s.app.Listen(":" + s.port)
}

// Frames returns the channel the engine loop consumes landmark frames
// from.
func (s *Server) Frames() <-chan landmarks.FaceFrame {
	return s.frames
}

// PublishState broadcasts an engine state update to dashboard clients.
func (s *Server) PublishState(v interface{}) {
	s.statusHub.BroadcastJSON(v)
}

// PublishPreview broadcasts a JPEG preview frame (local-capture mode).
func (s *Server) PublishPreview(jpeg []byte) {
	s.previewHub.BroadcastBinary(jpeg)
}

// PushFrame offers a landmark frame to the engine, dropping it when
// the engine is behind. Used by the local-capture provider; the
// control socket pushes through the same door.
func (s *Server) PushFrame(frame landmarks.FaceFrame) {
	select {
	case s.frames <- frame:
	default:
		log.Debug("engine behind, dropping frame")
	}
}

// Shutdown gracefully stops the web server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
