// tiltplay server - head-tilt video playback control
//
// The browser client captures the camera, runs the landmark model and
// owns the video element; this server runs the control pipeline and
// sends playback commands back over the control socket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alvarohub/tiltplay/internal/config"
	"github.com/alvarohub/tiltplay/internal/log"
	"github.com/alvarohub/tiltplay/pkg/control"
	"github.com/alvarohub/tiltplay/pkg/player"
	"github.com/alvarohub/tiltplay/pkg/protocol"
	"github.com/alvarohub/tiltplay/pkg/web"
)

func main() {
	config.LoadEnv()
	log.Init(config.LogLevel())

	var (
		port         = flag.String("port", config.Port(), "HTTP port")
		settingsPath = flag.String("settings", "", "YAML settings preset (optional)")
	)
	flag.Parse()

	settings := control.DefaultSettings()
	if *settingsPath != "" {
		var err error
		settings, err = config.LoadSettings(*settingsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := control.NewSettingsStore(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	remote := player.NewRemote()
	ctrl := control.New(store, remote)
	srv := web.NewServer(*port, store, remote, ctrl.Snapshot)

	fmt.Println("🎬 tiltplay - head tilt playback control")
	fmt.Printf("   http://localhost:%s  (mode: %s)\n", *port, settings.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down")
		cancel()
	}()

	go runEngine(ctx, ctrl, srv)

	go func() {
		<-ctx.Done()
		srv.Shutdown()
	}()

	if err := srv.Start(); err != nil {
		log.Error("web server stopped", "err", err)
		os.Exit(1)
	}
}

// runEngine drains landmark frames into the controller and broadcasts
// state to dashboard clients: on every dispatched command, plus a slow
// heartbeat while idle.
func runEngine(ctx context.Context, ctrl *control.Controller, srv *web.Server) {
	heartbeat := time.NewTicker(time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case frame := <-srv.Frames():
			cmd := ctrl.ProcessFrame(frame)
			if cmd.Kind != control.CommandNone {
				srv.PublishState(stateData(ctrl.Snapshot(), cmd))
			}

		case <-heartbeat.C:
			srv.PublishState(stateData(ctrl.Snapshot(), control.Command{Kind: control.CommandNone}))
		}
	}
}

func stateData(snap control.Snapshot, cmd control.Command) protocol.StateData {
	data := protocol.StateData{
		Presence:  snap.Presence,
		Mode:      string(snap.Mode),
		Tilt:      snap.Tilt,
		Effective: snap.Effective,
		Level:     snap.Level,
		Rate:      snap.Rate,
	}
	if cmd.Kind != control.CommandNone {
		data.Command = string(cmd.Kind)
	}
	return data
}
