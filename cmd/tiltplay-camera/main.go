// tiltplay-camera - local capture mode
//
// Runs the whole pipeline server-side: webcam frames go through the
// YuNet face detector and into the control engine. The browser still
// connects for playback (it owns the video element), but needs no
// camera access or landmark model.
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
	"github.com/alvarohub/tiltplay/pkg/detection"
	"github.com/alvarohub/tiltplay/pkg/landmarks"
	"github.com/alvarohub/tiltplay/pkg/player"
	"github.com/alvarohub/tiltplay/pkg/web"
)

func main() {
	config.LoadEnv()
	log.Init(config.LogLevel())

	var (
		port      = flag.String("port", config.Port(), "HTTP port")
		deviceID  = flag.Int("device", 0, "camera device ID")
		modelPath = flag.String("model", config.ModelPath(detection.DefaultConfig().ModelPath), "YuNet ONNX model path")
		fps       = flag.Int("fps", 30, "capture rate")
		preview   = flag.Bool("preview", false, "broadcast camera preview to /ws/preview")
	)
	flag.Parse()

	store, err := control.NewSettingsStore(control.DefaultSettings())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = *modelPath
	detector, err := detection.NewYuNet(detCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer detector.Close()

	camera, err := detection.OpenCamera(*deviceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer camera.Close()

	remote := player.NewRemote()
	ctrl := control.New(store, remote)
	srv := web.NewServer(*port, store, remote, ctrl.Snapshot)

	fmt.Println("🎬 tiltplay-camera - local capture mode")
	fmt.Printf("   http://localhost:%s  (device %d, %d fps)\n", *port, *deviceID, *fps)

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down")
		cancel()
	}()

	go capture(ctx, camera, detector, srv, *fps, *preview)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case frame := <-srv.Frames():
				ctrl.ProcessFrame(frame)
			}
		}
	}()

	go func() {
		<-ctx.Done()
		srv.Shutdown()
	}()

	if err := srv.Start(); err != nil {
		log.Error("web server stopped", "err", err)
		os.Exit(1)
	}
}

// capture paces the camera, runs detection and feeds the engine. A
// frame with no usable face still goes in: absence drives the
// presence machine.
func capture(ctx context.Context, camera *detection.Camera, detector detection.Detector, srv *web.Server, fps int, preview bool) {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		jpeg, err := camera.CaptureJPEG()
		if err != nil {
			log.Warn("capture failed", "err", err)
			continue
		}
		if preview {
			srv.PublishPreview(jpeg)
		}

		dets, err := detector.Detect(jpeg)
		if err != nil {
			log.Warn("detection failed", "err", err)
			srv.PushFrame(landmarks.FaceFrame{})
			continue
		}

		if best := detection.SelectBest(dets); best != nil {
			srv.PushFrame(best.FaceFrame())
		} else {
			srv.PushFrame(landmarks.FaceFrame{})
		}
	}
}
