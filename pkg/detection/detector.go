// Package detection provides a local face-landmark provider using
// computer vision, for running the pipeline server-side against a
// webcam instead of a browser landmark client.
package detection

import "github.com/alvarohub/tiltplay/pkg/landmarks"

// numLandmarks is YuNet's landmark count
// (right eye, left eye, nose tip, right mouth corner, left mouth corner).
const numLandmarks = 5

// Detection represents a detected face
type Detection struct {
	X, Y       float64 // Top-left position (0-1 normalized)
	W, H       float64 // Width and height (0-1 normalized)
	Confidence float64 // Detection confidence (0-1)

	// Landmarks in normalized image coordinates, YuNet order.
	Landmarks [numLandmarks]landmarks.Point
}

// Area returns the area of the bounding box
func (d Detection) Area() float64 {
	return d.W * d.H
}

// FaceFrame converts the detection into the core's landmark model.
func (d Detection) FaceFrame() landmarks.FaceFrame {
	return landmarks.NewFrame(d.Landmarks[:], landmarks.YuNet5)
}

// Detector is the interface for face detection backends
type Detector interface {
	// Detect finds faces in the JPEG image and returns their
	// positions and landmarks
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YuNet
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/face_detection_yunet.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
	}
}

// SelectBest picks the best face from multiple detections: a single
// viewer drives playback, so confidence weighted by size wins.
func SelectBest(dets []Detection) *Detection {
	if len(dets) == 0 {
		return nil
	}

	if len(dets) == 1 {
		return &dets[0]
	}

	maxArea := 0.0
	for _, d := range dets {
		if d.Area() > maxArea {
			maxArea = d.Area()
		}
	}

	bestScore := -1.0
	var best *Detection

	for i := range dets {
		score := dets[i].Confidence*0.7 + (dets[i].Area()/maxArea)*0.3
		if score > bestScore {
			bestScore = score
			best = &dets[i]
		}
	}

	return best
}
