// Package landmarks defines the normalized facial landmark model and
// the head-roll estimator built on top of it.
package landmarks

import "math"

// Point is a single landmark in normalized image coordinates.
// X and Y are in [0,1] with the origin at the top-left of the frame.
// Z is carried through for providers that report it but is never used
// by the roll estimator.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Layout names the indices of the two required eye-corner points
// within a provider's landmark set. Different providers emit different
// collections; the estimator only ever reads these two.
type Layout struct {
	LeftEyeOuter  int
	RightEyeOuter int
}

// Known provider layouts.
var (
	// EyePair is the minimal two-point wire frame: just the eye corners.
	EyePair = Layout{LeftEyeOuter: 0, RightEyeOuter: 1}

	// MediaPipeMesh indexes into the 468-point FaceMesh set.
	// 33 and 263 are the outer eye corners.
	MediaPipeMesh = Layout{LeftEyeOuter: 33, RightEyeOuter: 263}

	// YuNet5 indexes into YuNet's 5-point set
	// (right eye, left eye, nose tip, right mouth corner, left mouth corner).
	YuNet5 = Layout{LeftEyeOuter: 1, RightEyeOuter: 0}
)

// LayoutByName resolves a wire-format layout name.
// An empty name means the minimal eye-pair layout.
func LayoutByName(name string) (Layout, bool) {
	switch name {
	case "", "pair":
		return EyePair, true
	case "mesh":
		return MediaPipeMesh, true
	case "yunet":
		return YuNet5, true
	}
	return Layout{}, false
}

// FaceFrame is the zero-or-one face detected in a single camera frame.
// The zero value means "no face".
type FaceFrame struct {
	Points []Point
	Layout Layout
}

// NewFrame builds a frame from a provider's point set.
func NewFrame(points []Point, layout Layout) FaceFrame {
	return FaceFrame{Points: points, Layout: layout}
}

// point returns the landmark at index i, if present.
func (f FaceFrame) point(i int) (Point, bool) {
	if i < 0 || i >= len(f.Points) {
		return Point{}, false
	}
	return f.Points[i], true
}

// Tilt estimates the signed head-roll angle in degrees from the line
// between the two outer eye corners. Positive means the head is tilted
// to the right (right eye higher in screen space). Returns ok=false
// when either required point is absent; callers must treat that as
// no-face. No clamping is applied here.
func (f FaceFrame) Tilt() (degrees float64, ok bool) {
	left, lok := f.point(f.Layout.LeftEyeOuter)
	right, rok := f.point(f.Layout.RightEyeOuter)
	if !lok || !rok {
		return 0, false
	}
	// Screen y grows downward, so a right eye that sits higher gives a
	// negative atan2; negate so "tilted right" reads positive.
	return -math.Atan2(right.Y-left.Y, right.X-left.X) * 180 / math.Pi, true
}
