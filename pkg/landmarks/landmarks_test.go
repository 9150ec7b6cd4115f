package landmarks

import (
	"math"
	"testing"
)

func TestTilt_SignAndMagnitude(t *testing.T) {
	// Right eye higher than left: head tilted right, angle positive.
	frame := NewFrame([]Point{
		{X: 0.40, Y: 0.50}, // left eye outer
		{X: 0.60, Y: 0.45}, // right eye outer
	}, EyePair)

	got, ok := frame.Tilt()
	if !ok {
		t.Fatal("Tilt() ok = false, want true")
	}

	want := -math.Atan2(-0.05, 0.20) * 180 / math.Pi // ≈ 14.04
	if math.Abs(got-want) > 0.1 {
		t.Errorf("Tilt() = %.3f, want %.3f ±0.1", got, want)
	}
	if got <= 0 {
		t.Errorf("Tilt() = %.3f, want positive for a rightward tilt", got)
	}
}

func TestTilt_SignConvention(t *testing.T) {
	tests := []struct {
		name     string
		left     Point
		right    Point
		positive bool
	}{
		{"right eye higher", Point{0.4, 0.5, 0}, Point{0.6, 0.4, 0}, true},
		{"left eye higher", Point{0.4, 0.4, 0}, Point{0.6, 0.5, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := NewFrame([]Point{tt.left, tt.right}, EyePair)
			got, ok := frame.Tilt()
			if !ok {
				t.Fatal("Tilt() ok = false, want true")
			}
			if (got > 0) != tt.positive {
				t.Errorf("Tilt() = %.3f, want positive=%v", got, tt.positive)
			}
		})
	}
}

func TestTilt_Level(t *testing.T) {
	frame := NewFrame([]Point{
		{X: 0.40, Y: 0.50},
		{X: 0.60, Y: 0.50},
	}, EyePair)

	got, ok := frame.Tilt()
	if !ok {
		t.Fatal("Tilt() ok = false, want true")
	}
	if got != 0 {
		t.Errorf("Tilt() = %.3f, want 0 for level eyes", got)
	}
}

func TestTilt_MissingPoints(t *testing.T) {
	tests := []struct {
		name  string
		frame FaceFrame
	}{
		{"zero value", FaceFrame{}},
		{"empty points", NewFrame(nil, EyePair)},
		{"one point", NewFrame([]Point{{X: 0.5, Y: 0.5}}, EyePair)},
		{"mesh layout on short set", NewFrame(make([]Point, 40), MediaPipeMesh)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.frame.Tilt(); ok {
				t.Error("Tilt() ok = true, want false for missing landmarks")
			}
		})
	}
}

func TestTilt_MeshLayout(t *testing.T) {
	points := make([]Point, 468)
	points[33] = Point{X: 0.40, Y: 0.45}  // left eye outer
	points[263] = Point{X: 0.60, Y: 0.50} // right eye outer

	frame := NewFrame(points, MediaPipeMesh)
	got, ok := frame.Tilt()
	if !ok {
		t.Fatal("Tilt() ok = false, want true")
	}
	if got >= 0 {
		t.Errorf("Tilt() = %.3f, want negative (left eye higher)", got)
	}
}

func TestLayoutByName(t *testing.T) {
	tests := []struct {
		name   string
		want   Layout
		wantOK bool
	}{
		{"", EyePair, true},
		{"pair", EyePair, true},
		{"mesh", MediaPipeMesh, true},
		{"yunet", YuNet5, true},
		{"bogus", Layout{}, false},
	}

	for _, tt := range tests {
		got, ok := LayoutByName(tt.name)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("LayoutByName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}
