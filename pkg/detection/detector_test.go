package detection

import (
	"testing"

	"github.com/alvarohub/tiltplay/pkg/landmarks"
)

func TestSelectBest(t *testing.T) {
	tests := []struct {
		name string
		dets []Detection
		want *int // index into dets, nil = no selection
	}{
		{"empty", nil, nil},
		{"single", []Detection{{Confidence: 0.6, W: 0.1, H: 0.1}}, intPtr(0)},
		{
			"confidence wins",
			[]Detection{
				{Confidence: 0.95, W: 0.1, H: 0.1},
				{Confidence: 0.55, W: 0.12, H: 0.12},
			},
			intPtr(0),
		},
		{
			"size breaks near ties",
			[]Detection{
				{Confidence: 0.80, W: 0.1, H: 0.1},
				{Confidence: 0.80, W: 0.3, H: 0.3},
			},
			intPtr(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectBest(tt.dets)
			if tt.want == nil {
				if got != nil {
					t.Errorf("SelectBest() = %+v, want nil", got)
				}
				return
			}
			if got != &tt.dets[*tt.want] {
				t.Errorf("SelectBest() picked %+v, want index %d", got, *tt.want)
			}
		})
	}
}

func TestDetection_FaceFrame(t *testing.T) {
	det := Detection{Confidence: 0.9}
	det.Landmarks[0] = landmarks.Point{X: 0.6, Y: 0.45} // right eye
	det.Landmarks[1] = landmarks.Point{X: 0.4, Y: 0.5}  // left eye

	frame := det.FaceFrame()
	tilt, ok := frame.Tilt()
	if !ok {
		t.Fatal("Tilt() ok = false, want true")
	}
	if tilt <= 0 {
		t.Errorf("Tilt() = %g, want positive (right eye higher)", tilt)
	}
}

func intPtr(i int) *int { return &i }
