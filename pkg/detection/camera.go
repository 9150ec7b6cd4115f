package detection

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Camera wraps a local webcam and hands out JPEG frames for the
// detector.
type Camera struct {
	mu  sync.Mutex
	cap *gocv.VideoCapture
	img gocv.Mat
}

// OpenCamera opens the video device by ID (0 = default webcam).
func OpenCamera(deviceID int) (*Camera, error) {
	cap, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", deviceID, err)
	}
	return &Camera{cap: cap, img: gocv.NewMat()}, nil
}

// CaptureJPEG grabs one frame and encodes it as JPEG.
func (c *Camera) CaptureJPEG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ok := c.cap.Read(&c.img); !ok {
		return nil, fmt.Errorf("camera read failed")
	}
	if c.img.Empty() {
		return nil, fmt.Errorf("empty camera frame")
	}

	buf, err := gocv.IMEncode(".jpg", c.img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// Copy out: the buffer is reused by gocv.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.img.Close()
	return c.cap.Close()
}
