package webcam

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Device is a local camera opened through OpenCV.
type Device struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	mu      sync.Mutex
}

// Open opens the camera with the given index (0 = first device).
func Open(deviceID int) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", deviceID, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %d is not opened", deviceID)
	}

	return &Device{
		capture: capture,
		frame:   gocv.NewMat(),
	}, nil
}

// Read grabs one frame and converts it from OpenCV's BGR layout to a Go
// RGBA image.
func (d *Device) Read() (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ok := d.capture.Read(&d.frame); !ok {
		return nil, fmt.Errorf("failed to read frame")
	}
	if d.frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	img, err := d.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return img, nil
}

// Close releases the camera and the frame buffer.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	errFrame := d.frame.Close()
	if err := d.capture.Close(); err != nil {
		return err
	}
	return errFrame
}
