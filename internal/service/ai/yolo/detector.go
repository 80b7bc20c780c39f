package yolo

import (
	"fmt"
	"image"
	"leatherinspection/internal/service/ai"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// Config holds the ONNX model location and decoding thresholds.
type Config struct {
	ModelPath        string
	ConfidenceThresh float32
	NMSThresh        float32
	InputSize        int
}

// Detector runs a YOLOv8 ONNX export through the OpenCV DNN module.
type Detector struct {
	net       gocv.Net
	config    Config
	inputSize image.Point
	mu        sync.Mutex
}

// New loads the network and sets backend/target preferences.
func New(cfg Config) (*Detector, error) {
	if cfg.InputSize <= 0 {
		cfg.InputSize = 640
	}
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNetFromONNX(cfg.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network from %s", cfg.ModelPath)
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	return &Detector{
		net:       net,
		config:    cfg,
		inputSize: image.Pt(cfg.InputSize, cfg.InputSize),
	}, nil
}

// Detect returns the detections that survive the confidence threshold and
// non-maximum suppression. The image is stretched to the model input size.
func (d *Detector) Detect(img image.Image) ([]ai.Detection, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	// ImageToMatRGB yields OpenCV's BGR order; swapRB feeds the net RGB.
	blob := gocv.BlobFromImage(mat, 1.0/255.0, d.inputSize, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.mu.Lock()
	d.net.SetInput(blob, "")
	output := d.net.Forward("")
	d.mu.Unlock()
	defer output.Close()

	// Output shape: [1, 4+classes, anchors]
	size := output.Size()
	if len(size) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", size)
	}
	channels, anchors := size[1], size[2]

	data, err := output.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}

	bounds := img.Bounds()
	scaleX := float32(bounds.Dx()) / float32(d.config.InputSize)
	scaleY := float32(bounds.Dy()) / float32(d.config.InputSize)

	candidates, err := ai.DecodeYOLOv8(data, channels, anchors, d.config.ConfidenceThresh, scaleX, scaleY, image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	boxes := make([]image.Rectangle, len(candidates))
	scores := make([]float32, len(candidates))
	for i, c := range candidates {
		boxes[i] = c.Box
		scores[i] = float32(c.Confidence)
	}

	indices := gocv.NMSBoxes(boxes, scores, d.config.ConfidenceThresh, d.config.NMSThresh)

	detections := make([]ai.Detection, 0, len(indices))
	for _, idx := range indices {
		detections = append(detections, candidates[idx])
	}
	return detections, nil
}

// Close releases the network.
func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.net.Close()
}
