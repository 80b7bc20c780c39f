package ai

import (
	"fmt"
	"image"
)

// DecodeYOLOv8 parses a raw YOLOv8 detection head. The tensor is laid out
// channel-major as [4+classes][anchors]: rows 0-3 hold the box centre and
// size in model-input pixels, the remaining rows hold per-class scores.
// Anchors whose best class score is below threshold are dropped; boxes are
// scaled back to the source image by scaleX/scaleY and clipped to bounds.
// No suppression of overlapping boxes is done here.
func DecodeYOLOv8(data []float32, channels, anchors int, threshold float32, scaleX, scaleY float32, bounds image.Rectangle) ([]Detection, error) {
	if channels < 5 {
		return nil, fmt.Errorf("yolov8 output needs at least 5 channels, got %d", channels)
	}
	if len(data) < channels*anchors {
		return nil, fmt.Errorf("yolov8 output too short: %d values for %dx%d", len(data), channels, anchors)
	}

	var detections []Detection
	for i := 0; i < anchors; i++ {
		bestScore := float32(0)
		bestClass := 0
		for c := 4; c < channels; c++ {
			score := data[c*anchors+i]
			if score > bestScore {
				bestScore = score
				bestClass = c - 4
			}
		}

		if bestScore < threshold {
			continue
		}

		cx := data[0*anchors+i]
		cy := data[1*anchors+i]
		w := data[2*anchors+i]
		h := data[3*anchors+i]

		box := image.Rect(
			int((cx-w/2)*scaleX),
			int((cy-h/2)*scaleY),
			int((cx+w/2)*scaleX),
			int((cy+h/2)*scaleY),
		).Intersect(bounds)

		detections = append(detections, Detection{
			ClassID:    bestClass,
			Confidence: float64(bestScore),
			Box:        box,
		})
	}

	return detections, nil
}
