package ai

import (
	"fmt"
	"image"

	"leatherinspection/internal/model"
)

// DefaultConfidenceThreshold is the minimum score a detection needs to count
// as a defect.
const DefaultConfidenceThreshold = 0.25

// Detection is a single scored box in source-image pixel coordinates.
type Detection struct {
	ClassID    int
	Confidence float64 // 0-1
	Box        image.Rectangle
}

// Detector is the model backend. Implementations resize the image to their
// input size themselves.
type Detector interface {
	Detect(img image.Image) ([]Detection, error)
	Close() error
}

// Result is the outcome of classifying one image.
type Result struct {
	Verdict    model.Verdict
	Confidence float64 // percent, 0 unless Defective
	Detections []Detection
}

// Classifier turns raw detections into a Defective/Non-Defective verdict.
type Classifier struct {
	detector  Detector
	threshold float64
}

func NewClassifier(detector Detector, threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Classifier{detector: detector, threshold: threshold}
}

// Classify runs the detector and applies the verdict policy: no qualifying
// detection means Non-Defective with 0 confidence, otherwise Defective with
// the highest qualifying confidence as a percentage.
func (c *Classifier) Classify(img image.Image) (Result, error) {
	detections, err := c.detector.Detect(img)
	if err != nil {
		return Result{}, fmt.Errorf("detect: %w", err)
	}

	var qualifying []Detection
	best := -1
	for _, d := range detections {
		if d.Confidence < c.threshold {
			continue
		}
		qualifying = append(qualifying, d)
		if best < 0 || d.Confidence > qualifying[best].Confidence {
			best = len(qualifying) - 1
		}
	}

	if best < 0 {
		return Result{Verdict: model.VerdictNonDefective, Confidence: 0.0}, nil
	}

	return Result{
		Verdict:    model.VerdictDefective,
		Confidence: qualifying[best].Confidence * 100,
		Detections: qualifying,
	}, nil
}

// Threshold returns the minimum qualifying confidence (0-1).
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Close releases the underlying detector.
func (c *Classifier) Close() error {
	return c.detector.Close()
}
