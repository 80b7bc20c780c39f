package ai

import (
	"errors"
	"image"
	"testing"

	"leatherinspection/internal/model"
)

type fakeDetector struct {
	detections []Detection
	err        error
	calls      int
	closed     bool
}

func (f *fakeDetector) Detect(img image.Image) ([]Detection, error) {
	f.calls++
	return f.detections, f.err
}

func (f *fakeDetector) Close() error {
	f.closed = true
	return nil
}

func testImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 32, 32))
}

func TestClassify_NoDetections(t *testing.T) {
	c := NewClassifier(&fakeDetector{}, 0.25)

	res, err := c.Classify(testImage())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Verdict != model.VerdictNonDefective {
		t.Errorf("Expected Non-Defective, got %s", res.Verdict)
	}
	if res.Confidence != 0.0 {
		t.Errorf("Expected 0.0 confidence, got %v", res.Confidence)
	}
}

func TestClassify_BelowThresholdIsNonDefective(t *testing.T) {
	det := &fakeDetector{detections: []Detection{{Confidence: 0.1}, {Confidence: 0.2499}}}
	c := NewClassifier(det, 0.25)

	res, err := c.Classify(testImage())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Verdict != model.VerdictNonDefective || res.Confidence != 0 {
		t.Errorf("Expected (Non-Defective, 0), got (%s, %v)", res.Verdict, res.Confidence)
	}
	if len(res.Detections) != 0 {
		t.Errorf("Expected no qualifying detections, got %d", len(res.Detections))
	}
}

func TestClassify_DefectiveReportsHighestConfidence(t *testing.T) {
	tests := []struct {
		name       string
		detections []Detection
		expected   float64
	}{
		{"single at threshold", []Detection{{Confidence: 0.25}}, 25},
		{"highest first", []Detection{{Confidence: 0.9}, {Confidence: 0.5}}, 90},
		{"highest last", []Detection{{Confidence: 0.3}, {Confidence: 0.4}, {Confidence: 0.875}}, 87.5},
		{"ignores low scores", []Detection{{Confidence: 0.1}, {Confidence: 0.6}}, 60},
		{"full confidence", []Detection{{Confidence: 1.0}}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(&fakeDetector{detections: tt.detections}, 0.25)

			res, err := c.Classify(testImage())
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if res.Verdict != model.VerdictDefective {
				t.Fatalf("Expected Defective, got %s", res.Verdict)
			}
			if res.Confidence <= 0 || res.Confidence > 100 {
				t.Errorf("Confidence %v out of (0, 100]", res.Confidence)
			}
			diff := res.Confidence - tt.expected
			if diff < -0.0001 || diff > 0.0001 {
				t.Errorf("Expected confidence %v, got %v", tt.expected, res.Confidence)
			}
		})
	}
}

func TestClassify_DetectorError(t *testing.T) {
	boom := errors.New("forward failed")
	c := NewClassifier(&fakeDetector{err: boom}, 0.25)

	_, err := c.Classify(testImage())
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped detector error, got %v", err)
	}
}

func TestNewClassifier_DefaultThreshold(t *testing.T) {
	c := NewClassifier(&fakeDetector{}, 0)
	if c.Threshold() != DefaultConfidenceThreshold {
		t.Errorf("Expected default threshold %v, got %v", DefaultConfidenceThreshold, c.Threshold())
	}
}

func TestClassifier_Close(t *testing.T) {
	det := &fakeDetector{}
	c := NewClassifier(det, 0.25)
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !det.closed {
		t.Error("Expected detector to be closed")
	}
}

func TestClassify_UnavailableDetector(t *testing.T) {
	c := NewClassifier(Unavailable(errors.New("model file not found")), 0.25)

	_, err := c.Classify(testImage())
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
