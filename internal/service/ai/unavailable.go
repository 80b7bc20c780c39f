package ai

import (
	"errors"
	"fmt"
	"image"
)

// ErrNotInitialized is returned by a detector whose model failed to load.
var ErrNotInitialized = errors.New("detection network not initialized")

type unavailableDetector struct {
	cause error
}

// Unavailable returns a Detector that fails every call with
// ErrNotInitialized. It keeps the server up when the model cannot be loaded.
func Unavailable(cause error) Detector {
	return unavailableDetector{cause: cause}
}

func (d unavailableDetector) Detect(img image.Image) ([]Detection, error) {
	return nil, fmt.Errorf("%w: %v", ErrNotInitialized, d.cause)
}

func (d unavailableDetector) Close() error {
	return nil
}
