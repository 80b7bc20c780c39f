package service

import (
	"context"
	"fmt"
	"image"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/metrics"
	"leatherinspection/internal/model"
	"leatherinspection/internal/service/ai"
	"leatherinspection/internal/service/state"
	"time"
)

// Classifier is the inference adapter used by the manager.
type Classifier interface {
	Classify(img image.Image) (ai.Result, error)
}

// Notifier reports verdicts to the actuator. It must not fail the caller.
type Notifier interface {
	Notify(ctx context.Context, verdict model.Verdict)
}

// Stream is the capture loop as seen by the HTTP layer.
type Stream interface {
	Start() error
	Stop()
	Running() bool
}

// Manager runs every inspection, whether the image came from the capture
// loop or from an HTTP upload: classify, record the latest prediction, then
// notify the actuator.
type Manager struct {
	classifier Classifier
	store      *state.Store
	notifier   Notifier
	stream     Stream
	maxPixels  int
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewManager(classifier Classifier, store *state.Store, notifier Notifier, logger *logger.Logger, m *metrics.Metrics) *Manager {
	return &Manager{
		classifier: classifier,
		store:      store,
		notifier:   notifier,
		maxPixels:  DefaultMaxImagePixels,
		logger:     logger,
		metrics:    m,
	}
}

// AttachStream sets the capture loop controlled through the manager. The
// loop itself needs the manager as its frame processor, so it is attached
// after construction.
func (m *Manager) AttachStream(stream Stream) {
	m.stream = stream
}

// SetMaxImagePixels changes the upload dimension cap; n <= 0 disables it.
func (m *Manager) SetMaxImagePixels(n int) {
	m.maxPixels = n
}

// Inspect classifies img and records the result as the latest prediction.
func (m *Manager) Inspect(ctx context.Context, img image.Image, source state.Source) (ai.Result, error) {
	started := time.Now()
	result, err := m.classifier.Classify(img)
	if err != nil {
		m.metrics.InferenceError()
		return ai.Result{}, fmt.Errorf("classify: %w", err)
	}
	m.metrics.ObservePrediction(string(source), result.Verdict.String(), time.Since(started))

	m.store.Update(result.Verdict, result.Confidence, source)
	m.logger.Info("Prediction (%s): %s (%.2f%%)", source, result.Verdict, result.Confidence)

	m.notifier.Notify(ctx, result.Verdict)
	return result, nil
}

// InspectUpload decodes raw upload bytes and inspects the image. Decode
// failures wrap ErrInvalidImage.
func (m *Manager) InspectUpload(ctx context.Context, data []byte) (ai.Result, error) {
	img, format, err := DecodeImage(data, m.maxPixels)
	if err != nil {
		m.metrics.DecodeFailure()
		return ai.Result{}, err
	}
	m.logger.Debug("Decoded %s upload %dx%d", format, img.Bounds().Dx(), img.Bounds().Dy())

	return m.Inspect(ctx, img, state.SourceRequest)
}

// ProcessFrame handles one frame from the capture loop. Errors are logged;
// the loop keeps going.
func (m *Manager) ProcessFrame(ctx context.Context, frame image.Image) {
	if _, err := m.Inspect(ctx, frame, state.SourceStream); err != nil {
		m.logger.Error("Frame inspection failed: %v", err)
	}
}

// Latest returns the most recent prediction.
func (m *Manager) Latest() state.Prediction {
	return m.store.Read()
}

// StartStream starts the capture loop.
func (m *Manager) StartStream() error {
	if m.stream == nil {
		return fmt.Errorf("no capture loop configured")
	}
	return m.stream.Start()
}

// StopStream stops the capture loop; it is safe to call when stopped.
func (m *Manager) StopStream() {
	if m.stream == nil {
		return
	}
	m.stream.Stop()
}

// StreamRunning reports whether the capture loop is active.
func (m *Manager) StreamRunning() bool {
	return m.stream != nil && m.stream.Running()
}
