package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/metrics"
	"sync"
	"time"
)

const (
	// DefaultInterval is the pause between two inspected frames.
	DefaultInterval = 5 * time.Second
	// DefaultRetryInterval is the pause after a failed frame read.
	DefaultRetryInterval = time.Second
)

var (
	// ErrDeviceUnavailable is returned by Start when the camera cannot be opened.
	ErrDeviceUnavailable = errors.New("camera not available")

	errDeviceClosed = errors.New("camera released")
)

// Camera is an open capture device. Read returns one frame already
// converted to a Go image (RGBA).
type Camera interface {
	Read() (image.Image, error)
	Close() error
}

// OpenFunc opens the camera for a new session.
type OpenFunc func() (Camera, error)

// FrameProcessor consumes captured frames.
type FrameProcessor interface {
	ProcessFrame(ctx context.Context, frame image.Image)
}

// Options tunes the loop timing.
type Options struct {
	Interval      time.Duration
	RetryInterval time.Duration
}

// Controller owns the camera and the background capture goroutine. States
// are Stopped and Running; at most one session is active at a time.
type Controller struct {
	open      OpenFunc
	processor FrameProcessor
	opts      Options
	logger    *logger.Logger
	metrics   *metrics.Metrics

	// startMu serializes Start so the camera is opened at most once; mu only
	// guards the session fields and is never held while the device opens.
	startMu sync.Mutex
	mu      sync.Mutex
	session *session
	live    map[*session]struct{}
}

// session is one open camera plus its loop goroutine.
type session struct {
	camera Camera
	devMu  sync.Mutex // serializes Read with release
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewController(open OpenFunc, processor FrameProcessor, opts Options, logger *logger.Logger, m *metrics.Metrics) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	return &Controller{
		open:      open,
		processor: processor,
		opts:      opts,
		logger:    logger,
		metrics:   m,
		live:      make(map[*session]struct{}),
	}
}

// Start opens the camera and launches the capture loop. Calling Start while
// running is a no-op. If the camera cannot be opened the controller stays
// stopped and the error wraps ErrDeviceUnavailable. Concurrent Starts wait
// for the one opening the device; Running and Stop do not.
func (c *Controller) Start() error {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.Running() {
		return nil
	}

	camera, err := c.open()
	if err != nil {
		c.logger.Error("Failed to open camera: %v", err)
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		camera: camera,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.mu.Lock()
	c.session = s
	c.live[s] = struct{}{}
	c.metrics.SetStreamRunning(true)
	c.mu.Unlock()

	go c.run(s)

	c.logger.Info("📹 Capture loop started (every %v)", c.opts.Interval)
	return nil
}

// Stop signals the loop to exit and releases the camera. It does not wait
// for the goroutine; a frame already being classified may still be
// recorded afterwards. Stop on a stopped controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	s := c.session
	c.session = nil
	if s != nil {
		c.metrics.SetStreamRunning(false)
	}
	c.mu.Unlock()

	if s == nil {
		return
	}

	s.cancel()
	if err := s.release(); err != nil {
		c.logger.Warning("Error releasing camera: %v", err)
	}
	c.logger.Info("🛑 Capture loop stopped")
}

// Running reports whether a capture session is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// Wait blocks until the loop goroutines of all sessions started so far have
// exited, including earlier sessions still finishing a frame after a
// Stop/Start cycle. It returns immediately if none is alive.
func (c *Controller) Wait() {
	c.mu.Lock()
	pending := make([]chan struct{}, 0, len(c.live))
	for s := range c.live {
		pending = append(pending, s.done)
	}
	c.mu.Unlock()

	for _, done := range pending {
		<-done
	}
}

func (c *Controller) run(s *session) {
	defer func() {
		c.mu.Lock()
		delete(c.live, s)
		c.mu.Unlock()
		close(s.done)
	}()

	for {
		if s.ctx.Err() != nil {
			return
		}

		frame, err := s.read()
		if errors.Is(err, errDeviceClosed) {
			return
		}
		if err != nil {
			c.logger.Warning("Camera read error: %v", err)
			c.metrics.CaptureError()
			if !sleep(s.ctx, c.opts.RetryInterval) {
				return
			}
			continue
		}

		c.processor.ProcessFrame(s.ctx, frame)

		if !sleep(s.ctx, c.opts.Interval) {
			return
		}
	}
}

func (s *session) read() (image.Image, error) {
	s.devMu.Lock()
	defer s.devMu.Unlock()
	if s.closed {
		return nil, errDeviceClosed
	}
	return s.camera.Read()
}

func (s *session) release() error {
	s.devMu.Lock()
	defer s.devMu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.camera.Close()
}

// sleep waits for d or until ctx is done; it reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
