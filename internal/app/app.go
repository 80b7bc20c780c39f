package app

import (
	"context"
	"errors"
	"fmt"
	"leatherinspection/internal/config"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/metrics"
	"leatherinspection/internal/route"
	"leatherinspection/internal/service"
	"leatherinspection/internal/service/actuator"
	"leatherinspection/internal/service/ai"
	"leatherinspection/internal/service/ai/yolo"
	"leatherinspection/internal/service/capture"
	"leatherinspection/internal/service/capture/webcam"
	"leatherinspection/internal/service/state"
	"net/http"
	"time"
)

// shutdownTimeout bounds how long in-flight requests get on shutdown.
const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	logger     *logger.Logger
	metrics    *metrics.Metrics
	classifier *ai.Classifier
	controller *capture.Controller
	manager    *service.Manager
	server     *http.Server
}

func NewApp() *App {
	cfg := config.Load()
	logger := logger.NewLogger(cfg)
	m := metrics.New()

	var detector ai.Detector
	yoloDetector, err := yolo.New(yolo.Config{
		ModelPath:        cfg.ModelPath,
		ConfidenceThresh: float32(cfg.ConfidenceThreshold),
		NMSThresh:        float32(cfg.NMSThreshold),
		InputSize:        cfg.ModelInputSize,
	})
	if err != nil {
		logger.Warning("Could not initialize detection network: %v", err)
		detector = ai.Unavailable(err)
	} else {
		logger.Info("Detection network initialized successfully")
		detector = yoloDetector
	}
	classifier := ai.NewClassifier(detector, cfg.ConfidenceThreshold)

	notifier := actuator.NewNotifier(cfg.ActuatorURL, cfg.ActuatorTimeout, logger, m)
	if !notifier.Enabled() {
		logger.Info("No ACTUATOR_URL set, actuator notifications disabled")
	}

	manager := service.NewManager(classifier, state.NewStore(), notifier, logger, m)
	manager.SetMaxImagePixels(cfg.MaxImagePixels)

	openCamera := func() (capture.Camera, error) {
		return webcam.Open(cfg.CameraDevice)
	}
	controller := capture.NewController(openCamera, manager, capture.Options{
		Interval:      cfg.CaptureInterval,
		RetryInterval: cfg.RetryInterval,
	}, logger, m)
	manager.AttachStream(controller)

	return &App{
		config:     cfg,
		logger:     logger,
		metrics:    m,
		classifier: classifier,
		controller: controller,
		manager:    manager,
	}
}

// Run serves HTTP until ctx is cancelled, then stops the capture loop and
// shuts the server down.
func (a *App) Run(ctx context.Context) error {
	router := route.SetupRoutes(a.manager, a.config, a.logger, a.metrics)
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("🚀 Leather Inspection Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🤖 AI Model: %s\n", a.config.ModelPath)
	fmt.Printf("📷 Camera: %d\n", a.config.CameraDevice)
	if a.config.ActuatorURL != "" {
		fmt.Printf("💡 Actuator: %s\n", a.config.ActuatorURL)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		a.close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := a.server.Shutdown(shutdownCtx)
	a.close()
	return err
}

func (a *App) close() {
	a.controller.Stop()
	a.controller.Wait()
	if err := a.classifier.Close(); err != nil {
		a.logger.Warning("Error closing detector: %v", err)
	}
	a.logger.Close()
}
