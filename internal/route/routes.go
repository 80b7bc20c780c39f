package route

import (
	"leatherinspection/internal/config"
	"leatherinspection/internal/handler"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/metrics"
	"leatherinspection/internal/middleware"
	"leatherinspection/internal/service"
	"net/http"
)

// SetupRoutes registers pages, stream control, prediction endpoints and
// operational endpoints, and wraps the mux with request logging and CORS.
func SetupRoutes(manager *service.Manager, cfg *config.Config, logger *logger.Logger, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", handler.IndexHandler(logger))
	mux.HandleFunc("GET /upload", handler.UploadPageHandler(manager, cfg, logger))
	mux.HandleFunc("POST /upload", handler.UploadPageHandler(manager, cfg, logger))
	mux.HandleFunc("GET /stream_ui", handler.StreamUIHandler(manager, logger))

	// Stream control
	mux.HandleFunc("POST /stream/start", handler.StreamStartHandler(manager, logger))
	mux.HandleFunc("POST /stream/stop", handler.StreamStopHandler(manager))
	mux.HandleFunc("GET /stream/status", handler.StreamStatusHandler(manager))

	// Predictions
	predict := handler.PredictHandler(manager, cfg, logger)
	mux.HandleFunc("GET /get_latest", handler.LatestHandler(manager))
	mux.HandleFunc("POST /predict-leather", predict)
	mux.HandleFunc("POST /predict", predict)

	// Operational endpoints
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /logs/info", handler.LogFileHandler(logger, "info"))
	mux.HandleFunc("GET /logs/warning", handler.LogFileHandler(logger, "warning"))
	mux.HandleFunc("GET /logs/error", handler.LogFileHandler(logger, "error"))

	return middleware.CORSMiddleware(cfg.CORSOrigin, middleware.RequestLogger(logger, mux))
}
