package handler

import (
	"leatherinspection/internal/dto"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/service"
	"net/http"
)

// StreamStartHandler handles POST /stream/start. Starting an already
// running stream succeeds without opening the camera again.
func StreamStartHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := manager.StartStream(); err != nil {
			logger.Error("Stream start failed: %v", err)
			writeText(w, http.StatusInternalServerError, "Camera not found")
			return
		}
		writeText(w, http.StatusOK, "Started")
	}
}

// StreamStopHandler handles POST /stream/stop. The latest prediction is kept.
func StreamStopHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager.StopStream()
		writeText(w, http.StatusOK, "Stopped")
	}
}

// StreamStatusHandler handles GET /stream/status.
func StreamStatusHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.StreamStatus{Running: manager.StreamRunning()})
	}
}
