package handler

import (
	"errors"
	"leatherinspection/internal/config"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/model"
	"leatherinspection/internal/service"
	"net/http"
)

// streamPollInterval is how often the stream page polls /get_latest.
const streamPollInterval = 1000

// IndexHandler serves the landing banner.
func IndexHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, logger, http.StatusOK, "index.html", nil)
	}
}

// UploadPageHandler serves the upload form on GET and classifies the
// multipart "file" on POST, showing the label on the same page.
func UploadPageHandler(manager *service.Manager, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			render(w, logger, http.StatusOK, "upload.html", uploadPage{})
			return
		}

		data, err := readUpload(w, r, "file", cfg.MaxUploadSize)
		if errors.Is(err, errNoImage) {
			render(w, logger, http.StatusOK, "upload.html", uploadPage{})
			return
		}
		if errors.Is(err, errTooLarge) {
			render(w, logger, http.StatusRequestEntityTooLarge, "upload.html", uploadPage{Error: err.Error()})
			return
		}
		if err != nil {
			logger.Error("Error reading upload: %v", err)
			render(w, logger, http.StatusBadRequest, "upload.html", uploadPage{Error: "no image"})
			return
		}

		result, err := manager.InspectUpload(r.Context(), data)
		if err != nil {
			status := http.StatusInternalServerError
			message := "inference failed"
			if errors.Is(err, service.ErrInvalidImage) {
				status = http.StatusBadRequest
				message = "invalid image"
			}
			logger.Warning("Upload classification failed: %v", err)
			render(w, logger, status, "upload.html", uploadPage{Error: message})
			return
		}

		render(w, logger, http.StatusOK, "upload.html", uploadPage{
			Label:      result.Verdict.String(),
			Defective:  result.Verdict == model.VerdictDefective,
			Confidence: result.Confidence,
		})
	}
}

// StreamUIHandler serves the live page with start/stop buttons.
func StreamUIHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, logger, http.StatusOK, "stream_ui.html", streamPage{
			Running:      manager.StreamRunning(),
			PollInterval: streamPollInterval,
		})
	}
}

func render(w http.ResponseWriter, logger *logger.Logger, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("Error rendering %s: %v", name, err)
	}
}
