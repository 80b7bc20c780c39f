package handler

import (
	"errors"
	"leatherinspection/internal/config"
	"leatherinspection/internal/dto"
	"leatherinspection/internal/logger"
	"leatherinspection/internal/service"
	"net/http"
)

// PredictHandler handles POST /predict-leather (and its /predict alias):
// classifies the multipart "image" file, records it as the latest
// prediction and returns {pred, confidence}.
func PredictHandler(manager *service.Manager, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readUpload(w, r, "image", cfg.MaxUploadSize)
		switch {
		case errors.Is(err, errTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		case errors.Is(err, errNoImage):
			writeError(w, http.StatusBadRequest, "no image")
			return
		case err != nil:
			logger.Error("Error reading upload: %v", err)
			writeError(w, http.StatusBadRequest, "no image")
			return
		}

		result, err := manager.InspectUpload(r.Context(), data)
		if err != nil {
			if errors.Is(err, service.ErrInvalidImage) {
				logger.Warning("Rejected upload: %v", err)
				writeError(w, http.StatusBadRequest, "invalid image")
				return
			}
			logger.Error("Inference failed: %v", err)
			writeError(w, http.StatusInternalServerError, "inference failed")
			return
		}

		writeJSON(w, http.StatusOK, dto.NewPredictionResponse(result.Verdict, result.Confidence))
	}
}

// LatestHandler handles GET /get_latest with the most recent prediction
// from either the capture loop or an upload.
func LatestHandler(manager *service.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		latest := manager.Latest()
		w.Header().Set("Cache-Control", "no-cache")
		writeJSON(w, http.StatusOK, dto.NewPredictionResponse(latest.Verdict, latest.Confidence))
	}
}
