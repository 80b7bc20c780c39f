package dto

import (
	"leatherinspection/internal/model"
	"math"
)

// PredictionResponse is the JSON body of /get_latest and /predict-leather.
type PredictionResponse struct {
	Pred       string  `json:"pred"`
	Confidence float64 `json:"confidence"`
}

// NewPredictionResponse renders a verdict with confidence rounded to two
// decimals.
func NewPredictionResponse(verdict model.Verdict, confidence float64) PredictionResponse {
	return PredictionResponse{
		Pred:       verdict.String(),
		Confidence: RoundConfidence(confidence),
	}
}

// RoundConfidence rounds a percentage to two decimal places.
func RoundConfidence(confidence float64) float64 {
	return math.Round(confidence*100) / 100
}

// ErrorResponse is the JSON body of a rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StreamStatus reports the capture loop state.
type StreamStatus struct {
	Running bool `json:"running"`
}
