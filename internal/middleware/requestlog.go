package middleware

import (
	"leatherinspection/internal/logger"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request ID, taken from the client when
// present.
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an ID and writes one access-log line
// per request. Polling of /get_latest is logged at debug level only.
func RequestLogger(logger *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(rec, r)
		took := time.Since(started)

		if r.URL.Path == "/get_latest" || r.URL.Path == "/metrics" {
			logger.Debug("[%s] %s %s -> %d (%v)", id, r.Method, r.URL.Path, rec.status, took)
			return
		}
		logger.Info("[%s] %s %s -> %d (%v)", id, r.Method, r.URL.Path, rec.status, took)
	})
}
