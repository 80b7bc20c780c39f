package handler

import (
	"leatherinspection/internal/logger"
	"net/http"
	"os"
	"path/filepath"
)

// LogFileHandler serves one of the per-level log files (info, warning,
// error) as text/plain.
func LogFileHandler(logger *logger.Logger, level string) http.HandlerFunc {
	filename := level + ".log"
	return func(w http.ResponseWriter, r *http.Request) {
		serveLogFile(w, r, logger.LogDirectory(), filename)
	}
}

// serveLogFile is a helper that sets headers and serves a log file if it exists.
func serveLogFile(w http.ResponseWriter, r *http.Request, logDir, filename string) {
	if logDir == "" {
		writeText(w, http.StatusNotFound, "File logging disabled")
		return
	}

	filePath := filepath.Join(logDir, filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		writeText(w, http.StatusNotFound, "Log file not found: "+filename)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	http.ServeFile(w, r, filePath)
}
