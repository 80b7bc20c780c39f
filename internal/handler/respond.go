package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"leatherinspection/internal/dto"
	"net/http"
)

var (
	errNoImage  = errors.New("no image")
	errTooLarge = errors.New("image too large")
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}

// writeText writes a plain-text body without the trailing newline http.Error adds.
func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, text)
}

// formOverhead is the slack allowed on top of the file limit for multipart
// boundaries, part headers and small extra fields.
const formOverhead = 64 << 10

// readUpload returns the bytes of the multipart file in field. A missing
// field, or a body that is not multipart at all, yields errNoImage. The limit
// applies to the file itself, not to the whole request body.
func readUpload(w http.ResponseWriter, r *http.Request, field string, limit int64) ([]byte, error) {
	if limit > 0 {
		if r.ContentLength > limit+formOverhead {
			return nil, errTooLarge
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errTooLarge
		}
		return nil, errNoImage
	}
	defer file.Close()

	if limit > 0 && header.Size > limit {
		return nil, errTooLarge
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, errNoImage
	}
	return data, nil
}
