package state

import (
	"sync"
	"time"

	"leatherinspection/internal/model"
)

// Source identifies who produced a prediction.
type Source string

const (
	SourceStream  Source = "stream"
	SourceRequest Source = "request"
)

// Prediction is the most recent inspection result. Confidence keeps full
// precision; rounding belongs to the presentation layer.
type Prediction struct {
	Verdict    model.Verdict
	Confidence float64
	Source     Source
	UpdatedAt  time.Time
}

// Store holds the single latest Prediction shared by the capture loop and
// request handlers. Last writer wins.
type Store struct {
	mu     sync.RWMutex
	latest Prediction
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Update overwrites the latest prediction.
func (s *Store) Update(verdict model.Verdict, confidence float64, source Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = Prediction{
		Verdict:    verdict,
		Confidence: confidence,
		Source:     source,
		UpdatedAt:  s.now(),
	}
}

// Read returns a copy of the latest prediction.
func (s *Store) Read() Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
