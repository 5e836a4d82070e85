// Package session holds the most recent batch result. A new submission
// overwrites the previous one; there is no append and no persistence.
package session

import (
	"sync"

	"github.com/rakapratama/permit-extractor/internal/entity"
)

type Session struct {
	mu   sync.Mutex
	last *entity.BatchResult
}

func New() *Session {
	return &Session{}
}

// Set replaces the held batch with the latest submission's result.
func (s *Session) Set(batch *entity.BatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = batch
}

// Current returns the held batch, or nil when nothing has been submitted.
func (s *Session) Current() *entity.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
