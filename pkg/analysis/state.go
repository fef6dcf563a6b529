package analysis

import (
	"sync"

	"github.com/oxygene76/skycalc/internal/types"
)

// Store holds the most recent successful PipelineResult. It is owned by the
// caller and shared between a Manager and the report renderer. Runs replace
// the stored result wholesale.
type Store struct {
	mu   sync.RWMutex
	last *types.PipelineResult
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Last returns the stored result, if any.
func (s *Store) Last() (*types.PipelineResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.last != nil
}

// Reset clears the store.
func (s *Store) Reset() {
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
}

func (s *Store) replace(r *types.PipelineResult) {
	s.mu.Lock()
	s.last = r
	s.mu.Unlock()
}
