package portfolio

import (
	"sync"

	"cleartrack/internal/models"
)

// Store is the authoritative in-memory holdings collection. It preserves
// insertion order and is safe for concurrent readers; all writes are
// mediated by the Controller.
type Store struct {
	mu       sync.RWMutex
	holdings []models.Holding
}

func NewStore() *Store {
	return &Store{}
}

// List returns the holdings in insertion order. The returned slice is a
// copy; callers may not mutate store state through it.
func (s *Store) List() []models.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Holding, len(s.holdings))
	copy(out, s.holdings)
	return out
}

func (s *Store) Get(id string) (models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.holdings {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Holding{}, ErrNotFound
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.holdings)
}

// Add appends a holding, rejecting id collisions.
func (s *Store) Add(h models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.holdings {
		if e.ID == h.ID {
			return ErrDuplicateID
		}
	}
	s.holdings = append(s.holdings, h)
	return nil
}

// Remove deletes the holding with the given id and returns the removed
// value together with its position, so a rollback can reinsert it exactly
// where it was.
func (s *Store) Remove(id string) (models.Holding, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.holdings {
		if h.ID == id {
			s.holdings = append(s.holdings[:i], s.holdings[i+1:]...)
			return h, i, nil
		}
	}
	return models.Holding{}, -1, ErrNotFound
}

// Insert places a holding back at a specific position. Positions past the
// end append; the id must not already be present.
func (s *Store) Insert(h models.Holding, at int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.holdings {
		if e.ID == h.ID {
			return ErrDuplicateID
		}
	}
	if at < 0 {
		at = 0
	}
	if at >= len(s.holdings) {
		s.holdings = append(s.holdings, h)
		return nil
	}
	s.holdings = append(s.holdings[:at], append([]models.Holding{h}, s.holdings[at:]...)...)
	return nil
}

// Reset replaces the whole collection, preserving the given order. Used
// for startup synchronization from the remote holdings list.
func (s *Store) Reset(holdings []models.Holding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings = make([]models.Holding, len(holdings))
	copy(s.holdings, holdings)
}

// ReplaceID swaps a locally generated id for the remote-assigned one,
// keeping the holding's position.
func (s *Store) ReplaceID(oldID, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if oldID != newID {
		for _, e := range s.holdings {
			if e.ID == newID {
				return ErrDuplicateID
			}
		}
	}
	for i := range s.holdings {
		if s.holdings[i].ID == oldID {
			s.holdings[i].ID = newID
			return nil
		}
	}
	return ErrNotFound
}
