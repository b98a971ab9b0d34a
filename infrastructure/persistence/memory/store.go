// Package memory provides an in-memory overlay slot, used as a test double
// for the file and sqlite stores.
package memory

import (
	"context"
	"errors"
	"sync"
)

// ErrWriteRejected is returned by WriteAll when failure injection is enabled.
var ErrWriteRejected = errors.New("overlay write rejected")

// Store is an in-memory overlay slot.
type Store struct {
	mu       sync.RWMutex
	doc      []byte
	present  bool
	failNext bool
	failAll  bool
}

// NewStore creates an empty in-memory slot.
func NewStore() *Store {
	return &Store{}
}

// Seed populates the slot directly, bypassing WriteAll.
func (s *Store) Seed(doc []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = append([]byte(nil), doc...)
	s.present = true
}

// FailWrites makes every subsequent WriteAll fail when on is true.
func (s *Store) FailWrites(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = on
}

// FailNextWrite makes only the next WriteAll fail.
func (s *Store) FailNextWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = true
}

// Read returns the stored document and whether the slot is populated.
func (s *Store) Read(ctx context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, false, nil
	}
	return append([]byte(nil), s.doc...), true, nil
}

// WriteAll replaces the stored document, honoring failure injection. A failed
// write leaves the previous content untouched.
func (s *Store) WriteAll(ctx context.Context, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll || s.failNext {
		s.failNext = false
		return ErrWriteRejected
	}
	s.doc = append([]byte(nil), doc...)
	s.present = true
	return nil
}
