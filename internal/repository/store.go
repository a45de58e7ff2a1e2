package repository

import (
	"sync"

	"github.com/dr-yst/org-x/internal/org"
)

// Store wraps a Repository with a single read-write mutex. All shared
// access goes through Store; the lock is never held across file I/O or
// parsing, only around the map operations themselves.
type Store struct {
	mu   sync.RWMutex
	repo *Repository
}

// NewStore creates a Store around an empty repository.
func NewStore() *Store {
	return &Store{repo: New()}
}

func (s *Store) Upsert(doc *org.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo.Upsert(doc)
}

func (s *Store) Get(id string) (*org.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Get(id)
}

func (s *Store) GetByPath(path string) (*org.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.GetByPath(path)
}

func (s *Store) List() []*org.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.List()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Len()
}

func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo.Remove(id)
}

func (s *Store) Etag(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Etag(id)
}

func (s *Store) DocumentForHeadline(headlineID string) (*org.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.DocumentForHeadline(headlineID)
}

func (s *Store) Headline(headlineID string) (*org.Headline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.Headline(headlineID)
}

func (s *Store) TitleByID(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.TitleByID(id)
}

func (s *Store) PathByID(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo.PathByID(id)
}

func (s *Store) PruneUncovered(keep map[string]struct{}) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.PruneUncovered(keep)
}
