package storage

import (
	"sync"

	"fixora/models"
)

// MemoryStore is the session-scoped store: it lives as long as the
// process (tab) and vanishes with it. Used for reset/verification
// tokens and wherever "cleared on tab close" semantics are wanted.
type MemoryStore struct {
	mu      sync.Mutex
	draft   models.SessionDraftRecord
	pending *models.PendingBooking
	session *models.AuthSession
	cached  []models.RequestItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveDraft(partial models.SessionDraftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Merge(partial)
	return nil
}

func (s *MemoryStore) ReadDraft() (models.SessionDraftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, nil
}

func (s *MemoryStore) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = models.SessionDraftRecord{}
	return nil
}

func (s *MemoryStore) SavePending(pending models.PendingBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pending
	s.pending = &p
	return nil
}

func (s *MemoryStore) ReadPending() (*models.PendingBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return nil, nil
	}
	p := *s.pending
	return &p, nil
}

func (s *MemoryStore) ClearPending() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return nil
}

func (s *MemoryStore) SaveSession(session models.AuthSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := session
	s.session = &sess
	return nil
}

func (s *MemoryStore) ReadSession() (*models.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	sess := *s.session
	return &sess, nil
}

func (s *MemoryStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

func (s *MemoryStore) CacheRequests(items []models.RequestItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = append([]models.RequestItem(nil), items...)
	return nil
}

func (s *MemoryStore) CachedRequests() ([]models.RequestItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RequestItem(nil), s.cached...), nil
}
