package memory

import (
	"sync"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
)

type sessionStore struct {
	store map[string]model.Session
	sync.RWMutex
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		store: make(map[string]model.Session),
	}
}

func (s *sessionStore) FetchAll() (models map[string]model.Session, err error) {
	s.RLock()
	defer s.RUnlock()
	models = make(map[string]model.Session, len(s.store))

	for id, m := range s.store {
		models[id] = m
	}

	return models, nil
}

func (s *sessionStore) FindByID(id string) (*model.Session, error) {
	s.RLock()
	defer s.RUnlock()
	if m, ok := s.store[id]; ok {
		return &m, nil
	}

	return nil, storage.ErrNotFound
}

func (s *sessionStore) Create(m *model.Session) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.store[m.ID]; ok {
		return storage.ErrAlreadyExists
	}

	m.CreatedAt = time.Now().Round(time.Second).UTC()
	m.UpdatedAt = time.Now().Round(time.Second).UTC()
	m.LastSeenAt = m.CreatedAt

	s.store[m.ID] = *m

	return nil
}

func (s *sessionStore) Touch(id string) error {
	s.Lock()
	defer s.Unlock()

	m, ok := s.store[id]
	if !ok {
		return storage.ErrNotFound
	}

	m.LastSeenAt = time.Now().UTC()
	s.store[id] = m

	return nil
}

func (s *sessionStore) Delete(id string) error {
	s.Lock()
	defer s.Unlock()

	_, ok := s.store[id]
	if !ok {
		return storage.ErrNotFound
	}

	delete(s.store, id)

	return nil
}
