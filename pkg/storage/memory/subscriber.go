package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
)

type subscriberStore struct {
	store map[string]*model.Subscriber
	// seq keeps FetchAll in creation order
	seq     map[string]int64
	nextSeq int64
	sync.RWMutex
}

func newSubscriberStore() *subscriberStore {
	return &subscriberStore{
		store: make(map[string]*model.Subscriber),
		seq:   make(map[string]int64),
	}
}

func (s *subscriberStore) FetchAll() ([]model.Subscriber, error) {
	s.RLock()
	defer s.RUnlock()

	models := make([]model.Subscriber, 0, len(s.store))
	for _, m := range s.store {
		models = append(models, m.Clone())
	}

	sort.Slice(models, func(i, j int) bool {
		return s.seq[models[i].ID] < s.seq[models[j].ID]
	})

	return models, nil
}

func (s *subscriberStore) FindByID(id string) (*model.Subscriber, error) {
	s.RLock()
	defer s.RUnlock()

	if m, ok := s.store[id]; ok {
		out := m.Clone()
		return &out, nil
	}

	return nil, storage.ErrNotFound
}

func (s *subscriberStore) Create(m *model.Subscriber) error {
	s.Lock()
	defer s.Unlock()

	if _, ok := s.store[m.ID]; ok {
		return storage.ErrAlreadyExists
	}

	if m.Decoders == nil {
		m.Decoders = make([]model.Decoder, 0)
	}

	m.CreatedAt = time.Now().Round(time.Second).UTC()
	m.UpdatedAt = time.Now().Round(time.Second).UTC()

	stored := m.Clone()
	s.store[m.ID] = &stored
	s.seq[m.ID] = s.nextSeq
	s.nextSeq++

	return nil
}

func (s *subscriberStore) Delete(id string) error {
	s.Lock()
	defer s.Unlock()

	_, ok := s.store[id]
	if !ok {
		return storage.ErrNotFound
	}

	delete(s.store, id)
	delete(s.seq, id)

	return nil
}

func (s *subscriberStore) Update(id string, fn func(m *model.Subscriber) error) error {
	s.Lock()
	defer s.Unlock()

	current, ok := s.store[id]
	if !ok {
		return storage.ErrNotFound
	}

	// Work on a copy so a failing fn leaves the record untouched
	m := current.Clone()
	if err := fn(&m); err != nil {
		return err
	}

	m.ID = id
	m.UpdatedAt = time.Now().Round(time.Second).UTC()
	s.store[id] = &m

	return nil
}
