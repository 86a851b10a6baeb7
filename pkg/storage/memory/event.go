package memory

import (
	"sync"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
)

// eventStore is an append-only log. IDs start at 1 and equal the position in
// the log plus one.
type eventStore struct {
	log []model.Event
	sync.RWMutex
}

func newEventStore() *eventStore {
	return &eventStore{
		log: make([]model.Event, 0),
	}
}

func (s *eventStore) FetchAll() ([]model.Event, error) {
	s.RLock()
	defer s.RUnlock()

	out := make([]model.Event, len(s.log))
	copy(out, s.log)

	return out, nil
}

func (s *eventStore) FindByID(id int32) (*model.Event, error) {
	s.RLock()
	defer s.RUnlock()

	if id < 1 || int(id) > len(s.log) {
		return nil, storage.ErrNotFound
	}
	m := s.log[id-1]

	return &m, nil
}

func (s *eventStore) Create(m *model.Event) error {
	s.Lock()
	defer s.Unlock()

	now := time.Now().UTC()
	m.ID = int32(len(s.log) + 1)
	if m.Timestamp.IsZero() {
		m.Timestamp = now
	}
	m.CreatedAt = now.Round(time.Second)
	m.UpdatedAt = m.CreatedAt

	s.log = append(s.log, *m)

	return nil
}
