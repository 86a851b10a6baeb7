package memory

import "github.com/nsyszr/decoderfleet/pkg/storage"

// Store contains all memory-based sub-stores. Nothing outlives the process.
type store struct {
	subscribers *subscriberStore
	sessions    *sessionStore
	events      *eventStore
}

// NewStore creates a new memory-based Storage interface
func NewStore() storage.Interface {
	return &store{
		subscribers: newSubscriberStore(),
		sessions:    newSessionStore(),
		events:      newEventStore(),
	}
}

// Subscribers returns a sub-store for managing the subscriber model
func (s *store) Subscribers() storage.SubscriberStore {
	return s.subscribers
}

// Sessions returns a sub-store for managing the Session model
func (s *store) Sessions() storage.SessionStore {
	return s.sessions
}

// Events returns a sub-store for managing the event model
func (s *store) Events() storage.EventStore {
	return s.events
}
