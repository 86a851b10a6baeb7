package storage

import "github.com/nsyszr/decoderfleet/pkg/model"

// Interface is implemented by the storage
type Interface interface {
	Subscribers() SubscriberStore
	Sessions() SessionStore
	Events() EventStore
}

// SubscriberStore is responsible for managing the Subscriber model and the
// decoders assigned to it. Returned models are copies; changes only reach the
// store through Update.
type SubscriberStore interface {
	FetchAll() ([]model.Subscriber, error)
	FindByID(id string) (*model.Subscriber, error)
	Create(m *model.Subscriber) error
	Delete(id string) error
	// Update runs fn on the stored subscriber while holding the write lock.
	// If fn returns an error the subscriber is left unchanged.
	Update(id string, fn func(m *model.Subscriber) error) error
}

// SessionStore is responsible for managing the Session model
type SessionStore interface {
	FetchAll() (map[string]model.Session, error)
	FindByID(id string) (*model.Session, error)
	Create(m *model.Session) error
	Touch(id string) error
	Delete(id string) error
}

// EventStore is responsible for managing the Event model. Events are
// append-only; FetchAll returns them in ID order.
type EventStore interface {
	FetchAll() ([]model.Event, error)
	FindByID(id int32) (*model.Event, error)
	Create(m *model.Event) error
}
