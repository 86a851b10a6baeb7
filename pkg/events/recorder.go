// Package events records operator actions as audit events, streams them to
// in-process listeners and optionally mirrors them to a message bus.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/client"
	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	TopicSubscriberCreated = "subscriber.created"
	TopicSubscriberDeleted = "subscriber.deleted"
	TopicDecoderAssigned   = "decoder.assigned"
	TopicDecoderUnassigned = "decoder.unassigned"
	TopicDecoderReset      = "decoder.reset"
	TopicChannelAdded      = "channel.added"
	TopicChannelRemoved    = "channel.removed"

	SourceTypeSubscriber = "SUBSCRIBER"
	SourceTypeDecoder    = "DECODER"
)

// Publisher is what request handlers use to report an action.
type Publisher interface {
	Record(topic, sourceType, sourceID string, details interface{}) (*model.Event, error)
}

// Message is the wire form of an event on the bus and the realtime stream.
type Message struct {
	ID         int32           `json:"id"`
	SourceType string          `json:"sourceType"`
	SourceID   string          `json:"sourceId"`
	Topic      string          `json:"topic"`
	Timestamp  time.Time       `json:"timestamp"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// NewMessage converts a stored event to its wire form.
func NewMessage(m *model.Event) *Message {
	msg := &Message{
		ID:         m.ID,
		SourceType: m.SourceType,
		SourceID:   m.SourceID,
		Topic:      m.Topic,
		Timestamp:  m.Timestamp,
	}
	if m.Details != "" && json.Valid([]byte(m.Details)) {
		msg.Details = json.RawMessage(m.Details)
	}
	return msg
}

// Recorder stores events and fans them out. The bus client is optional.
type Recorder struct {
	store storage.EventStore
	bus   client.Interface

	sync.RWMutex
	listeners map[int]chan model.Event
	nextID    int
}

func NewRecorder(store storage.EventStore, bus client.Interface) *Recorder {
	return &Recorder{
		store:     store,
		bus:       bus,
		listeners: make(map[int]chan model.Event),
	}
}

// Record stores the event first; delivery to listeners and the bus is best
// effort and never fails the call.
func (r *Recorder) Record(topic, sourceType, sourceID string, details interface{}) (*model.Event, error) {
	m := &model.Event{
		SourceType: sourceType,
		SourceID:   sourceID,
		Topic:      topic,
	}

	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal event details")
		}
		m.Details = string(data)
	}

	if err := r.store.Create(m); err != nil {
		return nil, errors.Wrap(err, "failed to store event")
	}

	r.broadcast(*m)
	r.mirror(m)

	return m, nil
}

// Subscribe registers a listener. Events are dropped for a listener whose
// buffer is full. The returned func unregisters it and closes the channel.
func (r *Recorder) Subscribe(buffer int) (<-chan model.Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan model.Event, buffer)

	r.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = ch
	r.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.Lock()
			delete(r.listeners, id)
			r.Unlock()
			close(ch)
		})
	}
}

func (r *Recorder) broadcast(m model.Event) {
	r.RLock()
	defer r.RUnlock()

	for id, ch := range r.listeners {
		select {
		case ch <- m:
		default:
			log.WithFields(log.Fields{
				"listener": id,
				"topic":    m.Topic,
			}).Warn("events: listener too slow, event dropped")
		}
	}
}

func (r *Recorder) mirror(m *model.Event) {
	if r.bus == nil {
		return
	}

	data, err := json.Marshal(NewMessage(m))
	if err != nil {
		log.Error("events: failed to marshal event for bus: ", err)
		return
	}
	if err := r.bus.PublishEvent(m.Topic, data); err != nil {
		log.WithFields(log.Fields{
			"topic": m.Topic,
			"error": err.Error(),
		}).Warn("events: failed to publish event")
	}
}
