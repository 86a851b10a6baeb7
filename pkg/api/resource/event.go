package resource

import (
	"encoding/json"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
)

type EventResource struct {
	ID         int32       `json:"id"`
	SourceType string      `json:"sourceType"`
	SourceID   string      `json:"sourceId"`
	Topic      string      `json:"topic"`
	Timestamp  time.Time   `json:"timestamp"`
	Details    interface{} `json:"details"`
}

type EventListResource struct {
	Members []*EventResource `json:"members"`
}

func NewEvent(m *model.Event) (out *EventResource) {
	out = &EventResource{
		ID:         m.ID,
		SourceType: m.SourceType,
		SourceID:   m.SourceID,
		Topic:      m.Topic,
		Timestamp:  m.Timestamp,
	}

	var details interface{}
	if err := json.Unmarshal([]byte(m.Details), &details); err == nil {
		out.Details = details
	}

	return // out
}

// NewEventList keeps the store order, which is ID order.
func NewEventList(m []model.Event) (out *EventListResource) {
	out = &EventListResource{
		Members: make([]*EventResource, 0, len(m)),
	}

	for i := range m {
		out.Members = append(out.Members, NewEvent(&m[i]))
	}

	return // out
}
