package resource

import "github.com/nsyszr/decoderfleet/pkg/model"

// RealtimeEventResource is one websocket frame of the event stream.
type RealtimeEventResource struct {
	Topic string         `json:"topic"`
	Data  *EventResource `json:"data"`
}

func NewRealtimeEvent(m *model.Event) *RealtimeEventResource {
	return &RealtimeEventResource{
		Topic: m.Topic,
		Data:  NewEvent(m),
	}
}
