package client

// EventHandler receives the topic and payload of a bus event.
type EventHandler func(topic string, data []byte)

// Interface publishes audit events to a message bus and lets tools follow
// them.
type Interface interface {
	PublishEvent(topic string, data []byte) error
	SubscribeEvents(h EventHandler) error
	Close()
}
