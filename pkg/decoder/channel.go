package decoder

import "github.com/nsyszr/decoderfleet/pkg/model"

// AddChannel adds a channel to a decoder assigned to the subscriber. It
// returns false when the decoder is not assigned or already has the channel.
func (s *Service) AddChannel(subscriberID, address, channel string) bool {
	if channel == "" {
		return false
	}
	address = NormalizeAddress(address)
	return s.update(subscriberID, func(m *model.Subscriber) bool {
		d := m.FindDecoder(address)
		return d != nil && d.AddChannel(channel)
	})
}

// RemoveChannel removes a channel from a decoder assigned to the subscriber.
// It returns false when the decoder is not assigned or lacks the channel.
func (s *Service) RemoveChannel(subscriberID, address, channel string) bool {
	address = NormalizeAddress(address)
	return s.update(subscriberID, func(m *model.Subscriber) bool {
		d := m.FindDecoder(address)
		return d != nil && d.RemoveChannel(channel)
	})
}
