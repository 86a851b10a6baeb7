package model

import "time"

// Subscriber is a model of the persistency layer. Decoders are kept in
// assignment order and never contain the same address twice.
type Subscriber struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Decoders []Decoder

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindDecoder returns the assigned decoder with the given address or nil.
func (s *Subscriber) FindDecoder(address string) *Decoder {
	for i := range s.Decoders {
		if s.Decoders[i].Address == address {
			return &s.Decoders[i]
		}
	}
	return nil
}

// AssignDecoder appends a new decoder unless the address is already assigned.
func (s *Subscriber) AssignDecoder(address string) bool {
	if s.FindDecoder(address) != nil {
		return false
	}
	s.Decoders = append(s.Decoders, NewDecoder(address))
	return true
}

// UnassignDecoder removes the decoder with the given address.
func (s *Subscriber) UnassignDecoder(address string) bool {
	for i := range s.Decoders {
		if s.Decoders[i].Address == address {
			s.Decoders = append(s.Decoders[:i], s.Decoders[i+1:]...)
			return true
		}
	}
	return false
}

// Addresses returns the assigned decoder addresses in assignment order.
func (s *Subscriber) Addresses() []string {
	out := make([]string, 0, len(s.Decoders))
	for _, d := range s.Decoders {
		out = append(out, d.Address)
	}
	return out
}

// Clone returns a deep copy, stores hand these out so callers never share
// slices with the stored record.
func (s Subscriber) Clone() Subscriber {
	out := s
	out.Decoders = make([]Decoder, 0, len(s.Decoders))
	for _, d := range s.Decoders {
		out.Decoders = append(out.Decoders, d.Clone())
	}
	return out
}
