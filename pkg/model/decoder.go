package model

import "time"

// DefaultDecoderState is reported when the vendor omits the decoder state.
const DefaultDecoderState = "Inconnu"

// DecoderSnapshot is the vendor-reported state of a single decoder at fetch
// time.
type DecoderSnapshot struct {
	Address     string
	State       string
	LastRestart *time.Time
	LastReinit  *time.Time
}

// Decoder is a decoder assigned to a subscriber. The vendor fields mirror the
// last successful snapshot, the channel list is local bookkeeping only.
type Decoder struct {
	Address     string
	State       string
	LastRestart *time.Time
	LastReinit  *time.Time
	Channels    []string
}

// NewDecoder returns an assigned decoder without any known state.
func NewDecoder(address string) Decoder {
	return Decoder{
		Address:  address,
		Channels: make([]string, 0),
	}
}

// ApplySnapshot overwrites the vendor fields wholesale.
func (d *Decoder) ApplySnapshot(s *DecoderSnapshot) {
	d.State = s.State
	d.LastRestart = copyTime(s.LastRestart)
	d.LastReinit = copyTime(s.LastReinit)
}

func (d *Decoder) HasChannel(name string) bool {
	for _, ch := range d.Channels {
		if ch == name {
			return true
		}
	}
	return false
}

// AddChannel appends the channel unless it is already present.
func (d *Decoder) AddChannel(name string) bool {
	if d.HasChannel(name) {
		return false
	}
	d.Channels = append(d.Channels, name)
	return true
}

// RemoveChannel removes the channel and keeps the order of the others.
func (d *Decoder) RemoveChannel(name string) bool {
	for i, ch := range d.Channels {
		if ch == name {
			d.Channels = append(d.Channels[:i], d.Channels[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the decoder.
func (d Decoder) Clone() Decoder {
	out := d
	out.LastRestart = copyTime(d.LastRestart)
	out.LastReinit = copyTime(d.LastReinit)
	out.Channels = make([]string, len(d.Channels))
	copy(out.Channels, d.Channels)
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
