package model

import (
	"reflect"
	"testing"
	"time"
)

func TestDecoder_ChannelRoundTrip(t *testing.T) {
	d := NewDecoder("10.0.0.1")
	d.AddChannel("TVA")
	d.AddChannel("RDI")
	before := append([]string(nil), d.Channels...)

	if !d.AddChannel("TV5") {
		t.Fatal("AddChannel() = false, want true")
	}
	if !d.RemoveChannel("TV5") {
		t.Fatal("RemoveChannel() = false, want true")
	}
	if !reflect.DeepEqual(d.Channels, before) {
		t.Errorf("Channels = %v, want %v", d.Channels, before)
	}
}

func TestDecoder_ChannelsUnique(t *testing.T) {
	d := NewDecoder("10.0.0.1")
	if !d.AddChannel("TVA") {
		t.Fatal("first AddChannel() = false")
	}
	if d.AddChannel("TVA") {
		t.Error("duplicate AddChannel() = true")
	}
	if d.RemoveChannel("RDI") {
		t.Error("RemoveChannel(absent) = true")
	}
	if len(d.Channels) != 1 {
		t.Errorf("Channels = %v", d.Channels)
	}
}

func TestDecoder_RemoveChannelKeepsOrder(t *testing.T) {
	d := NewDecoder("10.0.0.1")
	for _, ch := range []string{"a", "b", "c", "d"} {
		d.AddChannel(ch)
	}
	d.RemoveChannel("b")

	want := []string{"a", "c", "d"}
	if !reflect.DeepEqual(d.Channels, want) {
		t.Errorf("Channels = %v, want %v", d.Channels, want)
	}
}

func TestDecoder_ApplySnapshotOverwrites(t *testing.T) {
	restart := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := NewDecoder("10.0.0.1")
	d.AddChannel("TVA")
	d.ApplySnapshot(&DecoderSnapshot{Address: "10.0.0.1", State: "on", LastRestart: &restart, LastReinit: &restart})

	d.ApplySnapshot(&DecoderSnapshot{Address: "10.0.0.1", State: "off"})

	if d.State != "off" {
		t.Errorf("State = %q, want off", d.State)
	}
	if d.LastRestart != nil || d.LastReinit != nil {
		t.Error("timestamps should be cleared by a snapshot without them")
	}
	if !d.HasChannel("TVA") {
		t.Error("channels must survive a snapshot")
	}
}

func TestSubscriber_AssignIdempotent(t *testing.T) {
	s := Subscriber{ID: "S1"}
	if !s.AssignDecoder("A") {
		t.Fatal("first AssignDecoder() = false")
	}
	if s.AssignDecoder("A") {
		t.Error("second AssignDecoder() = true")
	}
	if len(s.Decoders) != 1 {
		t.Errorf("Decoders = %d, want 1", len(s.Decoders))
	}
}

func TestSubscriber_UnassignUnknown(t *testing.T) {
	s := Subscriber{ID: "S1"}
	s.AssignDecoder("A")
	if s.UnassignDecoder("B") {
		t.Error("UnassignDecoder(B) = true")
	}
	if !reflect.DeepEqual(s.Addresses(), []string{"A"}) {
		t.Errorf("Addresses() = %v", s.Addresses())
	}
}

func TestSubscriber_CloneIsDeep(t *testing.T) {
	ts := time.Now()
	s := Subscriber{ID: "S1"}
	s.AssignDecoder("A")
	s.Decoders[0].LastRestart = &ts

	c := s.Clone()
	c.Decoders[0].AddChannel("TVA")
	*c.Decoders[0].LastRestart = ts.Add(time.Hour)

	if len(s.Decoders[0].Channels) != 0 {
		t.Error("clone shares channel slice")
	}
	if !s.Decoders[0].LastRestart.Equal(ts) {
		t.Error("clone shares timestamp")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	if s.Expired(now) {
		t.Error("Expired() = true before expiry")
	}
	if !s.Expired(now.Add(time.Minute)) {
		t.Error("Expired() = false at expiry")
	}
	if (&Session{}).Expired(now) {
		t.Error("zero ExpiresAt must never expire")
	}
}
