package decoder

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	"github.com/nsyszr/decoderfleet/pkg/storage/memory"
)

// stubClient answers FetchState from a fixed table. Addresses missing from
// states are unreachable. hooks run before a fetch answers.
type stubClient struct {
	mu       sync.Mutex
	states   map[string]string
	hooks    map[string]func()
	delay    time.Duration
	resetOK  bool
	fetched  []string
	resets   []string
	inFlight int
	maxSeen  int
}

func (c *stubClient) FetchState(ctx context.Context, address string) (*model.DecoderSnapshot, bool) {
	c.mu.Lock()
	c.fetched = append(c.fetched, address)
	c.inFlight++
	if c.inFlight > c.maxSeen {
		c.maxSeen = c.inFlight
	}
	hook := c.hooks[address]
	state, ok := c.states[address]
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	if hook != nil {
		hook()
	}
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, false
		}
	}
	if !ok {
		return nil, false
	}
	return &model.DecoderSnapshot{Address: address, State: state}, true
}

func (c *stubClient) SendReset(_ context.Context, address string) (bool, string) {
	c.mu.Lock()
	c.resets = append(c.resets, address)
	c.mu.Unlock()
	if c.resetOK {
		return true, "settling"
	}
	return false, "failed"
}

func (c *stubClient) fetchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fetched)
}

func setupStore(t *testing.T) storage.SubscriberStore {
	t.Helper()
	return memory.NewStore().Subscribers()
}

func setupService(t *testing.T, client DeviceClient, pool Pool, subscribers ...string) (*Service, storage.SubscriberStore) {
	t.Helper()
	store := setupStore(t)
	for _, id := range subscribers {
		if err := store.Create(&model.Subscriber{ID: id}); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}
	return NewService(store, client, pool), store
}

func assigned(t *testing.T, store storage.SubscriberStore, id string) []string {
	t.Helper()
	m, err := store.FindByID(id)
	if err != nil {
		t.Fatalf("FindByID(%s) error = %v", id, err)
	}
	return m.Addresses()
}

func TestAssignDecoder_Idempotent(t *testing.T) {
	svc, store := setupService(t, &stubClient{}, NewPool("A"), "S")

	if !svc.AssignDecoder("S", "A") {
		t.Error("first AssignDecoder() = false")
	}
	if svc.AssignDecoder("S", "A") {
		t.Error("second AssignDecoder() = true")
	}

	if got := assigned(t, store, "S"); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("assigned = %v, want [A]", got)
	}
}

func TestAssignDecoder_UnknownSubscriber(t *testing.T) {
	svc, store := setupService(t, &stubClient{}, NewPool("A"))

	if svc.AssignDecoder("ghost", "A") {
		t.Error("AssignDecoder() on unknown subscriber = true")
	}
	if _, err := store.FindByID("ghost"); err != storage.ErrNotFound {
		t.Errorf("subscriber created implicitly: %v", err)
	}
}

func TestAssignDecoder_EmptyAddress(t *testing.T) {
	svc, store := setupService(t, &stubClient{}, NewPool("A"), "S")
	if svc.AssignDecoder("S", "") {
		t.Error("AssignDecoder() with empty address = true")
	}
	if got := assigned(t, store, "S"); len(got) != 0 {
		t.Errorf("assigned = %v", got)
	}
}

func TestUnassignDecoder(t *testing.T) {
	svc, store := setupService(t, &stubClient{}, NewPool("A"), "S")
	svc.AssignDecoder("S", "A")
	svc.AssignDecoder("S", "B")

	if svc.UnassignDecoder("S", "C") {
		t.Error("UnassignDecoder(C) = true")
	}
	if got := assigned(t, store, "S"); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("assigned = %v, want [A B]", got)
	}

	if !svc.UnassignDecoder("S", "A") {
		t.Error("UnassignDecoder(A) = false")
	}
	if svc.UnassignDecoder("ghost", "B") {
		t.Error("UnassignDecoder() on unknown subscriber = true")
	}
	if got := assigned(t, store, "S"); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("assigned = %v, want [B]", got)
	}
}

func TestChannels_RoundTrip(t *testing.T) {
	svc, store := setupService(t, &stubClient{}, NewPool("A"), "S")
	svc.AssignDecoder("S", "A")
	svc.AddChannel("S", "A", "TVA")

	before, _ := store.FindByID("S")

	if !svc.AddChannel("S", "A", "RDI") {
		t.Fatal("AddChannel() = false")
	}
	if svc.AddChannel("S", "A", "RDI") {
		t.Error("duplicate AddChannel() = true")
	}
	if !svc.RemoveChannel("S", "A", "RDI") {
		t.Fatal("RemoveChannel() = false")
	}
	if svc.RemoveChannel("S", "A", "RDI") {
		t.Error("second RemoveChannel() = true")
	}

	after, _ := store.FindByID("S")
	if !reflect.DeepEqual(after.Decoders[0].Channels, before.Decoders[0].Channels) {
		t.Errorf("channels = %v, want %v", after.Decoders[0].Channels, before.Decoders[0].Channels)
	}
}

func TestAddChannel_DecoderNotAssigned(t *testing.T) {
	svc, store := setupService(t, &stubClient{}, NewPool("A"), "S", "T")
	svc.AssignDecoder("T", "A")

	tests := []struct {
		name       string
		subscriber string
		address    string
		channel    string
	}{
		{name: "decoder of another subscriber", subscriber: "S", address: "A", channel: "TVA"},
		{name: "unknown decoder", subscriber: "T", address: "Z", channel: "TVA"},
		{name: "unknown subscriber", subscriber: "ghost", address: "A", channel: "TVA"},
		{name: "empty channel", subscriber: "T", address: "A", channel: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if svc.AddChannel(tt.subscriber, tt.address, tt.channel) {
				t.Error("AddChannel() = true, want false")
			}
			if svc.RemoveChannel(tt.subscriber, tt.address, tt.channel) {
				t.Error("RemoveChannel() = true, want false")
			}
		})
	}

	m, _ := store.FindByID("T")
	if len(m.Decoders[0].Channels) != 0 {
		t.Errorf("channels = %v, want none", m.Decoders[0].Channels)
	}
}

func TestListSubscriberDecoders_Scenario(t *testing.T) {
	// pool {A, B}; S assigned {A, C}; A answers "on", B is unreachable
	client := &stubClient{states: map[string]string{"A": "on"}}
	svc, store := setupService(t, client, NewPool("A", "B"), "S")
	svc.AssignDecoder("S", "A")
	svc.AssignDecoder("S", "C")

	got := svc.ListSubscriberDecoders(context.Background(), "S")
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 (%+v)", len(got), got)
	}
	if got[0].Address != "A" || got[0].State != "on" {
		t.Errorf("decoder = %+v, want A/on", got[0])
	}

	if addrs := assigned(t, store, "S"); !reflect.DeepEqual(addrs, []string{"A", "C"}) {
		t.Errorf("assignment changed to %v", addrs)
	}
}

func TestListSubscriberDecoders_AssignmentOrder(t *testing.T) {
	client := &stubClient{states: map[string]string{"A": "on", "B": "off", "C": "on"}}
	svc, _ := setupService(t, client, NewPool("A", "B", "C"), "S")
	svc.AssignDecoder("S", "C")
	svc.AssignDecoder("S", "A")
	svc.AssignDecoder("S", "B")

	got := svc.ListSubscriberDecoders(context.Background(), "S")
	var order []string
	for _, d := range got {
		order = append(order, d.Address)
	}
	if !reflect.DeepEqual(order, []string{"C", "A", "B"}) {
		t.Errorf("order = %v, want [C A B]", order)
	}
}

func TestListSubscriberDecoders_PersistsStateAndKeepsStale(t *testing.T) {
	client := &stubClient{states: map[string]string{"A": "on", "B": "on"}}
	svc, store := setupService(t, client, NewPool("A", "B"), "S")
	svc.AssignDecoder("S", "A")
	svc.AssignDecoder("S", "B")
	svc.AddChannel("S", "A", "TVA")

	svc.ListSubscriberDecoders(context.Background(), "S")

	// B goes dark, A changes state
	client.mu.Lock()
	client.states = map[string]string{"A": "standby"}
	client.mu.Unlock()

	got := svc.ListSubscriberDecoders(context.Background(), "S")
	if len(got) != 1 || got[0].State != "standby" {
		t.Fatalf("got %+v, want only A/standby", got)
	}
	if !reflect.DeepEqual(got[0].Channels, []string{"TVA"}) {
		t.Errorf("channels = %v, want [TVA]", got[0].Channels)
	}

	m, _ := store.FindByID("S")
	if m.Decoders[0].State != "standby" {
		t.Errorf("stored A state = %q, want standby", m.Decoders[0].State)
	}
	if m.Decoders[1].State != "on" {
		t.Errorf("stored B state = %q, want stale %q", m.Decoders[1].State, "on")
	}
}

func TestListSubscriberDecoders_OnlyFetchesPooledAssignments(t *testing.T) {
	client := &stubClient{states: map[string]string{"A": "on", "B": "on"}}
	svc, _ := setupService(t, client, NewPool("A", "B"), "S")
	svc.AssignDecoder("S", "A")
	svc.AssignDecoder("S", "outside")

	svc.ListSubscriberDecoders(context.Background(), "S")

	client.mu.Lock()
	defer client.mu.Unlock()
	if !reflect.DeepEqual(client.fetched, []string{"A"}) {
		t.Errorf("fetched = %v, want [A]", client.fetched)
	}
}

func TestListSubscriberDecoders_UnknownSubscriber(t *testing.T) {
	client := &stubClient{states: map[string]string{"A": "on"}}
	svc, _ := setupService(t, client, NewPool("A"))

	got := svc.ListSubscriberDecoders(context.Background(), "ghost")
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
	if client.fetchCount() != 0 {
		t.Error("vendor queried for unknown subscriber")
	}
}

func TestListSubscriberDecoders_ResultIsDetached(t *testing.T) {
	client := &stubClient{states: map[string]string{"A": "on"}}
	svc, store := setupService(t, client, NewPool("A"), "S")
	svc.AssignDecoder("S", "A")

	got := svc.ListSubscriberDecoders(context.Background(), "S")
	got[0].AddChannel("leak")

	m, _ := store.FindByID("S")
	if len(m.Decoders[0].Channels) != 0 {
		t.Error("listing result shares memory with the store")
	}
}

func TestRestartDecoder(t *testing.T) {
	client := &stubClient{resetOK: true}
	svc, store := setupService(t, client, NewPool("A"), "S")
	svc.AssignDecoder("S", "A")

	ok, msg := svc.RestartDecoder(context.Background(), "A")
	if !ok || msg != "settling" {
		t.Errorf("RestartDecoder() = %v, %q", ok, msg)
	}

	client.resetOK = false
	ok, msg = svc.RestartDecoder(context.Background(), "A")
	if ok || msg != "failed" {
		t.Errorf("RestartDecoder() = %v, %q", ok, msg)
	}

	m, _ := store.FindByID("S")
	if m.Decoders[0].LastRestart != nil || m.Decoders[0].State != "" {
		t.Error("reset must not touch local state")
	}
}

func TestFetchDecoderState(t *testing.T) {
	client := &stubClient{states: map[string]string{"A": "on"}}
	svc, _ := setupService(t, client, NewPool("A"))

	if snap, ok := svc.FetchDecoderState(context.Background(), "A"); !ok || snap.State != "on" {
		t.Errorf("FetchDecoderState(A) = %+v, %v", snap, ok)
	}
	if _, ok := svc.FetchDecoderState(context.Background(), "B"); ok {
		t.Error("FetchDecoderState(B) should be unavailable")
	}
}

func TestConcurrentAssignAndList(t *testing.T) {
	client := &stubClient{delay: 5 * time.Millisecond, states: map[string]string{}}
	pool := NewPool()
	for i := 0; i < 20; i++ {
		addr := string(rune('a' + i))
		pool.add(addr)
		client.states[addr] = "on"
	}
	svc, store := setupService(t, client, pool, "S")
	svc.AssignDecoder("S", "a")

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				svc.ListSubscriberDecoders(context.Background(), "S")
			}
		}
	}()

	for _, addr := range pool.Addresses()[1:] {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			svc.AssignDecoder("S", addr)
			svc.AddChannel("S", addr, "TVA")
		}(addr)
	}

	// let the listing loop overlap with the writers
	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()

	m, _ := store.FindByID("S")
	if len(m.Decoders) != pool.Len() {
		t.Fatalf("assigned %d decoders, want %d", len(m.Decoders), pool.Len())
	}
	for _, d := range m.Decoders[1:] {
		if !d.HasChannel("TVA") {
			t.Errorf("decoder %s lost its channel", d.Address)
		}
	}

	got := svc.ListSubscriberDecoders(context.Background(), "S")
	if len(got) != pool.Len() {
		t.Errorf("listed %d decoders, want %d", len(got), pool.Len())
	}
}

func TestListSubscriberDecoders_MatchesPoolAcrossSpellings(t *testing.T) {
	pool, err := ParsePool("2001:DB8::1")
	if err != nil {
		t.Fatal(err)
	}
	client := &stubClient{states: map[string]string{"2001:db8::1": "Actif"}}
	svc, store := setupService(t, client, pool, "S")

	if !svc.AssignDecoder("S", "2001:DB8::1") {
		t.Fatal("AssignDecoder() = false")
	}
	if svc.AssignDecoder("S", "2001:db8:0::1") {
		t.Error("same address in another spelling assigned twice")
	}
	if got := assigned(t, store, "S"); !reflect.DeepEqual(got, []string{"2001:db8::1"}) {
		t.Errorf("assigned = %v", got)
	}

	got := svc.ListSubscriberDecoders(context.Background(), "S")
	if len(got) != 1 || got[0].Address != "2001:db8::1" || got[0].State != "Actif" {
		t.Fatalf("ListSubscriberDecoders() = %+v", got)
	}

	if !svc.AddChannel("S", "2001:DB8::1", "TVA") {
		t.Error("AddChannel() with original spelling = false")
	}
	if !svc.RemoveChannel("S", "2001:db8::1", "TVA") {
		t.Error("RemoveChannel() with canonical spelling = false")
	}
	if !svc.UnassignDecoder("S", "2001:DB8:0::1") {
		t.Error("UnassignDecoder() with another spelling = false")
	}
}
