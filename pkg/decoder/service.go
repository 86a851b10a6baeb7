// Package decoder keeps the subscribers' decoder assignments in step with the
// state reported by the vendor and carries out remote control requests.
//
// Lookup misses (unknown subscriber, address or channel) are never errors:
// they degrade to a no-op or an empty result.
package decoder

import (
	"context"
	"fmt"

	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// DefaultConcurrency bounds the vendor requests in flight per listing.
const DefaultConcurrency = 4

// DeviceClient talks to the vendor control endpoint.
type DeviceClient interface {
	FetchState(ctx context.Context, address string) (*model.DecoderSnapshot, bool)
	SendReset(ctx context.Context, address string) (bool, string)
}

// errUnchanged aborts a store update that turned out to be a no-op.
var errUnchanged = fmt.Errorf("unchanged")

type Option func(*Service)

// WithConcurrency sets how many vendor requests a listing may run at once.
// One reproduces a strictly sequential scan.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Service bridges the locally owned assignments with the live vendor state.
type Service struct {
	store       storage.SubscriberStore
	client      DeviceClient
	pool        Pool
	concurrency int
}

func NewService(store storage.SubscriberStore, client DeviceClient, pool Pool, opts ...Option) *Service {
	s := &Service{
		store:       store,
		client:      client,
		pool:        pool,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Pool() Pool {
	return s.pool
}

// FetchDecoderState returns the vendor's view of a single decoder.
func (s *Service) FetchDecoderState(ctx context.Context, address string) (*model.DecoderSnapshot, bool) {
	return s.client.FetchState(ctx, address)
}

// ListSubscriberDecoders refreshes and returns the subscriber's decoders that
// are in the pool and answered the vendor request, in assignment order.
// Decoders outside the pool or unreachable are left out of the result but
// stay assigned with their previous state.
func (s *Service) ListSubscriberDecoders(ctx context.Context, subscriberID string) []model.Decoder {
	out := make([]model.Decoder, 0)

	sub, err := s.store.FindByID(subscriberID)
	if err != nil {
		return out
	}

	addresses := make([]string, 0, len(sub.Decoders))
	for _, a := range sub.Addresses() {
		if s.pool.Contains(a) {
			addresses = append(addresses, a)
		}
	}
	if len(addresses) == 0 {
		return out
	}

	// Fetch without holding the store lock, then apply under it so that
	// assignments made in the meantime are not lost.
	fresh := make(map[string]*model.DecoderSnapshot, len(addresses))
	for i, snap := range s.fetchAll(ctx, addresses) {
		if snap != nil {
			fresh[addresses[i]] = snap
		}
	}
	if len(fresh) == 0 {
		return out
	}

	err = s.store.Update(subscriberID, func(m *model.Subscriber) error {
		for i := range m.Decoders {
			snap, ok := fresh[m.Decoders[i].Address]
			if !ok {
				continue
			}
			m.Decoders[i].ApplySnapshot(snap)
			out = append(out, m.Decoders[i].Clone())
		}
		return nil
	})
	if err != nil {
		log.WithFields(log.Fields{
			"subscriber": subscriberID,
			"error":      err.Error(),
		}).Debug("decoder: subscriber vanished during listing")
		return make([]model.Decoder, 0)
	}

	return out
}

// AssignDecoder records that the address belongs to the subscriber. IP
// literals are stored in canonical form. It reports whether a new assignment
// was made.
func (s *Service) AssignDecoder(subscriberID, address string) bool {
	address = NormalizeAddress(address)
	if address == "" {
		return false
	}
	return s.update(subscriberID, func(m *model.Subscriber) bool {
		return m.AssignDecoder(address)
	})
}

// UnassignDecoder removes the address from the subscriber and reports
// whether it was assigned.
func (s *Service) UnassignDecoder(subscriberID, address string) bool {
	address = NormalizeAddress(address)
	return s.update(subscriberID, func(m *model.Subscriber) bool {
		return m.UnassignDecoder(address)
	})
}

// RestartDecoder forwards a reset to the vendor. Local state is refreshed by
// the next listing, not here.
func (s *Service) RestartDecoder(ctx context.Context, address string) (bool, string) {
	return s.client.SendReset(ctx, address)
}

// update applies fn under the store lock. fn returns false for a no-op, in
// which case the stored record is not touched.
func (s *Service) update(subscriberID string, fn func(m *model.Subscriber) bool) bool {
	err := s.store.Update(subscriberID, func(m *model.Subscriber) error {
		if !fn(m) {
			return errUnchanged
		}
		return nil
	})
	return err == nil
}
