package decoder

import (
	"context"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/metrics"
	"github.com/nsyszr/decoderfleet/pkg/model"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ListAvailableDecoders polls every pool address and returns the decoders
// that answered, in pool order.
func (s *Service) ListAvailableDecoders(ctx context.Context) []model.DecoderSnapshot {
	start := time.Now()
	addresses := s.pool.Addresses()

	out := make([]model.DecoderSnapshot, 0, len(addresses))
	for _, snap := range s.fetchAll(ctx, addresses) {
		if snap != nil {
			out = append(out, *snap)
		}
	}

	elapsed := time.Since(start)
	metrics.ObserveScan(len(out), elapsed)
	log.WithFields(log.Fields{
		"pool":    len(addresses),
		"found":   len(out),
		"latency": elapsed.String(),
	}).Debug("decoder: pool scan finished")

	return out
}

// fetchAll fetches the state of every address with at most s.concurrency
// requests in flight. The result has one slot per address in input order;
// unavailable decoders leave their slot nil.
func (s *Service) fetchAll(ctx context.Context, addresses []string) []*model.DecoderSnapshot {
	results := make([]*model.DecoderSnapshot, len(addresses))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if snap, ok := s.client.FetchState(ctx, address); ok {
				results[i] = snap
			}
			return nil
		})
	}

	// Workers never fail, an unavailable decoder is an empty slot
	_ = g.Wait()

	return results
}
