package devicecontrol

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/devicecontrol/proto"
	"github.com/nsyszr/decoderfleet/pkg/metrics"
	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MessageResetSucceeded = "Décodeur redémarré avec succès. Cela peut prendre 10 à 30 secondes."
	MessageResetFailed    = "Erreur lors du redémarrage du décodeur."

	DefaultTimeout = 5 * time.Second

	maxReplySize = 1 << 20
)

// Config holds the vendor endpoint settings.
type Config struct {
	URL     string
	GroupID string
	Timeout time.Duration
}

// Client issues single request/response exchanges against the vendor's
// control endpoint. It keeps no state besides its configuration and is safe
// for concurrent use.
type Client struct {
	cfg Config
	hc  *http.Client
}

// NewClient creates a vendor client. A nil http.Client uses a default one.
func NewClient(cfg Config, hc *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		cfg: cfg,
		hc:  hc,
	}
}

// FetchState asks the vendor for the decoder's state. The second return
// value is false when no usable state came back; that is a normal outcome
// and is only logged.
func (c *Client) FetchState(ctx context.Context, address string) (*model.DecoderSnapshot, bool) {
	rep, err := c.call(ctx, proto.ActionInfo, address)
	if err != nil {
		log.WithFields(log.Fields{
			"address": address,
			"action":  proto.ActionInfo,
			"error":   err.Error(),
		}).Debug("devicecontrol: decoder unavailable")
		return nil, false
	}

	snap := &model.DecoderSnapshot{
		Address: address,
		State:   model.DefaultDecoderState,
	}
	if rep.State != nil && *rep.State != "" {
		snap.State = *rep.State
	}
	snap.LastRestart = c.parseTimestamp(address, "lastRestart", rep.LastRestart)
	snap.LastReinit = c.parseTimestamp(address, "lastReinit", rep.LastReinit)

	return snap, true
}

// SendReset asks the vendor to restart the decoder. The message is meant for
// the operator.
func (c *Client) SendReset(ctx context.Context, address string) (bool, string) {
	if _, err := c.call(ctx, proto.ActionReset, address); err != nil {
		log.WithFields(log.Fields{
			"address": address,
			"action":  proto.ActionReset,
			"error":   err.Error(),
		}).Warn("devicecontrol: reset failed")
		return false, MessageResetFailed
	}

	log.WithField("address", address).Info("devicecontrol: reset accepted")
	return true, MessageResetSucceeded
}

func (c *Client) parseTimestamp(address, field string, v *string) *time.Time {
	if v == nil {
		return nil
	}
	t, ok := ParseTimestamp(*v)
	if !ok {
		log.WithFields(log.Fields{
			"address": address,
			"field":   field,
			"value":   *v,
		}).Warn("devicecontrol: ignoring unparsable timestamp")
		return nil
	}
	return t
}

// call performs one exchange and returns the reply only when the vendor
// affirmed it.
func (c *Client) call(ctx context.Context, action proto.Action, address string) (rep *proto.Reply, err error) {
	start := time.Now()
	defer func() {
		result := metrics.ResultOK
		if proto.IsVendorError(err) {
			result = metrics.ResultRejected
		} else if err != nil {
			result = metrics.ResultError
		}
		metrics.ObserveVendorRequest(action.String(), result, time.Since(start))
	}()

	body, err := proto.MarshalNewRequest(c.cfg.GroupID, address, action)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal vendor request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, proto.NewTransportError(action, address, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, proto.NewTransportError(action, address, 0, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxReplySize))
		return nil, proto.NewTransportError(action, address, res.StatusCode, nil)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxReplySize))
	if err != nil {
		return nil, proto.NewTransportError(action, address, 0, errors.Wrap(err, "failed to read vendor reply"))
	}

	rep, err = proto.UnmarshalReply(data)
	if err != nil {
		return nil, proto.NewTransportError(action, address, 0, err)
	}
	if !rep.OK() {
		return nil, proto.NewVendorError(action, address, rep.Response)
	}

	return rep, nil
}
