package natsio

import (
	"fmt"
	"strings"
	"time"

	nats "github.com/nats-io/nats.go"
	"github.com/nsyszr/decoderfleet/pkg/client"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultBaseSubject = "decoderfleet.v1"

// Config holds the NATS connection settings.
type Config struct {
	URL          string
	BaseSubject  string
	DrainTimeout time.Duration
}

type natsClient struct {
	cfg *Config
	nc  *nats.Conn
}

// New connects to NATS. Events are published to
// <BaseSubject>.events.<topic>.
func New(cfg *Config) (client.Interface, error) {
	if cfg.BaseSubject == "" {
		cfg.BaseSubject = DefaultBaseSubject
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 10 * time.Second
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("decoderfleet"),
		nats.DrainTimeout(cfg.DrainTimeout),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error("natsio: async error: ", err)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("natsio: disconnected: ", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("natsio: reconnected to ", nc.ConnectedUrl())
		}))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to nats at %s", cfg.URL)
	}

	return &natsClient{
		cfg: cfg,
		nc:  nc,
	}, nil
}

// Subject returns the subject an event topic is published on.
func Subject(baseSubject, topic string) string {
	return fmt.Sprintf("%s.events.%s", baseSubject, topic)
}

func (c *natsClient) PublishEvent(topic string, data []byte) error {
	return c.nc.Publish(Subject(c.cfg.BaseSubject, topic), data)
}

// SubscribeEvents calls h for every event published below the base subject.
func (c *natsClient) SubscribeEvents(h client.EventHandler) error {
	prefix := Subject(c.cfg.BaseSubject, "")
	if _, err := c.nc.Subscribe(prefix+">", func(msg *nats.Msg) {
		h(strings.TrimPrefix(msg.Subject, prefix), msg.Data)
	}); err != nil {
		return errors.Wrap(err, "failed to subscribe to events")
	}
	return nil
}

func (c *natsClient) Close() {
	if c.nc == nil {
		return
	}
	if err := c.nc.Drain(); err != nil {
		log.Warn("natsio: drain failed: ", err)
		c.nc.Close()
	}
}
