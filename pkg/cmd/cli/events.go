package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/nsyszr/decoderfleet/config"
	"github.com/nsyszr/decoderfleet/pkg/client"
	"github.com/nsyszr/decoderfleet/pkg/client/natsio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type EventsHandler struct {
	c *config.Config
}

func newEventsHandler(c *config.Config) *EventsHandler {
	return &EventsHandler{c: c}
}

// Watch prints the audit events a server mirrors to NATS until interrupted.
func (h *EventsHandler) Watch(cmd *cobra.Command, args []string) {
	setupLogging(h.c)

	if h.c.NATSServerURL == "" {
		log.Error("NATS_URL is not set")
		os.Exit(2)
	}

	bus, err := natsio.New(&natsio.Config{URL: h.c.NATSServerURL})
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	defer bus.Close()

	if err := h.watch(bus, cmd.OutOrStdout()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
	log.Info("Watching events, press Ctrl+C to stop")

	quitCh := make(chan os.Signal, 1)
	signal.Notify(quitCh, os.Interrupt)
	<-quitCh
}

func (h *EventsHandler) watch(bus client.Interface, w io.Writer) error {
	return bus.SubscribeEvents(func(topic string, data []byte) {
		fmt.Fprintf(w, "%s %s\n", topic, data)
	})
}
