package cli

import (
	colorable "github.com/mattn/go-colorable"
	"github.com/nsyszr/decoderfleet/config"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	Decoder  *DecoderHandler
	Events   *EventsHandler
	Password *PasswordHandler
}

func NewHandler(c *config.Config) *Handler {
	return &Handler{
		Decoder:  newDecoderHandler(c),
		Events:   newEventsHandler(c),
		Password: newPasswordHandler(),
	}
}

// setupLogging sends colored log output to the terminal.
func setupLogging(c *config.Config) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{
		ForceColors: true,
	})
	log.SetOutput(colorable.NewColorableStderr())
}
