package server

import (
	"os"
	"strings"

	"github.com/nsyszr/decoderfleet/config"
	log "github.com/sirupsen/logrus"
)

// configureLogging sets the global logrus formatter and level. An unknown
// level falls back to info.
func configureLogging(c *config.Config) {
	switch strings.ToLower(c.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	}

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
