// Package server runs the decoderfleet HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/nsyszr/decoderfleet/config"
	"github.com/nsyszr/decoderfleet/pkg/api"
	"github.com/nsyszr/decoderfleet/pkg/auth"
	"github.com/nsyszr/decoderfleet/pkg/client"
	"github.com/nsyszr/decoderfleet/pkg/client/natsio"
	"github.com/nsyszr/decoderfleet/pkg/decoder"
	"github.com/nsyszr/decoderfleet/pkg/devicecontrol"
	"github.com/nsyszr/decoderfleet/pkg/events"
	"github.com/nsyszr/decoderfleet/pkg/metrics"
	"github.com/nsyszr/decoderfleet/pkg/seed"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	"github.com/nsyszr/decoderfleet/pkg/storage/memory"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	healthPath  = "/healthz"
	metricsPath = "/metrics"

	shutdownTimeout = 10 * time.Second
)

type apiServer struct {
	c      *config.Config
	quitCh chan bool
	doneCh chan bool

	store storage.Interface
	bus   client.Interface
	e     *echo.Echo
}

func newAPIServer(c *config.Config, seedFile string) (*apiServer, error) {
	s := &apiServer{
		c:      c,
		quitCh: make(chan bool),
		doneCh: make(chan bool),
		store:  memory.NewStore(),
	}

	if seedFile != "" {
		n, err := seed.LoadFile(seedFile, s.store.Subscribers())
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"file":        seedFile,
			"subscribers": n,
		}).Info("Seed file loaded")
	}

	pool, err := decoder.ParsePool(c.AddressPool)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ADDRESS_POOL")
	}

	dc := devicecontrol.NewClient(devicecontrol.Config{
		URL:     c.VendorURL,
		GroupID: c.VendorGroupID,
		Timeout: c.VendorTimeout,
	}, nil)
	svc := decoder.NewService(s.store.Subscribers(), dc, pool,
		decoder.WithConcurrency(c.FetchConcurrency))

	if c.NATSServerURL != "" {
		bus, err := natsio.New(&natsio.Config{URL: c.NATSServerURL})
		if err != nil {
			return nil, err
		}
		s.bus = bus
	}

	authn, err := auth.NewAuthenticator(auth.Config{
		OperatorID:   c.OperatorID,
		PasswordHash: c.OperatorPasswordHash,
		Secret:       c.SessionSecret,
		TTL:          c.SessionTTL,
	}, s.store.Sessions())
	if err != nil {
		s.closeBus()
		return nil, err
	}

	metrics.Init()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(logger())

	e.GET(healthPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET(metricsPath, echo.WrapHandler(promhttp.Handler()))

	// Register API endpoints
	api.NewHandler(svc, s.store, events.NewRecorder(s.store.Events(), s.bus), authn).RegisterRoutes(e)

	log.WithFields(log.Fields{
		"vendor":      c.VendorURL,
		"pool":        pool.String(),
		"concurrency": c.FetchConcurrency,
		"nats":        c.NATSServerURL != "",
	}).Info("API server configured")

	s.e = e
	return s, nil
}

func (s *apiServer) Serve() {
	addr := fmt.Sprintf("%s:%d", s.c.BindHost, s.c.BindPort)

	go func() {
		log.WithFields(log.Fields{
			"host": s.c.BindHost,
			"port": s.c.BindPort,
		}).Info("Starting server")

		if err := s.e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("Server stopped: ", err)
		}
	}()

	// Wait until receiving the quit signal
	<-s.quitCh
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown the echo web server
	if err := s.e.Shutdown(ctx); err != nil {
		log.Error("Failed to shutdown server: ", err)
	}

	s.closeBus()

	// We've done!
	s.doneCh <- true
}

func (s *apiServer) closeBus() {
	if s.bus != nil {
		s.bus.Close()
	}
}

func (s *apiServer) Shutdown() {
	// Send the quit signal to the Serve() routine
	s.quitCh <- true

	select {
	case <-s.doneCh:
		log.Info("Shutdown server successful")
	case <-time.After(shutdownTimeout + time.Second):
		log.Error("Shutdown server failed")
	}
}

// RunServeAPI returns the run func of the serve api command.
func RunServeAPI(c *config.Config) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		configureLogging(c)

		seedFile, _ := cmd.Flags().GetString("seed")

		s, err := newAPIServer(c, seedFile)
		if err != nil {
			log.Error("failed to create new server instance: ", err)
			os.Exit(1)
		}

		go s.Serve()

		// Wait for interrupt signal to gracefully shutdown the server
		quitCh := make(chan os.Signal, 1)
		signal.Notify(quitCh, os.Interrupt, syscall.SIGTERM)
		<-quitCh

		s.Shutdown()
	}
}
