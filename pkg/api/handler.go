package api

import (
	"net/url"

	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/auth"
	"github.com/nsyszr/decoderfleet/pkg/decoder"
	"github.com/nsyszr/decoderfleet/pkg/events"
	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	log "github.com/sirupsen/logrus"
)

// EventSource records audit events and streams them to websocket clients.
type EventSource interface {
	events.Publisher
	Subscribe(buffer int) (<-chan model.Event, func())
}

// Handler contains all properties to serve the API
type Handler struct {
	svc    *decoder.Service
	store  storage.Interface
	events EventSource
	auth   *auth.Authenticator
}

// NewHandler create a new API handler
func NewHandler(svc *decoder.Service, store storage.Interface, rec EventSource, authn *auth.Authenticator) *Handler {
	return &Handler{
		svc:    svc,
		store:  store,
		events: rec,
		auth:   authn,
	}
}

// RegisterRoutes attaches the handlers to the echo web server
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	log.Debug("Register API routes")
	api := e.Group("/api/v1")
	secured := h.requireSession

	api.POST("/login", h.handleLogin)
	api.POST("/logout", h.handleLogout, secured)

	api.GET("/subscribers", h.handleFetchSubscribers, secured)
	api.POST("/subscribers", h.handleCreateSubscriber, secured)
	api.GET("/subscribers/:id", h.handleGetSubscriberByID, secured)
	api.DELETE("/subscribers/:id", h.handleDeleteSubscriber, secured)

	api.GET("/subscribers/:id/decoders", h.handleFetchSubscriberDecoders, secured)
	api.POST("/subscribers/:id/decoders", h.handleAssignDecoder, secured)
	api.DELETE("/subscribers/:id/decoders/:address", h.handleUnassignDecoder, secured)

	api.POST("/subscribers/:id/decoders/:address/channels", h.handleAddChannel, secured)
	api.DELETE("/subscribers/:id/decoders/:address/channels/:name", h.handleRemoveChannel, secured)

	api.GET("/decoders", h.handleFetchDecoders, secured)
	api.GET("/decoders/:address", h.handleGetDecoderState, secured)
	api.POST("/decoders/:address/reset", h.handleResetDecoder, secured)

	api.GET("/events", h.handleFetchEvents, secured)
	api.GET("/events/:id", h.handleGetEventByID, secured)
	api.Any("/realtime-events", h.realtimeEventsHandler(), secured)
}

// param returns the unescaped path parameter.
func param(c echo.Context, name string) string {
	v := c.Param(name)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

func (h *Handler) record(topic, sourceType, sourceID string, details interface{}) {
	if h.events == nil {
		return
	}
	if _, err := h.events.Record(topic, sourceType, sourceID, details); err != nil {
		log.WithFields(log.Fields{
			"topic":    topic,
			"sourceId": sourceID,
		}).Error("api: failed to record event: ", err)
	}
}
