package api

import (
	"net/http"

	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	"github.com/nsyszr/decoderfleet/pkg/events"
	"github.com/nsyszr/decoderfleet/pkg/storage"
)

func (h *Handler) handleFetchSubscribers(c echo.Context) error {
	m, err := h.store.Subscribers().FetchAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	return c.JSON(http.StatusOK, resource.NewSubscriberList(m))
}

func (h *Handler) handleGetSubscriberByID(c echo.Context) error {
	m, err := h.store.Subscribers().FindByID(param(c, "id"))
	if err != nil && err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound, resource.NewError(err))
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	return c.JSON(http.StatusOK, resource.NewSubscriber(m))
}

func (h *Handler) handleCreateSubscriber(c echo.Context) error {
	r := &resource.SubscriberResource{}
	if err := c.Bind(r); err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}

	m, err := resource.ValidateSubscriber(r)
	if err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}

	err = h.store.Subscribers().Create(m)
	if err != nil && err == storage.ErrAlreadyExists {
		return c.JSON(http.StatusConflict, resource.NewError(err))
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	h.record(events.TopicSubscriberCreated, events.SourceTypeSubscriber, m.ID, map[string]string{"name": m.Name})

	return c.JSON(http.StatusCreated, resource.NewSubscriber(m))
}

func (h *Handler) handleDeleteSubscriber(c echo.Context) error {
	id := param(c, "id")

	err := h.store.Subscribers().Delete(id)
	if err != nil && err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound, resource.NewError(err))
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	h.record(events.TopicSubscriberDeleted, events.SourceTypeSubscriber, id, nil)

	return c.NoContent(http.StatusNoContent)
}

// subscriberExists answers 404 for routes nested under an unknown subscriber.
func (h *Handler) subscriberExists(c echo.Context, id string) (bool, error) {
	_, err := h.store.Subscribers().FindByID(id)
	if err != nil && err == storage.ErrNotFound {
		return false, c.JSON(http.StatusNotFound, resource.NewError(err))
	} else if err != nil {
		return false, c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}
	return true, nil
}
