package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	"github.com/nsyszr/decoderfleet/pkg/decoder"
	"github.com/nsyszr/decoderfleet/pkg/events"
)

func (h *Handler) handleFetchSubscriberDecoders(c echo.Context) error {
	id := param(c, "id")
	if ok, err := h.subscriberExists(c, id); !ok {
		return err
	}

	m := h.svc.ListSubscriberDecoders(c.Request().Context(), id)

	return c.JSON(http.StatusOK, resource.NewDecoderList(m))
}

func (h *Handler) handleAssignDecoder(c echo.Context) error {
	id := param(c, "id")
	if ok, err := h.subscriberExists(c, id); !ok {
		return err
	}

	r := &resource.AssignmentResource{}
	if err := c.Bind(r); err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}
	address, err := resource.ValidateAssignment(r)
	if err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}
	address = decoder.NormalizeAddress(address)

	assigned := h.svc.AssignDecoder(id, address)
	if assigned {
		h.record(events.TopicDecoderAssigned, events.SourceTypeDecoder, address, map[string]string{"subscriberId": id})
	}

	return c.JSON(http.StatusOK, &resource.AssignmentResultResource{
		Address:  address,
		Assigned: assigned,
	})
}

func (h *Handler) handleUnassignDecoder(c echo.Context) error {
	id := param(c, "id")
	if ok, err := h.subscriberExists(c, id); !ok {
		return err
	}
	address := decoder.NormalizeAddress(param(c, "address"))

	unassigned := h.svc.UnassignDecoder(id, address)
	if unassigned {
		h.record(events.TopicDecoderUnassigned, events.SourceTypeDecoder, address, map[string]string{"subscriberId": id})
	}

	return c.JSON(http.StatusOK, &resource.UnassignmentResultResource{
		Address:    address,
		Unassigned: unassigned,
	})
}

func (h *Handler) handleFetchDecoders(c echo.Context) error {
	m := h.svc.ListAvailableDecoders(c.Request().Context())

	return c.JSON(http.StatusOK, resource.NewDecoderStateList(m))
}

func (h *Handler) handleGetDecoderState(c echo.Context) error {
	address := param(c, "address")

	m, ok := h.svc.FetchDecoderState(c.Request().Context(), address)
	if !ok {
		return c.JSON(http.StatusNotFound, resource.NewError(fmt.Errorf("decoder %s is unavailable", address)))
	}

	return c.JSON(http.StatusOK, resource.NewDecoderState(m))
}

func (h *Handler) handleResetDecoder(c echo.Context) error {
	address := param(c, "address")

	succeeded, message := h.svc.RestartDecoder(c.Request().Context(), address)
	h.record(events.TopicDecoderReset, events.SourceTypeDecoder, address, map[string]interface{}{
		"succeeded": succeeded,
		"message":   message,
	})

	return c.JSON(http.StatusOK, resource.NewResetResult(address, succeeded, message))
}
