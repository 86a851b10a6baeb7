package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	"github.com/nsyszr/decoderfleet/pkg/storage"
)

func (h *Handler) handleFetchEvents(c echo.Context) error {
	m, err := h.store.Events().FetchAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	return c.JSON(http.StatusOK, resource.NewEventList(m))
}

func (h *Handler) handleGetEventByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}

	m, err := h.store.Events().FindByID(int32(id))
	if err != nil && err == storage.ErrNotFound {
		return c.JSON(http.StatusNotFound, resource.NewError(err))
	} else if err != nil {
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	return c.JSON(http.StatusOK, resource.NewEvent(m))
}
