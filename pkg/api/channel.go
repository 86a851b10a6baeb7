package api

import (
	"net/http"

	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	"github.com/nsyszr/decoderfleet/pkg/decoder"
	"github.com/nsyszr/decoderfleet/pkg/events"
)

func (h *Handler) handleAddChannel(c echo.Context) error {
	id := param(c, "id")
	if ok, err := h.subscriberExists(c, id); !ok {
		return err
	}
	address := decoder.NormalizeAddress(param(c, "address"))

	r := &resource.ChannelResource{}
	if err := c.Bind(r); err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}
	name, err := resource.ValidateChannel(r)
	if err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}

	changed := h.svc.AddChannel(id, address, name)
	if changed {
		h.record(events.TopicChannelAdded, events.SourceTypeDecoder, address, map[string]string{
			"subscriberId": id,
			"channel":      name,
		})
	}

	return c.JSON(http.StatusOK, &resource.ChannelResultResource{
		Address: address,
		Name:    name,
		Changed: changed,
	})
}

func (h *Handler) handleRemoveChannel(c echo.Context) error {
	id := param(c, "id")
	if ok, err := h.subscriberExists(c, id); !ok {
		return err
	}
	address := decoder.NormalizeAddress(param(c, "address"))
	name := param(c, "name")

	changed := h.svc.RemoveChannel(id, address, name)
	if changed {
		h.record(events.TopicChannelRemoved, events.SourceTypeDecoder, address, map[string]string{
			"subscriberId": id,
			"channel":      name,
		})
	}

	return c.JSON(http.StatusOK, &resource.ChannelResultResource{
		Address: address,
		Name:    name,
		Changed: changed,
	})
}
