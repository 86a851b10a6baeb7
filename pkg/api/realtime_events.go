package api

import (
	"encoding/json"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	log "github.com/sirupsen/logrus"
)

const realtimeBuffer = 64

func (h *Handler) realtimeEventsHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.events == nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		conn, _, _, err := ws.UpgradeHTTP(c.Request(), c.Response())
		if err != nil {
			log.Error("api: failed to upgrade to websocket: ", err)
			return nil
		}
		defer conn.Close()

		ch, cancel := h.events.Subscribe(realtimeBuffer)
		defer cancel()

		// Clients only listen; reading detects the close frame or a dropped
		// connection.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := wsutil.ReadClientData(conn); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-closed:
				return nil
			case <-c.Request().Context().Done():
				return nil
			case m, ok := <-ch:
				if !ok {
					return nil
				}
				out, err := json.Marshal(resource.NewRealtimeEvent(&m))
				if err != nil {
					log.Error("api: failed to encode realtime event: ", err)
					continue
				}
				if err := wsutil.WriteServerMessage(conn, ws.OpText, out); err != nil {
					log.Warn("api: failed to send realtime event: ", err)
					return nil
				}
			}
		}
	}
}
