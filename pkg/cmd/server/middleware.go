package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo"
	log "github.com/sirupsen/logrus"
)

// logger returns a middleware that logs HTTP requests.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}
			latency := time.Since(start)

			fields := log.Fields{
				"remote_ip":     c.RealIP(),
				"method":        req.Method,
				"uri":           req.RequestURI,
				"status":        res.Status,
				"status_text":   http.StatusText(res.Status),
				"bytes_out":     res.Size,
				"latency":       latency.Nanoseconds(),
				"latency_human": latency.String(),
			}
			if id := req.Header.Get(echo.HeaderXRequestID); id != "" {
				fields["id"] = id
			}
			if err != nil {
				fields["error"] = err.Error()
			}

			entry := log.WithFields(fields)
			msg := req.Method + " " + req.RequestURI + " " + strconv.Itoa(res.Status)
			switch {
			case res.Status >= http.StatusInternalServerError:
				entry.Error(msg)
			case req.RequestURI == healthPath || req.RequestURI == metricsPath:
				entry.Debug(msg)
			default:
				entry.Info(msg)
			}

			return err
		}
	}
}
