package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	"github.com/nsyszr/decoderfleet/pkg/auth"
	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// SessionCookieName carries the session token for browser clients.
	SessionCookieName = "decoderfleet_session"
	// LoginPath is where unauthenticated callers are sent.
	LoginPath = "/api/v1/login"

	contextKeySession = "session"
)

// SessionFromContext returns the session resolved by requireSession.
func SessionFromContext(c echo.Context) *model.Session {
	sess, _ := c.Get(contextKeySession).(*model.Session)
	return sess
}

func tokenFromRequest(c echo.Context) string {
	if v := c.Request().Header.Get(echo.HeaderAuthorization); v != "" {
		if strings.HasPrefix(v, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(v, "Bearer "))
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (h *Handler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := h.auth.Validate(tokenFromRequest(c))
		if err != nil {
			log.WithFields(log.Fields{
				"uri":    c.Request().RequestURI,
				"reason": errors.Cause(err).Error(),
			}).Debug("api: unauthenticated request")
			return c.JSON(http.StatusUnauthorized, resource.NewUnauthorized("authentication required", LoginPath))
		}

		c.Set(contextKeySession, sess)
		return next(c)
	}
}

func (h *Handler) handleLogin(c echo.Context) error {
	r := &resource.LoginResource{}
	if err := c.Bind(r); err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}
	if err := resource.ValidateLogin(r); err != nil {
		return c.JSON(http.StatusBadRequest, resource.NewError(err))
	}

	token, sess, err := h.auth.Login(r.OperatorID, r.Password)
	switch {
	case err == auth.ErrInvalidCredentials:
		log.WithField("operatorId", r.OperatorID).Warn("api: login rejected")
		return c.JSON(http.StatusUnauthorized, resource.NewUnauthorized(err.Error(), LoginPath))
	case err == auth.ErrLoginDisabled:
		return c.JSON(http.StatusForbidden, resource.NewError(err))
	case err != nil:
		log.Error("api: login failed: ", err)
		return c.JSON(http.StatusInternalServerError, resource.NewError(err))
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(h.auth.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.IsTLS(),
	})

	log.WithFields(log.Fields{
		"operatorId": sess.OperatorID,
		"sessionId":  sess.ID,
	}).Info("api: operator logged in")

	return c.JSON(http.StatusOK, resource.NewSession(sess, token))
}

func (h *Handler) handleLogout(c echo.Context) error {
	sess := SessionFromContext(c)
	if sess != nil {
		if err := h.auth.Logout(sess.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, resource.NewError(err))
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.NoContent(http.StatusNoContent)
}
