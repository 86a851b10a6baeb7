// Package auth authenticates the operator and manages operator sessions.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultSessionTTL = 8 * time.Hour

// Config holds the operator credentials and session settings.
type Config struct {
	OperatorID   string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}

// Authenticator validates operator credentials and session tokens.
type Authenticator struct {
	cfg      Config
	sessions storage.SessionStore
	now      func() time.Time
}

// NewAuthenticator creates an authenticator. An empty secret is replaced by a
// random one, which invalidates tokens on restart.
func NewAuthenticator(cfg Config, sessions storage.SessionStore) (*Authenticator, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.Secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, errors.Wrap(err, "failed to generate session secret")
		}
		cfg.Secret = hex.EncodeToString(b)
		log.Warn("auth: no session secret configured, sessions will not survive a restart")
	}
	if cfg.PasswordHash == "" {
		log.Warn("auth: no operator password hash configured, login is disabled")
	}

	return &Authenticator{
		cfg:      cfg,
		sessions: sessions,
		now:      time.Now,
	}, nil
}

// TTL returns the session lifetime.
func (a *Authenticator) TTL() time.Duration {
	return a.cfg.TTL
}

// Login checks the credentials and opens a session. It returns the signed
// token and the session it refers to.
func (a *Authenticator) Login(operatorID, password string) (string, *model.Session, error) {
	if a.cfg.PasswordHash == "" {
		return "", nil, ErrLoginDisabled
	}

	idOK := subtle.ConstantTimeCompare([]byte(operatorID), []byte(a.cfg.OperatorID)) == 1
	pwOK, err := VerifyPassword(password, a.cfg.PasswordHash)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to verify password")
	}
	if !idOK || !pwOK {
		return "", nil, ErrInvalidCredentials
	}

	now := a.now()
	sess := &model.Session{
		ID:         uuid.NewString(),
		OperatorID: operatorID,
		ExpiresAt:  now.Add(a.cfg.TTL).UTC(),
	}
	if err := a.sessions.Create(sess); err != nil {
		return "", nil, errors.Wrap(err, "failed to create session")
	}

	token, err := generateToken(operatorID, sess.ID, a.cfg.Secret, now, sess.ExpiresAt)
	if err != nil {
		_ = a.sessions.Delete(sess.ID)
		return "", nil, err
	}

	return token, sess, nil
}

// Validate resolves a token to its live session.
func (a *Authenticator) Validate(token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}

	claims, err := parseToken(token, a.cfg.Secret)
	if err != nil {
		return nil, err
	}

	sess, err := a.sessions.FindByID(claims.SessionID)
	if err == storage.ErrNotFound {
		return nil, ErrSessionExpired
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to find session")
	}

	if sess.OperatorID != claims.Subject {
		return nil, ErrTokenInvalid
	}
	if sess.Expired(a.now()) {
		_ = a.sessions.Delete(sess.ID)
		return nil, ErrSessionExpired
	}

	_ = a.sessions.Touch(sess.ID)

	return sess, nil
}

// Logout closes the session. Unknown sessions are ignored.
func (a *Authenticator) Logout(sessionID string) error {
	if err := a.sessions.Delete(sessionID); err != nil && err != storage.ErrNotFound {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
