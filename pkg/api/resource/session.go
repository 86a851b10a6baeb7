package resource

import (
	"fmt"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
)

// LoginResource is the body of a login request.
type LoginResource struct {
	OperatorID string `json:"operatorId"`
	Password   string `json:"password"`
}

func ValidateLogin(r *LoginResource) error {
	if r.OperatorID == "" {
		return fmt.Errorf("operatorId is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type SessionResource struct {
	ID         string    `json:"id"`
	OperatorID string    `json:"operatorId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
	Token      string    `json:"token,omitempty"`
}

func NewSession(m *model.Session, token string) *SessionResource {
	return &SessionResource{
		ID:         m.ID,
		OperatorID: m.OperatorID,
		ExpiresAt:  m.ExpiresAt,
		LastSeenAt: m.LastSeenAt,
		Token:      token,
	}
}
