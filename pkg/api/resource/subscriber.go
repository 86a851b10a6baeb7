package resource

import (
	"fmt"
	"strings"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
)

type SubscriberResource struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email,omitempty"`
	Phone     string             `json:"phone,omitempty"`
	Decoders  []*DecoderResource `json:"decoders"`
	CreatedAt *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt *time.Time         `json:"updatedAt,omitempty"`
}

type SubscriberListResource struct {
	Members []*SubscriberResource `json:"members"`
}

func NewSubscriber(m *model.Subscriber) (out *SubscriberResource) {
	out = &SubscriberResource{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		Decoders: NewDecoderList(m.Decoders).Members,
	}

	if !m.CreatedAt.IsZero() {
		out.CreatedAt = &time.Time{}
		*out.CreatedAt = m.CreatedAt.Round(time.Second)
	}
	if !m.UpdatedAt.IsZero() {
		out.UpdatedAt = &time.Time{}
		*out.UpdatedAt = m.UpdatedAt.Round(time.Second)
	}

	return // out
}

// NewSubscriberList keeps the store order, which is creation order.
func NewSubscriberList(m []model.Subscriber) (out *SubscriberListResource) {
	out = &SubscriberListResource{
		Members: make([]*SubscriberResource, 0, len(m)),
	}

	for i := range m {
		out.Members = append(out.Members, NewSubscriber(&m[i]))
	}

	return // out
}

// ValidateSubscriber builds a new subscriber from the request body. Decoders
// are assigned through their own route and are ignored here.
func ValidateSubscriber(r *SubscriberResource) (m *model.Subscriber, err error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	if strings.ContainsAny(id, "/?#") {
		return nil, fmt.Errorf("id must not contain '/', '?' or '#'")
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return nil, fmt.Errorf("email is invalid")
	}

	m = &model.Subscriber{
		ID:    id,
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		Phone: strings.TrimSpace(r.Phone),
	}

	return m, nil
}
