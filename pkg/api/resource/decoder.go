package resource

import (
	"fmt"
	"strings"
	"time"

	"github.com/nsyszr/decoderfleet/pkg/model"
)

type DecoderResource struct {
	Address     string     `json:"address"`
	State       string     `json:"state"`
	LastRestart *time.Time `json:"lastRestart"`
	LastReinit  *time.Time `json:"lastReinit"`
	Channels    []string   `json:"channels"`
}

type DecoderListResource struct {
	Members []*DecoderResource `json:"members"`
}

func NewDecoder(m *model.Decoder) *DecoderResource {
	channels := make([]string, len(m.Channels))
	copy(channels, m.Channels)

	return &DecoderResource{
		Address:     m.Address,
		State:       m.State,
		LastRestart: m.LastRestart,
		LastReinit:  m.LastReinit,
		Channels:    channels,
	}
}

func NewDecoderList(m []model.Decoder) (out *DecoderListResource) {
	out = &DecoderListResource{
		Members: make([]*DecoderResource, 0, len(m)),
	}

	for i := range m {
		out.Members = append(out.Members, NewDecoder(&m[i]))
	}

	return // out
}

// DecoderStateResource is the live vendor view of a decoder.
type DecoderStateResource struct {
	Address     string     `json:"address"`
	State       string     `json:"state"`
	LastRestart *time.Time `json:"lastRestart"`
	LastReinit  *time.Time `json:"lastReinit"`
}

type DecoderStateListResource struct {
	Members []*DecoderStateResource `json:"members"`
}

func NewDecoderState(m *model.DecoderSnapshot) *DecoderStateResource {
	return &DecoderStateResource{
		Address:     m.Address,
		State:       m.State,
		LastRestart: m.LastRestart,
		LastReinit:  m.LastReinit,
	}
}

func NewDecoderStateList(m []model.DecoderSnapshot) (out *DecoderStateListResource) {
	out = &DecoderStateListResource{
		Members: make([]*DecoderStateResource, 0, len(m)),
	}

	for i := range m {
		out.Members = append(out.Members, NewDecoderState(&m[i]))
	}

	return // out
}

// AssignmentResource is the body of an assign request.
type AssignmentResource struct {
	Address string `json:"address"`
}

func ValidateAssignment(r *AssignmentResource) (string, error) {
	address := strings.TrimSpace(r.Address)
	if address == "" {
		return "", fmt.Errorf("address is required")
	}
	return address, nil
}

type AssignmentResultResource struct {
	Address  string `json:"address"`
	Assigned bool   `json:"assigned"`
}

type UnassignmentResultResource struct {
	Address    string `json:"address"`
	Unassigned bool   `json:"unassigned"`
}

// ChannelResource is the body of an add channel request.
type ChannelResource struct {
	Name string `json:"name"`
}

func ValidateChannel(r *ChannelResource) (string, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return name, nil
}

type ChannelResultResource struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Changed bool   `json:"changed"`
}

type ResetResultResource struct {
	Address   string `json:"address"`
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
}

func NewResetResult(address string, succeeded bool, message string) *ResetResultResource {
	return &ResetResultResource{
		Address:   address,
		Succeeded: succeeded,
		Message:   message,
	}
}
