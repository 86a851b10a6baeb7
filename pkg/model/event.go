package model

import "time"

// Event is an audit record of an operator action.
type Event struct {
	ID         int32
	SourceType string
	SourceID   string
	Topic      string
	Timestamp  time.Time
	Details    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
