package rsvp

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the participant's declared intent.
type Status string

const (
	StatusGoing    Status = "going"
	StatusMaybe    Status = "maybe"
	StatusCanceled Status = "canceled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusGoing, StatusMaybe, StatusCanceled:
		return true
	}
	return false
}

// RSVP is one user's standing reply to one event. The composite unique
// index makes the set-your-RSVP operation an upsert.
type RSVP struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_rsvp_user_event"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_rsvp_user_event;index:idx_rsvp_event"`
	Status    Status    `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the RSVP model
func (RSVP) TableName() string {
	return "rsvps"
}

// BeforeCreate hook for UUID generation
func (r *RSVP) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SetRSVPRequest carries the caller's intent. A nil status clears any
// existing reply.
type SetRSVPRequest struct {
	Status *Status `json:"status,omitempty"`
}

// Attendee is a row of the organizer-facing attendee listing.
type Attendee struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Status    Status    `json:"status"`
}
