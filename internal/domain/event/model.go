package event

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

const maxTitleLength = 200

// LocationType selects between a directory venue and a free-text address.
type LocationType string

const (
	LocationVenue  LocationType = "venue"
	LocationCustom LocationType = "custom"
)

func (t LocationType) IsValid() bool {
	switch t {
	case LocationVenue, LocationCustom:
		return true
	}
	return false
}

// Status is the event lifecycle state. Only upcoming events block venue
// bookings; there are no automatic transitions in the request path.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Visibility controls whether non-owners may see an event.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate:
		return true
	}
	return false
}

// Actor is the resolved identity a lifecycle operation runs as: the
// subject id plus its role claim.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// CanManage reports whether the actor may update or delete the event:
// organizer/admin role, or being the recorded creator.
func (a Actor) CanManage(e *Event) bool {
	return a.Role.CanPublishEvents() || e.CreatedBy == a.ID
}

// Event is the central entity. Exactly one of VenueID and
// CustomLocationAddress is populated, matching LocationType.
type Event struct {
	ID                    uuid.UUID    `json:"event_id" gorm:"type:uuid;primary_key"`
	Title                 string       `json:"title" gorm:"type:varchar(200);not null"`
	Description           string       `json:"description,omitempty" gorm:"type:text"`
	StartTime             time.Time    `json:"start_time" gorm:"not null;index:idx_event_start"`
	EndTime               time.Time    `json:"end_time" gorm:"not null"`
	LocationType          LocationType `json:"location_type" gorm:"type:varchar(20);not null;default:'venue'"`
	VenueID               *uuid.UUID   `json:"venue_id,omitempty" gorm:"type:uuid;index:idx_event_venue"`
	CustomLocationAddress *string      `json:"custom_location_address,omitempty" gorm:"type:text"`
	GoogleMapsLink        string       `json:"google_maps_link,omitempty" gorm:"type:text"`
	Status                Status       `json:"status" gorm:"type:varchar(20);not null;default:'upcoming';index:idx_event_status"`
	Visibility            Visibility   `json:"visibility" gorm:"type:varchar(20);not null;default:'public'"`
	OrganizerID           uuid.UUID    `json:"organizer_id" gorm:"type:uuid;not null;index:idx_event_organizer"`
	CreatedBy             uuid.UUID    `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt             time.Time    `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt             time.Time    `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// BeforeCreate hook for UUID generation
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Validate checks the row-level invariants: title bounds, time order,
// enum membership, and the location XOR.
func (e *Event) Validate() error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return apperr.Validation("title is required")
	}
	if utf8.RuneCountInString(e.Title) > maxTitleLength {
		return apperr.Validation("title must be at most %d characters", maxTitleLength)
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return apperr.Validation("start_time and end_time are required")
	}
	if !e.StartTime.Before(e.EndTime) {
		return apperr.Validation("start_time must be before end_time")
	}
	if !e.LocationType.IsValid() {
		return apperr.Validation("invalid location_type %q", e.LocationType)
	}
	if !e.Status.IsValid() {
		return apperr.Validation("invalid status %q", e.Status)
	}
	if !e.Visibility.IsValid() {
		return apperr.Validation("invalid visibility %q", e.Visibility)
	}

	switch e.LocationType {
	case LocationVenue:
		if e.VenueID == nil || *e.VenueID == uuid.Nil {
			return apperr.Validation("venue_id is required for location_type 'venue'")
		}
		if e.CustomLocationAddress != nil {
			return apperr.Validation("custom_location_address must be empty for location_type 'venue'")
		}
	case LocationCustom:
		if e.CustomLocationAddress == nil || strings.TrimSpace(*e.CustomLocationAddress) == "" {
			return apperr.Validation("custom_location_address is required for location_type 'custom'")
		}
		if e.VenueID != nil {
			return apperr.Validation("venue_id must be empty for location_type 'custom'")
		}
	}
	return nil
}

// EventWithStats decorates an event row with the read-time aggregates:
// derived review statistics, the going-count, and the viewer's own RSVP.
type EventWithStats struct {
	Event
	AvgRating     *float64 `json:"avg_rating,omitempty"`
	ReviewCount   int64    `json:"review_count"`
	AttendeeCount int64    `json:"attendee_count"`
	MyRSVPStatus  *string  `json:"my_rsvp_status,omitempty"`
}

// CreateEventRequest represents the request body for creating an event.
// Times are ISO-8601; location_type may be omitted and inferred from
// whichever location field is supplied.
type CreateEventRequest struct {
	Title                 string        `json:"title" binding:"required"`
	Description           string        `json:"description"`
	StartTime             time.Time     `json:"start_time" binding:"required"`
	EndTime               time.Time     `json:"end_time" binding:"required"`
	LocationType          *LocationType `json:"location_type,omitempty"`
	VenueID               *uuid.UUID    `json:"venue_id,omitempty"`
	CustomLocationAddress *string       `json:"custom_location_address,omitempty"`
	GoogleMapsLink        string        `json:"google_maps_link"`
	Visibility            *Visibility   `json:"visibility,omitempty"`
}
