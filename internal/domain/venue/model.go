package venue

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Venue represents an on-campus location events can book.
type Venue struct {
	ID             uuid.UUID `json:"venue_id" gorm:"type:uuid;primary_key"`
	Name           string    `json:"name" gorm:"type:varchar(200);not null;index:idx_venue_name"`
	Building       string    `json:"building" gorm:"type:varchar(200);not null"`
	RoomNumber     string    `json:"room_number,omitempty" gorm:"type:varchar(50)"`
	GoogleMapsLink string    `json:"google_maps_link,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Venue model
func (Venue) TableName() string {
	return "venues"
}

// BeforeCreate hook for UUID generation
func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// CreateVenueRequest represents the request body for creating a venue
type CreateVenueRequest struct {
	Name           string `json:"name" binding:"required"`
	Building       string `json:"building" binding:"required"`
	RoomNumber     string `json:"room_number"`
	GoogleMapsLink string `json:"google_maps_link"`
}

// UpdateVenueRequest carries a typed partial update.
type UpdateVenueRequest struct {
	Name           *string `json:"name,omitempty"`
	Building       *string `json:"building,omitempty"`
	RoomNumber     *string `json:"room_number,omitempty"`
	GoogleMapsLink *string `json:"google_maps_link,omitempty"`
}

// Fields returns the column assignments for the supplied fields only.
func (r UpdateVenueRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Building != nil {
		fields["building"] = *r.Building
	}
	if r.RoomNumber != nil {
		fields["room_number"] = *r.RoomNumber
	}
	if r.GoogleMapsLink != nil {
		fields["google_maps_link"] = *r.GoogleMapsLink
	}
	return fields
}
