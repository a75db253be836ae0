package rsvp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for RSVP data access.
type Repository interface {
	Upsert(ctx context.Context, r *RSVP) error
	Clear(ctx context.Context, userID, eventID uuid.UUID) error
	ListAttendees(ctx context.Context, eventID uuid.UUID) ([]Attendee, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-backed RSVP repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Upsert inserts the reply or, when the (user, event) pair already has
// one, overwrites its status in place.
func (r *gormRepository) Upsert(ctx context.Context, row *RSVP) error {
	row.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(row).Error
}

// Clear removes the user's reply. Clearing an absent reply is a no-op.
func (r *gormRepository) Clear(ctx context.Context, userID, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&RSVP{}).Error
}

// ListAttendees returns the going and maybe replies for an event joined
// with the replier's name, alphabetical by name.
func (r *gormRepository) ListAttendees(ctx context.Context, eventID uuid.UUID) ([]Attendee, error) {
	var attendees []Attendee
	err := r.db.WithContext(ctx).
		Table("rsvps").
		Select("rsvps.user_id, users.first_name, users.last_name, rsvps.status").
		Joins("JOIN users ON users.id = rsvps.user_id").
		Where("rsvps.event_id = ? AND rsvps.status IN ?", eventID, []Status{StatusGoing, StatusMaybe}).
		Order("users.last_name ASC, users.first_name ASC").
		Scan(&attendees).Error
	if err != nil {
		return nil, err
	}
	return attendees, nil
}
