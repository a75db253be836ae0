package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for review data access.
type Repository interface {
	Upsert(ctx context.Context, r *Review) error
	ListForEvent(ctx context.Context, eventID uuid.UUID) ([]ReviewWithAuthor, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-backed review repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Upsert inserts the review or replaces the rating and comment of the
// caller's previous review of the same event, refreshing its timestamp.
func (r *gormRepository) Upsert(ctx context.Context, row *Review) error {
	row.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		}).Create(row).Error
		if err != nil {
			return err
		}
		// On a conflicting insert the in-memory row keeps its freshly
		// generated ID and created_at; reload so the caller gets the
		// stored review.
		return tx.Where("user_id = ? AND event_id = ?", row.UserID, row.EventID).Take(row).Error
	})
}

// ListForEvent returns an event's reviews joined with the reviewer's
// name, most recently written or refreshed first.
func (r *gormRepository) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]ReviewWithAuthor, error) {
	var reviews []ReviewWithAuthor
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.event_id = ?", eventID).
		Order("reviews.updated_at DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
