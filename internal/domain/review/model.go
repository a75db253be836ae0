package review

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's rating of one event. The composite unique index
// makes submitting a review an upsert: a second submission replaces the
// first rather than stacking.
type Review struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_event"`
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_event;index:idx_review_event"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"review_text,omitempty" gorm:"column:comment;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// BeforeCreate hook for UUID generation
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SubmitReviewRequest represents the request body for submitting a review.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"review_text"`
}

// ReviewWithAuthor is a listing row joined with the reviewer's name.
type ReviewWithAuthor struct {
	Review
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
