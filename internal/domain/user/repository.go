package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned when registration hits the email
// uniqueness constraint.
var ErrDuplicateEmail = errors.New("email already exists")

// pgUniqueViolation is the SQLSTATE code for a unique constraint hit.
const pgUniqueViolation = "23505"

// translateDuplicate maps the pgx unique-violation error to the
// duplicate-email sentinel. Other errors pass through untouched.
func translateDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// Repository defines the data access methods for users
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) UpdateRole(ctx context.Context, id uuid.UUID, role Role) error {
	result := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the account. Events the user organized, plus their
// RSVPs and reviews, are removed in the same transaction so no child
// rows outlive the parent.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedEvents := tx.Table("events").Select("id").Where("organizer_id = ?", id)
		if err := tx.Exec("DELETE FROM rsvps WHERE user_id = ? OR event_id IN (?)", id, ownedEvents).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM reviews WHERE user_id = ? OR event_id IN (?)", id, ownedEvents).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM events WHERE organizer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&User{}, "id = ?", id).Error
	})
}
