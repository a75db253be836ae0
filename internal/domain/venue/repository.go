package venue

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the data access methods for venues
type Repository interface {
	Create(ctx context.Context, v *Venue) error
	GetByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	List(ctx context.Context) ([]Venue, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	// CountUpcomingBookings reports how many upcoming venue-bound events
	// still reference the venue.
	CountUpcomingBookings(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new venue repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, v *Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var v Venue
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) List(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).Order("name ASC").Find(&venues).Error
	return venues, err
}

func (r *repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Venue{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&Venue{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repository) CountUpcomingBookings(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("events").
		Where("venue_id = ? AND location_type = 'venue' AND status = 'upcoming'", id).
		Count(&count).Error
	return count, err
}
