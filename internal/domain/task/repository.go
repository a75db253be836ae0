package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter scopes a board listing: a specific event's tasks, or the
// board-wide tasks with no event.
type Filter struct {
	EventID    *uuid.UUID
	GlobalOnly bool
}

// Repository defines the interface for task data access.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context, f Filter) ([]Task, error)
	// MaxPosition returns the highest position in the task's column scope,
	// 0 when the scope is empty.
	MaxPosition(ctx context.Context, eventID *uuid.UUID, status Status) (float64, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-backed task repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	var t Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) List(ctx context.Context, f Filter) ([]Task, error) {
	q := r.db.WithContext(ctx).Model(&Task{})
	switch {
	case f.EventID != nil:
		q = q.Where("event_id = ?", *f.EventID)
	case f.GlobalOnly:
		q = q.Where("event_id IS NULL")
	}

	var tasks []Task
	if err := q.Order("status ASC, position ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormRepository) MaxPosition(ctx context.Context, eventID *uuid.UUID, status Status) (float64, error) {
	q := r.db.WithContext(ctx).Model(&Task{}).Where("status = ?", status)
	if eventID != nil {
		q = q.Where("event_id = ?", *eventID)
	} else {
		q = q.Where("event_id IS NULL")
	}

	var max *float64
	if err := q.Select("MAX(position)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *gormRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
