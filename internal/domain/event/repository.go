package event

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrSchedulingConflict is returned when a venue booking would overlap an
// existing upcoming booking for the same venue.
var ErrSchedulingConflict = errors.New("venue already booked for an overlapping time window")

// pgExclusionViolation is raised by the btree_gist exclusion constraint on
// events when two transactions race past the in-transaction overlap count.
const pgExclusionViolation = "23P01"

// Repository defines the interface for event data access. Create and
// UpdateFields run their overlap check inside the write transaction so the
// check and the insert/update commit or fail together.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	GetWithStats(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*EventWithStats, error)
	ListWithStats(ctx context.Context, viewer *uuid.UUID) ([]EventWithStats, error)
	UpdateFields(ctx context.Context, id uuid.UUID, merged *Event, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	CompletePastEvents(ctx context.Context, now time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new GORM-backed event repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOverlap(tx, e, uuid.Nil); err != nil {
			return err
		}
		if err := tx.Create(e).Error; err != nil {
			return translateConflict(err)
		}
		return nil
	})
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

const statColumns = `events.*,
	(SELECT AVG(r.rating) FROM reviews r WHERE r.event_id = events.id) AS avg_rating,
	(SELECT COUNT(*) FROM reviews r WHERE r.event_id = events.id) AS review_count,
	(SELECT COUNT(*) FROM rsvps p WHERE p.event_id = events.id AND p.status = 'going') AS attendee_count`

const myRSVPColumn = `(SELECT p.status FROM rsvps p WHERE p.event_id = events.id AND p.user_id = ?) AS my_rsvp_status`

func (r *gormRepository) statsQuery(ctx context.Context, viewer *uuid.UUID) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&Event{})
	if viewer != nil {
		return q.Select(statColumns+",\n\t"+myRSVPColumn, *viewer)
	}
	return q.Select(statColumns)
}

func (r *gormRepository) GetWithStats(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*EventWithStats, error) {
	var e EventWithStats
	err := r.statsQuery(ctx, viewer).Where("events.id = ?", id).Take(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *gormRepository) ListWithStats(ctx context.Context, viewer *uuid.UUID) ([]EventWithStats, error) {
	q := r.statsQuery(ctx, viewer)
	if viewer != nil {
		q = q.Where("events.visibility = ? OR events.organizer_id = ? OR events.created_by = ?",
			VisibilityPublic, *viewer, *viewer)
	} else {
		q = q.Where("events.visibility = ?", VisibilityPublic)
	}

	var events []EventWithStats
	if err := q.Order("events.start_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *gormRepository) UpdateFields(ctx context.Context, id uuid.UUID, merged *Event, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOverlap(tx, merged, id); err != nil {
			return err
		}
		res := tx.Model(&Event{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return translateConflict(res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes the event and its dependent RSVPs and reviews in one
// transaction.
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM rsvps WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM reviews WHERE event_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Event{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CompletePastEvents flips upcoming events whose end time has passed to
// completed and returns how many rows changed.
func (r *gormRepository) CompletePastEvents(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Event{}).
		Where("status = ? AND end_time < ?", StatusUpcoming, now).
		Updates(map[string]interface{}{"status": StatusCompleted, "updated_at": now})
	return res.RowsAffected, res.Error
}

// checkOverlap counts upcoming venue bookings that intersect the candidate
// window, open-interval semantics: back-to-back bookings sharing a boundary
// instant do not collide. Only venue-bound upcoming events participate.
func checkOverlap(tx *gorm.DB, e *Event, excludeID uuid.UUID) error {
	if e.LocationType != LocationVenue || e.Status != StatusUpcoming || e.VenueID == nil {
		return nil
	}
	q := tx.Model(&Event{}).
		Where("venue_id = ? AND location_type = ? AND status = ?", *e.VenueID, LocationVenue, StatusUpcoming).
		Where("start_time < ? AND ? < end_time", e.EndTime, e.StartTime)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	var overlapping int64
	if err := q.Count(&overlapping).Error; err != nil {
		return err
	}
	if overlapping > 0 {
		return ErrSchedulingConflict
	}
	return nil
}

// translateConflict maps the exclusion-constraint violation raised on a
// lost race to the same sentinel the in-transaction count uses. GORM's
// postgres driver rides on pgx, so the violation surfaces as a
// *pgconn.PgError.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return ErrSchedulingConflict
	}
	return err
}
