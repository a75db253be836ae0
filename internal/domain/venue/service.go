package venue

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// Service defines the business logic interface for venues. Listing is
// public; mutations are admin only.
type Service interface {
	List(ctx context.Context) ([]Venue, error)
	Create(ctx context.Context, actor user.Role, req CreateVenueRequest) (*Venue, error)
	Update(ctx context.Context, actor user.Role, id uuid.UUID, req UpdateVenueRequest) (*Venue, error)
	Delete(ctx context.Context, actor user.Role, id uuid.UUID) error
	// Exists is the lookup the event conflict path uses.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new venue service instance
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) List(ctx context.Context) ([]Venue, error) {
	venues, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list venues")
	}
	return venues, nil
}

func (s *service) Create(ctx context.Context, actor user.Role, req CreateVenueRequest) (*Venue, error) {
	if !actor.IsAdmin() {
		return nil, apperr.PermissionDenied("admin role required")
	}

	v := &Venue{
		Name:           req.Name,
		Building:       req.Building,
		RoomNumber:     req.RoomNumber,
		GoogleMapsLink: req.GoogleMapsLink,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, apperr.Internal(err, "failed to create venue")
	}

	s.logger.Info("venue created",
		zap.String("venue_id", v.ID.String()),
		zap.String("name", v.Name))
	return v, nil
}

func (s *service) Update(ctx context.Context, actor user.Role, id uuid.UUID, req UpdateVenueRequest) (*Venue, error) {
	if !actor.IsAdmin() {
		return nil, apperr.PermissionDenied("admin role required")
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return nil, apperr.Validation("no valid fields to update")
	}

	affected, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, apperr.Internal(err, "failed to update venue")
	}
	if affected == 0 {
		return nil, apperr.NotFound("venue not found")
	}

	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "failed to load venue")
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, actor user.Role, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperr.PermissionDenied("admin role required")
	}

	// Deleting a venue out from under an upcoming booking would break
	// the event location invariant, so refuse instead.
	bookings, err := s.repo.CountUpcomingBookings(ctx, id)
	if err != nil {
		return apperr.Internal(err, "failed to check venue bookings")
	}
	if bookings > 0 {
		return apperr.Conflict("venue has %d upcoming bookings", bookings)
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Internal(err, "failed to delete venue")
	}
	if affected == 0 {
		return apperr.NotFound("venue not found")
	}

	s.logger.Info("venue deleted", zap.String("venue_id", id.String()))
	return nil
}

func (s *service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
