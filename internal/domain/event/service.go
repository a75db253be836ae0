package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// VenueDirectory is the slice of the venue service the lifecycle engine
// needs: checking that a referenced venue exists.
type VenueDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service defines the business logic interface for the event lifecycle.
// Reads take an optional viewer so anonymous and authenticated requests
// share one path; mutations take the full actor for permission checks.
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateEventRequest) (*Event, error)
	List(ctx context.Context, viewer *uuid.UUID) ([]EventWithStats, error)
	Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*EventWithStats, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, patch Patch) (*Event, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type service struct {
	repo   Repository
	venues VenueDirectory
	logger *zap.Logger
}

// NewService creates a new event service instance
func NewService(repo Repository, venues VenueDirectory, logger *zap.Logger) Service {
	return &service{repo: repo, venues: venues, logger: logger}
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateEventRequest) (*Event, error) {
	mode, venueID, custom, err := resolveLocation(req.LocationType, req.VenueID, req.CustomLocationAddress, nil)
	if err != nil {
		return nil, err
	}

	visibility := VisibilityPublic
	if req.Visibility != nil {
		visibility = *req.Visibility
	}
	if visibility == VisibilityPublic && !actor.Role.CanPublishEvents() {
		return nil, apperr.PermissionDenied("only organizers and admins may create public events")
	}

	e := &Event{
		Title:                 req.Title,
		Description:           req.Description,
		StartTime:             req.StartTime.UTC(),
		EndTime:               req.EndTime.UTC(),
		LocationType:          mode,
		VenueID:               venueID,
		CustomLocationAddress: custom,
		GoogleMapsLink:        req.GoogleMapsLink,
		Status:                StatusUpcoming,
		Visibility:            visibility,
		OrganizerID:           actor.ID,
		CreatedBy:             actor.ID,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkVenue(ctx, e); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, ErrSchedulingConflict) {
			return nil, apperr.Conflict("venue is already booked for an overlapping time window")
		}
		return nil, apperr.Internal(err, "failed to create event")
	}

	s.logger.Info("event created",
		zap.String("event_id", e.ID.String()),
		zap.String("created_by", actor.ID.String()),
		zap.String("visibility", string(e.Visibility)))
	return e, nil
}

func (s *service) List(ctx context.Context, viewer *uuid.UUID) ([]EventWithStats, error) {
	events, err := s.repo.ListWithStats(ctx, viewer)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list events")
	}
	return events, nil
}

// Get distinguishes an absent event (not found) from an existing event the
// viewer may not see (permission denied).
func (s *service) Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*EventWithStats, error) {
	e, err := s.repo.GetWithStats(ctx, id, viewer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Internal(err, "failed to load event")
	}
	if !e.VisibleTo(viewer) {
		return nil, apperr.PermissionDenied("event is private")
	}
	return e, nil
}

func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, patch Patch) (*Event, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Internal(err, "failed to load event")
	}
	if !actor.CanManage(current) {
		return nil, apperr.PermissionDenied("not allowed to modify this event")
	}
	if patch.Visibility != nil && *patch.Visibility == VisibilityPublic &&
		current.Visibility != VisibilityPublic && !actor.Role.CanPublishEvents() {
		return nil, apperr.PermissionDenied("only organizers and admins may publish events")
	}

	merged, fields, err := patch.Apply(current)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return current, nil
	}
	if locationChanged(fields) {
		if err := s.checkVenue(ctx, merged); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateFields(ctx, id, merged, fields); err != nil {
		switch {
		case errors.Is(err, ErrSchedulingConflict):
			return nil, apperr.Conflict("venue is already booked for an overlapping time window")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, apperr.NotFound("event not found")
		default:
			return nil, apperr.Internal(err, "failed to update event")
		}
	}

	s.logger.Info("event updated",
		zap.String("event_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.Int("fields", len(fields)))
	return merged, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("event not found")
		}
		return apperr.Internal(err, "failed to load event")
	}
	if !actor.CanManage(current) {
		return apperr.PermissionDenied("not allowed to delete this event")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("event not found")
		}
		return apperr.Internal(err, "failed to delete event")
	}

	s.logger.Info("event deleted",
		zap.String("event_id", id.String()),
		zap.String("actor_id", actor.ID.String()))
	return nil
}

// checkVenue verifies the referenced venue row exists for venue-bound
// events. Time-window conflicts are the repository's concern.
func (s *service) checkVenue(ctx context.Context, e *Event) error {
	if e.LocationType != LocationVenue || e.VenueID == nil {
		return nil
	}
	ok, err := s.venues.Exists(ctx, *e.VenueID)
	if err != nil {
		return apperr.Internal(err, "failed to check venue")
	}
	if !ok {
		return apperr.Validation("venue %s does not exist", e.VenueID)
	}
	return nil
}

func locationChanged(fields map[string]interface{}) bool {
	_, ok := fields["venue_id"]
	if !ok {
		_, ok = fields["location_type"]
	}
	return ok
}

// VisibleTo reports whether the viewer may see the event: public events
// are visible to everyone, private events only to the organizer and the
// creator.
func (e *Event) VisibleTo(viewer *uuid.UUID) bool {
	if e.Visibility == VisibilityPublic {
		return true
	}
	if viewer == nil {
		return false
	}
	return e.OrganizerID == *viewer || e.CreatedBy == *viewer
}
