package rsvp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/event"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// EventSource is the slice of the event repository the ledger needs for
// permission checks on the attendee listing.
type EventSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error)
}

// Service defines the business logic interface for the participation
// ledger.
type Service interface {
	// Set records, overwrites, or clears the caller's reply to an event
	// and returns the effective status, "cleared" when the reply was
	// removed. It is idempotent: repeating the same request changes
	// nothing.
	Set(ctx context.Context, userID, eventID uuid.UUID, req SetRSVPRequest) (string, error)
	// ListAttendees returns going and maybe replies with names. Only the
	// event's creator and organizer/admin roles may call it.
	ListAttendees(ctx context.Context, actor event.Actor, eventID uuid.UUID) ([]Attendee, error)
}

type service struct {
	repo   Repository
	events EventSource
	logger *zap.Logger
}

// NewService creates a new RSVP service instance
func NewService(repo Repository, events EventSource, logger *zap.Logger) Service {
	return &service{repo: repo, events: events, logger: logger}
}

// StatusCleared is the effective status reported when a reply is removed.
const StatusCleared = "cleared"

func (s *service) Set(ctx context.Context, userID, eventID uuid.UUID, req SetRSVPRequest) (string, error) {
	if req.Status == nil {
		if err := s.repo.Clear(ctx, userID, eventID); err != nil {
			return "", apperr.Internal(err, "failed to clear rsvp")
		}
		return StatusCleared, nil
	}
	if !req.Status.IsValid() {
		return "", apperr.Validation("invalid rsvp status %q", *req.Status)
	}

	row := &RSVP{UserID: userID, EventID: eventID, Status: *req.Status}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return "", apperr.Internal(err, "failed to set rsvp")
	}

	s.logger.Debug("rsvp set",
		zap.String("user_id", userID.String()),
		zap.String("event_id", eventID.String()),
		zap.String("status", string(*req.Status)))
	return string(*req.Status), nil
}

func (s *service) ListAttendees(ctx context.Context, actor event.Actor, eventID uuid.UUID) ([]Attendee, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		return nil, apperr.Internal(err, "failed to load event")
	}
	if !actor.CanManage(e) {
		return nil, apperr.PermissionDenied("not allowed to view attendees for this event")
	}

	attendees, err := s.repo.ListAttendees(ctx, eventID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list attendees")
	}
	return attendees, nil
}
