package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// Service defines the business logic interface for reviews. Derived
// statistics (average rating, count) are computed at event read time, not
// stored here.
type Service interface {
	Submit(ctx context.Context, userID, eventID uuid.UUID, req SubmitReviewRequest) (*Review, error)
	ListForEvent(ctx context.Context, eventID uuid.UUID) ([]ReviewWithAuthor, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new review service instance
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Submit(ctx context.Context, userID, eventID uuid.UUID, req SubmitReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	row := &Review{
		UserID:  userID,
		EventID: eventID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, apperr.Internal(err, "failed to submit review")
	}

	s.logger.Debug("review submitted",
		zap.String("user_id", userID.String()),
		zap.String("event_id", eventID.String()),
		zap.Int("rating", req.Rating))
	return row, nil
}

func (s *service) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]ReviewWithAuthor, error) {
	reviews, err := s.repo.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list reviews")
	}
	return reviews, nil
}
