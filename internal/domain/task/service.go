package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/domain/user"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
)

// Service defines the business logic interface for the planning board.
// Every operation is restricted to organizers and admins.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole user.Role, req CreateTaskRequest) (*Task, error)
	List(ctx context.Context, actorRole user.Role, f Filter) ([]Task, error)
	Update(ctx context.Context, actorRole user.Role, id uuid.UUID, req UpdateTaskRequest) (*Task, error)
	Delete(ctx context.Context, actorRole user.Role, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new task service instance
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, actorRole user.Role, req CreateTaskRequest) (*Task, error) {
	if !actorRole.CanManagePlanning() {
		return nil, apperr.PermissionDenied("organizer or admin role required")
	}

	status := StatusTodo
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperr.Validation("invalid task status %q", *req.Status)
		}
		status = *req.Status
	}
	priority := PriorityMedium
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return nil, apperr.Validation("invalid task priority %q", *req.Priority)
		}
		priority = *req.Priority
	}

	// New cards append to the bottom of their column.
	max, err := s.repo.MaxPosition(ctx, req.EventID, status)
	if err != nil {
		return nil, apperr.Internal(err, "failed to compute task position")
	}

	t := &Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Position:    max + positionGap,
		EventID:     req.EventID,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		CreatedBy:   actorID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperr.Internal(err, "failed to create task")
	}

	s.logger.Debug("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("status", string(t.Status)))
	return t, nil
}

func (s *service) List(ctx context.Context, actorRole user.Role, f Filter) ([]Task, error) {
	if !actorRole.CanManagePlanning() {
		return nil, apperr.PermissionDenied("organizer or admin role required")
	}
	tasks, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err, "failed to list tasks")
	}
	return tasks, nil
}

func (s *service) Update(ctx context.Context, actorRole user.Role, id uuid.UUID, req UpdateTaskRequest) (*Task, error) {
	if !actorRole.CanManagePlanning() {
		return nil, apperr.PermissionDenied("organizer or admin role required")
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, apperr.Validation("invalid task status %q", *req.Status)
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		return nil, apperr.Validation("invalid task priority %q", *req.Priority)
	}

	fields := req.Fields()
	if len(fields) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task not found")
		}
		return nil, apperr.Internal(err, "failed to update task")
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err, "failed to reload task")
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, actorRole user.Role, id uuid.UUID) error {
	if !actorRole.CanManagePlanning() {
		return apperr.PermissionDenied("organizer or admin role required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("task not found")
		}
		return apperr.Internal(err, "failed to delete task")
	}
	return nil
}
