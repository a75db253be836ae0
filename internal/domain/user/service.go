package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/apperr"
	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/security/auth"
)

// Service defines the business logic interface for accounts
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, actor Role, req SetRoleRequest) error
}

type service struct {
	repo   Repository
	jwt    *auth.JWTService
	logger *zap.Logger
}

// NewService creates a new account service instance
func NewService(repo Repository, jwt *auth.JWTService, logger *zap.Logger) Service {
	return &service{repo: repo, jwt: jwt, logger: logger}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err, "registration failed")
	}

	u := &User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperr.Validation("email already exists")
		}
		return nil, apperr.Internal(err, "registration failed")
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperr.Internal(err, "registration failed")
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)))

	return &AuthResponse{UserID: u.ID, Role: u.Role, Token: token}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message for unknown email and bad password.
			return nil, apperr.Unauthenticated("invalid credentials")
		}
		return nil, apperr.Internal(err, "login failed")
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	token, err := s.jwt.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperr.Internal(err, "login failed")
	}

	return &AuthResponse{UserID: u.ID, Role: u.Role, Token: token}, nil
}

func (s *service) GetProfile(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err, "could not retrieve user")
	}
	return u, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*User, error) {
	fields := req.Fields()
	if len(fields) == 0 {
		return nil, apperr.Validation("no valid fields to update")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, apperr.Internal(err, "failed to update profile")
	}
	return s.GetProfile(ctx, id)
}

func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err, "failed to delete account")
	}
	s.logger.Info("account deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *service) SetRole(ctx context.Context, actor Role, req SetRoleRequest) error {
	if !actor.IsAdmin() {
		return apperr.PermissionDenied("admin role required")
	}
	if !req.Role.IsValid() {
		return apperr.Validation("invalid role %q", req.Role)
	}

	if err := s.repo.UpdateRole(ctx, req.UserID, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err, "failed to update role")
	}

	s.logger.Info("role changed",
		zap.String("user_id", req.UserID.String()),
		zap.String("role", string(req.Role)))
	return nil
}
