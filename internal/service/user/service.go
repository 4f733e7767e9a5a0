// Package user implements account operations: registration, login and
// profile self-updates.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/config"
	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// userRepo defines the user repository interface needed by the user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
}

// jwtManager defines the token issuance interface needed by the user service.
type jwtManager interface {
	GenerateToken(userID uuid.UUID) (string, error)
}

// Service implements the user business logic.
type Service struct {
	log   *slog.Logger
	users userRepo
	jwt   jwtManager
	cfg   config.AuthConfig
}

// NewService creates a new User service.
func NewService(logger *slog.Logger, users userRepo, jwt jwtManager, cfg config.AuthConfig) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
		jwt:   jwt,
		cfg:   cfg,
	}
}
