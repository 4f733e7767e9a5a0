// Package profile implements profile reads and the follow/unfollow
// coordinators.
package profile

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

type userRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type followRepo interface {
	Upsert(ctx context.Context, followerID, followingID uuid.UUID) error
	Delete(ctx context.Context, followerID, followingID uuid.UUID) error
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
}

// Service implements the profile business logic.
type Service struct {
	log     *slog.Logger
	users   userRepo
	follows followRepo
}

// NewService creates a new Profile service.
func NewService(logger *slog.Logger, users userRepo, follows followRepo) *Service {
	return &Service{
		log:     logger.With("service", "profile"),
		users:   users,
		follows: follows,
	}
}
