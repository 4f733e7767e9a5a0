// Package comment implements article comment reads and writes. Comment
// listings carry the viewer-relative following flag for each comment author,
// resolved in one batched query.
package comment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

type commentRepo interface {
	ListByArticleID(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type articleRepo interface {
	IDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
}

type followRepo interface {
	FollowedIDs(ctx context.Context, followerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
}

// Service implements the comment business logic.
type Service struct {
	log      *slog.Logger
	comments commentRepo
	articles articleRepo
	follows  followRepo
}

// NewService creates a new Comment service.
func NewService(logger *slog.Logger, comments commentRepo, articles articleRepo, follows followRepo) *Service {
	return &Service{
		log:      logger.With("service", "comment"),
		comments: comments,
		articles: articles,
		follows:  follows,
	}
}

// EnrichedComment is a comment with the viewer-relative following flag for
// its author resolved.
type EnrichedComment struct {
	domain.Comment

	AuthorFollowing bool
}
