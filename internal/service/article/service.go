// Package article implements the article business logic: listing, feed,
// CRUD and favorites. All list-shaped reads go through a single enrichment
// path that resolves viewer-dependent fields in batched queries.
package article

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	pgarticle "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	"github.com/heartmarshall/conduit-backend/internal/config"
	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type articleRepo interface {
	FindIDs(ctx context.Context, f pgarticle.Filter) ([]uuid.UUID, error)
	IDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
	HydrateByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Article, error)
	Create(ctx context.Context, a *domain.Article) error
	Update(ctx context.Context, a *domain.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo interface {
	GetByUsernames(ctx context.Context, usernames []string) ([]domain.User, error)
}

type favoriteRepo interface {
	Upsert(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	Delete(ctx context.Context, userID, articleID uuid.UUID) (bool, error)
	CountByArticleIDs(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID]int, error)
	FavoritedIDs(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) ([]uuid.UUID, error)
}

type followRepo interface {
	FollowedIDs(ctx context.Context, followerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error)
	FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
}

type tagRepo interface {
	EnsureNames(ctx context.Context, names []string) ([]uuid.UUID, error)
	ReplaceForArticle(ctx context.Context, articleID uuid.UUID, tagIDs []uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the article business logic.
type Service struct {
	log       *slog.Logger
	articles  articleRepo
	users     userRepo
	favorites favoriteRepo
	follows   followRepo
	tags      tagRepo
	tx        txManager
	cfg       config.APIConfig
}

// NewService creates a new Article service.
func NewService(
	logger *slog.Logger,
	articles articleRepo,
	users userRepo,
	favorites favoriteRepo,
	follows followRepo,
	tags tagRepo,
	tx txManager,
	cfg config.APIConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "article"),
		articles:  articles,
		users:     users,
		favorites: favorites,
		follows:   follows,
		tags:      tags,
		tx:        tx,
		cfg:       cfg,
	}
}
