package article

import (
	"context"
	"fmt"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Favorite marks the article as favorited by the viewer and returns the
// refreshed view. Favoriting an already-favorited article is a no-op
// success; the count never double-increments.
func (s *Service) Favorite(ctx context.Context, slug string) (*EnrichedArticle, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	id, err := s.articles.IDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	inserted, err := s.favorites.Upsert(ctx, viewerID, id)
	if err != nil {
		return nil, fmt.Errorf("favorite article: %w", err)
	}
	if inserted {
		s.log.InfoContext(ctx, "article favorited", "slug", slug, "user_id", viewerID)
	}

	return s.reload(ctx, id, &viewerID)
}

// Unfavorite removes the viewer's favorite edge and returns the refreshed
// view. Unfavoriting a non-favorited article is a no-op success.
func (s *Service) Unfavorite(ctx context.Context, slug string) (*EnrichedArticle, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	id, err := s.articles.IDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	removed, err := s.favorites.Delete(ctx, viewerID, id)
	if err != nil {
		return nil, fmt.Errorf("unfavorite article: %w", err)
	}
	if removed {
		s.log.InfoContext(ctx, "article unfavorited", "slug", slug, "user_id", viewerID)
	}

	return s.reload(ctx, id, &viewerID)
}
