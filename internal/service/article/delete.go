package article

import (
	"context"
	"fmt"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Delete removes the viewer's own article; favorites, tag links and comments
// go with it. Only the author may delete.
func (s *Service) Delete(ctx context.Context, slug string) error {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if a.AuthorID != viewerID {
		return fmt.Errorf("article %s: %w", slug, domain.ErrForbidden)
	}

	if err := s.articles.Delete(ctx, a.ID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "article deleted", "slug", slug, "author_id", viewerID)
	return nil
}
