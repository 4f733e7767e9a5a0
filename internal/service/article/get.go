package article

import (
	"context"
)

// Get returns one enriched article by slug. Works for anonymous viewers.
func (s *Service) Get(ctx context.Context, slug string) (*EnrichedArticle, error) {
	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.enrichOne(ctx, *a, viewerFromCtx(ctx))
}
