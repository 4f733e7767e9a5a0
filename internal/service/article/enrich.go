package article

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// enrich resolves the viewer-dependent fields for a page of articles in three
// batched queries (favorite counts, viewer favorites, viewer follows) running
// concurrently. Query count stays constant regardless of page size.
//
// An anonymous page skips the queries entirely: favorited and following are
// false and favoritesCount is zero.
func (s *Service) enrich(ctx context.Context, articles []domain.Article, viewerID *uuid.UUID) ([]EnrichedArticle, error) {
	enriched := make([]EnrichedArticle, len(articles))
	for i, a := range articles {
		enriched[i] = EnrichedArticle{Article: a}
	}
	if len(articles) == 0 || viewerID == nil {
		return enriched, nil
	}

	articleIDs := make([]uuid.UUID, len(articles))
	authorIDSet := make(map[uuid.UUID]bool, len(articles))
	authorIDs := make([]uuid.UUID, 0, len(articles))
	for i, a := range articles {
		articleIDs[i] = a.ID
		if !authorIDSet[a.AuthorID] {
			authorIDSet[a.AuthorID] = true
			authorIDs = append(authorIDs, a.AuthorID)
		}
	}

	var (
		counts       map[uuid.UUID]int
		favoritedIDs []uuid.UUID
		followedIDs  []uuid.UUID
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.favorites.CountByArticleIDs(gctx, articleIDs)
		return err
	})
	g.Go(func() error {
		var err error
		favoritedIDs, err = s.favorites.FavoritedIDs(gctx, *viewerID, articleIDs)
		return err
	})
	g.Go(func() error {
		var err error
		followedIDs, err = s.follows.FollowedIDs(gctx, *viewerID, authorIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enrich articles: %w", err)
	}

	favorited := make(map[uuid.UUID]bool, len(favoritedIDs))
	for _, id := range favoritedIDs {
		favorited[id] = true
	}
	followed := make(map[uuid.UUID]bool, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = true
	}

	for i := range enriched {
		a := &enriched[i]
		a.Favorited = favorited[a.ID]
		a.FavoritesCount = counts[a.ID]
		// A viewer never "follows" themselves.
		a.AuthorFollowing = followed[a.AuthorID] && a.AuthorID != *viewerID
	}
	return enriched, nil
}

// enrichOne is the single-article variant of enrich.
func (s *Service) enrichOne(ctx context.Context, a domain.Article, viewerID *uuid.UUID) (*EnrichedArticle, error) {
	enriched, err := s.enrich(ctx, []domain.Article{a}, viewerID)
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}
