package article

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pgarticle "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// List returns the global article page matching the filters, newest first.
// Works for anonymous viewers; a viewer in the context adds the favorited
// and following overlays.
//
// A filter naming an unknown username matches nothing and short-circuits to
// an empty page without touching the articles table.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	filter := pgarticle.Filter{
		Tag:    input.Tag,
		Limit:  clampLimit(input.Limit, s.cfg.MaxPageSize, s.cfg.DefaultPageSize),
		Offset: clampOffset(input.Offset),
	}

	usernames := make([]string, 0, 2)
	if input.Author != nil {
		usernames = append(usernames, *input.Author)
	}
	if input.Favorited != nil {
		usernames = append(usernames, *input.Favorited)
	}
	if len(usernames) > 0 {
		users, err := s.users.GetByUsernames(ctx, usernames)
		if err != nil {
			return nil, fmt.Errorf("resolve filter usernames: %w", err)
		}
		byName := make(map[string]uuid.UUID, len(users))
		for _, u := range users {
			byName[u.Username] = u.ID
		}

		if input.Author != nil {
			id, ok := byName[*input.Author]
			if !ok {
				return &ListResult{Articles: []EnrichedArticle{}}, nil
			}
			filter.AuthorID = &id
		}
		if input.Favorited != nil {
			id, ok := byName[*input.Favorited]
			if !ok {
				return &ListResult{Articles: []EnrichedArticle{}}, nil
			}
			filter.FavoritedBy = &id
		}
	}

	return s.listPage(ctx, filter)
}

// listPage runs the shared id-set/hydrate/enrich pipeline for a filter.
func (s *Service) listPage(ctx context.Context, filter pgarticle.Filter) (*ListResult, error) {
	ids, err := s.articles.FindIDs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find article ids: %w", err)
	}

	articles, err := s.articles.HydrateByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate articles: %w", err)
	}

	enriched, err := s.enrich(ctx, articles, viewerFromCtx(ctx))
	if err != nil {
		return nil, err
	}

	return &ListResult{Articles: enriched, Count: len(enriched)}, nil
}

// viewerFromCtx returns the authenticated viewer's id, or nil for anonymous
// requests.
func viewerFromCtx(ctx context.Context) *uuid.UUID {
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		return &id
	}
	return nil
}
