package article

import (
	"context"
	"fmt"

	pgarticle "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Feed returns the page of articles written by authors the viewer follows,
// newest first. Requires authentication; a viewer following nobody gets an
// empty page without an articles query.
func (s *Service) Feed(ctx context.Context, input FeedInput) (*ListResult, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	authorIDs, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("resolve followed authors: %w", err)
	}
	if len(authorIDs) == 0 {
		return &ListResult{Articles: []EnrichedArticle{}}, nil
	}

	return s.listPage(ctx, pgarticle.Filter{
		AuthorIDs: authorIDs,
		Limit:     clampLimit(input.Limit, s.cfg.MaxPageSize, s.cfg.DefaultPageSize),
		Offset:    clampOffset(input.Offset),
	})
}
