package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// Update applies a partial update to the viewer's own article. A changed
// title re-mints the slug, so old links go stale. Only the author may
// update.
func (s *Service) Update(ctx context.Context, slug string, input UpdateInput) (*EnrichedArticle, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	a, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if a.AuthorID != viewerID {
		return nil, fmt.Errorf("article %s: %w", slug, domain.ErrForbidden)
	}

	titleChanged := input.Title != nil && *input.Title != a.Title
	if input.Title != nil {
		a.Title = *input.Title
	}
	if input.Description != nil {
		a.Description = *input.Description
	}
	if input.Body != nil {
		a.Body = *input.Body
	}

	run := func(ctx context.Context) error {
		return s.articles.Update(ctx, a)
	}

	if !titleChanged {
		err = s.tx.RunInTx(ctx, run)
	} else {
		// Same rule as on create: the aborted transaction cannot be
		// reused after a unique violation, so each re-mint runs in a
		// fresh one.
		for range slugRetries {
			a.Slug = domain.NewSlug(a.Title)
			err = s.tx.RunInTx(ctx, run)
			if !errors.Is(err, domain.ErrAlreadyExists) {
				break
			}
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			err = fmt.Errorf("mint unique slug for %q: %w", a.Title, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	s.log.InfoContext(ctx, "article updated", "slug", a.Slug, "author_id", viewerID)

	return s.reload(ctx, a.ID, &viewerID)
}
