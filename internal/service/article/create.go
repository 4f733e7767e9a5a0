package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// slugRetries bounds the re-mint attempts on a slug unique violation.
const slugRetries = 3

// Create publishes a new article by the authenticated viewer, minting a
// unique slug from the title and linking the tag set atomically.
func (s *Service) Create(ctx context.Context, input CreateInput) (*EnrichedArticle, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	tags := normalizeTags(input.TagList)

	now := time.Now().UTC()
	a := domain.Article{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		AuthorID:    viewerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// A unique violation aborts the transaction it happens in, so every
	// mint attempt gets a transaction of its own. Only the slug insert can
	// conflict inside the body (the tag upsert is conflict-do-nothing), so
	// ErrAlreadyExists out of RunInTx always means a suffix collision.
	var err error
	for range slugRetries {
		a.Slug = domain.NewSlug(input.Title)
		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			if err := s.articles.Create(ctx, &a); err != nil {
				return err
			}

			tagIDs, err := s.tags.EnsureNames(ctx, tags)
			if err != nil {
				return err
			}
			return s.tags.ReplaceForArticle(ctx, a.ID, tagIDs)
		})
		if !errors.Is(err, domain.ErrAlreadyExists) {
			break
		}
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("mint unique slug for %q: %w", input.Title, err)
	}
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.InfoContext(ctx, "article created", "slug", a.Slug, "author_id", viewerID)

	return s.reload(ctx, a.ID, &viewerID)
}

// reload fetches the hydrated, enriched view of one article by id.
func (s *Service) reload(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*EnrichedArticle, error) {
	articles, err := s.articles.HydrateByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("reload article: %w", err)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return s.enrichOne(ctx, articles[0], viewerID)
}
