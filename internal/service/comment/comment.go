package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

// List returns the article's comments, newest first. Works for anonymous
// viewers; a viewer in the context resolves the author following flags in
// one batched query.
func (s *Service) List(ctx context.Context, slug string) ([]EnrichedComment, error) {
	articleID, err := s.articles.IDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByArticleID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedComment, len(comments))
	for i, c := range comments {
		enriched[i] = EnrichedComment{Comment: c}
	}

	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok || len(comments) == 0 {
		return enriched, nil
	}

	authorIDSet := make(map[uuid.UUID]bool, len(comments))
	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		if !authorIDSet[c.AuthorID] {
			authorIDSet[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	followedIDs, err := s.follows.FollowedIDs(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve comment author follows: %w", err)
	}
	followed := make(map[uuid.UUID]bool, len(followedIDs))
	for _, id := range followedIDs {
		followed[id] = true
	}

	for i := range enriched {
		c := &enriched[i]
		c.AuthorFollowing = followed[c.AuthorID] && c.AuthorID != viewerID
	}
	return enriched, nil
}

// Add creates a comment by the viewer on the article.
func (s *Service) Add(ctx context.Context, slug, body string) (*EnrichedComment, error) {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if strings.TrimSpace(body) == "" {
		return nil, domain.NewValidationError("body", "can't be blank")
	}

	articleID, err := s.articles.IDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := domain.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		AuthorID:  viewerID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.InfoContext(ctx, "comment created", "slug", slug, "author_id", viewerID)

	// Reload for the author row; a fresh comment's author is never followed
	// by themselves.
	created, err := s.comments.GetByID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return &EnrichedComment{Comment: *created}, nil
}

// Delete removes the viewer's own comment from the article. Only the
// comment author may delete; a comment id that belongs to another article
// is treated as not found.
func (s *Service) Delete(ctx context.Context, slug string, commentID uuid.UUID) error {
	viewerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	articleID, err := s.articles.IDBySlug(ctx, slug)
	if err != nil {
		return err
	}

	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.ArticleID != articleID {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}
	if c.AuthorID != viewerID {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrForbidden)
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "comment deleted", "slug", slug, "comment_id", commentID)
	return nil
}
