// Package tag implements the Tag repository using PostgreSQL.
// Tags are created lazily on article write (upsert) and never deleted when
// they become unreferenced.
package tag

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ListNames returns all tag names, ascending.
func (r *Repo) ListNames(ctx context.Context) ([]string, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var names []string
	err := pgxscan.Select(ctx, q, &names, `SELECT name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return names, nil
}

// EnsureNames upserts the given tag names and returns their ids, one batch
// round trip for the inserts and one for the lookup.
func (r *Repo) EnsureNames(ctx context.Context, names []string) ([]uuid.UUID, error) {
	if len(names) == 0 {
		return []uuid.UUID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue(
			`INSERT INTO tags (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			uuid.New(), name)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("upsert tags: %w", err)
	}

	var ids []uuid.UUID
	err := pgxscan.Select(ctx, q, &ids, `SELECT id FROM tags WHERE name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("resolve tag ids: %w", err)
	}
	return ids, nil
}

// ReplaceForArticle rewrites the article's tag links to exactly the given
// tag ids. Meant to run inside the article write transaction.
func (r *Repo) ReplaceForArticle(ctx context.Context, articleID uuid.UUID, tagIDs []uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM article_tags WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("unlink tags: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(
			`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)
			 ON CONFLICT (article_id, tag_id) DO NOTHING`,
			articleID, tagID)
	}
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("link tags: %w", err)
	}
	return nil
}
