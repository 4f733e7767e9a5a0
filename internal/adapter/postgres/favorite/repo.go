// Package favorite implements the Favorite repository using PostgreSQL.
// A favorite is a (user_id, article_id) edge with exactly two states, absent
// and present; writes are idempotent upserts/deletes, never insert-then-fail.
package favorite

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
)

// Repo provides favorite persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new favorite repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert records that the user favorited the article. Returns true when a
// new edge was written, false when it already existed.
func (r *Repo) Upsert(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`INSERT INTO favorites (user_id, article_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, article_id) DO NOTHING`,
		userID, articleID)
	if err != nil {
		return false, postgres.MapError(err, "favorite", articleID)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the favorite edge. Returns true when an edge was removed,
// false when it was already absent.
func (r *Repo) Delete(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND article_id = $2`,
		userID, articleID)
	if err != nil {
		return false, postgres.MapError(err, "favorite", articleID)
	}
	return tag.RowsAffected() > 0, nil
}

// countRow is the grouped-count result row.
type countRow struct {
	ArticleID uuid.UUID `db:"article_id"`
	Count     int       `db:"count"`
}

// CountByArticleIDs returns favorite counts grouped by article id for the
// given id set in one round trip. Articles with zero favorites are absent
// from the map.
func (r *Repo) CountByArticleIDs(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(articleIDs))
	if len(articleIDs) == 0 {
		return counts, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []countRow
	err := pgxscan.Select(ctx, q, &rows,
		`SELECT article_id, count(*) AS count
		 FROM favorites
		 WHERE article_id = ANY($1::uuid[])
		 GROUP BY article_id`,
		articleIDs)
	if err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}

	for _, row := range rows {
		counts[row.ArticleID] = row.Count
	}
	return counts, nil
}

// FavoritedIDs returns which of the given article ids the user has
// favorited, in one round trip.
func (r *Repo) FavoritedIDs(ctx context.Context, userID uuid.UUID, articleIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(articleIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []uuid.UUID
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT article_id FROM favorites
		 WHERE user_id = $1 AND article_id = ANY($2::uuid[])`,
		userID, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("find favorited ids: %w", err)
	}
	return ids, nil
}
