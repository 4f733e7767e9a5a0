// Package follow implements the Follow repository using PostgreSQL.
// The no-self-follow invariant is enforced both here (CHECK constraint) and
// in the profile service before any write reaches this layer.
package follow

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
)

// Repo provides follow persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new follow repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Upsert records that follower follows following. Conflict-do-nothing:
// following an already-followed user is a no-op success.
func (r *Repo) Upsert(ctx context.Context, followerID, followingID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO follows (follower_id, following_id)
		 VALUES ($1, $2)
		 ON CONFLICT (follower_id, following_id) DO NOTHING`,
		followerID, followingID)
	if err != nil {
		return postgres.MapError(err, "follow", followingID)
	}
	return nil
}

// Delete removes the follow edge. Unfollowing a non-followed user is a
// no-op success.
func (r *Repo) Delete(ctx context.Context, followerID, followingID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return postgres.MapError(err, "follow", followingID)
	}
	return nil
}

// Exists reports whether follower follows following.
func (r *Repo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := pgxscan.Get(ctx, q, &exists,
		`SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`,
		followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("follow exists: %w", err)
	}
	return exists, nil
}

// FollowedIDs returns which of the given user ids the follower follows,
// in one round trip.
func (r *Repo) FollowedIDs(ctx context.Context, followerID uuid.UUID, userIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(userIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []uuid.UUID
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT following_id FROM follows
		 WHERE follower_id = $1 AND following_id = ANY($2::uuid[])`,
		followerID, userIDs)
	if err != nil {
		return nil, fmt.Errorf("find followed ids: %w", err)
	}
	return ids, nil
}

// FollowingIDs returns every user id the follower follows. The feed uses it
// as its candidate author set.
func (r *Repo) FollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var ids []uuid.UUID
	err := pgxscan.Select(ctx, q, &ids,
		`SELECT following_id FROM follows WHERE follower_id = $1`,
		followerID)
	if err != nil {
		return nil, fmt.Errorf("find following ids: %w", err)
	}
	return ids, nil
}
