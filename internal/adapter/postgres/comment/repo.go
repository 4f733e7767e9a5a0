// Package comment implements the Comment repository using PostgreSQL.
// Listing joins the author row directly so callers never fetch authors
// comment-by-comment.
package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listSQL = `
SELECT
    c.id, c.article_id, c.author_id, c.body, c.created_at, c.updated_at,
    u.email    AS author_email,
    u.username AS author_username,
    u.bio      AS author_bio,
    u.image    AS author_image
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.article_id = $1
ORDER BY c.created_at DESC, c.id`

type commentRow struct {
	ID             uuid.UUID `db:"id"`
	ArticleID      uuid.UUID `db:"article_id"`
	AuthorID       uuid.UUID `db:"author_id"`
	Body           string    `db:"body"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	AuthorEmail    string    `db:"author_email"`
	AuthorUsername string    `db:"author_username"`
	AuthorBio      *string   `db:"author_bio"`
	AuthorImage    *string   `db:"author_image"`
}

func (r commentRow) toDomain() domain.Comment {
	return domain.Comment{
		ID:        r.ID,
		ArticleID: r.ArticleID,
		AuthorID:  r.AuthorID,
		Body:      r.Body,
		Author: domain.User{
			ID:       r.AuthorID,
			Email:    r.AuthorEmail,
			Username: r.AuthorUsername,
			Bio:      r.AuthorBio,
			Image:    r.AuthorImage,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ListByArticleID returns the article's comments with authors attached,
// newest first.
func (r *Repo) ListByArticleID(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []commentRow
	if err := pgxscan.Select(ctx, q, &rows, listSQL, articleID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]domain.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.toDomain()
	}
	return comments, nil
}

// GetByID loads one comment with its author attached.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row commentRow
	err := pgxscan.Get(ctx, q, &row, `
SELECT
    c.id, c.article_id, c.author_id, c.body, c.created_at, c.updated_at,
    u.email    AS author_email,
    u.username AS author_username,
    u.bio      AS author_bio,
    u.image    AS author_image
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.id = $1`, id)
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	c := row.toDomain()
	return &c, nil
}

// Create inserts a new comment row.
func (r *Repo) Create(ctx context.Context, c *domain.Comment) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO comments (id, article_id, author_id, body, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.ArticleID, c.AuthorID, c.Body, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "comment", c.ID)
	}
	return nil
}

// Delete removes the comment row.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
