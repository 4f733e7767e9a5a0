// Package article implements the Article repository using PostgreSQL.
// Reads follow the id-set-first pattern: resolve the ordered, paginated set
// of matching ids in one query, then hydrate exactly that set in a second
// batched query. No per-row relation traversal.
package article

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

// Repo provides article persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new article repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Id-set resolution
// ---------------------------------------------------------------------------

// FindIDs returns the ordered, paginated set of article ids matching the
// filter. Ordering: created_at DESC, id, the same key hydration re-applies.
func (r *Repo) FindIDs(ctx context.Context, f Filter) ([]uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := f.idQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build article id query: %w", err)
	}

	var ids []uuid.UUID
	if err := pgxscan.Select(ctx, q, &ids, sql, args...); err != nil {
		return nil, fmt.Errorf("find article ids: %w", err)
	}
	return ids, nil
}

// IDBySlug resolves a slug to an article id.
func (r *Repo) IDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id uuid.UUID
	err := pgxscan.Get(ctx, q, &id, `SELECT id FROM articles WHERE slug = $1`, slug)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "article", slug)
	}
	return id, nil
}

// ---------------------------------------------------------------------------
// Hydration
// ---------------------------------------------------------------------------

const hydrateSQL = `
SELECT
    a.id, a.slug, a.title, a.description, a.body, a.author_id,
    a.created_at, a.updated_at,
    u.email    AS author_email,
    u.username AS author_username,
    u.bio      AS author_bio,
    u.image    AS author_image,
    COALESCE(
        ARRAY(SELECT t.name FROM article_tags at
              JOIN tags t ON t.id = at.tag_id
              WHERE at.article_id = a.id),
        '{}'
    ) AS tag_list
FROM articles a
JOIN users u ON u.id = a.author_id
WHERE a.id = ANY($1::uuid[])
ORDER BY a.created_at DESC, a.id`

// articleRow mirrors the hydration query for scany.
type articleRow struct {
	ID             uuid.UUID `db:"id"`
	Slug           string    `db:"slug"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	Body           string    `db:"body"`
	AuthorID       uuid.UUID `db:"author_id"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	AuthorEmail    string    `db:"author_email"`
	AuthorUsername string    `db:"author_username"`
	AuthorBio      *string   `db:"author_bio"`
	AuthorImage    *string   `db:"author_image"`
	TagList        []string  `db:"tag_list"`
}

func (r articleRow) toDomain() domain.Article {
	return domain.Article{
		ID:          r.ID,
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		Body:        r.Body,
		AuthorID:    r.AuthorID,
		TagList:     r.TagList,
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

// HydrateByIDs loads full article rows + author + tag names for exactly the
// given id set in one round trip, ordered by (created_at DESC, id).
// Returns an empty slice (not nil) for an empty id set.
func (r *Repo) HydrateByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Article, error) {
	if len(ids) == 0 {
		return []domain.Article{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rows []articleRow
	if err := pgxscan.Select(ctx, q, &rows, hydrateSQL, ids); err != nil {
		return nil, fmt.Errorf("hydrate articles: %w", err)
	}

	articles := make([]domain.Article, len(rows))
	for i, row := range rows {
		articles[i] = row.toDomain()
	}
	return articles, nil
}

// GetBySlug loads one hydrated article by slug.
func (r *Repo) GetBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	id, err := r.IDBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	articles, err := r.HydrateByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, postgres.MapError(fmt.Errorf("hydration missed id %s", id), "article", slug)
	}

	a := articles[0]
	return &a, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new article row. Tag linkage is a separate concern owned
// by the tag repository inside the same transaction.
// A slug collision surfaces as domain.ErrAlreadyExists for the caller to retry.
func (r *Repo) Create(ctx context.Context, a *domain.Article) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO articles (id, slug, title, description, body, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Slug, a.Title, a.Description, a.Body, a.AuthorID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "article", a.Slug)
	}
	return nil
}

// Update overwrites slug, title, description and body of the article row.
func (r *Repo) Update(ctx context.Context, a *domain.Article) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE articles
		 SET slug = $2, title = $3, description = $4, body = $5, updated_at = now()
		 WHERE id = $1`,
		a.ID, a.Slug, a.Title, a.Description, a.Body)
	if err != nil {
		return postgres.MapError(err, "article", a.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("article %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the article row; favorites, tag links and comments cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "article", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
