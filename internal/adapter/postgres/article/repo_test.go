package article_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/conduit-backend/internal/domain"
)

func newRepo(t *testing.T) (*article.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return article.New(pool), pool
}

func ptrStr(s string) *string { return &s }

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }

// ---------------------------------------------------------------------------
// Id-set resolution
// ---------------------------------------------------------------------------

func TestRepo_FindIDs_OrderAndPagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	base := time.Now().UTC().Add(-time.Hour)
	oldest := testhelper.SeedArticle(t, pool, author, "Oldest Post", nil, base)
	middle := testhelper.SeedArticle(t, pool, author, "Middle Post", nil, base.Add(time.Minute))
	newest := testhelper.SeedArticle(t, pool, author, "Newest Post", nil, base.Add(2*time.Minute))

	// Scoped by author so concurrent tests' articles stay out of the result.
	ids, err := repo.FindIDs(ctx, article.Filter{AuthorID: ptrUUID(author.ID), Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("FindIDs page 1: %v", err)
	}
	if len(ids) != 2 || ids[0] != newest.ID || ids[1] != middle.ID {
		t.Fatalf("page 1: expected [%s %s], got %v", newest.ID, middle.ID, ids)
	}

	ids, err = repo.FindIDs(ctx, article.Filter{AuthorID: ptrUUID(author.ID), Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("FindIDs page 2: %v", err)
	}
	if len(ids) != 1 || ids[0] != oldest.ID {
		t.Fatalf("page 2: expected [%s], got %v", oldest.ID, ids)
	}
}

func TestRepo_FindIDs_TagFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	tag := "tag-" + uuid.New().String()[:8]
	base := time.Now().UTC().Add(-time.Hour)
	tagged := testhelper.SeedArticle(t, pool, author, "Tagged Post", []string{tag}, base)
	testhelper.SeedArticle(t, pool, author, "Untagged Post", nil, base.Add(time.Minute))

	ids, err := repo.FindIDs(ctx, article.Filter{Tag: ptrStr(tag), Limit: 20})
	if err != nil {
		t.Fatalf("FindIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != tagged.ID {
		t.Fatalf("expected only tagged article %s, got %v", tagged.ID, ids)
	}
}

func TestRepo_FindIDs_FavoritedByFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	base := time.Now().UTC().Add(-time.Hour)
	liked := testhelper.SeedArticle(t, pool, author, "Liked Post", nil, base)
	testhelper.SeedArticle(t, pool, author, "Ignored Post", nil, base.Add(time.Minute))
	testhelper.SeedFavorite(t, pool, fan.ID, liked.ID)

	ids, err := repo.FindIDs(ctx, article.Filter{FavoritedBy: ptrUUID(fan.ID), Limit: 20})
	if err != nil {
		t.Fatalf("FindIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != liked.ID {
		t.Fatalf("expected only favorited article %s, got %v", liked.ID, ids)
	}
}

func TestRepo_FindIDs_AuthorIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	followed1 := testhelper.SeedUser(t, pool)
	followed2 := testhelper.SeedUser(t, pool)
	stranger := testhelper.SeedUser(t, pool)
	base := time.Now().UTC().Add(-time.Hour)
	a1 := testhelper.SeedArticle(t, pool, followed1, "From Followed One", nil, base)
	a2 := testhelper.SeedArticle(t, pool, followed2, "From Followed Two", nil, base.Add(time.Minute))
	testhelper.SeedArticle(t, pool, stranger, "From Stranger", nil, base.Add(2*time.Minute))

	ids, err := repo.FindIDs(ctx, article.Filter{
		AuthorIDs: []uuid.UUID{followed1.ID, followed2.ID},
		Limit:     20,
	})
	if err != nil {
		t.Fatalf("FindIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != a2.ID || ids[1] != a1.ID {
		t.Fatalf("expected [%s %s], got %v", a2.ID, a1.ID, ids)
	}
}

// ---------------------------------------------------------------------------
// Hydration
// ---------------------------------------------------------------------------

func TestRepo_HydrateByIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedArticle(t, pool, author, "Hydration Post",
		[]string{"go", "postgres"}, time.Now().UTC())

	articles, err := repo.HydrateByIDs(ctx, []uuid.UUID{seeded.ID})
	if err != nil {
		t.Fatalf("HydrateByIDs: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}

	got := articles[0]
	if got.Slug != seeded.Slug || got.Title != seeded.Title || got.Body != seeded.Body {
		t.Errorf("article fields mismatch: got %+v", got)
	}
	if got.Author.Username != author.Username || got.Author.Email != author.Email {
		t.Errorf("author mismatch: got %+v", got.Author)
	}
	if len(got.TagList) != 2 {
		t.Fatalf("expected 2 tags, got %v", got.TagList)
	}
}

func TestRepo_HydrateByIDs_Empty(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	articles, err := repo.HydrateByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("HydrateByIDs: %v", err)
	}
	if articles == nil || len(articles) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", articles)
	}
}

func TestRepo_GetBySlug_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetBySlug(context.Background(), "no-such-slug-"+uuid.New().String()[:8])
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

func TestRepo_Create_DuplicateSlug(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedArticle(t, pool, author, "Original Post", nil, time.Now().UTC())

	now := time.Now().UTC().Truncate(time.Microsecond)
	dup := domain.Article{
		ID:          uuid.New(),
		Slug:        seeded.Slug, // collides
		Title:       "Copycat",
		Description: "d",
		Body:        "b",
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := repo.Create(ctx, &dup)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

// A unique violation aborts the surrounding transaction, so a slug re-mint
// cannot reuse it: the first attempt must surface ErrAlreadyExists through
// RunInTx's rollback, and only a second attempt in a fresh transaction can
// insert. This is the sequence the article service runs on slug collision.
func TestRepo_Create_SlugCollisionRecoversInFreshTx(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	txm := postgres.NewTxManager(pool)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedArticle(t, pool, author, "Contested Post", nil, time.Now().UTC())

	attempt := func(slug string) (*domain.Article, error) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		a := domain.Article{
			ID:          uuid.New(),
			Slug:        slug,
			Title:       "Contested Post",
			Description: "d",
			Body:        "b",
			AuthorID:    author.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err := txm.RunInTx(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, &a)
		})
		return &a, err
	}

	_, err := attempt(seeded.Slug)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("colliding attempt: expected ErrAlreadyExists, got %v", err)
	}

	fresh, err := attempt(domain.NewSlug("Contested Post"))
	if err != nil {
		t.Fatalf("fresh-slug attempt: %v", err)
	}

	got, err := repo.GetBySlug(ctx, fresh.Slug)
	if err != nil {
		t.Fatalf("GetBySlug after retry: %v", err)
	}
	if got.ID != fresh.ID {
		t.Fatalf("expected article %s, got %s", fresh.ID, got.ID)
	}
}

func TestRepo_Update_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	ghost := domain.Article{ID: uuid.New(), Slug: "ghost", Title: "t", Description: "d", Body: "b"}
	err := repo.Update(context.Background(), &ghost)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Delete_CascadesRelations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	fan := testhelper.SeedUser(t, pool)
	seeded := testhelper.SeedArticle(t, pool, author, "Doomed Post", []string{"doom"}, time.Now().UTC())
	testhelper.SeedFavorite(t, pool, fan.ID, seeded.ID)
	testhelper.SeedComment(t, pool, fan, seeded.ID, "so long")

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var favorites, comments int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM favorites WHERE article_id = $1`, seeded.ID).Scan(&favorites); err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE article_id = $1`, seeded.ID).Scan(&comments); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if favorites != 0 || comments != 0 {
		t.Fatalf("expected cascaded cleanup, got %d favorites, %d comments", favorites, comments)
	}

	if err := repo.Delete(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
