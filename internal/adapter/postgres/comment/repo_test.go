package comment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres/comment"
	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/conduit-backend/internal/domain"
)

func newRepo(t *testing.T) (*comment.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return comment.New(pool), pool
}

func TestRepo_CreateAndList_NewestFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	reader := testhelper.SeedUser(t, pool)
	a := testhelper.SeedArticle(t, pool, author, "Commented Post", nil, time.Now().UTC())

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	first := domain.Comment{
		ID: uuid.New(), ArticleID: a.ID, AuthorID: reader.ID,
		Body: "first", CreatedAt: base, UpdatedAt: base,
	}
	second := domain.Comment{
		ID: uuid.New(), ArticleID: a.ID, AuthorID: reader.ID,
		Body: "second", CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute),
	}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if err := repo.Create(ctx, &second); err != nil {
		t.Fatalf("Create second: %v", err)
	}

	comments, err := repo.ListByArticleID(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByArticleID: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Body != "second" || comments[1].Body != "first" {
		t.Fatalf("expected newest first, got [%s %s]", comments[0].Body, comments[1].Body)
	}
	if comments[0].Author.Username != reader.Username {
		t.Errorf("author not attached: got %+v", comments[0].Author)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	author := testhelper.SeedUser(t, pool)
	a := testhelper.SeedArticle(t, pool, author, "Short Lived", nil, time.Now().UTC())
	c := testhelper.SeedComment(t, pool, author, a.ID, "bye")

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete: expected ErrNotFound, got %v", err)
	}
}
