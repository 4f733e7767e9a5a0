package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with generated email/username and a placeholder
// password hash. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$seeded-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedArticle creates an article by the given author with the given tags,
// creating tag rows as needed. createdAt controls listing order in tests.
// Returns a fully populated domain.Article.
func SeedArticle(t *testing.T, pool *pgxpool.Pool, author domain.User, title string, tags []string, createdAt time.Time) domain.Article {
	t.Helper()
	ctx := context.Background()

	createdAt = createdAt.UTC().Truncate(time.Microsecond)
	article := domain.Article{
		ID:          uuid.New(),
		Slug:        domain.NewSlug(title),
		Title:       title,
		Description: "Description of " + title,
		Body:        "Body of " + title,
		AuthorID:    author.ID,
		TagList:     tags,
		Author:      author,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO articles (id, slug, title, description, body, author_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		article.ID, article.Slug, article.Title, article.Description, article.Body,
		article.AuthorID, article.CreatedAt, article.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArticle insert article: %v", err)
	}

	for _, name := range tags {
		var tagID uuid.UUID
		err := pool.QueryRow(ctx,
			`INSERT INTO tags (id, name) VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			 RETURNING id`,
			uuid.New(), name,
		).Scan(&tagID)
		if err != nil {
			t.Fatalf("testhelper: SeedArticle upsert tag %q: %v", name, err)
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO article_tags (article_id, tag_id) VALUES ($1, $2)`,
			article.ID, tagID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedArticle link tag %q: %v", name, err)
		}
	}

	return article
}

// SeedFavorite marks the article as favorited by the user.
func SeedFavorite(t *testing.T, pool *pgxpool.Pool, userID, articleID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO favorites (user_id, article_id) VALUES ($1, $2)`,
		userID, articleID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFavorite: %v", err)
	}
}

// SeedFollow makes follower follow following.
func SeedFollow(t *testing.T, pool *pgxpool.Pool, followerID, followingID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`,
		followerID, followingID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFollow: %v", err)
	}
}

// SeedComment creates a comment by the given author on the article.
// Returns a filled domain.Comment.
func SeedComment(t *testing.T, pool *pgxpool.Pool, author domain.User, articleID uuid.UUID, body string) domain.Comment {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	comment := domain.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		AuthorID:  author.ID,
		Body:      body,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO comments (id, article_id, author_id, body, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		comment.ID, comment.ArticleID, comment.AuthorID, comment.Body, comment.CreatedAt, comment.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}

	return comment
}
