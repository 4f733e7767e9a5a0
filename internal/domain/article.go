package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a persisted article row. TagList and Author are populated by
// the hydration query, not by lazy relation traversal.
type Article struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description string
	Body        string
	AuthorID    uuid.UUID
	TagList     []string
	Author      User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment is a reader comment attached to an article.
type Comment struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	Author    User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag is a label shared across articles. Tags are created lazily on article
// write and never garbage-collected when unreferenced.
type Tag struct {
	ID   uuid.UUID
	Name string
}
