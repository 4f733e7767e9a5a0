package rest

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	articlesvc "github.com/heartmarshall/conduit-backend/internal/service/article"
	commentsvc "github.com/heartmarshall/conduit-backend/internal/service/comment"
)

// timestampLayout is ISO-8601 UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// profileWire is the JSON shape of a profile.
type profileWire struct {
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

func toProfileWire(u domain.User, following bool) profileWire {
	return profileWire{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

func profileToWire(p domain.Profile) profileWire {
	return profileWire{
		Username:  p.Username,
		Bio:       p.Bio,
		Image:     p.Image,
		Following: p.Following,
	}
}

// articleWire is the JSON shape of an article. Body is omitted on list
// responses.
type articleWire struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           *string     `json:"body,omitempty"`
	TagList        []string    `json:"tagList"`
	CreatedAt      string      `json:"createdAt"`
	UpdatedAt      string      `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         profileWire `json:"author"`
}

func toArticleWire(a articlesvc.EnrichedArticle, includeBody bool) articleWire {
	// Tag order is part of the contract: ascending, regardless of link order.
	tags := make([]string, len(a.TagList))
	copy(tags, a.TagList)
	sort.Strings(tags)

	wire := articleWire{
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		TagList:        tags,
		CreatedAt:      formatTime(a.CreatedAt),
		UpdatedAt:      formatTime(a.UpdatedAt),
		Favorited:      a.Favorited,
		FavoritesCount: a.FavoritesCount,
		Author:         toProfileWire(a.Author, a.AuthorFollowing),
	}
	if includeBody {
		body := a.Body
		wire.Body = &body
	}
	return wire
}

// articleResponse wraps a single article: {"article": {...}}.
type articleResponse struct {
	Article articleWire `json:"article"`
}

func toArticleResponse(a *articlesvc.EnrichedArticle) articleResponse {
	return articleResponse{Article: toArticleWire(*a, true)}
}

// articlesResponse wraps a page: {"articles": [...], "articlesCount": n}.
// articlesCount is the page length, not a global total.
type articlesResponse struct {
	Articles      []articleWire `json:"articles"`
	ArticlesCount int           `json:"articlesCount"`
}

func toArticlesResponse(result *articlesvc.ListResult) articlesResponse {
	articles := make([]articleWire, len(result.Articles))
	for i, a := range result.Articles {
		articles[i] = toArticleWire(a, false)
	}
	return articlesResponse{Articles: articles, ArticlesCount: len(articles)}
}

// commentWire is the JSON shape of a comment.
type commentWire struct {
	ID        uuid.UUID   `json:"id"`
	Body      string      `json:"body"`
	CreatedAt string      `json:"createdAt"`
	UpdatedAt string      `json:"updatedAt"`
	Author    profileWire `json:"author"`
}

func toCommentWire(c commentsvc.EnrichedComment) commentWire {
	return commentWire{
		ID:        c.ID,
		Body:      c.Body,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
		Author:    toProfileWire(c.Author, c.AuthorFollowing),
	}
}

type commentResponse struct {
	Comment commentWire `json:"comment"`
}

type commentsResponse struct {
	Comments []commentWire `json:"comments"`
}

func toCommentsResponse(comments []commentsvc.EnrichedComment) commentsResponse {
	wires := make([]commentWire, len(comments))
	for i, c := range comments {
		wires[i] = toCommentWire(c)
	}
	return commentsResponse{Comments: wires}
}

// profileResponse wraps a profile: {"profile": {...}}.
type profileResponse struct {
	Profile profileWire `json:"profile"`
}

// userWire is the JSON shape of the authenticated user.
type userWire struct {
	Email    string  `json:"email"`
	Token    string  `json:"token"`
	Username string  `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

type userResponse struct {
	User userWire `json:"user"`
}

func toUserResponse(u *domain.User, token string) userResponse {
	return userResponse{User: userWire{
		Email:    u.Email,
		Token:    token,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}}
}

// tagsResponse wraps the tag list: {"tags": [...]}.
type tagsResponse struct {
	Tags []string `json:"tags"`
}
