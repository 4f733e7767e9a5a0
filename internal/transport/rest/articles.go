package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	articlesvc "github.com/heartmarshall/conduit-backend/internal/service/article"
)

type articleService interface {
	List(ctx context.Context, input articlesvc.ListInput) (*articlesvc.ListResult, error)
	Feed(ctx context.Context, input articlesvc.FeedInput) (*articlesvc.ListResult, error)
	Get(ctx context.Context, slug string) (*articlesvc.EnrichedArticle, error)
	Create(ctx context.Context, input articlesvc.CreateInput) (*articlesvc.EnrichedArticle, error)
	Update(ctx context.Context, slug string, input articlesvc.UpdateInput) (*articlesvc.EnrichedArticle, error)
	Delete(ctx context.Context, slug string) error
	Favorite(ctx context.Context, slug string) (*articlesvc.EnrichedArticle, error)
	Unfavorite(ctx context.Context, slug string) (*articlesvc.EnrichedArticle, error)
}

// ArticleHandler serves the /articles endpoints.
type ArticleHandler struct {
	articles articleService
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles articleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// List handles GET /articles.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	input := articlesvc.ListInput{
		Tag:       queryString(r, "tag"),
		Author:    queryString(r, "author"),
		Favorited: queryString(r, "favorited"),
		Limit:     queryInt(r, "limit"),
		Offset:    queryInt(r, "offset"),
	}

	result, err := h.articles.List(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toArticlesResponse(result))
}

// Feed handles GET /articles/feed.
func (h *ArticleHandler) Feed(w http.ResponseWriter, r *http.Request) {
	result, err := h.articles.Feed(r.Context(), articlesvc.FeedInput{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toArticlesResponse(result))
}

// Get handles GET /articles/{slug}.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.articles.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toArticleResponse(a))
}

// articleCreateRequest is the {"article": {...}} create payload.
type articleCreateRequest struct {
	Article struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	} `json:"article"`
}

// Create handles POST /articles.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req articleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformed(w, r)
		return
	}

	a, err := h.articles.Create(r.Context(), articlesvc.CreateInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toArticleResponse(a))
}

// articleUpdateRequest is the {"article": {...}} update payload; absent
// fields stay untouched.
type articleUpdateRequest struct {
	Article struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Body        *string `json:"body"`
	} `json:"article"`
}

// Update handles PUT /articles/{slug}.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req articleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformed(w, r)
		return
	}

	a, err := h.articles.Update(r.Context(), chi.URLParam(r, "slug"), articlesvc.UpdateInput{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toArticleResponse(a))
}

// Delete handles DELETE /articles/{slug}.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.articles.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Favorite handles POST /articles/{slug}/favorite.
func (h *ArticleHandler) Favorite(w http.ResponseWriter, r *http.Request) {
	a, err := h.articles.Favorite(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toArticleResponse(a))
}

// Unfavorite handles DELETE /articles/{slug}/favorite.
func (h *ArticleHandler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	a, err := h.articles.Unfavorite(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toArticleResponse(a))
}

// queryString returns a pointer to a non-empty query value, nil otherwise.
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt parses an integer query value, zero on absence or garbage. The
// service layer applies defaults and clamping.
func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
