package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/domain"
	commentsvc "github.com/heartmarshall/conduit-backend/internal/service/comment"
)

type commentService interface {
	List(ctx context.Context, slug string) ([]commentsvc.EnrichedComment, error)
	Add(ctx context.Context, slug, body string) (*commentsvc.EnrichedComment, error)
	Delete(ctx context.Context, slug string, commentID uuid.UUID) error
}

// CommentHandler serves the /articles/{slug}/comments endpoints.
type CommentHandler struct {
	comments commentService
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments commentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List handles GET /articles/{slug}/comments.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.List(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toCommentsResponse(comments))
}

// commentCreateRequest is the {"comment": {...}} payload.
type commentCreateRequest struct {
	Comment struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// Create handles POST /articles/{slug}/comments.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req commentCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformed(w, r)
		return
	}

	c, err := h.comments.Add(r.Context(), chi.URLParam(r, "slug"), req.Comment.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, commentResponse{Comment: toCommentWire(*c)})
}

// Delete handles DELETE /articles/{slug}/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}

	if err := h.comments.Delete(r.Context(), chi.URLParam(r, "slug"), commentID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
