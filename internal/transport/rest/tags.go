package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
)

type tagService interface {
	List(ctx context.Context) ([]string, error)
}

// TagHandler serves GET /tags.
type TagHandler struct {
	tags tagService
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(tags tagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List handles GET /tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, tagsResponse{Tags: tags})
}
