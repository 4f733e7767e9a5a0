package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

type profileService interface {
	Get(ctx context.Context, username string) (*domain.Profile, error)
	Follow(ctx context.Context, username string) (*domain.Profile, error)
	Unfollow(ctx context.Context, username string) (*domain.Profile, error)
}

// ProfileHandler serves the /profiles endpoints.
type ProfileHandler struct {
	profiles profileService
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles profileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get handles GET /profiles/{username}.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, profileResponse{Profile: profileToWire(*p)})
}

// Follow handles POST /profiles/{username}/follow.
func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Follow(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, profileResponse{Profile: profileToWire(*p)})
}

// Unfollow handles DELETE /profiles/{username}/follow.
func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	p, err := h.profiles.Unfollow(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, profileResponse{Profile: profileToWire(*p)})
}
