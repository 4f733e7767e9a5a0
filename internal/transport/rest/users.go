package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	usersvc "github.com/heartmarshall/conduit-backend/internal/service/user"
)

type userService interface {
	Register(ctx context.Context, input usersvc.RegisterInput) (*usersvc.AuthResult, error)
	Login(ctx context.Context, input usersvc.LoginInput) (*usersvc.AuthResult, error)
	Current(ctx context.Context) (*usersvc.AuthResult, error)
	Update(ctx context.Context, input usersvc.UpdateInput) (*usersvc.AuthResult, error)
}

// UserHandler serves the /users and /user endpoints.
type UserHandler struct {
	users userService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

// registerRequest is the {"user": {...}} registration payload.
type registerRequest struct {
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// Register handles POST /users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformed(w, r)
		return
	}

	result, err := h.users.Register(r.Context(), usersvc.RegisterInput{
		Username: req.User.Username,
		Email:    req.User.Email,
		Password: req.User.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toUserResponse(result.User, result.Token))
}

// loginRequest is the {"user": {...}} login payload.
type loginRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// Login handles POST /users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformed(w, r)
		return
	}

	result, err := h.users.Login(r.Context(), usersvc.LoginInput{
		Email:    req.User.Email,
		Password: req.User.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toUserResponse(result.User, result.Token))
}

// Current handles GET /user.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	result, err := h.users.Current(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toUserResponse(result.User, result.Token))
}

// updateUserRequest is the {"user": {...}} self-update payload; absent
// fields stay untouched.
type updateUserRequest struct {
	User struct {
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

// Update handles PUT /user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMalformed(w, r)
		return
	}

	result, err := h.users.Update(r.Context(), usersvc.UpdateInput{
		Email:    req.User.Email,
		Username: req.User.Username,
		Password: req.User.Password,
		Bio:      req.User.Bio,
		Image:    req.User.Image,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toUserResponse(result.User, result.Token))
}
