package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/heartmarshall/conduit-backend/internal/config"
	"github.com/heartmarshall/conduit-backend/internal/transport/middleware"
)

// TokenValidator resolves a JWT into a user id for the auth middleware.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// Handlers bundles the endpoint handlers mounted by the router.
type Handlers struct {
	Articles *ArticleHandler
	Comments *CommentHandler
	Profiles *ProfileHandler
	Tags     *TagHandler
	Users    *UserHandler
	Health   *HealthHandler
}

// RouterDeps carries everything NewRouter needs besides the handlers.
type RouterDeps struct {
	Logger      *slog.Logger
	Validator   TokenValidator
	RateLimiter *middleware.RateLimiter
	CORS        config.CORSConfig
	API         config.APIConfig
}

// NewRouter builds the HTTP routing table. All API endpoints live under
// /api; health probes stay at the root for orchestrators.
func NewRouter(h Handlers, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(deps.RateLimiter.Limit(deps.API.RateLimitPerMinute))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Use(middleware.Auth(deps.Validator))

	r.Get("/health", h.Health.Health)
	r.Get("/health/live", h.Health.Live)
	r.Get("/health/ready", h.Health.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.Users.Register)
		r.Post("/users/login", h.Users.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/user", h.Users.Current)
			r.Put("/user", h.Users.Update)
		})

		r.Get("/profiles/{username}", h.Profiles.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/profiles/{username}/follow", h.Profiles.Follow)
			r.Delete("/profiles/{username}/follow", h.Profiles.Unfollow)
		})

		r.Get("/articles", h.Articles.List)
		r.Get("/articles/{slug}", h.Articles.Get)
		r.Get("/articles/{slug}/comments", h.Comments.List)
		r.Get("/tags", h.Tags.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/articles/feed", h.Articles.Feed)
			r.Post("/articles", h.Articles.Create)
			r.Put("/articles/{slug}", h.Articles.Update)
			r.Delete("/articles/{slug}", h.Articles.Delete)
			r.Post("/articles/{slug}/favorite", h.Articles.Favorite)
			r.Delete("/articles/{slug}/favorite", h.Articles.Unfavorite)
			r.Post("/articles/{slug}/comments", h.Comments.Create)
			r.Delete("/articles/{slug}/comments/{id}", h.Comments.Delete)
		})
	})

	return r
}
