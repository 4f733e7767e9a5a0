package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
	articlerepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	commentrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/comment"
	favoriterepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/favorite"
	followrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/follow"
	tagrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/tag"
	userrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/conduit-backend/internal/auth"
	"github.com/heartmarshall/conduit-backend/internal/config"
	articlesvc "github.com/heartmarshall/conduit-backend/internal/service/article"
	commentsvc "github.com/heartmarshall/conduit-backend/internal/service/comment"
	profilesvc "github.com/heartmarshall/conduit-backend/internal/service/profile"
	tagsvc "github.com/heartmarshall/conduit-backend/internal/service/tag"
	usersvc "github.com/heartmarshall/conduit-backend/internal/service/user"
	"github.com/heartmarshall/conduit-backend/internal/transport/middleware"
	"github.com/heartmarshall/conduit-backend/internal/transport/rest"
)

// rateLimiterCleanup is how often stale per-client rate limiter state is
// reaped.
const rateLimiterCleanup = time.Minute

// Run is the application entry point. It loads configuration, connects to
// the database, wires repositories, services, and the HTTP router, then
// serves until ctx is cancelled and shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	router := buildRouter(logger, cfg, pool)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}

// buildRouter assembles the full handler stack: repositories over the pool,
// services over the repositories, REST handlers over the services.
func buildRouter(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) http.Handler {
	users := userrepo.New(pool)
	articles := articlerepo.New(pool)
	favorites := favoriterepo.New(pool)
	follows := followrepo.New(pool)
	tags := tagrepo.New(pool)
	comments := commentrepo.New(pool)

	txm := postgres.NewTxManager(pool)
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	articleService := articlesvc.NewService(logger, articles, users, favorites, follows, tags, txm, cfg.API)
	commentService := commentsvc.NewService(logger, comments, articles, follows)
	profileService := profilesvc.NewService(logger, users, follows)
	tagService := tagsvc.NewService(logger, tags)
	userService := usersvc.NewService(logger, users, jwt, cfg.Auth)

	handlers := rest.Handlers{
		Articles: rest.NewArticleHandler(articleService),
		Comments: rest.NewCommentHandler(commentService),
		Profiles: rest.NewProfileHandler(profileService),
		Tags:     rest.NewTagHandler(tagService),
		Users:    rest.NewUserHandler(userService),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	}

	return rest.NewRouter(handlers, rest.RouterDeps{
		Logger:      logger,
		Validator:   jwt,
		RateLimiter: middleware.NewRateLimiter(rateLimiterCleanup),
		CORS:        cfg.CORS,
		API:         cfg.API,
	})
}
