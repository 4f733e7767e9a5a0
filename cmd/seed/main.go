// Command seed populates a development database with a small demo dataset:
// two users, a handful of tagged articles, follows, and favorites. It goes
// through the service layer so every invariant (slugs, tag upserts, password
// hashing) holds for the seeded rows.
//
// Requires DATABASE_DSN and AUTH_JWT_SECRET environment variables.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
	articlerepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	favoriterepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/favorite"
	followrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/follow"
	tagrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/tag"
	userrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/conduit-backend/internal/auth"
	"github.com/heartmarshall/conduit-backend/internal/config"
	articlesvc "github.com/heartmarshall/conduit-backend/internal/service/article"
	usersvc "github.com/heartmarshall/conduit-backend/internal/service/user"
	"github.com/heartmarshall/conduit-backend/pkg/ctxutil"
)

type demoArticle struct {
	title       string
	description string
	body        string
	tags        []string
}

var demoArticles = []demoArticle{
	{
		title:       "How to train your dragon",
		description: "Ever wonder how?",
		body:        "It takes a Jacobian.",
		tags:        []string{"dragons", "training"},
	},
	{
		title:       "Batching database reads",
		description: "Three queries per page, no matter the page size",
		body:        "Collect the ids, fan the lookups out once, merge in memory.",
		tags:        []string{"postgres", "performance"},
	},
	{
		title:       "Slugs that survive collisions",
		description: "Readable URLs without a uniqueness fight",
		body:        "Append a short random suffix and retry on conflict.",
		tags:        []string{"postgres"},
	},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	articles := articlerepo.New(pool)
	favorites := favoriterepo.New(pool)
	follows := followrepo.New(pool)
	tags := tagrepo.New(pool)
	txm := postgres.NewTxManager(pool)
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	userService := usersvc.NewService(logger, users, jwt, cfg.Auth)
	articleService := articlesvc.NewService(logger, articles, users, favorites, follows, tags, txm, cfg.API)

	jake, err := userService.Register(ctx, usersvc.RegisterInput{
		Username: "jake",
		Email:    "jake@example.com",
		Password: "jakejake",
	})
	if err != nil {
		log.Fatalf("register jake: %v", err)
	}

	celeb, err := userService.Register(ctx, usersvc.RegisterInput{
		Username: "celeb",
		Email:    "celeb@example.com",
		Password: "celebceleb",
	})
	if err != nil {
		log.Fatalf("register celeb: %v", err)
	}

	jakeCtx := ctxutil.WithUserID(ctx, jake.User.ID)
	celebCtx := ctxutil.WithUserID(ctx, celeb.User.ID)

	for _, a := range demoArticles {
		created, err := articleService.Create(jakeCtx, articlesvc.CreateInput{
			Title:       a.title,
			Description: a.description,
			Body:        a.body,
			TagList:     a.tags,
		})
		if err != nil {
			log.Fatalf("create article %q: %v", a.title, err)
		}
		if _, err := articleService.Favorite(celebCtx, created.Slug); err != nil {
			log.Fatalf("favorite %q: %v", created.Slug, err)
		}
	}

	if err := follows.Upsert(ctx, celeb.User.ID, jake.User.ID); err != nil {
		log.Fatalf("follow: %v", err)
	}

	fmt.Printf("Seeded %d articles for %s, favorited and followed by %s.\n",
		len(demoArticles), jake.User.Username, celeb.User.Username)
}
