//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres"
	articlerepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/article"
	commentrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/comment"
	favoriterepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/favorite"
	followrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/follow"
	tagrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/tag"
	"github.com/heartmarshall/conduit-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/conduit-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/conduit-backend/internal/auth"
	"github.com/heartmarshall/conduit-backend/internal/config"
	articlesvc "github.com/heartmarshall/conduit-backend/internal/service/article"
	commentsvc "github.com/heartmarshall/conduit-backend/internal/service/comment"
	profilesvc "github.com/heartmarshall/conduit-backend/internal/service/profile"
	tagsvc "github.com/heartmarshall/conduit-backend/internal/service/tag"
	usersvc "github.com/heartmarshall/conduit-backend/internal/service/user"
	"github.com/heartmarshall/conduit-backend/internal/transport/middleware"
	"github.com/heartmarshall/conduit-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	articles := articlerepo.New(pool)
	favorites := favoriterepo.New(pool)
	follows := followrepo.New(pool)
	tags := tagrepo.New(pool)
	comments := commentrepo.New(pool)

	authCfg := config.AuthConfig{
		JWTSecret:        "test-secret-at-least-32-chars-long!!",
		JWTIssuer:        "test-issuer",
		TokenTTL:         time.Hour,
		PasswordHashCost: 4,
	}
	apiCfg := config.APIConfig{
		DefaultPageSize:    20,
		MaxPageSize:        100,
		RateLimitPerMinute: 10000,
	}

	jwtMgr := authpkg.NewJWTManager(authCfg.JWTSecret, authCfg.JWTIssuer, authCfg.TokenTTL)

	handlers := rest.Handlers{
		Articles: rest.NewArticleHandler(articlesvc.NewService(logger, articles, users, favorites, follows, tags, txm, apiCfg)),
		Comments: rest.NewCommentHandler(commentsvc.NewService(logger, comments, articles, follows)),
		Profiles: rest.NewProfileHandler(profilesvc.NewService(logger, users, follows)),
		Tags:     rest.NewTagHandler(tagsvc.NewService(logger, tags)),
		Users:    rest.NewUserHandler(usersvc.NewService(logger, users, jwtMgr, authCfg)),
		Health:   rest.NewHealthHandler(pool, "test-version"),
	}

	router := rest.NewRouter(handlers, rest.RouterDeps{
		Logger:      logger,
		Validator:   jwtMgr,
		RateLimiter: middleware.NewRateLimiter(time.Minute),
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
		API: apiCfg,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// apiRequest sends a JSON request to /api and returns status + decoded body.
// Pass an empty token for anonymous requests and nil body for bodyless ones.
func (ts *testServer) apiRequest(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+"/api"+path, reader)
	require.NoError(t, err, "create request")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result), "decode response")
	return resp.StatusCode, result
}

// registerUser registers a fresh user through the API and returns its token.
func registerUser(t *testing.T, ts *testServer, username string) string {
	t.Helper()

	status, body := ts.apiRequest(t, http.MethodPost, "/users", "", map[string]any{
		"user": map[string]any{
			"username": username,
			"email":    fmt.Sprintf("%s@example.com", username),
			"password": "password123",
		},
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", username, body)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "expected user object in response")
	token, ok := user["token"].(string)
	require.True(t, ok, "expected token string")
	require.NotEmpty(t, token)
	return token
}

// createArticle creates an article as the token's user and returns its slug.
func createArticle(t *testing.T, ts *testServer, token, title string, tags []string) string {
	t.Helper()

	status, body := ts.apiRequest(t, http.MethodPost, "/articles", token, map[string]any{
		"article": map[string]any{
			"title":       title,
			"description": "description of " + title,
			"body":        "body of " + title,
			"tagList":     tags,
		},
	})
	require.Equal(t, http.StatusCreated, status, "create article: %v", body)

	article, ok := body["article"].(map[string]any)
	require.True(t, ok, "expected article object in response")
	slug, ok := article["slug"].(string)
	require.True(t, ok, "expected slug string")
	return slug
}

// articleObj extracts the "article" object from a response body.
func articleObj(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	article, ok := body["article"].(map[string]any)
	require.True(t, ok, "expected article object, got %v", body)
	return article
}

// articleList extracts the "articles" array from a response body.
func articleList(t *testing.T, body map[string]any) []any {
	t.Helper()
	articles, ok := body["articles"].([]any)
	require.True(t, ok, "expected articles array, got %v", body)
	return articles
}
