package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmvaldes/setlist-helper/internal/config"
	"github.com/jmvaldes/setlist-helper/internal/database"
	"github.com/jmvaldes/setlist-helper/internal/handler"
	"github.com/jmvaldes/setlist-helper/internal/repository"
	"github.com/jmvaldes/setlist-helper/internal/router"
)

// newTestApp wires a full application against an in-memory database,
// with the default accounts seeded and no Redis/broker attached.
func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.Config{
		Env:            "test",
		DBPath:         ":memory:",
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 1,
		BcryptCost:     bcrypt.MinCost,
		SetlistScope:   config.ScopeOwner,
	}

	db, err := database.Open(cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	users := repository.NewUserRepo(db)
	require.NoError(t, users.SeedDefaults(context.Background(), cfg.BcryptCost))

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, repository.NewTokenRepo(db)), cfg.JWTSecret)
	router.RegisterSongs(e, handler.NewSongHandler(repository.NewSongRepo(db)), cfg.JWTSecret)
	router.RegisterSetlists(e, handler.NewSetlistHandler(cfg, repository.NewSetlistRepo(db)), cfg.JWTSecret)
	return e
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

type tokenPair struct {
	Access  struct{ Token string }
	Refresh struct{ Token string }
}

// login authenticates one of the seeded accounts and returns its tokens.
func login(t *testing.T, e *echo.Echo, username, password string) tokenPair {
	t.Helper()
	w := doJSON(e, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", username, w.Body.String())
	var pair tokenPair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Access.Token)
	return pair
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
