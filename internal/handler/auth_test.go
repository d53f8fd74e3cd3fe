package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSeededAccounts(t *testing.T) {
	e := newTestApp(t)

	pair := login(t, e, "admin", "admin123")
	assert.NotEmpty(t, pair.Refresh.Token)

	login(t, e, "usuario", "user123")
}

func TestLoginFailureIsGeneric(t *testing.T) {
	e := newTestApp(t)

	// Wrong password and unknown username must be indistinguishable to
	// the client.
	wrongPass := doJSON(e, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "admin", "password": "nope",
	})
	unknownUser := doJSON(e, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "quien", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPass.Body.String(), unknownUser.Body.String())
}

func TestRegister(t *testing.T) {
	e := newTestApp(t)

	w := doJSON(e, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username": "nuevo", "password": "secreto",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeMap(t, w)
	user := resp["user"].(map[string]any)
	assert.Equal(t, "nuevo", user["username"])
	assert.Equal(t, "user", user["role"], "self-registration must not grant admin")

	dup := doJSON(e, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username": "nuevo", "password": "otrosecreto",
	})
	assert.Equal(t, http.StatusConflict, dup.Code)

	short := doJSON(e, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"username": "corto", "password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, short.Code)
}

func TestMe(t *testing.T) {
	e := newTestApp(t)
	pair := login(t, e, "usuario", "user123")

	w := doJSON(e, http.MethodGet, "/v1/me", pair.Access.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeMap(t, w)
	assert.Equal(t, "usuario", me["username"])
	assert.Equal(t, "user", me["role"])

	anon := doJSON(e, http.MethodGet, "/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	bad := doJSON(e, http.MethodGet, "/v1/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestRefreshRotation(t *testing.T) {
	e := newTestApp(t)
	pair := login(t, e, "usuario", "user123")

	w := doJSON(e, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": pair.Refresh.Token,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The old refresh token was revoked by the rotation.
	again := doJSON(e, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": pair.Refresh.Token,
	})
	assert.Equal(t, http.StatusUnauthorized, again.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	e := newTestApp(t)
	pair := login(t, e, "usuario", "user123")

	w := doJSON(e, http.MethodPost, "/v1/auth/logout", "", map[string]string{
		"refresh_token": pair.Refresh.Token,
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	refresh := doJSON(e, http.MethodPost, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": pair.Refresh.Token,
	})
	assert.Equal(t, http.StatusUnauthorized, refresh.Code)
}

func TestChangePassword(t *testing.T) {
	e := newTestApp(t)
	pair := login(t, e, "usuario", "user123")

	wrong := doJSON(e, http.MethodPut, "/v1/me/password", pair.Access.Token, map[string]string{
		"current_password": "incorrecta", "new_password": "nueva123",
	})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	short := doJSON(e, http.MethodPut, "/v1/me/password", pair.Access.Token, map[string]string{
		"current_password": "user123", "new_password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, short.Code)

	ok := doJSON(e, http.MethodPut, "/v1/me/password", pair.Access.Token, map[string]string{
		"current_password": "user123", "new_password": "nueva123",
	})
	require.Equal(t, http.StatusNoContent, ok.Code, ok.Body.String())

	old := doJSON(e, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "usuario", "password": "user123",
	})
	assert.Equal(t, http.StatusUnauthorized, old.Code)

	login(t, e, "usuario", "nueva123")
}
