package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deposito626-api/internal/cache"
	"deposito626-api/internal/service"
)

func loginBody(password string) *strings.Reader {
	return strings.NewReader(`{"password":"` + password + `"}`)
}

func TestAdminLoginWithoutSessionService(t *testing.T) {
	// LOGIN_KEY unset means no session service; login must refuse
	// cleanly instead of panicking.
	h := NewAdminHandler(nil, nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", loginBody("anything"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminLogin(t *testing.T) {
	c := cache.NewMemoryCache()
	t.Cleanup(func() { c.Close() })
	sessions := service.NewSessionService(c, "topsecret")
	require.NotNil(t, sessions)
	h := NewAdminHandler(sessions, nil, nil, nil, nil, nil)

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", loginBody("wrong"))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("correct password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", loginBody("topsecret"))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), service.SessionTokenPrefix)
	})
}
