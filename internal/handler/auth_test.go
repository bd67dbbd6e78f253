package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/articles/internal/apperror"
	"github.com/sakif/articles/internal/auth"
)

type fakeAuthenticator struct {
	password string
}

func (f fakeAuthenticator) Login(password string) (string, error) {
	if password != f.password {
		return "", apperror.Unauthorized("invalid credentials")
	}
	return "signed.jwt.token", nil
}

func newAuthRouter() http.Handler {
	h := NewAuthHandler(fakeAuthenticator{password: "hunter2"}, time.Hour, testLogger())
	r := chi.NewRouter()
	r.Mount("/auth", h.Routes())
	return r
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandleLogin(t *testing.T) {
	rec := do(t, newAuthRouter(), http.MethodPost, "/auth/login", `{"password":"hunter2"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"token":"signed.jwt.token","expires_in":3600}`, rec.Body.String())

	cookie := findCookie(rec.Result(), auth.CookieName)
	require.NotNil(t, cookie, "login must set the token cookie")
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.False(t, cookie.Secure, "plain http test request")
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	rec := do(t, newAuthRouter(), http.MethodPost, "/auth/login", `{"password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[ErrorResponse](t, rec).Error)
	assert.Nil(t, findCookie(rec.Result(), auth.CookieName))
}

func TestHandleLogin_MissingPassword(t *testing.T) {
	for _, body := range []string{`{}`, `{"password":""}`, ``, `[]`} {
		rec := do(t, newAuthRouter(), http.MethodPost, "/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
}

func TestHandleLogout(t *testing.T) {
	rec := do(t, newAuthRouter(), http.MethodPost, "/auth/logout", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookie := findCookie(rec.Result(), auth.CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0, "cookie must be expired")
}

// =========================================================================
// HEALTH
// =========================================================================

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name       string
		ping       pingFunc
		wantStatus int
		wantBody   string
	}{
		{"up", func(context.Context) error { return nil }, http.StatusOK, `{"status":"ok"}`},
		{"down", func(context.Context) error { return errors.New("closed") }, http.StatusServiceUnavailable, `{"status":"unavailable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.ping, testLogger())

			rec := do(t, http.HandlerFunc(h.HandleHealth), http.MethodGet, "/healthz", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
