package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sakif/articles/internal/auth"
)

// Authenticator exchanges the admin password for a signed token.
// *service.AuthService implements it.
type Authenticator interface {
	Login(password string) (string, error)
}

// AuthHandler manages login and logout for the author account.
//
//   - HandleLogin  → check the password, return a JWT and set it as a cookie
//   - HandleLogout → clear the cookie
//
// The token is returned in the body as well so non-browser clients can send
// it as "Authorization: Bearer <token>".
type AuthHandler struct {
	auth   Authenticator
	ttl    time.Duration
	logger *slog.Logger
}

// NewAuthHandler creates an AuthHandler. ttl should match the lifetime of
// the tokens auth issues; it becomes the cookie Max-Age.
func NewAuthHandler(authenticator Authenticator, ttl time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: authenticator, ttl: ttl, logger: logger}
}

// LoginRequest is the body of POST /auth/login: {"password": "..."}.
type LoginRequest struct {
	Password string `json:"password"`
}

func (l *LoginRequest) Bind(r *http.Request) error {
	if l.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResponse carries the token and its lifetime in seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func (l *LoginResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// HandleLogin checks the admin password and issues a token.
//
// HTTP: POST /auth/login
//
// The cookie is HttpOnly so page scripts cannot read it, and SameSite=Lax so
// it is not sent on cross-site POSTs. Secure is set when the request itself
// arrived over TLS.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	data := &LoginRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := render.Bind(r, data); err != nil {
		writeRender(w, r, h.logger, errInvalidRequest(err))
		return
	}

	token, err := h.auth.Login(data.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeRender(w, r, h.logger, &LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.ttl.Seconds()),
	})
}

// HandleLogout clears the token cookie. A bearer token held by a client
// stays valid until it expires; there is no server-side revocation list.
//
// HTTP: POST /auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	render.NoContent(w, r)
}

// Routes returns the /auth sub-router. middlewares run before every auth
// route, e.g. the login rate limit.
func (h *AuthHandler) Routes(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares...)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	return r
}
