package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// CookieName is the cookie the login handler sets and RequireAuth reads.
const CookieName = "token"

// contextKey is unexported so no other package can read or shadow the
// subject stored in the request context.
type contextKey string

const subjectKey contextKey = "subject"

var errNoToken = errors.New("auth: no token in request")

// Validator checks a raw token and returns its subject. *TokenService
// satisfies it, as does anything that narrows which subjects are allowed.
type Validator interface {
	Validate(token string) (string, error)
}

// RequireAuth rejects requests without a valid token with 401 and otherwise
// stores the token's subject in the request context.
//
// The token is looked up in this order:
//  1. Authorization: Bearer <jwt>  (CLI clients, curl)
//  2. the "token" HttpOnly cookie  (browsers, set by POST /auth/login)
//
// A present but invalid Authorization header is NOT retried against the
// cookie. The caller asked to be that identity; falling back would hide
// the mistake.
func RequireAuth(tokens Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := extractSubject(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="articles"`)
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated subject, or ("", false) for
// a request that did not pass through RequireAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok && s != ""
}

// TokenFromRequest returns the raw token carried by r, without validating it.
func TokenFromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, found := strings.Cut(h, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return "", false
		}
		token = strings.TrimSpace(token)
		return token, token != ""
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func extractSubject(r *http.Request, tokens Validator) (string, error) {
	token, ok := TokenFromRequest(r)
	if !ok {
		return "", errNoToken
	}
	return tokens.Validate(token)
}
