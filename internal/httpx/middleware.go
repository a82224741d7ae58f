package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/milsabores/storefront/internal/session"
)

type ctxKey int

const sessionCtxKey ctxKey = iota

// Public paths are served unauthenticated: login, registration and the
// public catalog reads. Everything else gets the bearer session attached
// when one is presented; absent or invalid credentials are not blocked
// here — protected handlers reject on their own.
var publicPrefixes = []string{
	"/auth/login",
	"/auth/register",
	"/products",
	"/healthz",
}

func PublicPath(path string) bool {
	for _, p := range publicPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Sessions resolves bearer tokens; satisfied by *session.Manager.
type Sessions interface {
	Lookup(ctx context.Context, token string) (session.Session, error)
}

func Auth(sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if token := bearerToken(r); token != "" {
				if sess, err := sessions.Lookup(r.Context(), token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionCtxKey, sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}

func SessionFrom(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey).(session.Session)
	return sess, ok
}

// requireSession writes a 401 when no session rode in with the request.
func requireSession(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
	}
	return sess, ok
}
