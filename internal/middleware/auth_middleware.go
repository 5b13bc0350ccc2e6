package middleware

import (
	"context"
	"net/http"

	"github.com/SuyashChavanOfficial/SKNCOE-NSS-Website-sub000/internal/auth"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the caller identity stored by the auth middleware.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(auth.Identity)
	return ident, ok
}

// RequireIdentity validates the token cookie and stores the caller identity
// in the request context. The identity is trusted from here on; nothing
// downstream re-checks credentials.
func RequireIdentity(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identityFromCookie(secret, r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is RequireIdentity plus an admin/super-admin gate.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := identityFromCookie(secret, r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !ident.CanManage() {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromCookie(secret []byte, r *http.Request) (auth.Identity, bool) {
	cookie, err := r.Cookie("token")
	if err != nil {
		return auth.Identity{}, false
	}
	ident, err := auth.ValidateToken(secret, cookie.Value)
	if err != nil {
		return auth.Identity{}, false
	}
	return ident, true
}
