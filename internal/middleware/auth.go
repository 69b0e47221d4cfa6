package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mindmosaic/backend/internal/auth"
	"github.com/mindmosaic/backend/internal/http/respond"
	"github.com/mindmosaic/backend/internal/models"
)

type identityContextKey struct{}

// RequireAuth wraps a protected handler. It rejects requests without a usable
// Bearer token before the handler runs, and otherwise injects the verified
// identity into the request context. All verification failures look the same
// to the client.
func RequireAuth(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		identity, err := tokens.Verify(token)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
		next(w, r.WithContext(ctx))
	}
}

// IdentityFromContext extracts the identity injected by RequireAuth.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(models.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
