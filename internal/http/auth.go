package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domainauth "github.com/pulsewatch/pulsewatch/internal/domain/auth"
	"github.com/pulsewatch/pulsewatch/internal/ports"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext returns the authenticated identity attached by
// RequireAuth, or false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(domainauth.Identity)
	return id, ok
}

// withIdentity attaches an identity to the context. Exposed to tests via
// helpers in this package only.
func withIdentity(ctx context.Context, id domainauth.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// RequireAuth returns a middleware that verifies the bearer token on each
// request and attaches the resulting identity to the request context.
func RequireAuth(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("missing bearer token"),
				})
				return
			}

			id, err := verifier.Verify(r.Context(), token)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "invalid_token",
					Err:     errors.New("token verification failed"),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// accountID pulls the account from the request context. Handlers behind
// RequireAuth can rely on it being present; a missing identity is a routing
// bug and renders as 401.
func accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok || id.AccountID == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("no authenticated account"),
		})
		return "", false
	}
	return id.AccountID, true
}
