package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/otcheredev/hms-backend/internal/auth"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/rs/zerolog/log"
)

type contextKey string

const principalKey contextKey = "principal"

// Client-visible authentication failures are deliberately uniform; the
// specific cause is only logged server-side.
const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
	msgForbidden    = "Access denied. Insufficient permissions."
)

// Authenticate resolves a Principal from the Authorization header. Requests
// without a verifiable bearer token are rejected with 401 before any
// handler logic runs.
func Authenticate(codec *auth.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				AuthFailures.WithLabelValues("missing_token").Inc()
				writeError(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				log.Warn().Str("path", r.URL.Path).Msg("Malformed Authorization header")
				AuthFailures.WithLabelValues("malformed_header").Inc()
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			claims, err := codec.Verify(strings.TrimSpace(raw))
			if err != nil {
				reason := "invalid_token"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired_token"
				}
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Token verification failed")
				AuthFailures.WithLabelValues(reason).Inc()
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			principal := models.Principal{
				UserID:     claims.UserID,
				TenantID:   claims.TenantID,
				HospitalID: claims.HospitalID,
				Role:       claims.Role,
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole permits the request only when the resolved Principal holds
// one of the allowed roles. It assumes Authenticate ran upstream.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, msgNoToken)
				return
			}

			for _, role := range allowed {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn().
				Str("user_id", principal.UserID.String()).
				Str("tenant_id", principal.TenantID).
				Str("role", string(principal.Role)).
				Str("path", r.URL.Path).
				Msg("Role not permitted for route")
			writeError(w, http.StatusForbidden, msgForbidden)
		})
	}
}

// GetPrincipal extracts the authenticated Principal from context. It is the
// only way to obtain one; no other code path may fabricate a Principal.
func GetPrincipal(ctx context.Context) (models.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(models.Principal)
	return principal, ok
}

// WithPrincipal returns a context carrying the given principal. Only used
// by tests that exercise handlers below the middleware chain.
func WithPrincipal(ctx context.Context, principal models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
