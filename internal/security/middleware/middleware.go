package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/hoteldesk/internal/access"
	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/security/auth"
	"github.com/yourorg/hoteldesk/internal/security/ratelimit"
)

type claimsContextKey struct{}

// publicPaths never require a session token.
var publicPaths = map[string]bool{
	"/api/login": true,
	"/healthz":   true,
	"/readyz":    true,
	"/metrics":   true,
}

// ClaimsFromContext returns the session claims attached by JWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims, ok
}

// JWTMiddleware validates the bearer token, rejects revoked sessions and
// attaches the claims to the request context. The session store is
// optional; without one, logout revocation is not enforced.
func JWTMiddleware(tm *auth.TokenManager, sessions domain.SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				// Browser websocket clients cannot set headers; allow ?token=
				if t := r.URL.Query().Get("token"); t != "" {
					authHeader = "Bearer " + t
				}
			}
			if authHeader == "" {
				http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				http.Error(w, `{"error":"invalid auth"}`, http.StatusUnauthorized)
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			if sessions != nil && claims.ID != "" {
				revoked, err := sessions.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					// Session store trouble fails open; the token signature
					// and expiry were already verified.
					log.Warn("session revocation check failed",
						slog.String("error", err.Error()))
				} else if revoked {
					http.Error(w, `{"error":"session revoked"}`, http.StatusUnauthorized)
					return
				}
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAction gates a route on the access policy. The role comes from the
// session claims; a missing session or denied action yields 403 and an
// audit record.
func RequireAction(policy *access.Policy, action access.Action, auditLog *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
				return
			}

			role := access.ParseRole(claims.Role)
			if !policy.Allows(role, action) {
				if auditLog != nil {
					auditLog.LogDenied(r.Context(), claims.UserID, claims.Username, action.String())
				}
				http.Error(w, `{"error":"permission denied"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits request rates per authenticated user, falling
// back to the remote address for public endpoints.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if claims, ok := ClaimsFromContext(r.Context()); ok {
				key = "user:" + strconv.Itoa(claims.UserID)
			}

			if !limiter.Allow(key) {
				log.Warn("rate limit exceeded", slog.String("key", key), slog.String("path", r.URL.Path))
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
