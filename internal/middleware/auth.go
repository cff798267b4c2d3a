package middleware

import (
	"context"
	"net/http"

	"deposito626-api/internal/model"
	"deposito626-api/internal/service"
	"deposito626-api/pkg/apierror"
)

// SessionKey is the key for storing the admin session in request context.
const SessionKey contextKey = "admin_session"

// AuthConfig holds configuration for the admin auth middleware.
type AuthConfig struct {
	Sessions *service.SessionService
}

// NewAdminAuth creates middleware protecting the admin routes. Requests
// must carry a valid X-Token session header; everything else is
// rejected before reaching a handler. The login endpoint itself is
// mounted outside this middleware.
func NewAdminAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Sessions == nil {
				writeError(w, apierror.ServiceUnavailable("admin access is not configured"))
				return
			}

			token := r.Header.Get("X-Token")
			if token == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use the X-Token header."))
				return
			}

			session, err := cfg.Sessions.Validate(r.Context(), token)
			if err != nil {
				writeError(w, apierror.Unauthorized("Invalid or expired session"))
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}

// GetAdminSession retrieves the admin session from request context.
func GetAdminSession(ctx context.Context) *model.AdminSession {
	if s, ok := ctx.Value(SessionKey).(*model.AdminSession); ok {
		return s
	}
	return nil
}
