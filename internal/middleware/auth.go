package middleware

import (
	"net/http"
	"strings"
	"time"

	"pdfhub/internal/config"
	"pdfhub/internal/contextutils"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"go.uber.org/zap"
)

// AuthMiddleware authenticates requests with the session token cookie or a
// Bearer header.
type AuthMiddleware struct {
	auth   services.AuthService
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthMiddleware creates the authentication middleware.
func NewAuthMiddleware(auth services.AuthService, cfg config.AuthConfig, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		cfg:    cfg,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid session.
func (am *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := am.verify(r)
		if err != nil {
			GetRequestLogger(r.Context()).Warn("Authentication failed",
				zap.String("path", r.URL.Path),
			)
			response.QuickError(w, r, err)
			return
		}

		ctx := contextutils.WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the user to the context when a valid session is
// present and lets the request through anonymously otherwise.
func (am *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := am.verify(r); err == nil {
			ctx := contextutils.WithUserID(r.Context(), claims.UserID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (am *AuthMiddleware) verify(r *http.Request) (*services.TokenClaims, error) {
	token := am.extractToken(r)
	if token == "" {
		return nil, services.NewUnauthorizedError("authentication required")
	}
	return am.auth.VerifyToken(token)
}

// extractToken reads the session token from the cookie, falling back to the
// Authorization header for non-browser clients.
func (am *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(am.cfg.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}

// SetSessionCookie writes the session token cookie on sign-in.
func (am *AuthMiddleware) SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     am.cfg.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   am.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session token cookie on sign-out.
func (am *AuthMiddleware) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     am.cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   am.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
