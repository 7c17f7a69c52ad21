package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdfhub/internal/config"
	"pdfhub/internal/contextutils"
	"pdfhub/internal/models"
	"pdfhub/internal/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubAuthService accepts exactly one token.
type stubAuthService struct {
	validToken string
	claims     *services.TokenClaims
}

func (s *stubAuthService) SignUp(context.Context, *services.SignUpRequest) (*services.AuthResult, error) {
	return nil, nil
}

func (s *stubAuthService) SignIn(context.Context, *services.SignInRequest) (*services.AuthResult, error) {
	return nil, nil
}

func (s *stubAuthService) GetUser(context.Context, int64) (*models.User, error) {
	return nil, nil
}

func (s *stubAuthService) SignInWithGoogle(context.Context, *services.GoogleProfile) (*services.AuthResult, error) {
	return nil, nil
}

func (s *stubAuthService) VerifyToken(token string) (*services.TokenClaims, error) {
	if token == s.validToken {
		return s.claims, nil
	}
	return nil, services.NewUnauthorizedError("invalid or expired session")
}

func newAuthFixture() *AuthMiddleware {
	auth := &stubAuthService{
		validToken: "good-token",
		claims:     &services.TokenClaims{UserID: 42, Email: "ada@example.com"},
	}
	cfg := config.AuthConfig{SessionCookieName: "session_token"}
	return NewAuthMiddleware(auth, cfg, zap.NewNop())
}

func userIDProbe(captured *int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = contextutils.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthWithCookie(t *testing.T) {
	am := newAuthFixture()

	var userID int64
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "good-token"})
	rec := httptest.NewRecorder()

	am.RequireAuth(userIDProbe(&userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)
}

func TestRequireAuthWithBearerHeader(t *testing.T) {
	am := newAuthFixture()

	var userID int64
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	am.RequireAuth(userIDProbe(&userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	am := newAuthFixture()

	var userID int64
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	rec := httptest.NewRecorder()

	am.RequireAuth(userIDProbe(&userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, userID)
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	am := newAuthFixture()

	var userID int64
	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "forged"})
	rec := httptest.NewRecorder()

	am.RequireAuth(userIDProbe(&userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthAnonymousPassesThrough(t *testing.T) {
	am := newAuthFixture()

	var userID int64 = -1
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	rec := httptest.NewRecorder()

	am.OptionalAuth(userIDProbe(&userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, userID, "anonymous request should carry user ID 0")
}

func TestOptionalAuthAttachesUser(t *testing.T) {
	am := newAuthFixture()

	var userID int64
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "good-token"})
	rec := httptest.NewRecorder()

	am.OptionalAuth(userIDProbe(&userID)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), userID)
}

func TestClearSessionCookie(t *testing.T) {
	am := newAuthFixture()
	rec := httptest.NewRecorder()

	am.ClearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, "session_token", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
