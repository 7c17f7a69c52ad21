package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"pdfhub/internal/config"
	"pdfhub/internal/contextutils"
	"pdfhub/internal/middleware"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// AuthController handles account and session endpoints.
type AuthController struct {
	auth            services.AuthService
	authMiddleware  *middleware.AuthMiddleware
	responseBuilder *response.Builder
	oauthConfig     *oauth2.Config
	logger          *zap.Logger
}

// NewAuthController creates a new auth controller.
func NewAuthController(
	auth services.AuthService,
	authMiddleware *middleware.AuthMiddleware,
	responseBuilder *response.Builder,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthController {
	var oauthConfig *oauth2.Config
	if cfg.GoogleClientID != "" {
		oauthConfig = &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     google.Endpoint,
		}
	}

	return &AuthController{
		auth:            auth,
		authMiddleware:  authMiddleware,
		responseBuilder: responseBuilder,
		oauthConfig:     oauthConfig,
		logger:          logger,
	}
}

// SignUp handles POST /api/v1/auth/signup
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	result, err := c.auth.SignUp(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.authMiddleware.SetSessionCookie(w, result.Token, result.ExpiresAt)
	c.responseBuilder.WriteCreated(w, r, result)
}

// SignIn handles POST /api/v1/auth/signin
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req services.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	result, err := c.auth.SignIn(r.Context(), &req)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.authMiddleware.SetSessionCookie(w, result.Token, result.ExpiresAt)
	c.responseBuilder.WriteSuccess(w, r, result)
}

// SignOut handles POST /api/v1/auth/signout
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	c.authMiddleware.ClearSessionCookie(w)
	c.responseBuilder.WriteNoContent(w, r)
}

// Me handles GET /api/v1/auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())
	user, err := c.auth.GetUser(r.Context(), userID)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}
	c.responseBuilder.WriteSuccess(w, r, user)
}

// GoogleLogin handles GET /api/v1/auth/google
func (c *AuthController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if c.oauthConfig == nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("google sign-in is not configured", nil))
		return
	}

	state := contextutils.GetRequestID(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	url := c.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /api/v1/auth/google/callback
func (c *AuthController) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if c.oauthConfig == nil {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("google sign-in is not configured", nil))
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("invalid oauth state"))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		c.responseBuilder.WriteError(w, r, services.NewValidationError("missing authorization code", nil))
		return
	}

	token, err := c.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		c.logger.Warn("Google token exchange failed", zap.Error(err))
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("google sign-in failed"))
		return
	}

	profile, err := c.fetchGoogleProfile(r.Context(), token)
	if err != nil {
		c.logger.Warn("Failed to fetch google profile", zap.Error(err))
		c.responseBuilder.WriteError(w, r, services.NewUnauthorizedError("google sign-in failed"))
		return
	}

	result, err := c.auth.SignInWithGoogle(r.Context(), profile)
	if err != nil {
		c.responseBuilder.WriteError(w, r, err)
		return
	}

	c.authMiddleware.SetSessionCookie(w, result.Token, result.ExpiresAt)
	c.responseBuilder.WriteSuccess(w, r, result)
}

func (c *AuthController) fetchGoogleProfile(ctx context.Context, token *oauth2.Token) (*services.GoogleProfile, error) {
	client := c.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var profile services.GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
