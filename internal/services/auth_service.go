package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pdfhub/internal/config"
	"pdfhub/internal/models"
	"pdfhub/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users    repositories.UserRepository
	cfg      config.AuthConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthService creates the auth service.
func NewAuthService(users repositories.UserRepository, cfg config.AuthConfig, logger *zap.Logger) AuthService {
	return &authService{
		users:    users,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
}

// SignUp registers a new account and returns a session token.
func (s *authService) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid signup request", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, NewConflictError("an account with this email already exists", "EMAIL_TAKEN")
		}
		return nil, NewStoreFailureError("failed to create account", err)
	}

	s.logger.Info("Account created",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	return s.issueToken(user)
}

// SignIn authenticates an existing account and returns a session token.
func (s *authService) SignIn(ctx context.Context, req *SignInRequest) (*AuthResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, NewValidationError("invalid signin request", err)
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, NewStoreFailureError("failed to load account", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	return s.issueToken(user)
}

// GetUser returns the account behind a verified token.
func (s *authService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, NewStoreFailureError("failed to load account", err)
	}
	if user == nil {
		return nil, NewNotFoundError("account not found")
	}
	return user, nil
}

// SignInWithGoogle signs in a Google profile, creating or linking the
// account as needed. Matching is by Google subject first, then by email.
func (s *authService) SignInWithGoogle(ctx context.Context, profile *GoogleProfile) (*AuthResult, error) {
	if profile.Sub == "" || profile.Email == "" {
		return nil, NewValidationError("incomplete google profile", nil)
	}

	user, err := s.users.GetByGoogleID(ctx, profile.Sub)
	if err != nil {
		return nil, NewStoreFailureError("failed to load account", err)
	}

	if user == nil {
		user, err = s.users.GetByEmail(ctx, normalizeEmail(profile.Email))
		if err != nil {
			return nil, NewStoreFailureError("failed to load account", err)
		}
		if user != nil {
			if err := s.users.LinkGoogleID(ctx, user.ID, profile.Sub); err != nil {
				return nil, NewStoreFailureError("failed to link google account", err)
			}
		}
	}

	if user == nil {
		sub := profile.Sub
		user = &models.User{
			Name:     profile.Name,
			Email:    normalizeEmail(profile.Email),
			GoogleID: &sub,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repositories.ErrDuplicateEmail) {
				return nil, NewConflictError("an account with this email already exists", "EMAIL_TAKEN")
			}
			return nil, NewStoreFailureError("failed to create account", err)
		}
		s.logger.Info("Account created via google",
			zap.Int64("user_id", user.ID),
			zap.String("email", user.Email),
		)
	}

	return s.issueToken(user)
}

// VerifyToken parses and validates a session token.
func (s *authService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("invalid or expired session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewUnauthorizedError("invalid or expired session")
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return nil, NewUnauthorizedError("invalid or expired session")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)

	return &TokenClaims{
		UserID: int64(id),
		Name:   name,
		Email:  email,
	}, nil
}

func (s *authService) issueToken(user *models.User) (*AuthResult, error) {
	expiresAt := time.Now().Add(s.cfg.JWTExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, NewInternalError("failed to sign session token", err)
	}

	return &AuthResult{
		User:      user,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
