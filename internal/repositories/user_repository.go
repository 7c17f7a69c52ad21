package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"pdfhub/internal/database"
	"pdfhub/internal/models"

	"go.uber.org/zap"
)

type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a Postgres-backed user repository.
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// ErrDuplicateEmail is returned when the email unique constraint fires.
var ErrDuplicateEmail = fmt.Errorf("email already registered")

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, google_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		nullString(user.PasswordHash),
		user.GoogleID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if r.IsUniqueViolation(err, "users_email_key") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return r.getBy(ctx, "google_id = $1", googleID)
}

func (r *userRepository) LinkGoogleID(ctx context.Context, userID int64, googleID string) error {
	query := `UPDATE users SET google_id = $1, updated_at = NOW() WHERE id = $2`
	if _, err := r.ExecContext(ctx, query, googleID, userID); err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	return nil
}

func (r *userRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, COALESCE(password_hash, ''), google_id, created_at, updated_at
		FROM users WHERE %s`, where)

	var user models.User
	err := r.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.GoogleID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
