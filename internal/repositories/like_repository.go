package repositories

import (
	"context"
	"fmt"

	"pdfhub/internal/database"

	"go.uber.org/zap"
)

type likeRepository struct {
	*BaseRepository
}

// NewLikeRepository creates a Postgres-backed like repository.
func NewLikeRepository(db *database.Manager, logger *zap.Logger) LikeRepository {
	return &likeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Insert records a like. The primary key on (user_id, file_id) makes the
// operation race-safe: a concurrent duplicate resolves to ON CONFLICT DO
// NOTHING and Insert reports false.
func (r *likeRepository) Insert(ctx context.Context, userID, fileID int64) (bool, error) {
	query := `
		INSERT INTO likes (user_id, file_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, file_id) DO NOTHING`

	result, err := r.ExecContext(ctx, query, userID, fileID)
	if err != nil {
		return false, fmt.Errorf("failed to insert like: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes a like and reports whether a row existed.
func (r *likeRepository) Delete(ctx context.Context, userID, fileID int64) (bool, error) {
	query := `DELETE FROM likes WHERE user_id = $1 AND file_id = $2`

	result, err := r.ExecContext(ctx, query, userID, fileID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID, fileID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND file_id = $2)`

	var exists bool
	if err := r.QueryRowContext(ctx, query, userID, fileID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

func (r *likeRepository) CountByFile(ctx context.Context, fileID int64) (int64, error) {
	return r.GetTotalCount(ctx, `SELECT COUNT(*) FROM likes WHERE file_id = $1`, fileID)
}
