package repositories

import (
	"context"
	"fmt"

	"pdfhub/internal/database"
	"pdfhub/internal/models"

	"go.uber.org/zap"
)

type commentRepository struct {
	*BaseRepository
}

// NewCommentRepository creates a Postgres-backed comment repository.
func NewCommentRepository(db *database.Manager, logger *zap.Logger) CommentRepository {
	return &commentRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (file_id, author_id, guest_name, parent_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		comment.FileID,
		comment.AuthorID,
		comment.GuestName,
		comment.ParentID,
		comment.Content,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		if r.IsForeignKeyViolation(err) {
			return fmt.Errorf("comment references missing row: %w", err)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT c.id, c.file_id, c.author_id, c.guest_name, c.parent_id,
			c.content, c.created_at, COALESCE(u.name, '')
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`

	var c models.Comment
	err := r.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.FileID, &c.AuthorID, &c.GuestName, &c.ParentID,
		&c.Content, &c.CreatedAt, &c.AuthorName,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// ListByFile returns every comment on a file with the author name joined,
// oldest first. Threading happens in the service layer.
func (r *commentRepository) ListByFile(ctx context.Context, fileID int64) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.file_id, c.author_id, c.guest_name, c.parent_id,
			c.content, c.created_at, COALESCE(u.name, '')
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.file_id = $1
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.QueryContext(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.FileID, &c.AuthorID, &c.GuestName, &c.ParentID,
			&c.Content, &c.CreatedAt, &c.AuthorName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *commentRepository) CountByFile(ctx context.Context, fileID int64) (int64, error) {
	return r.GetTotalCount(ctx, `SELECT COUNT(*) FROM comments WHERE file_id = $1`, fileID)
}
