package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"pdfhub/internal/database"
	"pdfhub/internal/models"

	"go.uber.org/zap"
)

type fileRepository struct {
	*BaseRepository
}

// NewFileRepository creates a Postgres-backed file repository.
func NewFileRepository(db *database.Manager, logger *zap.Logger) FileRepository {
	return &fileRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const fileColumns = `
	id, original_name, stored_name, file_path, file_size, content_type,
	uploaded_by, share_token, is_public, download_count, created_at, updated_at`

func (r *fileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (
			original_name, stored_name, file_path, file_size, content_type,
			uploaded_by, is_public, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(ctx, query,
		file.OriginalName,
		file.StoredName,
		file.FilePath,
		file.FileSize,
		file.ContentType,
		file.UploadedBy,
		file.IsPublic,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

func (r *fileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM files WHERE id = $1`, fileColumns)
	return r.scanOne(r.QueryRowContext(ctx, query, id))
}

func (r *fileRepository) GetByShareToken(ctx context.Context, token string) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM files WHERE share_token = $1`, fileColumns)
	return r.scanOne(r.QueryRowContext(ctx, query, token))
}

func (r *fileRepository) ListByOwner(ctx context.Context, ownerID int64, search string, params models.PaginationParams) ([]*models.File, int64, error) {
	where := "uploaded_by = $1"
	args := []interface{}{ownerID}
	if search != "" {
		where += " AND original_name ILIKE $2"
		args = append(args, "%"+search+"%")
	}

	total, err := r.GetTotalCount(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM files WHERE %s`, where), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count files: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM files
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, fileColumns, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		file, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		files = append(files, file)
	}
	return files, total, rows.Err()
}

// ListPublic returns one slice of the public feed, newest first, with
// uploader identity and engagement counts resolved in a single query.
// Pass viewerID 0 for anonymous viewers. Callers request limit+1 rows to
// detect whether another page exists.
func (r *fileRepository) ListPublic(ctx context.Context, viewerID int64, limit, offset int) ([]*models.FeedEntry, error) {
	query := `
		SELECT
			f.id, f.original_name, f.file_size, f.content_type, f.is_public,
			f.download_count, f.created_at, f.updated_at,
			u.name, u.email,
			COALESCE(lc.cnt, 0) AS likes,
			COALESCE(cc.cnt, 0) AS comment_count,
			CASE WHEN vl.user_id IS NULL THEN FALSE ELSE TRUE END AS is_liked
		FROM files f
		JOIN users u ON u.id = f.uploaded_by
		LEFT JOIN (
			SELECT file_id, COUNT(*) AS cnt FROM likes GROUP BY file_id
		) lc ON lc.file_id = f.id
		LEFT JOIN (
			SELECT file_id, COUNT(*) AS cnt FROM comments GROUP BY file_id
		) cc ON cc.file_id = f.id
		LEFT JOIN likes vl ON vl.file_id = f.id AND vl.user_id = $1
		WHERE f.is_public
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, viewerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list public files: %w", err)
	}
	defer rows.Close()

	var entries []*models.FeedEntry
	for rows.Next() {
		var e models.FeedEntry
		if err := rows.Scan(
			&e.ID,
			&e.OriginalName,
			&e.FileSize,
			&e.ContentType,
			&e.IsPublic,
			&e.DownloadCount,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.UploadedBy.Name,
			&e.UploadedBy.Email,
			&e.Likes,
			&e.CommentCount,
			&e.IsLiked,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feed entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *fileRepository) SetShareToken(ctx context.Context, fileID int64, token *string) error {
	query := `UPDATE files SET share_token = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.ExecContext(ctx, query, token, fileID)
	if err != nil {
		return fmt.Errorf("failed to set share token: %w", err)
	}
	return r.requireRow(result)
}

func (r *fileRepository) SetVisibility(ctx context.Context, fileID int64, isPublic bool) error {
	query := `UPDATE files SET is_public = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.ExecContext(ctx, query, isPublic, fileID)
	if err != nil {
		return fmt.Errorf("failed to set visibility: %w", err)
	}
	return r.requireRow(result)
}

func (r *fileRepository) IncrementDownloadCount(ctx context.Context, fileID int64) error {
	query := `UPDATE files SET download_count = download_count + 1 WHERE id = $1`
	if _, err := r.ExecContext(ctx, query, fileID); err != nil {
		return fmt.Errorf("failed to increment download count: %w", err)
	}
	return nil
}

// Delete removes the file row together with its comments and likes in one
// transaction.
func (r *fileRepository) Delete(ctx context.Context, fileID int64) error {
	return r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE file_id = $1`, fileID); err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE file_id = $1`, fileID); err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, fileID)
		if err != nil {
			return fmt.Errorf("failed to delete file: %w", err)
		}
		return r.requireRow(result)
	})
}

func (r *fileRepository) requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *fileRepository) scanOne(row *sql.Row) (*models.File, error) {
	var f models.File
	err := row.Scan(
		&f.ID, &f.OriginalName, &f.StoredName, &f.FilePath, &f.FileSize,
		&f.ContentType, &f.UploadedBy, &f.ShareToken, &f.IsPublic,
		&f.DownloadCount, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return &f, nil
}

func (r *fileRepository) scanRow(rows *sql.Rows) (*models.File, error) {
	var f models.File
	err := rows.Scan(
		&f.ID, &f.OriginalName, &f.StoredName, &f.FilePath, &f.FileSize,
		&f.ContentType, &f.UploadedBy, &f.ShareToken, &f.IsPublic,
		&f.DownloadCount, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan file: %w", err)
	}
	return &f, nil
}
