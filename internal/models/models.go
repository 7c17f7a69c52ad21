package models

import "time"

// ===============================
// CORE ENTITIES
// ===============================

// User represents a registered account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	GoogleID     *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// File represents an uploaded PDF document. FilePath is the internal
// storage location and never leaves the server.
type File struct {
	ID            int64     `json:"id"`
	OriginalName  string    `json:"originalName"`
	StoredName    string    `json:"-"`
	FilePath      string    `json:"-"`
	FileSize      int64     `json:"fileSize"`
	ContentType   string    `json:"contentType"`
	UploadedBy    int64     `json:"uploadedBy"`
	ShareToken    *string   `json:"shareToken,omitempty"`
	IsPublic      bool      `json:"isPublic"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Comment is a single stored comment row. Exactly one of AuthorID and
// GuestName is set.
type Comment struct {
	ID         int64     `json:"id"`
	FileID     int64     `json:"fileId"`
	AuthorID   *int64    `json:"authorId,omitempty"`
	GuestName  *string   `json:"guestName,omitempty"`
	ParentID   *int64    `json:"parentId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	AuthorName string    `json:"-"` // joined from users for registered authors
}

// IsGuest reports whether the comment was left without an account.
func (c *Comment) IsGuest() bool {
	return c.AuthorID == nil
}

// DisplayAuthor returns the name shown next to the comment.
func (c *Comment) DisplayAuthor() string {
	if c.AuthorID != nil {
		return c.AuthorName
	}
	if c.GuestName != nil {
		return *c.GuestName
	}
	return ""
}

// Like records that a user liked a file. One row per (user, file).
type Like struct {
	UserID    int64     `json:"userId"`
	FileID    int64     `json:"fileId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ===============================
// VIEW MODELS
// ===============================

// CommentNode is one node of the nested comment forest returned to clients.
type CommentNode struct {
	ID        int64          `json:"id"`
	Content   string         `json:"content"`
	Author    string         `json:"author"`
	IsGuest   bool           `json:"isGuest"`
	CreatedAt time.Time      `json:"createdAt"`
	Replies   []*CommentNode `json:"replies"`
}

// Uploader is the subset of account data exposed on feed entries.
type Uploader struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FeedEntry is a public document enriched with engagement counts for a
// particular viewer. The internal storage path is deliberately absent.
type FeedEntry struct {
	ID            int64     `json:"id"`
	OriginalName  string    `json:"originalName"`
	FileSize      int64     `json:"fileSize"`
	ContentType   string    `json:"contentType"`
	IsPublic      bool      `json:"isPublic"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UploadedBy    Uploader  `json:"uploadedBy"`
	Likes         int64     `json:"likes"`
	CommentCount  int64     `json:"commentCount"`
	IsLiked       bool      `json:"isLiked"`
}

// FeedPage is one page of the public feed.
type FeedPage struct {
	Entries []*FeedEntry `json:"entries"`
	HasMore bool         `json:"hasMore"`
	Page    int          `json:"page"`
}

// LikeStatus is the result of a like toggle or lookup.
type LikeStatus struct {
	Liked      bool  `json:"liked"`
	TotalLikes int64 `json:"totalLikes"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams carries offset pagination inputs.
type PaginationParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Offset   int    `json:"-"`
	Sort     string `json:"sort,omitempty"`
	Order    string `json:"order,omitempty"`
}

// PaginationMeta describes the position of a page within a result set.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// PaginatedResponse wraps a page of results with its metadata.
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPaginationMeta derives metadata from params and a total count.
func NewPaginationMeta(params PaginationParams, total int64) PaginationMeta {
	totalPages := int((total + int64(params.PageSize) - 1) / int64(params.PageSize))
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
