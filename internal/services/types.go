package services

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"pdfhub/internal/models"
)

// ===============================
// SERVICE INTERFACES
// ===============================

// AuthService manages accounts and session tokens.
type AuthService interface {
	SignUp(ctx context.Context, req *SignUpRequest) (*AuthResult, error)
	SignIn(ctx context.Context, req *SignInRequest) (*AuthResult, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	VerifyToken(token string) (*TokenClaims, error)
	SignInWithGoogle(ctx context.Context, profile *GoogleProfile) (*AuthResult, error)
}

// FileService manages document upload, metadata and sharing.
type FileService interface {
	Upload(ctx context.Context, req *UploadRequest) (*models.File, error)
	ListOwn(ctx context.Context, ownerID int64, search string, params models.PaginationParams) (*models.PaginatedResponse[*models.File], error)
	Get(ctx context.Context, fileID, viewerID int64) (*models.File, error)
	Delete(ctx context.Context, fileID, ownerID int64) error
	SetVisibility(ctx context.Context, fileID, ownerID int64, isPublic bool) (*models.File, error)
	Download(ctx context.Context, fileID, viewerID int64) (io.ReadCloser, *models.File, error)
	CreateShareLink(ctx context.Context, fileID, ownerID int64) (string, error)
	RevokeShareLink(ctx context.Context, fileID, ownerID int64) error
	ResolveShareToken(ctx context.Context, token string) (*models.File, error)
}

// CommentService manages threaded comments on documents.
type CommentService interface {
	GetThread(ctx context.Context, fileID int64) ([]*models.CommentNode, error)
	Post(ctx context.Context, req *PostCommentRequest) (*models.Comment, error)
}

// LikeService manages the per-user like ledger.
type LikeService interface {
	Toggle(ctx context.Context, userID, fileID int64) (*models.LikeStatus, error)
	Status(ctx context.Context, userID, fileID int64) (*models.LikeStatus, error)
}

// FeedService assembles the public document feed.
type FeedService interface {
	GetFeed(ctx context.Context, req *FeedRequest) (*models.FeedPage, error)
}

// ===============================
// REQUEST / RESPONSE TYPES
// ===============================

// SignUpRequest creates a new account.
type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// SignInRequest authenticates an existing account.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a signed-in principal with its session token.
type AuthResult struct {
	User      *models.User `json:"user"`
	Token     string       `json:"-"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// GoogleProfile is the subset of the Google userinfo payload we consume.
type GoogleProfile struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UploadRequest stores a new document for an owner.
type UploadRequest struct {
	OwnerID  int64
	File     *multipart.FileHeader
	IsPublic bool
}

// PostCommentRequest adds a comment to a document. Exactly one of AuthorID
// and GuestName must be provided; ParentID nests the comment under an
// existing one.
type PostCommentRequest struct {
	FileID    int64  `json:"-"`
	AuthorID  *int64 `json:"-"`
	GuestName string `json:"guestName" validate:"omitempty,min=1,max=100"`
	ParentID  *int64 `json:"parentId"`
	Content   string `json:"content" validate:"required"`
}

// FeedRequest asks for one page of the public feed. ViewerID 0 means
// anonymous.
type FeedRequest struct {
	Page     int   `json:"page" validate:"omitempty,min=1"`
	PageSize int   `json:"pageSize" validate:"omitempty,min=1,max=50"`
	ViewerID int64 `json:"-"`
}
