// Package docs holds the Swagger annotation sources for the HTTP API.
//
// The served OpenAPI document is generated with:
//
//	swag init -g cmd/server/main.go -o internal/docs
//
// Regenerate after changing routes or the types below. The generated
// docs.go registers the spec that /swagger/doc.json serves.
package docs

import "time"

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	RequestID string      `json:"request_id" example:"2f4e1a6c-9b7d-4c3e-8f21-6d5a0e9b1c44"`
	Timestamp time.Time   `json:"timestamp"`
	Version   string      `json:"version" example:"v1"`
}

// APIError describes a failed request.
type APIError struct {
	Type    string `json:"type" example:"VALIDATION_ERROR"`
	Message string `json:"message" example:"invalid request body"`
	Code    string `json:"code,omitempty" example:"EMAIL_TAKEN"`
}

// SignUpRequest registers a new account.
type SignUpRequest struct {
	Name     string `json:"name" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// SignInRequest authenticates an existing account.
type SignInRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"correct-horse-battery"`
}

// AuthResponse carries the signed-in principal and session expiry.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Ada Lovelace"`
	Email string `json:"email" example:"ada@example.com"`
}

// FileResponse is the public shape of an uploaded document.
type FileResponse struct {
	ID            int64     `json:"id" example:"7"`
	OriginalName  string    `json:"originalName" example:"report.pdf"`
	FileSize      int64     `json:"fileSize" example:"204800"`
	ContentType   string    `json:"contentType" example:"application/pdf"`
	IsPublic      bool      `json:"isPublic" example:"true"`
	ShareToken    *string   `json:"shareToken,omitempty"`
	DownloadCount int64     `json:"downloadCount" example:"12"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ShareLinkResponse is returned when a share link is created or fetched.
type ShareLinkResponse struct {
	ShareToken string `json:"shareToken" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	ShareURL   string `json:"shareUrl" example:"/api/v1/share/9f86d081..."`
}

// LikeStatusResponse reports the like state after a toggle or lookup.
type LikeStatusResponse struct {
	Liked      bool  `json:"liked" example:"true"`
	TotalLikes int64 `json:"totalLikes" example:"3"`
}

// CommentNode is one node of the nested comment forest.
type CommentNode struct {
	ID        int64         `json:"id" example:"5"`
	Content   string        `json:"content" example:"Nice doc"`
	Author    string        `json:"author" example:"Sam"`
	IsGuest   bool          `json:"isGuest" example:"true"`
	CreatedAt time.Time     `json:"createdAt"`
	Replies   []CommentNode `json:"replies"`
}

// PostCommentRequest creates a comment or a reply.
type PostCommentRequest struct {
	Content   string `json:"content" example:"Nice doc"`
	GuestName string `json:"guestName,omitempty" example:"Sam"`
	ParentID  *int64 `json:"parentId,omitempty" example:"5"`
}

// FeedPageResponse is one page of the public feed.
type FeedPageResponse struct {
	Entries []FeedEntryResponse `json:"entries"`
	HasMore bool                `json:"hasMore" example:"true"`
	Page    int                 `json:"page" example:"1"`
}

// FeedEntryResponse is one public document in the feed.
type FeedEntryResponse struct {
	ID           int64            `json:"id" example:"7"`
	OriginalName string           `json:"originalName" example:"report.pdf"`
	FileSize     int64            `json:"fileSize" example:"204800"`
	Likes        int64            `json:"likes" example:"3"`
	CommentCount int64            `json:"commentCount" example:"4"`
	IsLiked      bool             `json:"isLiked" example:"false"`
	UploadedBy   UploaderResponse `json:"uploadedBy"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// UploaderResponse identifies the feed entry's owner.
type UploaderResponse struct {
	Name  string `json:"name" example:"Ada Lovelace"`
	Email string `json:"email" example:"ada@example.com"`
}

// HealthResponse reports service and database health.
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
}
