package docs

// Endpoint annotations for swag. Each stub only carries the godoc block;
// the handlers live in internal/handlers.

// SignUp godoc
// @Summary Register a new account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param signUpRequest body SignUpRequest true "Registration details"
// @Success 201 {object} APIResponse{data=AuthResponse} "Account created, session cookie set"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 409 {object} APIResponse "Email already registered"
// @Router /auth/signup [post]
func _() {}

// SignIn godoc
// @Summary Sign in with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param signInRequest body SignInRequest true "Credentials"
// @Success 200 {object} APIResponse{data=AuthResponse} "Session cookie set"
// @Failure 401 {object} APIResponse "Invalid credentials"
// @Router /auth/signin [post]
func _() {}

// SignOut godoc
// @Summary Clear the session cookie
// @Tags Authentication
// @Success 204 "Signed out"
// @Router /auth/signout [post]
func _() {}

// Me godoc
// @Summary Current principal
// @Tags Authentication
// @Produce json
// @Security SessionAuth
// @Success 200 {object} APIResponse{data=UserResponse}
// @Failure 401 {object} APIResponse "Not signed in"
// @Router /auth/me [get]
func _() {}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Authentication
// @Success 307 "Redirect to Google consent screen"
// @Router /auth/google [get]
func _() {}

// UploadFile godoc
// @Summary Upload a PDF document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security SessionAuth
// @Param file formData file true "PDF file, 10MB max"
// @Param isPublic formData boolean false "Publish to the feed"
// @Success 201 {object} APIResponse{data=FileResponse}
// @Failure 400 {object} APIResponse "Not a PDF or too large"
// @Router /files [post]
func _() {}

// ListFiles godoc
// @Summary List own documents
// @Tags Documents
// @Produce json
// @Security SessionAuth
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size, 50 max"
// @Param search query string false "Filter by original name"
// @Success 200 {object} APIResponse{data=[]FileResponse}
// @Router /files [get]
func _() {}

// GetFile godoc
// @Summary Document metadata
// @Tags Documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} APIResponse{data=FileResponse}
// @Failure 404 {object} APIResponse "Unknown or not visible"
// @Router /files/{id} [get]
func _() {}

// DeleteFile godoc
// @Summary Delete a document with its comments and likes
// @Tags Documents
// @Security SessionAuth
// @Param id path int true "Document ID"
// @Success 204 "Deleted"
// @Failure 404 {object} APIResponse "Unknown or not owned"
// @Router /files/{id} [delete]
func _() {}

// SetVisibility godoc
// @Summary Toggle public visibility
// @Tags Documents
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Document ID"
// @Success 200 {object} APIResponse{data=FileResponse}
// @Router /files/{id}/visibility [patch]
func _() {}

// DownloadFile godoc
// @Summary Download the document blob
// @Tags Documents
// @Produce application/pdf
// @Param id path int true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} APIResponse "Unknown or not visible"
// @Router /files/{id}/download [get]
func _() {}

// CreateShareLink godoc
// @Summary Create or fetch the share link
// @Tags Sharing
// @Produce json
// @Security SessionAuth
// @Param id path int true "Document ID"
// @Success 201 {object} APIResponse{data=ShareLinkResponse}
// @Router /files/{id}/share [post]
func _() {}

// RevokeShareLink godoc
// @Summary Revoke the share link
// @Tags Sharing
// @Security SessionAuth
// @Param id path int true "Document ID"
// @Success 204 "Revoked"
// @Router /files/{id}/share [delete]
func _() {}

// ResolveShareToken godoc
// @Summary Resolve a shared document
// @Tags Sharing
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} APIResponse{data=FileResponse}
// @Failure 404 {object} APIResponse "Unknown token"
// @Router /share/{token} [get]
func _() {}

// ToggleLike godoc
// @Summary Toggle the like for the signed-in user
// @Tags Likes
// @Produce json
// @Security SessionAuth
// @Param id path int true "Document ID"
// @Success 200 {object} APIResponse{data=LikeStatusResponse}
// @Failure 401 {object} APIResponse "Not signed in"
// @Router /files/{id}/like [post]
func _() {}

// LikeStatus godoc
// @Summary Current like state and total
// @Tags Likes
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} APIResponse{data=LikeStatusResponse}
// @Router /files/{id}/like [get]
func _() {}

// GetComments godoc
// @Summary Nested comment thread
// @Tags Comments
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} APIResponse{data=[]CommentNode}
// @Failure 404 {object} APIResponse "Unknown document"
// @Router /files/{id}/comments [get]
func _() {}

// PostComment godoc
// @Summary Post a comment as a user or guest
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param comment body PostCommentRequest true "Comment body; guestName required when anonymous"
// @Success 201 {object} APIResponse{data=CommentNode}
// @Failure 400 {object} APIResponse "Validation error"
// @Router /files/{id}/comments [post]
func _() {}

// GetFeed godoc
// @Summary Public feed, newest first
// @Tags Feed
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size, 50 max"
// @Success 200 {object} APIResponse{data=FeedPageResponse}
// @Router /feed [get]
func _() {}

// HealthCheck godoc
// @Summary Liveness and database health
// @Tags System
// @Produce json
// @Success 200 {object} APIResponse{data=HealthResponse}
// @Router /health [get]
func _() {}
