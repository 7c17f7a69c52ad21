package router

import (
	"net/http"
	"time"

	"pdfhub/internal/config"
	"pdfhub/internal/database"
	"pdfhub/internal/events"
	"pdfhub/internal/handlers/api/v1/auth"
	"pdfhub/internal/handlers/api/v1/comments"
	"pdfhub/internal/handlers/api/v1/feed"
	"pdfhub/internal/handlers/api/v1/files"
	"pdfhub/internal/handlers/api/v1/likes"
	"pdfhub/internal/handlers/api/v1/ws"
	"pdfhub/internal/middleware"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Dependencies bundles everything the router needs. All wiring is explicit;
// nothing is resolved from globals.
type Dependencies struct {
	Services        *services.Collection
	AuthMiddleware  *middleware.AuthMiddleware
	ResponseBuilder *response.Builder
	Bus             *events.Bus
	DB              *database.Manager
	Config          *config.Config
	Logger          *zap.Logger
}

// New builds the HTTP handler tree for the service.
func New(deps *Dependencies) http.Handler {
	r := mux.NewRouter()

	registerSystemRoutes(r, deps)
	registerAPIv1Routes(r, deps)

	// ===============================
	// GLOBAL MIDDLEWARE CHAIN
	// ===============================
	// The response builder is injected before Recovery so recovered panics
	// can still produce a structured error body.
	return middleware.Chain(r,
		middleware.RequestID(deps.Logger),
		middleware.Logging(0),
		response.Middleware(deps.ResponseBuilder),
		middleware.Recovery(deps.Logger),
		middleware.SecureHeaders,
		middleware.CORS(deps.Config.Server.TrustedOrigins),
	)
}

func registerSystemRoutes(r *mux.Router, deps *Dependencies) {
	r.HandleFunc("/health", healthHandler(deps)).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(
		middleware.SwaggerHandler(middleware.DefaultSwaggerConfig()),
	)
}

func registerAPIv1Routes(r *mux.Router, deps *Dependencies) {
	authController := auth.NewAuthController(
		deps.Services.Auth, deps.AuthMiddleware, deps.ResponseBuilder, deps.Config.Auth, deps.Logger)
	fileController := files.NewFileController(
		deps.Services.Files, deps.ResponseBuilder, deps.Logger)
	commentController := comments.NewCommentController(
		deps.Services.Comments, deps.ResponseBuilder, deps.Logger)
	likeController := likes.NewLikeController(
		deps.Services.Likes, deps.ResponseBuilder, deps.Logger)
	feedController := feed.NewFeedController(
		deps.Services.Feed, deps.ResponseBuilder, deps.Logger)
	wsController := ws.NewWSController(
		deps.Services.Files, deps.Bus, deps.ResponseBuilder, deps.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	require := func(h http.HandlerFunc) http.Handler { return deps.AuthMiddleware.RequireAuth(h) }
	optional := func(h http.HandlerFunc) http.Handler { return deps.AuthMiddleware.OptionalAuth(h) }

	// ===============================
	// ACCOUNTS AND SESSIONS
	// ===============================
	api.HandleFunc("/auth/signup", authController.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", authController.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/signout", authController.SignOut).Methods(http.MethodPost)
	api.Handle("/auth/me", require(authController.Me)).Methods(http.MethodGet)
	api.HandleFunc("/auth/google", authController.GoogleLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/google/callback", authController.GoogleCallback).Methods(http.MethodGet)

	// ===============================
	// DOCUMENTS
	// ===============================
	api.Handle("/files", require(fileController.Upload)).Methods(http.MethodPost)
	api.Handle("/files", require(fileController.List)).Methods(http.MethodGet)
	api.Handle("/files/{id}", optional(fileController.Get)).Methods(http.MethodGet)
	api.Handle("/files/{id}", require(fileController.Delete)).Methods(http.MethodDelete)
	api.Handle("/files/{id}/visibility", require(fileController.SetVisibility)).Methods(http.MethodPatch)
	api.Handle("/files/{id}/download", optional(fileController.Download)).Methods(http.MethodGet)

	// ===============================
	// SHARE LINKS
	// ===============================
	api.Handle("/files/{id}/share", require(fileController.CreateShareLink)).Methods(http.MethodPost)
	api.Handle("/files/{id}/share", require(fileController.RevokeShareLink)).Methods(http.MethodDelete)
	api.HandleFunc("/share/{token}", fileController.ResolveShareToken).Methods(http.MethodGet)
	api.HandleFunc("/share/{token}/download", fileController.DownloadShared).Methods(http.MethodGet)

	// ===============================
	// LIKES AND COMMENTS
	// ===============================
	api.Handle("/files/{id}/like", require(likeController.Toggle)).Methods(http.MethodPost)
	api.Handle("/files/{id}/like", optional(likeController.Status)).Methods(http.MethodGet)
	api.Handle("/files/{id}/comments", optional(commentController.GetThread)).Methods(http.MethodGet)
	api.Handle("/files/{id}/comments", optional(commentController.Post)).Methods(http.MethodPost)

	// ===============================
	// FEED AND LIVE ACTIVITY
	// ===============================
	api.Handle("/feed", optional(feedController.GetFeed)).Methods(http.MethodGet)
	r.Handle("/ws/files/{id}", optional(wsController.Subscribe)).Methods(http.MethodGet)
}

// healthHandler reports service and database health.
func healthHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "healthy"
		dbStatus := "up"

		if err := deps.DB.Ping(r.Context()); err != nil {
			status = "degraded"
			dbStatus = "down"
			deps.Logger.Warn("Health check database ping failed", zap.Error(err))
		}

		stats := deps.DB.Stats()
		deps.ResponseBuilder.WriteSuccess(w, r, map[string]interface{}{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"database": map[string]interface{}{
				"status":           dbStatus,
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
			},
		})
	}
}
