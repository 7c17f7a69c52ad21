package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"go.uber.org/zap"
)

// Recovery recovers from handler panics, logs the stack trace and returns a
// JSON error response.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestLogger := GetRequestLogger(r.Context())
					requestLogger.Error("Panic recovered",
						zap.Any("panic", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()),
					)

					err := services.NewInternalError("unexpected server error", fmt.Errorf("panic: %v", rec))
					if builder := response.GetBuilder(r.Context()); builder != nil {
						builder.WriteError(w, r, err)
						return
					}
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
