package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SwaggerConfig controls how the API documentation UI is mounted.
type SwaggerConfig struct {
	// SpecURL is where the generated OpenAPI document is served from.
	SpecURL string
	// DocExpansion controls the initial expansion of operations and tags.
	DocExpansion string
	// Username and Password guard the UI with basic auth when GuardEnabled.
	Username string
	Password string
	// GuardEnabled turns the basic auth check on. Off outside production.
	GuardEnabled bool
}

// DefaultSwaggerConfig reads the documentation settings from the environment.
func DefaultSwaggerConfig() *SwaggerConfig {
	return &SwaggerConfig{
		SpecURL:      "/swagger/doc.json",
		DocExpansion: "list",
		Username:     os.Getenv("SWAGGER_USERNAME"),
		Password:     os.Getenv("SWAGGER_PASSWORD"),
		GuardEnabled: os.Getenv("GO_ENV") == "production",
	}
}

// SwaggerHandler serves the documentation UI described by cfg, wrapped in
// the basic auth guard.
func SwaggerHandler(cfg *SwaggerConfig) http.Handler {
	if cfg == nil {
		cfg = DefaultSwaggerConfig()
	}

	ui := httpSwagger.Handler(
		httpSwagger.URL(cfg.SpecURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion(cfg.DocExpansion),
		httpSwagger.DomID("#swagger-ui"),
	)
	return swaggerGuard(cfg, ui)
}

// swaggerGuard requires basic auth for the documentation UI when the guard
// is enabled and credentials are configured.
func swaggerGuard(cfg *SwaggerConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !cfg.GuardEnabled || (cfg.Username == "" && cfg.Password == "") {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
		if !ok || !userOK || !passOK {
			w.Header().Set("WWW-Authenticate", `Basic realm="API Documentation"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
