package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	MaxHeaderBytes  int
	TrustedOrigins  []string
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	URL                 string
	MaxOpenConns        int
	MaxIdleConns        int
	ConnMaxLifetime     time.Duration
	ConnMaxIdleTime     time.Duration
	ConnectTimeout      time.Duration
	SlowQueryThreshold  time.Duration
	HealthCheckInterval time.Duration
	MigrationsPath      string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret          string
	JWTExpiry          time.Duration
	SessionCookieName  string
	CookieSecure       bool
	BCryptCost         int
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// StorageConfig holds file storage configuration
type StorageConfig struct {
	Provider            string // "local" or "cloudinary"
	LocalDir            string
	MaxFileSize         int64
	UploadTimeout       time.Duration
	MaxUploadRetries    int
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Provider   string // "memory" or "redis"
	RedisURL   string
	DefaultTTL time.Duration
	FeedTTL    time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from the environment, with .env support outside production.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server:   loadServerConfig(env),
		Database: loadDatabaseConfig(env),
		Auth:     loadAuthConfig(env),
		Storage:  loadStorageConfig(),
		Cache:    loadCacheConfig(),
		Logging:  loadLoggingConfig(env),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig(env string) ServerConfig {
	cfg := ServerConfig{
		Port:            getEnv("PORT", "9000"),
		Host:            getEnv("SERVER_HOST", "0.0.0.0"),
		Environment:     env,
		ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		GracefulTimeout: getDurationEnv("GRACEFUL_TIMEOUT", 30*time.Second),
		MaxHeaderBytes:  getIntEnv("MAX_HEADER_BYTES", 1<<20),
	}

	if origins := getEnv("TRUSTED_ORIGINS", ""); origins != "" {
		cfg.TrustedOrigins = strings.Split(origins, ",")
	} else if env != "production" {
		cfg.TrustedOrigins = []string{"*"}
	}

	return cfg
}

func loadDatabaseConfig(env string) DatabaseConfig {
	var defaultMaxOpen, defaultMaxIdle int
	switch env {
	case "production":
		defaultMaxOpen, defaultMaxIdle = 50, 20
	case "staging":
		defaultMaxOpen, defaultMaxIdle = 25, 10
	default:
		defaultMaxOpen, defaultMaxIdle = 10, 5
	}

	return DatabaseConfig{
		URL:                 os.Getenv("DATABASE_URL"),
		MaxOpenConns:        getIntEnv("DB_MAX_OPEN_CONNS", defaultMaxOpen),
		MaxIdleConns:        getIntEnv("DB_MAX_IDLE_CONNS", defaultMaxIdle),
		ConnMaxLifetime:     getDurationEnv("DB_CONN_MAX_LIFETIME", 15*time.Minute),
		ConnMaxIdleTime:     getDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		ConnectTimeout:      getDurationEnv("DB_CONNECT_TIMEOUT", 30*time.Second),
		SlowQueryThreshold:  getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
		HealthCheckInterval: getDurationEnv("DB_HEALTH_CHECK_INTERVAL", 30*time.Second),
		MigrationsPath:      getEnv("DB_MIGRATIONS_PATH", "./migrations"),
	}
}

func loadAuthConfig(env string) AuthConfig {
	return AuthConfig{
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiry:          getDurationEnv("JWT_EXPIRY", 7*24*time.Hour),
		SessionCookieName:  getEnv("SESSION_COOKIE_NAME", "session_token"),
		CookieSecure:       getBoolEnv("COOKIE_SECURE", env == "production"),
		BCryptCost:         getIntEnv("BCRYPT_COST", 12),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Provider:            getEnv("STORAGE_PROVIDER", "local"),
		LocalDir:            getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		MaxFileSize:         getInt64Env("MAX_FILE_SIZE", 10*1024*1024),
		UploadTimeout:       getDurationEnv("UPLOAD_TIMEOUT", 30*time.Second),
		MaxUploadRetries:    getIntEnv("MAX_UPLOAD_RETRIES", 3),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "pdfhub"),
	}
}

func loadCacheConfig() CacheConfig {
	provider := getEnv("CACHE_PROVIDER", "memory")
	if os.Getenv("REDIS_URL") != "" {
		provider = getEnv("CACHE_PROVIDER", "redis")
	}

	return CacheConfig{
		Provider:   provider,
		RedisURL:   getEnv("REDIS_URL", ""),
		DefaultTTL: getDurationEnv("CACHE_DEFAULT_TTL", 5*time.Minute),
		FeedTTL:    getDurationEnv("CACHE_FEED_TTL", 30*time.Second),
	}
}

func loadLoggingConfig(env string) LoggingConfig {
	format := "console"
	level := "debug"
	if env == "production" {
		format = "json"
		level = "info"
	}

	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", level),
		Format: getEnv("LOG_FORMAT", format),
	}
}

// Validate checks the whole configuration tree.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := c.Auth.Validate(c.Server.Environment); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}
	return nil
}

// Validate validates server configuration
func (s *ServerConfig) Validate() error {
	if s.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	return nil
}

// Validate validates database configuration
func (d *DatabaseConfig) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if d.MaxOpenConns <= 0 {
		return fmt.Errorf("MaxOpenConns must be positive")
	}
	if d.MaxIdleConns > d.MaxOpenConns {
		return fmt.Errorf("MaxIdleConns cannot exceed MaxOpenConns")
	}
	return nil
}

// Validate validates auth configuration
func (a *AuthConfig) Validate(env string) error {
	if a.JWTSecret == "" && env == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if a.BCryptCost < 4 || a.BCryptCost > 31 {
		return fmt.Errorf("BCryptCost must be between 4 and 31")
	}
	if a.JWTExpiry <= 0 {
		return fmt.Errorf("JWTExpiry must be positive")
	}
	return nil
}

// Validate validates storage configuration
func (s *StorageConfig) Validate() error {
	switch s.Provider {
	case "local":
		if s.LocalDir == "" {
			return fmt.Errorf("STORAGE_LOCAL_DIR is required for local storage")
		}
	case "cloudinary":
		if s.CloudinaryCloudName == "" || s.CloudinaryAPIKey == "" || s.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary credentials are required for cloudinary storage")
		}
	default:
		return fmt.Errorf("unknown storage provider %q", s.Provider)
	}
	if s.MaxFileSize <= 0 {
		return fmt.Errorf("MaxFileSize must be positive")
	}
	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
