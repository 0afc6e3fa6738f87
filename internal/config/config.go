// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sdkfamous/dnd-character-sheet/internal/errors"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

// Remote backends
const (
	RemoteMemory = "memory"
	RemoteMinio  = "minio"
)

// Config holds every runtime setting
type Config struct {
	GRPCPort int
	UserID   string

	CacheBackend string
	RedisURL     string
	SQLitePath   string

	RemoteBackend  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	HistoryLimit  int
	DebounceDelay time.Duration
	StatusClear   time.Duration
}

// Load reads the given env files, or .env when none are named, and then the
// environment. Variables already set in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		// Load .env file if it exists
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, errors.Wrapf(err, "failed to read env files %s", strings.Join(envFiles, ", "))
	}

	vb := errors.NewValidationBuilder()

	cfg := &Config{
		GRPCPort: getEnvInt(vb, "SHEET_GRPC_PORT", 50051),
		UserID:   getEnv("SHEET_USER_ID", "local"),

		CacheBackend: strings.ToLower(getEnv("SHEET_CACHE_BACKEND", CacheMemory)),
		RedisURL:     getEnv("REDIS_URL", "localhost:6379"),
		SQLitePath:   getEnv("SHEET_SQLITE_PATH", defaultSQLitePath()),

		RemoteBackend:  strings.ToLower(getEnv("SHEET_REMOTE_BACKEND", RemoteMemory)),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "character-sheets"),
		MinioUseSSL:    getEnvBool(vb, "MINIO_USE_SSL", false),

		HistoryLimit:  getEnvInt(vb, "SHEET_HISTORY_LIMIT", 50),
		DebounceDelay: getEnvMillis(vb, "SHEET_DEBOUNCE_MS", 500*time.Millisecond),
		StatusClear:   getEnvMillis(vb, "SHEET_STATUS_CLEAR_MS", 2*time.Second),
	}

	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Validate checks the backend selection and the settings it needs
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		vb.Field("GRPCPort", "must be between 1 and 65535")
	}
	errors.ValidatePositive("HistoryLimit", c.HistoryLimit, vb)
	if c.DebounceDelay < 0 {
		vb.Field("DebounceDelay", "must not be negative")
	}

	errors.ValidateEnum("CacheBackend", c.CacheBackend, []string{CacheMemory, CacheRedis, CacheSQLite}, vb)
	switch c.CacheBackend {
	case CacheRedis:
		errors.ValidateRequired("RedisURL", c.RedisURL, vb)
	case CacheSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	}

	errors.ValidateEnum("RemoteBackend", c.RemoteBackend, []string{RemoteMemory, RemoteMinio}, vb)
	if c.RemoteBackend == RemoteMinio {
		errors.ValidateRequired("MinioEndpoint", c.MinioEndpoint, vb)
		errors.ValidateRequired("MinioAccessKey", c.MinioAccessKey, vb)
		errors.ValidateRequired("MinioSecretKey", c.MinioSecretKey, vb)
		errors.ValidateRequired("MinioBucket", c.MinioBucket, vb)
		errors.ValidateRequired("UserID", c.UserID, vb)
	}

	return vb.Build()
}

func defaultSQLitePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "sheet-cache.db"
	}
	return dir + "/dnd-character-sheet/cache.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(vb *errors.ValidationBuilder, key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		vb.Field(key, "must be an integer")
		return defaultValue
	}
	return n
}

func getEnvBool(vb *errors.ValidationBuilder, key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		vb.Field(key, "must be a boolean")
		return defaultValue
	}
	return b
}

func getEnvMillis(vb *errors.ValidationBuilder, key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	ms, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		vb.Field(key, "must be a number of milliseconds")
		return defaultValue
	}
	return time.Duration(ms) * time.Millisecond
}
