// Package config loads the service configuration from environment variables.
// Every setting has a default except the connection settings of the chosen
// backends, and the whole configuration is validated on startup.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Blob     BlobConfig
	Ingest   IngestConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 0, ingestion may be slow)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, including draining ingestions (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for query requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// TrustedProxies lists proxy CIDRs whose X-Forwarded-For is honored
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// Store backends.
const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	// Backend is postgres, redis or memory (default: postgres)
	Backend string `env:"STORE_BACKEND" default:"postgres"`

	// URL is the PostgreSQL connection string, required for the postgres backend.
	// Supports both DATABASE_URL and DB_URL.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the number of connections kept open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// Migrate runs the embedded schema migrations on startup (default: true)
	Migrate bool `env:"STORE_MIGRATE" default:"true"`

	// RedisAddr is host:port of the Redis server, required for the redis backend
	RedisAddr string `env:"REDIS_ADDR"`

	// RedisPassword authenticates to Redis
	RedisPassword string `env:"REDIS_PASSWORD"`

	// RedisDB is the Redis database number (default: 0)
	RedisDB int `env:"REDIS_DB" default:"0"`
}

// Blob backends.
const (
	BlobS3   = "s3"
	BlobFile = "file"
)

// BlobConfig selects and configures where uploads are read from.
type BlobConfig struct {
	// Backend is s3 or file (default: s3)
	Backend string `env:"BLOB_BACKEND" default:"s3"`

	// Region is the AWS region; empty uses the SDK's default chain
	Region string `env:"AWS_REGION" envAlt:"AWS_DEFAULT_REGION"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO or LocalStack
	Endpoint string `env:"S3_ENDPOINT"`

	// UsePathStyle addresses buckets by path instead of subdomain (default: false)
	UsePathStyle bool `env:"S3_USE_PATH_STYLE" default:"false"`

	// AccessKeyID, SecretAccessKey and SessionToken are optional static credentials
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `env:"AWS_SESSION_TOKEN"`

	// DownloadConcurrency is the number of parallel ranged GETs per object (default: 5)
	DownloadConcurrency int `env:"S3_DOWNLOAD_CONCURRENCY" default:"5"`

	// FileRoot is the directory holding one subdirectory per bucket for the file backend (default: .)
	FileRoot string `env:"BLOB_FILE_ROOT" default:"."`

	// MaxSize is the largest object accepted, in bytes (default: 100MB)
	MaxSize int64 `env:"BLOB_MAX_SIZE" default:"104857600"`
}

// IngestConfig holds file ingestion settings.
type IngestConfig struct {
	// RulesPath is a YAML or JSON rule table file or an s3:// locator; empty uses the embedded table
	RulesPath string `env:"INGEST_RULES_PATH"`

	// Delimiter is the CSV field separator (default: ,)
	Delimiter string `env:"INGEST_DELIMITER" default:","`

	// MaxConcurrent is the number of files ingested at once (default: 4)
	MaxConcurrent int `env:"INGEST_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long an ingestion waits for a free slot (default: 30s)
	MaxWaitTime time.Duration `env:"INGEST_MAX_WAIT_TIME" default:"30s"`

	// Timeout bounds a single file ingestion (default: 10m)
	Timeout time.Duration `env:"INGEST_TIMEOUT" default:"10m"`
}

// DelimiterRune returns the delimiter as a rune.
func (c *IngestConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey guards the ingestion endpoint with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
