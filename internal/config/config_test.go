package config

import (
	"strings"
	"testing"
	"time"
)

// env returns a Lookup over a fixed set of variables.
func env(vars map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"DATABASE_URL": "postgres://localhost/mrv"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("Server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Store.Backend != StorePostgres || !cfg.Store.Migrate || cfg.Store.MaxConns != 10 {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Blob.Backend != BlobS3 || cfg.Blob.DownloadConcurrency != 5 || cfg.Blob.MaxSize != 104857600 {
		t.Errorf("Blob = %+v", cfg.Blob)
	}
	if cfg.Ingest.DelimiterRune() != ',' || cfg.Ingest.MaxConcurrent != 4 || cfg.Ingest.Timeout != 10*time.Minute {
		t.Errorf("Ingest = %+v", cfg.Ingest)
	}
	if cfg.Security.RequireAPIKey {
		t.Error("RequireAPIKey defaults to true")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"STORE_BACKEND":          "redis",
		"REDIS_ADDR":             "localhost:6379",
		"REDIS_DB":               "3",
		"BLOB_BACKEND":           "file",
		"BLOB_FILE_ROOT":         "/srv/uploads",
		"SERVER_PORT":            "9090",
		"INGEST_DELIMITER":       ";",
		"INGEST_MAX_WAIT_TIME":   "5s",
		"INGEST_RULES_PATH":      "s3://config/rules.yaml",
		"TRUSTED_PROXIES":        "10.0.0.0/8, 192.168.1.1 ,",
		"REQUIRE_API_KEY":        "true",
		"API_KEYS":               "k1,k2",
		"LOG_LEVEL":              "debug",
		"S3_USE_PATH_STYLE":      "true",
		"AWS_DEFAULT_REGION":     "eu-west-1",
		"SERVER_REQUEST_TIMEOUT": "2m",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Store.Backend != StoreRedis || cfg.Store.RedisAddr != "localhost:6379" || cfg.Store.RedisDB != 3 {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Blob.Backend != BlobFile || cfg.Blob.FileRoot != "/srv/uploads" || !cfg.Blob.UsePathStyle {
		t.Errorf("Blob = %+v", cfg.Blob)
	}
	if cfg.Blob.Region != "eu-west-1" {
		t.Errorf("Region = %q, want the AWS_DEFAULT_REGION fallback", cfg.Blob.Region)
	}
	if cfg.Server.Addr() != "0.0.0.0:9090" || cfg.Server.RequestTimeout != 2*time.Minute {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Ingest.DelimiterRune() != ';' || cfg.Ingest.MaxWaitTime != 5*time.Second {
		t.Errorf("Ingest = %+v", cfg.Ingest)
	}
	if got := cfg.Server.TrustedProxies; len(got) != 2 || got[1] != "192.168.1.1" {
		t.Errorf("TrustedProxies = %q", got)
	}
	if len(cfg.Security.APIKeys) != 2 {
		t.Errorf("APIKeys = %q", cfg.Security.APIKeys)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"DB_URL": "postgres://alt/mrv"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Store.URL != "postgres://alt/mrv" {
		t.Errorf("Store.URL = %q", cfg.Store.URL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		wantMsg string
	}{
		{"postgres without url", map[string]string{}, "DATABASE_URL is required"},
		{"redis without addr", map[string]string{"STORE_BACKEND": "redis"}, "REDIS_ADDR is required"},
		{"unknown store", map[string]string{"STORE_BACKEND": "dynamo"}, "STORE_BACKEND"},
		{"unknown blob", map[string]string{"STORE_BACKEND": "memory", "BLOB_BACKEND": "gcs"}, "BLOB_BACKEND"},
		{"half credentials", map[string]string{"STORE_BACKEND": "memory", "AWS_ACCESS_KEY_ID": "AKIA"}, "must be set together"},
		{"bad port", map[string]string{"STORE_BACKEND": "memory", "SERVER_PORT": "70000"}, "SERVER_PORT"},
		{"conns", map[string]string{"DATABASE_URL": "x", "DB_MAX_CONNS": "1", "DB_MIN_CONNS": "2"}, "DB_MAX_CONNS (1) must be >= DB_MIN_CONNS (2)"},
		{"delimiter", map[string]string{"STORE_BACKEND": "memory", "INGEST_DELIMITER": ";;"}, "INGEST_DELIMITER"},
		{"keys", map[string]string{"STORE_BACKEND": "memory", "REQUIRE_API_KEY": "true"}, "API_KEYS is empty"},
		{"log level", map[string]string{"STORE_BACKEND": "memory", "LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad duration", map[string]string{"STORE_BACKEND": "memory", "INGEST_TIMEOUT": "soon"}, "INGEST_TIMEOUT"},
		{"bad bool", map[string]string{"STORE_BACKEND": "memory", "STORE_MIGRATE": "maybe"}, "STORE_MIGRATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(env(tt.vars))
			if err == nil {
				t.Fatal("LoadFrom() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SERVER_PORT", "8181")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("Server.Port = %d, want 8181", cfg.Server.Port)
	}
}

func TestConfigString_MasksSecrets(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"DATABASE_URL":          "postgres://user:secret@db/mrv",
		"AWS_ACCESS_KEY_ID":     "AKIASECRET",
		"AWS_SECRET_ACCESS_KEY": "shh",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "secret") || strings.Contains(s, "AKIASECRET") {
		t.Errorf("String() leaks secrets: %s", s)
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Errorf("String() = %s, want masked values", s)
	}
}
