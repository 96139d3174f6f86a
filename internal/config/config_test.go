package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SITE_PORT", "PORT", "SITE_ENV", "NODE_ENV", "ALLOWED_ORIGINS", "CORS_ORIGINS",
	"JWT_SECRET", "TOKEN_TTL", "ADMIN_USERNAME", "ADMIN_PASSWORD", "ADMIN_PASSWORD_HASH",
	"DB_DRIVER", "MONGODB_URI", "MONGO_URI", "MONGODB_DB", "DB_NAME", "MYSQL_DSN",
	"REDIS_URL", "REDIS_ENABLE", "MEDIA_DRIVER", "MEDIA_ORPHAN_POLICY",
	"S3_BUCKET", "S3_REGION", "AWS_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID",
	"S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY", "S3_PUBLIC_BASE_URL", "S3_PATH_STYLE",
	"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
}

// clearEnv blanks every variable applyEnv reads; blank values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, MediaLocal, cfg.Media.Driver)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.Equal(t, int64(40_000_000), cfg.Media.MaxPixels)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: 8080
env: production
allowed_origins: ["https://jkrishnan.co/ ", ""]
jwt_secret: s3cret
token_ttl: 2h
admin:
  username: partner
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
database:
  driver: MySQL
  mysql:
    host: db
    user: site
    password: pw
    name: site
media:
  driver: s3
  orphan_policy: delete
  s3:
    bucket: media
    region: ap-south-1
redis:
  url: localhost:6379/1
paths:
  logs: var/log
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, []string{"https://jkrishnan.co"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "partner", cfg.Admin.Username)
	assert.Empty(t, cfg.Admin.Password)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "delete", cfg.Media.OrphanPolicy)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URLValue())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "var", "log"), cfg.LogDir())
	assert.Equal(t, "", cfg.AdminDir())

	dsn := cfg.Database.MySQL.DSNValue()
	assert.True(t, strings.HasPrefix(dsn, "site:pw@tcp(db:3306)/site?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "port: 80\nmeilisearch:\n  host: x\n"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Port)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"port", "port: 70000", "invalid port"},
		{"driver", "database:\n  driver: sqlite", "unknown database.driver"},
		{"media driver", "media:\n  driver: ftp", "unknown media.driver"},
		{"bucket", "media:\n  driver: s3", "media.s3.bucket"},
		{"orphan policy", "media:\n  orphan_policy: archive", "orphan_policy"},
		{"quality", "media:\n  quality: 0", "media.quality"},
		{"max pixels", "media:\n  max_pixels: 0", "media.max_pixels"},
		{"production secret", "env: production\nadmin:\n  username: a\n  password: b", "jwt_secret"},
		{"production admin", "env: production\njwt_secret: x", "admin credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":            "9000",
		"NODE_ENV":        "production",
		"ALLOWED_ORIGINS": "https://a.test,https://b.test",
		"JWT_SECRET":      "from-env",
		"TOKEN_TTL":       "30m",
		"ADMIN_USERNAME":  "boss",
		"ADMIN_PASSWORD":  "pw",
		"MONGODB_URI":     "mongodb://mongo:27017",
		"REDIS_ENABLE":    "false",
		"REDIS_URL":       "redis://cache:6379/0",
		"S3_BUCKET":       "bucket",
		"S3_PATH_STYLE":   "true",
		"MEDIA_DRIVER":    "s3",
		"SITE_PORT":       "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := defaultAppConfig()
	applyEnv(&cfg, lookup)
	cfg.normalize()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "boss", cfg.Admin.Username)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Database.Mongo.URI)
	assert.False(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Media.S3.PathStyle)
	assert.Equal(t, MediaS3, cfg.Media.Driver)
}

func TestDotEnvFillsUnsetVariables(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv("OTEL_SERVICE_NAME"))
	t.Cleanup(func() { _ = os.Unsetenv("OTEL_SERVICE_NAME") })

	path := writeConfig(t, "port: 7000\n")
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("OTEL_SERVICE_NAME=from-dotenv\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Telemetry.ServiceName)
}

func TestRedisURLFromParts(t *testing.T) {
	r := RedisConfig{Host: "cache", Port: 6380, DB: 2, Password: "pw", TLS: true}
	assert.Equal(t, "rediss://:pw@cache:6380/2", r.URLValue())
}
