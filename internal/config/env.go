package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv exports the variables of a .env file that are not already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv overrides file settings with the deployment environment.
func applyEnv(cfg *AppConfig, lookup lookupFunc) {
	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
		}
		return "", false
	}
	setString := func(dst *string, keys ...string) {
		if v, ok := get(keys...); ok {
			*dst = v
		}
	}
	setInt := func(dst *int, keys ...string) {
		if v, ok := get(keys...); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, keys ...string) {
		if v, ok := get(keys...); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setInt(&cfg.Port, "SITE_PORT", "PORT")
	setString(&cfg.Env, "SITE_ENV", "NODE_ENV")
	if v, ok := get("ALLOWED_ORIGINS", "CORS_ORIGINS"); ok {
		cfg.AllowedOrigins = strings.Split(v, ",")
	}
	setString(&cfg.JWTSecret, "JWT_SECRET")
	if v, ok := get("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}

	setString(&cfg.Admin.Username, "ADMIN_USERNAME")
	setString(&cfg.Admin.Password, "ADMIN_PASSWORD")
	setString(&cfg.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Mongo.URI, "MONGODB_URI", "MONGO_URI")
	setString(&cfg.Database.Mongo.Name, "MONGODB_DB", "DB_NAME")
	setString(&cfg.Database.MySQL.DSN, "MYSQL_DSN")

	if v, ok := get("REDIS_URL"); ok {
		cfg.Redis.URL = v
	}
	if v, ok := get("REDIS_ENABLE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Enable = &b
		}
	}

	setString(&cfg.Media.Driver, "MEDIA_DRIVER")
	setString(&cfg.Media.OrphanPolicy, "MEDIA_ORPHAN_POLICY")
	setString(&cfg.Media.S3.Bucket, "S3_BUCKET")
	setString(&cfg.Media.S3.Region, "S3_REGION", "AWS_REGION")
	setString(&cfg.Media.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Media.S3.AccessKeyID, "S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID")
	setString(&cfg.Media.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY")
	setString(&cfg.Media.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")
	setBool(&cfg.Media.S3.PathStyle, "S3_PATH_STYLE")

	setString(&cfg.Telemetry.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.Telemetry.ServiceName, "OTEL_SERVICE_NAME")
}
