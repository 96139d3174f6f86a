package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 5000
	defaultEnv           = "development"
	defaultTokenTTL      = 24 * time.Hour
	defaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
	defaultDevJWTSecret  = "site-core-development-secret"
	defaultMongoURI      = "mongodb://localhost:27017"
	defaultMongoName     = "jkrishnan"
	defaultMediaFolder   = "jkrishnan-gallery"
	defaultAuthor        = "J KRISHNAN & CO"
	defaultServiceName   = "site-core"
	defaultLoginPerMin   = 10
)

// Database drivers.
const (
	DriverMongo = "mongo"
	DriverMySQL = "mysql"
)

// Media drivers.
const (
	MediaS3    = "s3"
	MediaLocal = "local"
)

// AppConfig holds runtime startup configuration loaded from YAML and the
// environment.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	JWTSecret      string          `yaml:"jwt_secret"`
	TokenTTL       time.Duration   `yaml:"token_ttl"`
	Admin          AdminConfig     `yaml:"admin"`
	Database       DatabaseConfig  `yaml:"database"`
	Redis          RedisConfig     `yaml:"redis"`
	Media          MediaConfig     `yaml:"media"`
	Paths          PathsConfig     `yaml:"paths"`
	Content        ContentConfig   `yaml:"content"`
	Telemetry      TelemetryConfig `yaml:"telemetry"`
	RateLimit      RateLimitConfig `yaml:"ratelimit"`

	baseDir string
}

// AdminConfig is the single administrator account. PasswordHash, a bcrypt
// hash, takes precedence over Password.
type AdminConfig struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

type DatabaseConfig struct {
	Driver string      `yaml:"driver"`
	Mongo  MongoConfig `yaml:"mongo"`
	MySQL  MySQLConfig `yaml:"mysql"`
}

type MongoConfig struct {
	URI  string `yaml:"uri"`
	Name string `yaml:"name"`
}

type MySQLConfig struct {
	DSN       string            `yaml:"dsn"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	Loc       string            `yaml:"loc"`
	ParseTime *bool             `yaml:"parse_time"`
	Params    map[string]string `yaml:"params"`
}

// RedisConfig is optional; without it logout is client-side only and the
// login limiter is disabled.
type RedisConfig struct {
	Enable   *bool  `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type MediaConfig struct {
	Driver         string   `yaml:"driver"`
	Folder         string   `yaml:"folder"`
	MaxSizeMB      int      `yaml:"max_size_mb"`
	AllowedFormats []string `yaml:"allowed_formats"`
	MaxWidth       int      `yaml:"max_width"`
	MaxHeight      int      `yaml:"max_height"`
	MaxPixels      int64    `yaml:"max_pixels"`
	Quality        int      `yaml:"quality"`
	OrphanPolicy   string   `yaml:"orphan_policy"`
	PublicBaseURL  string   `yaml:"public_base_url"`
	S3             S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
	PublicBaseURL   string `yaml:"public_base_url"`
}

type PathsConfig struct {
	Logs   string `yaml:"logs"`
	Static string `yaml:"static"`
	Admin  string `yaml:"admin"`
}

type ContentConfig struct {
	DefaultAuthor string `yaml:"default_author"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	Insecure     bool   `yaml:"insecure"`
}

type RateLimitConfig struct {
	LoginPerMinute int `yaml:"login_per_minute"`
}

// Load reads the YAML file at configPath, applies .env and environment
// overrides and validates the result. A missing file is only an error when
// the path was given explicitly.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}
	cfg.baseDir = filepath.Dir(path)

	applyEnv(&cfg, os.LookupEnv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		TokenTTL: defaultTokenTTL,
		Database: DatabaseConfig{
			Driver: DriverMongo,
			Mongo:  MongoConfig{URI: defaultMongoURI, Name: defaultMongoName},
			MySQL: MySQLConfig{
				Host:    "127.0.0.1",
				Port:    3306,
				User:    "root",
				Name:    defaultMongoName,
				Charset: "utf8mb4",
				Loc:     "Local",
			},
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379},
		Media: MediaConfig{
			Driver:         MediaLocal,
			Folder:         defaultMediaFolder,
			MaxSizeMB:      5,
			AllowedFormats: []string{"jpg", "jpeg", "png", "gif", "webp"},
			MaxWidth:       1200,
			MaxHeight:      800,
			MaxPixels:      40_000_000,
			Quality:        82,
			OrphanPolicy:   "keep",
		},
		Content:   ContentConfig{DefaultAuthor: defaultAuthor},
		Telemetry: TelemetryConfig{ServiceName: defaultServiceName},
		RateLimit: RateLimitConfig{LoginPerMinute: defaultLoginPerMin},
	}
}

func (c *AppConfig) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = defaultEnv
	}
	c.AllowedOrigins = normalizeOrigins(c.AllowedOrigins)
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Media.Driver = strings.ToLower(strings.TrimSpace(c.Media.Driver))
	c.Media.OrphanPolicy = strings.ToLower(strings.TrimSpace(c.Media.OrphanPolicy))
	c.Media.Folder = strings.Trim(strings.TrimSpace(c.Media.Folder), "/")
	if c.Media.Folder == "" {
		c.Media.Folder = defaultMediaFolder
	}
	if strings.TrimSpace(c.Content.DefaultAuthor) == "" {
		c.Content.DefaultAuthor = defaultAuthor
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = defaultTokenTTL
	}

	// Development keeps working without any credentials configured.
	if c.IsDev() {
		if c.Admin.Username == "" {
			c.Admin.Username = defaultAdminUser
		}
		if c.Admin.Password == "" && c.Admin.PasswordHash == "" {
			c.Admin.Password = defaultAdminPassword
		}
		if c.JWTSecret == "" {
			c.JWTSecret = defaultDevJWTSecret
		}
	}
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverMongo:
		if strings.TrimSpace(c.Database.Mongo.URI) == "" {
			return errors.New("database.mongo.uri is required")
		}
	case DriverMySQL:
		if c.Database.MySQL.DSN == "" && (c.Database.MySQL.Port < 1 || c.Database.MySQL.Port > 65535) {
			return fmt.Errorf("invalid database.mysql.port %d, expected 1-65535", c.Database.MySQL.Port)
		}
	default:
		return fmt.Errorf("unknown database.driver %q, expected mongo or mysql", c.Database.Driver)
	}
	switch c.Media.Driver {
	case MediaLocal:
	case MediaS3:
		if c.Media.S3.Bucket == "" {
			return errors.New("media.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown media.driver %q, expected s3 or local", c.Media.Driver)
	}
	if c.Media.OrphanPolicy != "keep" && c.Media.OrphanPolicy != "delete" {
		return fmt.Errorf("unknown media.orphan_policy %q, expected keep or delete", c.Media.OrphanPolicy)
	}
	if c.Media.MaxSizeMB < 1 {
		return fmt.Errorf("invalid media.max_size_mb %d", c.Media.MaxSizeMB)
	}
	if c.Media.MaxPixels < 1 {
		return fmt.Errorf("invalid media.max_pixels %d", c.Media.MaxPixels)
	}
	if c.Media.Quality < 1 || c.Media.Quality > 100 {
		return fmt.Errorf("invalid media.quality %d, expected 1-100", c.Media.Quality)
	}
	if c.Redis.Enabled() && c.Redis.URL == "" && (c.Redis.Port < 1 || c.Redis.Port > 65535) {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.Admin.Username == "" || (c.Admin.Password == "" && c.Admin.PasswordHash == "") {
		return errors.New("admin credentials are required in production")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required in production")
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// MaxUploadBytes is the media size ceiling in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Media.MaxSizeMB) << 20
}

// Enabled reports whether a Redis connection should be opened. An explicit
// enable flag wins; otherwise a configured URL turns it on.
func (r RedisConfig) Enabled() bool {
	if r.Enable != nil {
		return *r.Enable
	}
	return strings.TrimSpace(r.URL) != ""
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
