package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers accepted by storage.driver.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMinIO    = "minio"
	DriverNone     = "none"
)

// Config aggregates application settings that may be sourced from files or environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ClamdAddr      string   `mapstructure:"clamd_addr"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
}

// StorageConfig selects the backend that holds the content document.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Key    string `mapstructure:"key"`
	Dir    string `mapstructure:"dir"`
}

// AuthConfig holds the single admin credential pair and session settings.
type AuthConfig struct {
	Username              string        `mapstructure:"username"`
	Password              string        `mapstructure:"password"`
	JWTSecret             string        `mapstructure:"jwt_secret"`
	AccessTokenTTL        time.Duration `mapstructure:"access_token_ttl"`
	LoginRateLimitPerHour int           `mapstructure:"login_rate_limit_per_hour"`
}

// DatabaseConfig contains connection options for PostgreSQL, or a file path for SQLite.
type DatabaseConfig struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Name       string `mapstructure:"name"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// RedisConfig contains Redis connection options. An empty host disables Redis.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// MinIOConfig contains connection options for MinIO/S3-compatible storage.
type MinIOConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	PublicEndpoint   string `mapstructure:"public_endpoint"`
	AccessKeyID      string `mapstructure:"access_key_id"`
	SecretAccessKey  string `mapstructure:"secret_access_key"`
	UseSSL           bool   `mapstructure:"use_ssl"`
	Bucket           string `mapstructure:"bucket"`
	Region           string `mapstructure:"region"`
	BucketLookup     string `mapstructure:"bucket_lookup"`
	AutoCreateBucket bool   `mapstructure:"auto_create_bucket"`
}

// WorkerConfig contains background worker options.
type WorkerConfig struct {
	Concurrency     int    `mapstructure:"concurrency"`
	FrontendBaseURL string `mapstructure:"frontend_base_url"`
}

// DSN builds a lib/pq compatible connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if strings.TrimSpace(r.Host) == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Shared reports whether content written under this driver is visible to other processes.
// memory lives and dies with one process; none persists nothing.
func (s StorageConfig) Shared() bool {
	return s.Driver != DriverMemory && s.Driver != DriverNone
}

// Enabled reports whether MinIO credentials are present.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != "" && m.AccessKeyID != "" && m.SecretAccessKey != ""
}

// Load reads configuration solely from environment variables (with optional defaults).
func Load() (*Config, error) {
	v := viper.New()
	return LoadFrom(v)
}

// LoadFrom is Load on a caller-supplied viper instance, so CLI flags can be bound first.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.max_upload_bytes", 10*1024*1024)
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.key", "saklain-portfolio-cms")
	v.SetDefault("storage.dir", "./data")
	v.SetDefault("auth.username", "saklain")
	v.SetDefault("auth.password", "admin123")
	v.SetDefault("auth.access_token_ttl", 24*time.Hour)
	v.SetDefault("auth.login_rate_limit_per_hour", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "portfolio")
	v.SetDefault("database.user", "portfolio")
	v.SetDefault("database.password", "portfolio")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "./data/portfolio.db")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.public_endpoint", "http://localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.bucket", "portfolio")
	v.SetDefault("minio.auto_create_bucket", true)
	v.SetDefault("worker.concurrency", 4)
	v.SetDefault("worker.frontend_base_url", "http://localhost:3000")
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":                       "API_PORT",
		"api.allowed_origins":            "API_ALLOWED_ORIGINS",
		"api.clamd_addr":                 "CLAMD_ADDR",
		"api.max_upload_bytes":           "API_MAX_UPLOAD_BYTES",
		"storage.driver":                 "STORAGE_DRIVER",
		"storage.key":                    "STORAGE_KEY",
		"storage.dir":                    "STORAGE_DIR",
		"auth.username":                  "ADMIN_USERNAME",
		"auth.password":                  "ADMIN_PASSWORD",
		"auth.jwt_secret":                "JWT_SECRET",
		"auth.access_token_ttl":          "ACCESS_TOKEN_TTL",
		"auth.login_rate_limit_per_hour": "LOGIN_RATE_LIMIT_PER_HOUR",
		"database.host":                  "DATABASE_HOST",
		"database.port":                  "DATABASE_PORT",
		"database.name":                  "POSTGRES_DB",
		"database.user":                  "POSTGRES_USER",
		"database.password":              "POSTGRES_PASSWORD",
		"database.sslmode":               "DATABASE_SSLMODE",
		"database.sqlite_path":           "SQLITE_PATH",
		"redis.host":                     "REDIS_HOST",
		"redis.port":                     "REDIS_PORT",
		"minio.endpoint":                 "MINIO_ENDPOINT",
		"minio.public_endpoint":          "MINIO_PUBLIC_ENDPOINT",
		"minio.access_key_id":            "MINIO_ACCESS_KEY_ID",
		"minio.secret_access_key":        "MINIO_SECRET_ACCESS_KEY",
		"minio.use_ssl":                  "MINIO_USE_SSL",
		"minio.bucket":                   "MINIO_BUCKET",
		"minio.region":                   "MINIO_REGION",
		"minio.bucket_lookup":            "MINIO_BUCKET_LOOKUP",
		"minio.auto_create_bucket":       "MINIO_AUTO_CREATE_BUCKET",
		"worker.concurrency":             "WORKER_CONCURRENCY",
		"worker.frontend_base_url":       "FRONTEND_BASE_URL",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Storage.Key == "" {
		return errors.New("storage key is required")
	}
	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		return errors.New("admin username and password are required")
	}
	if cfg.Auth.AccessTokenTTL <= 0 {
		return errors.New("access token ttl must be positive")
	}

	switch cfg.Storage.Driver {
	case DriverMemory, DriverNone:
	case DriverFile:
		if cfg.Storage.Dir == "" {
			return errors.New("storage dir is required for the file driver")
		}
	case DriverRedis:
		if cfg.Redis.Addr() == "" {
			return errors.New("redis host is required for the redis driver")
		}
	case DriverPostgres:
		if cfg.Database.Host == "" || cfg.Database.Name == "" || cfg.Database.User == "" {
			return errors.New("database host, name and user are required for the postgres driver")
		}
		if cfg.Database.Port <= 0 {
			return errors.New("database port must be positive")
		}
	case DriverSQLite:
		if cfg.Database.SQLitePath == "" {
			return errors.New("sqlite path is required for the sqlite driver")
		}
	case DriverMinIO:
		if !cfg.MinIO.Enabled() {
			return errors.New("minio endpoint and credentials are required for the minio driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.MinIO.Enabled() && cfg.MinIO.Bucket == "" {
		return errors.New("minio bucket is required")
	}
	return nil
}
