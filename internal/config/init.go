package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppEnv  string `mapstructure:"APP_ENV"`
	AppPort string `mapstructure:"APP_PORT"`

	DBDriver string `mapstructure:"DB_DRIVER"`
	DBDSN    string `mapstructure:"DB_DSN"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	IndexCacheTTL time.Duration `mapstructure:"INDEX_CACHE_TTL"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	MediaBackend  string `mapstructure:"MEDIA_BACKEND"`
	MediaRoot     string `mapstructure:"MEDIA_ROOT"`
	MediaURL      string `mapstructure:"MEDIA_URL"`
	MaxImageBytes int64  `mapstructure:"MAX_IMAGE_BYTES"`

	S3Bucket    string `mapstructure:"S3_BUCKET"`
	S3Region    string `mapstructure:"S3_REGION"`
	S3Endpoint  string `mapstructure:"S3_ENDPOINT"`
	S3AccessKey string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey string `mapstructure:"S3_SECRET_KEY"`

	BatchSize      int           `mapstructure:"BATCH_SIZE"`
	WorkerInterval time.Duration `mapstructure:"WORKER_INTERVAL"`
}

var defaults = map[string]any{
	"APP_ENV":         EnvDevelopment,
	"APP_PORT":        "8000",
	"DB_DRIVER":       "mysql",
	"DB_DSN":          "",
	"REDIS_ADDR":      "",
	"REDIS_PASSWORD":  "",
	"REDIS_DB":        0,
	"INDEX_CACHE_TTL": 20 * time.Second,
	"JWT_SECRET":      "",
	"TOKEN_TTL":       24 * time.Hour,
	"MEDIA_BACKEND":   "local",
	"MEDIA_ROOT":      "media",
	"MEDIA_URL":       "/media/",
	"MAX_IMAGE_BYTES": int64(5 << 20),
	"S3_BUCKET":       "",
	"S3_REGION":       "us-east-1",
	"S3_ENDPOINT":     "",
	"S3_ACCESS_KEY":   "",
	"S3_SECRET_KEY":   "",
	"BATCH_SIZE":      100,
	"WORKER_INTERVAL": time.Second,
}

// devSecret signs sessions in development when JWT_SECRET is unset.
const devSecret = "dev-secret-change-me"

// Load reads .env (if present) and the environment on top of defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == EnvProduction }

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.DBDSN == "" {
			return errors.New("DB_DSN is not set")
		}
	case "sqlite":
		if c.DBDSN == "" {
			c.DBDSN = "yatube.db"
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is not set")
		}
		c.JWTSecret = devSecret
	}

	switch c.MediaBackend {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for MEDIA_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unsupported MEDIA_BACKEND %q", c.MediaBackend)
	}

	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.WorkerInterval <= 0 {
		c.WorkerInterval = time.Second
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = 24 * time.Hour
	}
	return nil
}
