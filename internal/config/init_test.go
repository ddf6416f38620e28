package config

import (
	"testing"
	"time"
	"yatube/internal/core/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.AppPort)
	assert.Equal(t, "yatube.db", cfg.DBDSN)
	assert.Equal(t, 20*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, "local", cfg.MediaBackend)
	assert.Equal(t, int64(5<<20), cfg.MaxImageBytes)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, devSecret, cfg.JWTSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_DSN", "user:pass@tcp(db:3306)/yatube?parseTime=true")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("INDEX_CACHE_TTL", "45s")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("BATCH_SIZE", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "s3cr3t", cfg.JWTSecret)
	assert.Equal(t, 45*time.Second, cfg.IndexCacheTTL)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 7, cfg.BatchSize)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"mysql without dsn", map[string]string{"DB_DRIVER": "mysql", "DB_DSN": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"production without secret", map[string]string{"DB_DRIVER": "sqlite", "APP_ENV": EnvProduction, "JWT_SECRET": ""}},
		{"s3 without bucket", map[string]string{"DB_DRIVER": "sqlite", "MEDIA_BACKEND": "s3", "S3_BUCKET": ""}},
		{"unknown media backend", map[string]string{"DB_DRIVER": "sqlite", "MEDIA_BACKEND": "ftp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestOpenDBUnsupportedDriver(t *testing.T) {
	_, err := OpenDB("oracle", "")
	assert.Error(t, err)
}

func TestOpenDBAndMigrateSqlite(t *testing.T) {
	db, err := OpenDB("sqlite", t.TempDir()+"/test.db")
	require.NoError(t, err)
	defer CloseDB(db)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable("posts"))
	assert.True(t, db.Migrator().HasTable("follows"))
	assert.True(t, db.Migrator().HasTable("media_cleanups"))
}

func TestOpenDBDoesNotLogMissingRows(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := Logger
	Logger = zap.New(core)
	t.Cleanup(func() { Logger = previous })

	db, err := OpenDB("sqlite", t.TempDir()+"/test.db")
	require.NoError(t, err)
	defer CloseDB(db)
	require.NoError(t, Migrate(db))

	var u user.User
	err = db.Where("username = ?", "ghost").First(&u).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, "record not found")
	}
	assert.Equal(t, 1, logs.FilterMessage("Database connected").Len())
}
