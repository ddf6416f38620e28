package config

import (
	"fmt"
	"time"
	"yatube/internal/core/comment"
	"yatube/internal/core/follow"
	"yatube/internal/core/group"
	"yatube/internal/core/mediaqueue"
	"yatube/internal/core/post"
	"yatube/internal/core/user"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB connects to the database selected by DB_DRIVER.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	Logger.Info("Database connected", zap.String("driver", driver))
	return db, nil
}

// newGormLogger routes gorm warnings through zap. Missing rows are an
// expected lookup result and are not logged.
func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	out, err := zap.NewStdLogAt(logger, zap.WarnLevel)
	if err != nil {
		out = zap.NewStdLog(logger)
	}
	return gormlogger.New(out, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follow.Follow{},
		&mediaqueue.MediaCleanup{},
	)
}

func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
