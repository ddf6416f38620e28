package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	mediaadapter "yatube/internal/adapters/media"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	feedapp "yatube/internal/core/feed/service"
	followapp "yatube/internal/core/follow/service"
	groupapp "yatube/internal/core/group/service"
	postapp "yatube/internal/core/post/service"
	userapp "yatube/internal/core/user/service"
	mediaPort "yatube/internal/ports/media"
	"yatube/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		_ = config.InitLogger(os.Getenv("APP_ENV"))
		config.Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if err := config.InitLogger(cfg.AppEnv); err != nil {
		panic(err)
	}
	defer func() { _ = config.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// اتصال به دیتابیس و اجرای مایگریشن‌ها
	db, err := config.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		config.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("✅ Database migrations completed")

	// اتصال به Redis
	redisClient, err := config.OpenRedis(ctx, cfg)
	if err != nil {
		config.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// بستن منابع بعد از اتمام کار سرور
	defer closeResources(config.Logger, db, redisClient)

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		config.Logger.Fatal("Failed to set up media storage", zap.Error(err))
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)             // آداپتر خروجی
	groupRepo := dbadapter.NewGroupRepositoryDatabase(db)           // آداپتر خروجی
	postRepo := dbadapter.NewPostRepositoryDatabase(db)             // آداپتر خروجی
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)       // آداپتر خروجی
	followRepo := dbadapter.NewFollowRepositoryDatabase(db)         // آداپتر خروجی
	mediaQueueRepo := dbadapter.NewMediaQueueRepositoryDatabase(db) // آداپتر خروجی

	userSvc := userapp.NewUserService(userRepo, []byte(cfg.JWTSecret), cfg.TokenTTL)                   // یوزکیس/سرویس
	groupSvc := groupapp.NewGroupService(groupRepo)                                                    // یوزکیس/سرویس
	postSvc := postapp.NewPostService(postRepo, groupRepo, mediaQueueRepo, storage, cfg.MaxImageBytes) // یوزکیس/سرویس
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo)                                  // یوزکیس/سرویس
	followSvc := followapp.NewFollowService(followRepo, userRepo)                                      // یوزکیس/سرویس
	feedSvc := feedapp.NewFeedService(postRepo, groupRepo, userRepo, followSvc, storage)               // یوزکیس/سرویس

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	opts := httpapi.Options{
		Users:        userSvc,
		Posts:        postSvc,
		Groups:       groupSvc,
		Comments:     commentSvc,
		Follows:      followSvc,
		Feed:         feedSvc,
		MediaURL:     cfg.MediaURL,
		SecureCookie: cfg.IsProduction(),
	}
	if redisClient != nil {
		opts.Cache = redisadapter.NewPageCacheRedis(redisClient, cfg.IndexCacheTTL)
	}
	if cfg.MediaBackend == "local" {
		opts.MediaRoot = cfg.MediaRoot
	}
	r := httpapi.SetupRoutes(opts) // تزریق یوزکیس به آداپتر ورودی

	// اجرای worker در پس‌زمینه
	cleanupWorker := workers.NewMediaCleanupWorker(mediaQueueRepo, storage, cfg.BatchSize, cfg.WorkerInterval, config.Logger)
	workerDone := make(chan struct{})
	go func() {
		cleanupWorker.Run(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		config.Logger.Info("App is running...", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Server shutdown failed", zap.Error(err))
	}
	<-workerDone
}

func newStorage(ctx context.Context, cfg *config.Config) (mediaPort.Storage, error) {
	if cfg.MediaBackend == "s3" {
		s3Storage, err := mediaadapter.NewS3Storage(ctx, mediaadapter.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s3Storage, nil
	}
	if err := os.MkdirAll(cfg.MediaRoot, 0o755); err != nil {
		return nil, err
	}
	return mediaadapter.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL), nil
}

// closeResources بستن اتصالات به Redis و دیتابیس
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if err := config.CloseDB(db); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
