package workers

import (
	"context"
	"time"
	"yatube/internal/core/mediaqueue"
	mediaPort "yatube/internal/ports/media"
	mediaQueuePort "yatube/internal/ports/mediaqueue"

	"go.uber.org/zap"
)

// MediaCleanupWorker removes orphaned images queued by the post service.
type MediaCleanupWorker struct {
	Queue     mediaQueuePort.MediaQueueRepository
	Storage   mediaPort.Storage
	BatchSize int // تعداد رکوردهای هر batch
	Interval  time.Duration
	Logger    *zap.Logger
}

func NewMediaCleanupWorker(
	queue mediaQueuePort.MediaQueueRepository,
	storage mediaPort.Storage,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *MediaCleanupWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &MediaCleanupWorker{
		Queue:     queue,
		Storage:   storage,
		BatchSize: batchSize,
		Interval:  interval,
		Logger:    logger,
	}
}

// Run گوش دادن به صف و حذف فایل‌ها تا زمان لغو context
func (w *MediaCleanupWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 MediaCleanupWorker started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		// a full batch means more may be waiting
		for w.RunOnce(ctx) == w.BatchSize && ctx.Err() == nil {
		}
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 MediaCleanupWorker stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce processes one batch of pending rows and returns how many were completed.
func (w *MediaCleanupWorker) RunOnce(ctx context.Context) int {
	pending, err := w.Queue.GetPending(ctx, w.BatchSize)
	if err != nil {
		if ctx.Err() == nil {
			w.Logger.Error("❌ Error fetching pending media", zap.Error(err))
		}
		return 0
	}
	if len(pending) == 0 {
		return 0
	}

	w.Logger.Info("📦 Processing media batch", zap.Int("count", len(pending)))
	done := 0
	for _, m := range pending {
		if w.process(ctx, m) {
			done++
		}
	}
	return done
}

// پردازش یک رکورد صف
func (w *MediaCleanupWorker) process(ctx context.Context, m *mediaqueue.MediaCleanup) bool {
	if m.StorageKey != "" {
		if err := w.Storage.Delete(ctx, m.StorageKey); err != nil {
			w.Logger.Warn("⚠️ could not delete media, will retry",
				zap.String("key", m.StorageKey),
				zap.Error(err),
			)
			return false
		}
	}
	if err := w.Queue.MarkDone(ctx, m.ID); err != nil {
		w.Logger.Warn("⚠️ could not mark media cleanup done", zap.String("id", m.ID.String()), zap.Error(err))
		return false
	}
	w.Logger.Debug("✅ media removed", zap.String("key", m.StorageKey))
	return true
}
