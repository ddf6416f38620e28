package database

import (
	"context"
	"time"
	"yatube/internal/core/mediaqueue"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MediaQueueRepositoryDatabase struct {
	db *gorm.DB
}

func NewMediaQueueRepositoryDatabase(db *gorm.DB) *MediaQueueRepositoryDatabase {
	return &MediaQueueRepositoryDatabase{db: db}
}

func (repo *MediaQueueRepositoryDatabase) Enqueue(ctx context.Context, storageKey string) (*mediaqueue.MediaCleanup, error) {
	m := &mediaqueue.MediaCleanup{
		StorageKey: storageKey,
		Status:     mediaqueue.StatusPending,
	}
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, translate(err, "enqueue media cleanup")
	}
	return m, nil
}

func (repo *MediaQueueRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*mediaqueue.MediaCleanup, error) {
	var pending []*mediaqueue.MediaCleanup
	if err := repo.db.WithContext(ctx).
		Where("status = ?", mediaqueue.StatusPending).
		Order("created_at").
		Limit(limit).
		Find(&pending).Error; err != nil {
		return nil, translate(err, "get pending media")
	}
	return pending, nil
}

func (repo *MediaQueueRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	if err := repo.db.WithContext(ctx).
		Model(&mediaqueue.MediaCleanup{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": mediaqueue.StatusDone, "processed_at": &now}).Error; err != nil {
		return translate(err, "mark media done")
	}
	return nil
}
