package mediaqueue

import (
	"context"
	"yatube/internal/core/mediaqueue"

	"github.com/gofrs/uuid"
)

type MediaQueueRepository interface {
	Enqueue(ctx context.Context, storageKey string) (*mediaqueue.MediaCleanup, error)
	GetPending(ctx context.Context, limit int) ([]*mediaqueue.MediaCleanup, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
}
