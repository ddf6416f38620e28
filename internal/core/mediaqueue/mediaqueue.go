package mediaqueue

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// MediaCleanup is a stored image that no post references anymore.
type MediaCleanup struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	StorageKey  string     `gorm:"type:varchar(255);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"` // pending, done
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (m *MediaCleanup) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
