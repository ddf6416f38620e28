package post

import (
	"time"
	"yatube/internal/core/group"
	"yatube/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// previewLen is how many runes of the text String shows.
const previewLen = 15

type Post struct {
	ID        uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	Text      string       `gorm:"type:text;not null"`
	Image     string       `gorm:"type:varchar(255)"` // storage key, empty when no image
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    user.User    `gorm:"foreignKey:AuthorID"`
	GroupID   *uuid.UUID   `gorm:"type:char(36);index"`
	Group     *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > previewLen {
		return string(r[:previewLen])
	}
	return p.Text
}
