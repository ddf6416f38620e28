package follow

import (
	"context"
	"yatube/internal/core/follow"
)

// FollowRepository پورت برای ذخیره‌سازی و بازیابی دنبال‌کنندگان
type FollowRepository interface {
	// Create inserts the edge unless it already exists and reports whether a row was written.
	Create(ctx context.Context, f *follow.Follow) (bool, error)
	// Delete removes the edge and reports whether one existed.
	Delete(ctx context.Context, userID, authorID string) (bool, error)
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
}

// DTOها برای UseCase
type FollowDTO struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	AuthorID string `json:"author_id"`
}
