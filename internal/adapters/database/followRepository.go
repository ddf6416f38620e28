package database

import (
	"context"
	"yatube/internal/core/follow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepositoryDatabase پیاده‌سازی FollowRepository برای دیتابیس
type FollowRepositoryDatabase struct {
	db *gorm.DB
}

// NewFollowRepositoryDatabase سازنده FollowRepositoryDatabase
func NewFollowRepositoryDatabase(db *gorm.DB) *FollowRepositoryDatabase {
	return &FollowRepositoryDatabase{db: db}
}

func (repo *FollowRepositoryDatabase) Create(ctx context.Context, f *follow.Follow) (bool, error) {
	res := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f)
	if res.Error != nil {
		return false, translate(res.Error, "create follow")
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowRepositoryDatabase) Delete(ctx context.Context, userID, authorID string) (bool, error) {
	res := repo.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&follow.Follow{})
	if res.Error != nil {
		return false, translate(res.Error, "delete follow")
	}
	return res.RowsAffected > 0, nil
}

func (repo *FollowRepositoryDatabase) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&follow.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, translate(err, "check follow")
	}
	return count > 0, nil
}

func (repo *FollowRepositoryDatabase) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&follow.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, translate(err, "count followers")
	}
	return count, nil
}
