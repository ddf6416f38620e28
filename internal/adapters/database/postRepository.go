package database

import (
	"context"
	"yatube/internal/common"
	"yatube/internal/core/comment"
	"yatube/internal/core/follow"
	"yatube/internal/core/pagination"
	"yatube/internal/core/post"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, translate(err, "create post")
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	if err := repo.db.WithContext(ctx).
		Model(p).
		Select("text", "image", "group_id", "updated_at").
		Updates(p).Error; err != nil {
		return translate(err, "update post")
	}
	return nil
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return translate(err, "delete comments")
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return translate(res.Error, "delete post")
		}
		if res.RowsAffected == 0 {
			return common.ErrNotFound
		}
		return nil
	})
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	pid, err := uuid.FromString(id)
	if err != nil {
		return nil, common.ErrNotFound
	}
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", pid).
		First(&p).Error; err != nil {
		return nil, translate(err, "find post")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, f postPort.Filter) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Scopes(repo.filtered(f)).
		Count(&total).Error; err != nil {
		return 0, translate(err, "count posts")
	}
	return total, nil
}

func (repo *PostRepositoryDatabase) Page(ctx context.Context, f postPort.Filter, number int) (*pagination.Page[*post.Post], error) {
	total, err := repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	w := pagination.NewWindow(total, number, pagination.PageSize)

	var posts []*post.Post
	if err := repo.db.WithContext(ctx).
		Scopes(repo.filtered(f)).
		Preload("Author").
		Preload("Group").
		Order("created_at DESC").
		Order("id DESC").
		Offset(w.Offset).
		Limit(w.Limit).
		Find(&posts).Error; err != nil {
		return nil, translate(err, "list posts")
	}
	return pagination.NewPage(posts, total, w), nil
}

func (repo *PostRepositoryDatabase) filtered(f postPort.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.GroupID != nil {
			q = q.Where("group_id = ?", *f.GroupID)
		}
		if f.AuthorID != nil {
			q = q.Where("author_id = ?", *f.AuthorID)
		}
		if f.FollowerID != nil {
			followed := repo.db.Model(&follow.Follow{}).Select("author_id").Where("user_id = ?", *f.FollowerID)
			q = q.Where("author_id IN (?)", followed)
		}
		return q
	}
}
