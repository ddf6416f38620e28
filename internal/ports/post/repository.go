package post

import (
	"context"
	"time"
	"yatube/internal/core/pagination"
	"yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
)

// Filter narrows a listing. Nil fields are ignored; FollowerID keeps
// posts whose author is followed by that user.
type Filter struct {
	GroupID    *uuid.UUID
	AuthorID   *uuid.UUID
	FollowerID *uuid.UUID
}

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	Update(ctx context.Context, post *post.Post) error
	// Delete removes the post together with its comments.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id string) (*post.Post, error)
	// Page returns one newest-first page of posts matching the filter.
	Page(ctx context.Context, filter Filter, number int) (*pagination.Page[*post.Post], error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// DTOها برای UseCase
type PostDTO struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	Image     string              `json:"image,omitempty"`
	Author    *userPort.UserDTO   `json:"author"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	CreatedAt time.Time           `json:"pub_date"`
}

type PageDTO struct {
	Items        []*PostDTO `json:"items"`
	Number       int        `json:"number"`
	NumPages     int        `json:"num_pages"`
	Count        int64      `json:"count"`
	HasNext      bool       `json:"has_next"`
	HasPrevious  bool       `json:"has_previous"`
	NextPage     int        `json:"next_page_number,omitempty"`
	PreviousPage int        `json:"previous_page_number,omitempty"`
}

// ToDTO maps a post with its preloaded author and group. imageURL turns a
// storage key into a public URL.
func ToDTO(p *post.Post, imageURL func(key string) string) *PostDTO {
	dto := &PostDTO{
		ID:        p.ID.String(),
		Text:      p.Text,
		Author:    userPort.ToDTO(&p.Author),
		Group:     groupPort.ToDTO(p.Group),
		CreatedAt: p.CreatedAt,
	}
	if p.Image != "" && imageURL != nil {
		dto.Image = imageURL(p.Image)
	}
	return dto
}

func ToPageDTO(page *pagination.Page[*post.Post], imageURL func(key string) string) *PageDTO {
	mapped := pagination.Map(page, func(p *post.Post) *PostDTO { return ToDTO(p, imageURL) })
	return &PageDTO{
		Items:        mapped.Items,
		Number:       mapped.Number,
		NumPages:     mapped.NumPages,
		Count:        mapped.Total,
		HasNext:      mapped.HasNext(),
		HasPrevious:  mapped.HasPrevious(),
		NextPage:     mapped.NextPageNumber(),
		PreviousPage: mapped.PreviousPageNumber(),
	}
}
