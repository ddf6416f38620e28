package comment

import (
	"context"
	"time"
	"yatube/internal/core/comment"
	userPort "yatube/internal/ports/user"
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error)
	// ListByPost returns comments in the order they were written.
	ListByPost(ctx context.Context, postID string) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string            `json:"id"`
	PostID    string            `json:"post_id"`
	Text      string            `json:"text"`
	Author    *userPort.UserDTO `json:"author"`
	CreatedAt time.Time         `json:"created"`
}

func ToDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		PostID:    c.PostID.String(),
		Text:      c.Text,
		Author:    userPort.ToDTO(&c.Author),
		CreatedAt: c.CreatedAt,
	}
}
