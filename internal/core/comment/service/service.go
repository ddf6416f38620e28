package commentapp

import (
	"context"
	"fmt"
	"strings"
	"yatube/internal/common"
	"yatube/internal/config"
	commentEntity "yatube/internal/core/comment"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

// AddComment ثبت نظر برای یک پست
// Blank text is rejected with FieldErrors and nothing is stored.
func (s *CommentService) AddComment(ctx context.Context, authorID, postID, text string) (*commentPort.CommentDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		config.Logger.Debug("blank comment rejected", zap.String("postID", postID))
		return nil, common.FieldErrors{"text": "This field is required."}
	}

	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", common.ErrNotFound)
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		Text:     text,
		AuthorID: uid,
		PostID:   p.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return commentPort.ToDTO(c), nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.ToDTO(c))
	}
	return dtos, nil
}
