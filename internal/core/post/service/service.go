package postapp

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"time"
	"yatube/internal/common"
	"yatube/internal/config"
	postEntity "yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"
	mediaPort "yatube/internal/ports/media"
	mediaQueuePort "yatube/internal/ports/mediaqueue"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const defaultMaxImageBytes = 5 << 20

// Upload is an image submitted with a post form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

// PostInput holds the bound post form. GroupID is empty when no group is chosen.
type PostInput struct {
	Text    string
	GroupID string
	Image   *Upload
}

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	MediaQueue      mediaQueuePort.MediaQueueRepository // تزریق شده
	Storage         mediaPort.Storage                   // تزریق شده
	MaxImageBytes   int64
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	mediaQueue mediaQueuePort.MediaQueueRepository,
	storage mediaPort.Storage,
	maxImageBytes int64,
) *PostService {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		MediaQueue:      mediaQueue,
		Storage:         storage,
		MaxImageBytes:   maxImageBytes,
	}
}

// CreatePost ایجاد یک پست جدید برای نویسنده
func (s *PostService) CreatePost(ctx context.Context, authorID string, in PostInput) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id: %w", common.ErrNotFound)
	}

	groupID, upload, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	p := &postEntity.Post{
		Text:     in.Text,
		AuthorID: uid,
		GroupID:  groupID,
	}
	if upload != nil {
		key, err := s.storeImage(ctx, upload)
		if err != nil {
			return nil, err
		}
		p.Image = key
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		if p.Image != "" {
			s.queueCleanup(ctx, p.Image)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	config.Logger.Info("post created",
		zap.String("postID", created.ID.String()),
		zap.String("authorID", authorID),
	)
	return s.GetPost(ctx, created.ID.String())
}

// EditPost applies the form to an existing post. Only the author may edit;
// anybody else gets ErrForbidden and the post is left as it was.
func (s *PostService) EditPost(ctx context.Context, editorID, postID string, in PostInput) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != editorID {
		config.Logger.Warn("edit by non-author rejected",
			zap.String("postID", postID),
			zap.String("userID", editorID),
		)
		return nil, common.ErrForbidden
	}

	groupID, upload, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	oldImage := p.Image
	if upload != nil {
		key, err := s.storeImage(ctx, upload)
		if err != nil {
			return nil, err
		}
		p.Image = key
	}
	p.Text = in.Text
	p.GroupID = groupID
	p.Group = nil
	p.UpdatedAt = time.Now()

	if err := s.PostRepository.Update(ctx, p); err != nil {
		if p.Image != oldImage {
			s.queueCleanup(ctx, p.Image)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	if oldImage != "" && p.Image != oldImage {
		s.queueCleanup(ctx, oldImage)
	}
	return s.GetPost(ctx, postID)
}

// DeletePost removes the post and its comments. The image goes to the cleanup queue.
func (s *PostService) DeletePost(ctx context.Context, userID, postID string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != userID {
		config.Logger.Warn("delete by non-author rejected",
			zap.String("postID", postID),
			zap.String("userID", userID),
		)
		return nil, common.ErrForbidden
	}
	if err := s.PostRepository.Delete(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}
	if p.Image != "" {
		s.queueCleanup(ctx, p.Image)
	}
	config.Logger.Info("post deleted", zap.String("postID", postID))
	return postPort.ToDTO(p, s.Storage.URL), nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p, s.Storage.URL), nil
}

// validate checks the form and resolves the chosen group.
func (s *PostService) validate(ctx context.Context, in PostInput) (*uuid.UUID, *checkedImage, error) {
	errs := common.FieldErrors{}
	if strings.TrimSpace(in.Text) == "" {
		errs["text"] = "This field is required."
	}

	var groupID *uuid.UUID
	if gid := strings.TrimSpace(in.GroupID); gid != "" {
		g, err := s.GroupRepository.FindByID(ctx, gid)
		switch {
		case errors.Is(err, common.ErrNotFound):
			errs["group"] = "Select a valid choice. That choice is not one of the available choices."
		case err != nil:
			return nil, nil, err
		default:
			groupID = &g.ID
		}
	}

	var img *checkedImage
	if in.Image != nil {
		checked, err := s.checkImage(in.Image)
		if err != nil {
			errs["image"] = err.Error()
		} else {
			img = checked
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return groupID, img, nil
}

type checkedImage struct {
	*Upload
	contentType string
	ext         string
}

func (s *PostService) checkImage(u *Upload) (*checkedImage, error) {
	if u.Content == nil || u.Size <= 0 {
		return nil, errors.New("The submitted file is empty.")
	}
	if u.Size > s.MaxImageBytes {
		return nil, fmt.Errorf("Ensure the image is at most %d bytes.", s.MaxImageBytes)
	}
	_, format, err := image.DecodeConfig(u.Content)
	if err != nil {
		return nil, common.ErrInvalidImage
	}
	if _, err := u.Content.Seek(0, io.SeekStart); err != nil {
		return nil, common.ErrInvalidImage
	}
	return &checkedImage{Upload: u, contentType: "image/" + format, ext: format}, nil
}

// storeImage saves the upload under a generated key. The submitted file name
// is not used.
func (s *PostService) storeImage(ctx context.Context, img *checkedImage) (string, error) {
	key := fmt.Sprintf("posts/%s.%s", uuid.Must(uuid.NewV4()), img.ext)
	if err := s.Storage.Save(ctx, key, img.Content, img.Size, img.contentType); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return key, nil
}

func (s *PostService) queueCleanup(ctx context.Context, key string) {
	if _, err := s.MediaQueue.Enqueue(ctx, key); err != nil {
		config.Logger.Warn("could not queue media cleanup", zap.String("key", key), zap.Error(err))
	}
}
