package feedapp

import (
	"context"
	"yatube/internal/common"
	groupPort "yatube/internal/ports/group"
	mediaPort "yatube/internal/ports/media"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gofrs/uuid"
)

type GroupFeed struct {
	Group *groupPort.GroupDTO `json:"group"`
	Page  *postPort.PageDTO   `json:"page_obj"`
}

type ProfileFeed struct {
	Author    *userPort.UserDTO `json:"author"`
	Following bool              `json:"following"`
	Followers int64             `json:"followers_count"`
	Page      *postPort.PageDTO `json:"page_obj"`
}

// FeedService builds the paginated post listings.
type FeedService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	UserRepository  userPort.UserRepository
	Following       FollowStats
	Storage         mediaPort.Storage
}

// FollowStats answers follow questions about an author.
type FollowStats interface {
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	following FollowStats,
	storage mediaPort.Storage,
) *FeedService {
	return &FeedService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		UserRepository:  userRepo,
		Following:       following,
		Storage:         storage,
	}
}

// Index returns one page of every post.
func (s *FeedService) Index(ctx context.Context, page int) (*postPort.PageDTO, error) {
	return s.page(ctx, postPort.Filter{}, page)
}

func (s *FeedService) Group(ctx context.Context, slug string, page int) (*GroupFeed, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p, err := s.page(ctx, postPort.Filter{GroupID: &g.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: groupPort.ToDTO(g), Page: p}, nil
}

// Profile lists the author's posts. Following is computed for viewerID,
// which is empty for anonymous visitors.
func (s *FeedService) Profile(ctx context.Context, username, viewerID string, page int) (*ProfileFeed, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.page(ctx, postPort.Filter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}
	following, err := s.Following.IsFollowing(ctx, viewerID, author.ID.String())
	if err != nil {
		return nil, err
	}
	followers, err := s.Following.CountFollowers(ctx, author.ID.String())
	if err != nil {
		return nil, err
	}
	return &ProfileFeed{
		Author:    userPort.ToDTO(author),
		Following: following,
		Followers: followers,
		Page:      p,
	}, nil
}

// Follow lists posts by the authors userID follows.
func (s *FeedService) Follow(ctx context.Context, userID string, page int) (*postPort.PageDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return s.page(ctx, postPort.Filter{FollowerID: &uid}, page)
}

func (s *FeedService) page(ctx context.Context, f postPort.Filter, number int) (*postPort.PageDTO, error) {
	p, err := s.PostRepository.Page(ctx, f, number)
	if err != nil {
		return nil, err
	}
	return postPort.ToPageDTO(p, s.Storage.URL), nil
}
