package httpapi

import (
	"context"
	"net/http"
	"strings"
	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/config"
	feedapp "yatube/internal/core/feed/service"
	postapp "yatube/internal/core/post/service"
	commentPort "yatube/internal/ports/comment"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	ParseToken(token string) (string, error)
	GetByID(ctx context.Context, id string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID string, in postapp.PostInput) (*postPort.PostDTO, error)
	EditPost(ctx context.Context, editorID, postID string, in postapp.PostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, userID, postID string) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, postID string) (*postPort.PostDTO, error)
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, authorID, postID, text string) (*commentPort.CommentDTO, error)
	ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error)
}

type FollowUseCase interface {
	FollowUser(ctx context.Context, followerID, username string) error
	UnfollowUser(ctx context.Context, followerID, username string) error
}

type FeedUseCase interface {
	Index(ctx context.Context, page int) (*postPort.PageDTO, error)
	Group(ctx context.Context, slug string, page int) (*feedapp.GroupFeed, error)
	Profile(ctx context.Context, username, viewerID string, page int) (*feedapp.ProfileFeed, error)
	Follow(ctx context.Context, userID string, page int) (*postPort.PageDTO, error)
}

// PageCache stores rendered index pages.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
	Clear(ctx context.Context) error
}

// Options carries the use cases and settings injected into the router.
// Cache may be nil, which disables index caching. MediaRoot is served
// under MediaURL when set.
type Options struct {
	Users    UserUseCase
	Posts    PostUseCase
	Groups   GroupUseCase
	Comments CommentUseCase
	Follows  FollowUseCase
	Feed     FeedUseCase
	Cache    PageCache

	MediaRoot    string
	MediaURL     string
	SecureCookie bool
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(opts Options) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(
		middleware.RequestLogger(config.Logger),
		middleware.Recovery(config.Logger),
		middleware.JWTAuthMiddleware(opts.Users),
	)

	uc := NewUserController(opts.Users, opts.SecureCookie)
	pc := NewPostController(opts.Posts, opts.Comments, opts.Groups, opts.Cache)
	fc := NewFollowController(opts.Follows)
	fd := NewFeedController(opts.Feed, opts.Cache)
	auth := middleware.LoginRequired()

	r.GET("/", fd.Index)
	r.GET("/group/:slug/", fd.Group)
	r.GET("/profile/:username/", fd.Profile)
	r.GET("/follow/", auth, fd.Follow)

	r.GET("/create/", auth, pc.CreateForm)
	r.POST("/create/", auth, pc.CreatePost)
	r.GET("/posts/:id/", pc.Detail)
	r.GET("/posts/:id/edit/", auth, pc.EditForm)
	r.POST("/posts/:id/edit/", auth, pc.EditPost)
	r.POST("/posts/:id/delete/", auth, pc.DeletePost)
	r.POST("/posts/:id/comment/", auth, pc.AddComment)

	r.GET("/profile/:username/follow/", auth, fc.Follow)
	r.GET("/profile/:username/unfollow/", auth, fc.Unfollow)

	// مسیرهای ثبت‌نام و ورود
	r.GET("/auth/signup/", uc.SignupForm)
	r.POST("/auth/signup/", uc.Signup)
	r.GET("/auth/login/", uc.LoginForm)
	r.POST("/auth/login/", uc.Login)
	r.GET("/auth/logout/", uc.Logout)

	if opts.MediaRoot != "" {
		prefix := "/" + strings.Trim(opts.MediaURL, "/")
		r.Static(prefix, opts.MediaRoot)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
