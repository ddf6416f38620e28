package postapp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"yatube/internal/adapters/database"
	"yatube/internal/adapters/media"
	"yatube/internal/common"
	"yatube/internal/core/comment"
	"yatube/internal/core/mediaqueue"
	"yatube/internal/core/post"
	"yatube/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	root  string
	svc   *PostService
	queue *database.MediaQueueRepositoryDatabase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	root := t.TempDir()
	queue := database.NewMediaQueueRepositoryDatabase(db)
	svc := NewPostService(
		database.NewPostRepositoryDatabase(db),
		database.NewGroupRepositoryDatabase(db),
		queue,
		media.NewLocalStorage(root, "/media/"),
		1<<20,
	)
	return &fixture{db: db, root: root, svc: svc, queue: queue}
}

func pngUpload(t *testing.T, name string) *Upload {
	data := testutil.PNG(t)
	return &Upload{Filename: name, Size: int64(len(data)), Content: bytes.NewReader(data)}
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "leo")
	g := testutil.CreateGroup(t, f.db, "novels")

	dto, err := f.svc.CreatePost(ctx, author.ID.String(), PostInput{
		Text:    "Happy families are all alike",
		GroupID: g.ID.String(),
		Image:   pngUpload(t, "cover.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Happy families are all alike", dto.Text)
	assert.Equal(t, "leo", dto.Author.Username)
	require.NotNil(t, dto.Group)
	assert.Equal(t, "novels", dto.Group.Slug)
	assert.Regexp(t, `^/media/posts/[0-9a-f-]{36}\.png$`, dto.Image)

	key := strings.TrimPrefix(dto.Image, "/media/")
	_, err = os.Stat(filepath.Join(f.root, filepath.FromSlash(key)))
	assert.NoError(t, err)
}

func TestCreatePostIgnoresUploadedFileName(t *testing.T) {
	f := newFixture(t)
	author := testutil.CreateUser(t, f.db, "leo")

	for _, name := range []string{"holiday...png", "...png", "../../etc/passwd", `C:\photos\me.png`} {
		t.Run(name, func(t *testing.T) {
			dto, err := f.svc.CreatePost(context.Background(), author.ID.String(), PostInput{
				Text:  "trip",
				Image: pngUpload(t, name),
			})
			require.NoError(t, err)
			assert.Regexp(t, `^/media/posts/[0-9a-f-]{36}\.png$`, dto.Image)

			key := strings.TrimPrefix(dto.Image, "/media/")
			_, err = os.Stat(filepath.Join(f.root, filepath.FromSlash(key)))
			assert.NoError(t, err)
		})
	}
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "leo")

	_, err := f.svc.CreatePost(ctx, author.ID.String(), PostInput{
		Text:    "   ",
		GroupID: "1d6c2f16-0000-4000-8000-000000000000",
		Image: &Upload{
			Filename: "notes.txt",
			Size:     5,
			Content:  bytes.NewReader([]byte("hello")),
		},
	})
	var fe common.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "text")
	assert.Contains(t, fe, "group")
	assert.Equal(t, common.ErrInvalidImage.Error(), fe["image"])

	var count int64
	require.NoError(t, f.db.Model(&post.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePostRejectsOversizedImage(t *testing.T) {
	f := newFixture(t)
	f.svc.MaxImageBytes = 10
	author := testutil.CreateUser(t, f.db, "leo")

	_, err := f.svc.CreatePost(context.Background(), author.ID.String(), PostInput{
		Text:  "with a big picture",
		Image: pngUpload(t, "big.png"),
	})
	var fe common.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe["image"], "at most 10 bytes")
}

func TestEditPostByNonAuthorLeavesPostUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "leo")
	other := testutil.CreateUser(t, f.db, "fyodor")
	p := testutil.CreatePost(t, f.db, author, nil, "original", time.Now())

	_, err := f.svc.EditPost(ctx, other.ID.String(), p.ID.String(), PostInput{Text: "hijacked"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	got, err := f.svc.GetPost(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
}

func TestEditPostByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "leo")
	g := testutil.CreateGroup(t, f.db, "novels")

	created, err := f.svc.CreatePost(ctx, author.ID.String(), PostInput{
		Text:    "draft",
		GroupID: g.ID.String(),
		Image:   pngUpload(t, "first.png"),
	})
	require.NoError(t, err)

	edited, err := f.svc.EditPost(ctx, author.ID.String(), created.ID, PostInput{
		Text:  "final",
		Image: pngUpload(t, "second.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "final", edited.Text)
	assert.Nil(t, edited.Group)
	assert.NotEqual(t, created.Image, edited.Image)

	pending, err := f.queue.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, strings.TrimPrefix(created.Image, "/media/"), pending[0].StorageKey)
}

func TestEditPostValidationKeepsPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "leo")
	p := testutil.CreatePost(t, f.db, author, nil, "original", time.Now())

	_, err := f.svc.EditPost(ctx, author.ID.String(), p.ID.String(), PostInput{Text: ""})
	var fe common.FieldErrors
	require.ErrorAs(t, err, &fe)

	got, err := f.svc.GetPost(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, f.db, "leo")
	other := testutil.CreateUser(t, f.db, "fyodor")

	created, err := f.svc.CreatePost(ctx, author.ID.String(), PostInput{
		Text:  "short-lived",
		Image: pngUpload(t, "pic.png"),
	})
	require.NoError(t, err)
	require.NoError(t, f.db.Omit("Author", "Post").Create(&comment.Comment{
		Text:     "nice",
		AuthorID: other.ID,
		PostID:   uuid.FromStringOrNil(created.ID),
	}).Error)

	_, err = f.svc.DeletePost(ctx, other.ID.String(), created.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	deleted, err := f.svc.DeletePost(ctx, author.ID.String(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", deleted.Author.Username)

	_, err = f.svc.GetPost(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	var comments int64
	require.NoError(t, f.db.Model(&comment.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)

	var queued []mediaqueue.MediaCleanup
	require.NoError(t, f.db.Find(&queued).Error)
	require.Len(t, queued, 1)
	assert.Equal(t, strings.TrimPrefix(created.Image, "/media/"), queued[0].StorageKey)
}

func TestGetPostUnknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetPost(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
