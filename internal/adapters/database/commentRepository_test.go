package database

import (
	"context"
	"testing"
	"time"
	"yatube/internal/core/comment"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryListsInWritingOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCommentRepositoryDatabase(db)
	ctx := context.Background()
	author := testutil.CreateUser(t, db, "reader")
	p := testutil.CreatePost(t, db, author, nil, "topic", time.Now())
	other := testutil.CreatePost(t, db, author, nil, "other", time.Now())

	base := time.Now().Add(-time.Hour)
	for i, text := range []string{"first", "second", "third"} {
		_, err := repo.Create(ctx, &comment.Comment{
			Text:      text,
			AuthorID:  author.ID,
			PostID:    p.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &comment.Comment{Text: "elsewhere", AuthorID: author.ID, PostID: other.ID})
	require.NoError(t, err)

	comments, err := repo.ListByPost(ctx, p.ID.String())
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "third", comments[2].Text)
	assert.Equal(t, "reader", comments[0].Author.Username)
}
