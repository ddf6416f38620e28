package groupapp

import (
	"context"
	"testing"
	"yatube/internal/adapters/database"
	"yatube/internal/common"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListGroups(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewGroupService(database.NewGroupRepositoryDatabase(db))
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, "poetry", "Poetry", "verses")
	require.NoError(t, err)
	_, err = svc.CreateGroup(ctx, "cats", "Cats", "")
	require.NoError(t, err)

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cats", groups[0].Title)
	assert.Equal(t, "Poetry", groups[1].Title)

	g, err := svc.GetBySlug(ctx, "poetry")
	require.NoError(t, err)
	assert.Equal(t, "verses", g.Description)

	_, err = svc.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreateGroupValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewGroupService(database.NewGroupRepositoryDatabase(db))
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, "not a slug", " ", "")
	var fe common.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "slug")
	assert.Contains(t, fe, "title")

	_, err = svc.CreateGroup(ctx, "cats", "Cats", "")
	require.NoError(t, err)
	_, err = svc.CreateGroup(ctx, "cats", "Other cats", "")
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}
