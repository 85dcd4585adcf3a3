package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func TestLikeAndUnlike(t *testing.T) {
	db := testhelpers.NewTestDatabase(t)
	svc := service.NewLikeService(db.DB)
	ctx := context.Background()

	author := testhelpers.CreateTestUser(t, db)
	fan := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db.DB, author.ID, "Soup")

	status, err := svc.LikeStatus(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, status.Likes)
	assert.False(t, status.Liked)

	status, err = svc.Like(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, status.Recipe)
	assert.Equal(t, int64(1), status.Likes)
	assert.True(t, status.Liked)

	status, err = svc.Like(ctx, author.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.Likes)

	status, err = svc.Unlike(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Likes)
	assert.False(t, status.Liked)
}

func TestLikeTwiceIsRejected(t *testing.T) {
	db := testhelpers.NewTestDatabase(t)
	svc := service.NewLikeService(db.DB)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db.DB, user.ID, "Soup")

	_, err := svc.Like(ctx, user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = svc.Like(ctx, user.ID, recipe.ID)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["non_field_errors"], "Recipe already liked.")

	status, err := svc.LikeStatus(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.Likes)
}

func TestUnlikeWithoutLike(t *testing.T) {
	db := testhelpers.NewTestDatabase(t)
	svc := service.NewLikeService(db.DB)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db.DB, user.ID, "Soup")

	_, err := svc.Unlike(context.Background(), user.ID, recipe.ID)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields["non_field_errors"], "Recipe has not yet been liked.")
}

func TestLikesOnMissingRecipe(t *testing.T) {
	db := testhelpers.NewTestDatabase(t)
	svc := service.NewLikeService(db.DB)
	user := testhelpers.CreateTestUser(t, db)
	ctx := context.Background()

	_, err := svc.Like(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Unlike(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.LikeStatus(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
