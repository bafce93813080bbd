package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedTestUser(t, db, "alice")
	bob := seedTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.Create(ctx, alice.ID, bob.ID))

	exists, err := repo.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	followers, err := repo.CountFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	following, err := repo.CountFollowing(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}

func TestFollowRepository_DeleteRemovesEdge(t *testing.T) {
	db := openTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := seedTestUser(t, db, "alice")
	bob := seedTestUser(t, db, "bob")

	require.NoError(t, repo.Create(ctx, alice.ID, bob.ID))
	require.NoError(t, repo.Delete(ctx, alice.ID, bob.ID))

	exists, err := repo.Exists(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting a missing edge is a no-op
	require.NoError(t, repo.Delete(ctx, alice.ID, bob.ID))
}
