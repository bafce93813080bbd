package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "user:alice", UserKey("alice"))
	assert.Equal(t, "follow_counts:42", FollowCountsKey(42))
}

func TestNilClientFailsSafe(t *testing.T) {
	var c *Client
	ctx := context.Background()

	data, err := c.Get(ctx, UserKey("alice"))
	assert.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, c.Set(ctx, UserKey("alice"), []byte("{}"), 0))
	assert.NoError(t, c.Delete(ctx, UserKey("alice")))
}
