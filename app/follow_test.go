package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndIsFollowing(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	env.addUser(t, "bob", "bob", false)

	following, err := env.follows.IsFollowing(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.False(t, following)

	require.NoError(t, env.follows.Follow(context.Background(), "bob", "alice"))

	following, err = env.follows.IsFollowing(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed.
	following, err = env.follows.IsFollowing(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	env.addUser(t, "bob", "bob", false)

	require.NoError(t, env.follows.Follow(context.Background(), "bob", "alice"))

	err := env.follows.Follow(context.Background(), "bob", "alice")
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)

	// The duplicate attempt leaves exactly one edge behind.
	require.NoError(t, env.follows.Unfollow(context.Background(), "bob", "alice"))
	following, err := env.follows.IsFollowing(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)

	err := env.follows.Follow(context.Background(), "alice", "alice")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestFollowUnknownAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)

	err := env.follows.Follow(context.Background(), "alice", "ghost")
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestFollowRequiresIdentifiedCaller(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)

	err := env.follows.Follow(context.Background(), "", "alice")
	var permissionErr *PermissionError
	assert.ErrorAs(t, err, &permissionErr)

	err = env.follows.Unfollow(context.Background(), "", "alice")
	assert.ErrorAs(t, err, &permissionErr)
}

func TestUnfollowAbsentEdgeIsNoop(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	env.addUser(t, "bob", "bob", false)

	assert.NoError(t, env.follows.Unfollow(context.Background(), "bob", "alice"))
}
