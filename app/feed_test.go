package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalFeedPaginates(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	addManyPosts(t, env, "alice", 13)

	page1, err := env.feeds.GlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 10)
	assert.True(t, page1.HasNext)
	assert.False(t, page1.HasPrev)
	assert.Equal(t, "post-13", page1.Posts[0].Text, "newest first")

	page2, err := env.feeds.GlobalFeed(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, page2.Posts, 3)
	assert.False(t, page2.HasNext)
	assert.True(t, page2.HasPrev)
	assert.Equal(t, "post-1", page2.Posts[2].Text, "oldest last")
}

func TestGlobalFeedClampsPage(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	addManyPosts(t, env, "alice", 13)

	page, err := env.feeds.GlobalFeed(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Posts, 3)
}

func TestGlobalFeedEmpty(t *testing.T) {
	env := newTestEnv(t)

	page, err := env.feeds.GlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, page.Posts, "renders as an empty list")
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestGroupFeedFiltersBySlug(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	group := env.addGroup(t, "Travel", "travel")
	env.addPost(t, "alice", "in the group", &group.Id)
	env.addPost(t, "alice", "outside the group", nil)

	page, err := env.feeds.GroupFeed(context.Background(), "travel", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "in the group", page.Posts[0].Text)

	_, err = env.feeds.GroupFeed(context.Background(), "nope", 1)
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestAuthorFeedFiltersByUsername(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	env.addUser(t, "bob", "bob", false)
	env.addPost(t, "alice", "by alice", nil)
	env.addPost(t, "bob", "by bob", nil)

	page, err := env.feeds.AuthorFeed(context.Background(), "bob", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "by bob", page.Posts[0].Text)
	assert.Equal(t, "bob", page.Posts[0].Author.Name)

	_, err = env.feeds.AuthorFeed(context.Background(), "ghost", 1)
	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestFollowedFeedTracksFollowEdges(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	env.addUser(t, "bob", "bob", false)
	env.addUser(t, "carol", "carol", false)
	env.addPost(t, "alice", "by alice", nil)
	env.addPost(t, "carol", "by carol", nil)

	page, err := env.feeds.FollowedFeed(context.Background(), "bob", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts, "no follows yet")

	require.NoError(t, env.follows.Follow(context.Background(), "bob", "alice"))

	page, err = env.feeds.FollowedFeed(context.Background(), "bob", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, "by alice", page.Posts[0].Text)

	// Posts published after the follow show up too, newest first.
	env.addPost(t, "alice", "fresh from alice", nil)
	page, err = env.feeds.FollowedFeed(context.Background(), "bob", 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "fresh from alice", page.Posts[0].Text)

	// Carol's feed is unaffected by bob's follow.
	page, err = env.feeds.FollowedFeed(context.Background(), "carol", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
}

func TestFollowedFeedRequiresIdentifiedCaller(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.feeds.FollowedFeed(context.Background(), "", 1)
	var permissionErr *PermissionError
	assert.ErrorAs(t, err, &permissionErr)
}

func TestRenderedGlobalFeedServesStalePagesUntilCleared(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	post := env.addPost(t, "alice", "soon to vanish", nil)

	first, err := env.feeds.RenderedGlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, string(first), "soon to vanish")

	// Deletes do not invalidate the view, so the cached payload comes back
	// byte for byte.
	require.NoError(t, env.content.DeletePost(context.Background(), post.Id, "alice"))
	cached, err := env.feeds.RenderedGlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	require.NoError(t, env.cache.Clear(context.Background()))
	fresh, err := env.feeds.RenderedGlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.NotContains(t, string(fresh), "soon to vanish")
}

func TestCreatePostInvalidatesRenderedGlobalFeed(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice", "alice", false)
	env.addPost(t, "alice", "first", nil)

	stale, err := env.feeds.RenderedGlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.NotContains(t, string(stale), "second")

	env.addPost(t, "alice", "second", nil)

	fresh, err := env.feeds.RenderedGlobalFeed(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, string(fresh), "second")
}
