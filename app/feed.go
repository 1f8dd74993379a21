package app

import (
	"context"
	"encoding/json"

	"github.com/quillhub/quillhub-be/cache"
	"github.com/quillhub/quillhub-be/config"
	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
)

// GlobalFeedView is the cache view name for rendered global-feed pages.
const GlobalFeedView = "feed:global"

// FeedComposer builds the paginated post listings. Only the global feed is
// cached; the cache stores the fully rendered page payload keyed by page
// number.
type FeedComposer struct {
	db        appDb.Database
	pageCache cache.Cache
	pageSize  int
}

func NewFeedComposer(database appDb.Database, pageCache cache.Cache) *FeedComposer {
	return &FeedComposer{
		db:        database,
		pageCache: pageCache,
		pageSize:  config.FeedPageSize,
	}
}

type FeedPage struct {
	Posts   []*model.Post `json:"posts"`
	Page    int           `json:"page"`
	HasNext bool          `json:"hasNext"`
	HasPrev bool          `json:"hasPrev"`
}

// GlobalFeed lists all posts, newest first, bypassing the cache.
func (fc *FeedComposer) GlobalFeed(ctx context.Context, page int) (*FeedPage, error) {
	return fc.compose(ctx, &appDb.PostsQuery{}, page)
}

// RenderedGlobalFeed returns the global feed page as its rendered JSON
// payload, served from the page cache when possible. The cache key is the
// requested page number; within the TTL window the payload is returned
// byte-for-byte even if posts were deleted meanwhile.
func (fc *FeedComposer) RenderedGlobalFeed(ctx context.Context, page int) ([]byte, error) {
	if payload, ok, err := fc.pageCache.Get(ctx, GlobalFeedView, page); err != nil {
		return nil, err
	} else if ok {
		return payload, nil
	}
	feedPage, err := fc.GlobalFeed(ctx, page)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(feedPage)
	if err != nil {
		return nil, err
	}
	if err := fc.pageCache.Set(ctx, GlobalFeedView, page, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GroupFeed lists the posts tagged with the group, newest first.
func (fc *FeedComposer) GroupFeed(ctx context.Context, slug string, page int) (*FeedPage, error) {
	group, err := fc.db.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, &NotFoundError{Resource: "group"}
	}
	return fc.compose(ctx, &appDb.PostsQuery{GroupId: &group.Id}, page)
}

// AuthorFeed lists the posts of one author, newest first.
func (fc *FeedComposer) AuthorFeed(ctx context.Context, username string, page int) (*FeedPage, error) {
	author, err := fc.db.GetUserByName(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, &NotFoundError{Resource: "author"}
	}
	return fc.compose(ctx, &appDb.PostsQuery{AuthorId: author.Id}, page)
}

// FollowedFeed lists the posts of every author the viewer follows, newest
// first. Viewers never see their own posts here: self-follow edges cannot
// be created.
func (fc *FeedComposer) FollowedFeed(ctx context.Context, viewerId string, page int) (*FeedPage, error) {
	if viewerId == "" {
		return nil, permissionErrorf("must be signed in to view the followed feed")
	}
	return fc.compose(ctx, &appDb.PostsQuery{FollowedBy: viewerId}, page)
}

func (fc *FeedComposer) compose(ctx context.Context, query *appDb.PostsQuery, page int) (*FeedPage, error) {
	posts, err := fc.db.GetPosts(ctx, query)
	if err != nil {
		return nil, err
	}
	pagePosts, hasNext, hasPrev := Paginate(posts, fc.pageSize, page)
	if pagePosts == nil {
		pagePosts = []*model.Post{} // don't render null
	}
	return &FeedPage{
		Posts:   pagePosts,
		Page:    ClampPage(len(posts), fc.pageSize, page),
		HasNext: hasNext,
		HasPrev: hasPrev,
	}, nil
}
