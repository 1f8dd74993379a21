package app

import (
	"context"
	"errors"

	"github.com/quillhub/quillhub-be/cache"
	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
	"github.com/quillhub/quillhub-be/util"
)

// ContentService owns post, comment and group writes. It holds the page
// cache so successful post writes can invalidate the global feed view
// immediately; deletes intentionally leave the cache alone (stale pages are
// tolerated until the TTL runs out).
type ContentService struct {
	db        appDb.Database
	pageCache cache.Cache
}

func NewContentService(database appDb.Database, pageCache cache.Cache) *ContentService {
	return &ContentService{db: database, pageCache: pageCache}
}

type PostInput struct {
	Text      string
	GroupId   *int64
	ImageBlob string
}

// PostUpdate describes an author edit. Nil fields are untouched; SetGroup
// with a nil GroupId clears the group.
type PostUpdate struct {
	Text      *string
	SetGroup  bool
	GroupId   *int64
	ImageBlob *string
}

func (cs *ContentService) CreatePost(ctx context.Context, authorId string, input *PostInput) (*model.Post, error) {
	if authorId == "" {
		return nil, permissionErrorf("must be signed in to post")
	}
	text := util.CleanBody(input.Text)
	if text == "" {
		return nil, validationErrorf("post text must not be empty")
	}
	if input.GroupId != nil {
		group, err := cs.db.GetGroupById(ctx, *input.GroupId)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, &NotFoundError{Resource: "group"}
		}
	}
	postId, err := cs.db.CreatePost(ctx, &appDb.CreatePost{
		AuthorId:  authorId,
		Text:      text,
		GroupId:   input.GroupId,
		ImageBlob: input.ImageBlob,
	})
	if err != nil {
		return nil, err
	}
	if err := cs.pageCache.Invalidate(ctx, GlobalFeedView); err != nil {
		return nil, err
	}
	return cs.db.GetPostById(ctx, postId)
}

func (cs *ContentService) EditPost(ctx context.Context, postId int64, actorId string, update *PostUpdate) (*model.Post, error) {
	if actorId == "" {
		return nil, permissionErrorf("must be signed in to edit")
	}
	post, err := cs.db.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post"}
	}
	if post.Author.Id != actorId {
		return nil, permissionErrorf("only the author may edit a post")
	}

	changes := appDb.UpdatePost{
		SetGroup:  update.SetGroup,
		GroupId:   update.GroupId,
		ImageBlob: update.ImageBlob,
	}
	if update.Text != nil {
		text := util.CleanBody(*update.Text)
		if text == "" {
			return nil, validationErrorf("post text must not be empty")
		}
		changes.Text = &text
	}
	if update.SetGroup && update.GroupId != nil {
		group, err := cs.db.GetGroupById(ctx, *update.GroupId)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, &NotFoundError{Resource: "group"}
		}
	}
	if err := cs.db.UpdatePost(ctx, postId, &changes); err != nil {
		return nil, err
	}
	if err := cs.pageCache.Invalidate(ctx, GlobalFeedView); err != nil {
		return nil, err
	}
	return cs.db.GetPostById(ctx, postId)
}

// DeletePost removes the post and its comments. It does not touch the page
// cache: a deleted post may keep appearing on the cached global page until
// the TTL expires or the cache is cleared.
func (cs *ContentService) DeletePost(ctx context.Context, postId int64, actorId string) error {
	if actorId == "" {
		return permissionErrorf("must be signed in to delete")
	}
	post, err := cs.db.GetPostById(ctx, postId)
	if err != nil {
		return err
	}
	if post == nil {
		return &NotFoundError{Resource: "post"}
	}
	if post.Author.Id != actorId {
		return permissionErrorf("only the author may delete a post")
	}
	return cs.db.DeletePost(ctx, postId)
}

func (cs *ContentService) CreateComment(ctx context.Context, postId int64, authorId, text string) (*model.Comment, error) {
	if authorId == "" {
		return nil, permissionErrorf("must be signed in to comment")
	}
	text = util.CleanBody(text)
	if text == "" {
		return nil, validationErrorf("comment text must not be empty")
	}
	post, err := cs.db.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post"}
	}
	commentId, err := cs.db.CreateComment(ctx, &appDb.CreateComment{
		PostId:   postId,
		AuthorId: authorId,
		Text:     text,
	})
	if err != nil {
		return nil, err
	}
	comments, err := cs.db.GetComments(ctx, postId)
	if err != nil {
		return nil, err
	}
	for _, comment := range comments {
		if comment.Id == commentId {
			return comment, nil
		}
	}
	return nil, &NotFoundError{Resource: "comment"}
}

func (cs *ContentService) GetPost(ctx context.Context, postId int64) (*model.Post, error) {
	post, err := cs.db.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post"}
	}
	return post, nil
}

func (cs *ContentService) GetComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	post, err := cs.db.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post"}
	}
	return cs.db.GetComments(ctx, postId)
}

type GroupInput struct {
	Title       string
	Slug        string
	Description string
}

type GroupUpdate struct {
	Title       *string
	Description *string
}

func (cs *ContentService) CreateGroup(ctx context.Context, actorId string, input *GroupInput) (*model.Group, error) {
	if err := cs.requireAdmin(ctx, actorId); err != nil {
		return nil, err
	}
	if input.Title == "" || input.Slug == "" {
		return nil, validationErrorf("group title and slug must not be empty")
	}
	groupId, err := cs.db.CreateGroup(ctx, &appDb.CreateGroup{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	})
	if errors.Is(err, appDb.ErrDuplicate) {
		return nil, &ConflictError{Message: "a group with that slug already exists"}
	}
	if err != nil {
		return nil, err
	}
	return cs.db.GetGroupById(ctx, groupId)
}

func (cs *ContentService) EditGroup(ctx context.Context, slug, actorId string, update *GroupUpdate) (*model.Group, error) {
	if err := cs.requireAdmin(ctx, actorId); err != nil {
		return nil, err
	}
	group, err := cs.db.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, &NotFoundError{Resource: "group"}
	}
	if err := cs.db.UpdateGroup(ctx, group.Id, &appDb.UpdateGroup{
		Title:       update.Title,
		Description: update.Description,
	}); err != nil {
		return nil, err
	}
	return cs.db.GetGroupById(ctx, group.Id)
}

// DeleteGroup removes the group; referencing posts survive with their group
// reference cleared.
func (cs *ContentService) DeleteGroup(ctx context.Context, slug, actorId string) error {
	if err := cs.requireAdmin(ctx, actorId); err != nil {
		return err
	}
	group, err := cs.db.GetGroupBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if group == nil {
		return &NotFoundError{Resource: "group"}
	}
	return cs.db.DeleteGroup(ctx, group.Id)
}

func (cs *ContentService) requireAdmin(ctx context.Context, actorId string) error {
	if actorId == "" {
		return permissionErrorf("must be signed in")
	}
	user, err := cs.db.GetUser(ctx, actorId)
	if err != nil {
		return err
	}
	if user == nil || !user.IsAdmin {
		return permissionErrorf("group administration requires an admin account")
	}
	return nil
}
