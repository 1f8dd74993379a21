package db

import (
	"context"

	"github.com/quillhub/quillhub-be/model"
)

type Database interface {
	GroupDatabase
	PostDatabase
	FollowDatabase
	UserDatabase
	Close() error
}

type CreateGroup struct {
	Title       string
	Slug        string
	Description string
}

// UpdateGroup edits group metadata only. Nil fields are left untouched.
type UpdateGroup struct {
	Title       *string
	Description *string
}

type CreatePost struct {
	AuthorId  string
	Text      string
	GroupId   *int64
	ImageBlob string
}

// UpdatePost carries an author's edit. Nil fields are left untouched.
// SetGroup distinguishes "clear the group" (SetGroup with nil GroupId) from
// "don't touch the group". PubDate is deliberately not representable here.
type UpdatePost struct {
	Text      *string
	SetGroup  bool
	GroupId   *int64
	ImageBlob *string
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Text     string
}

// PostsQuery selects the posts of one viewing context. Zero-valued filters
// are ignored. Results are always pub_date descending, id descending as the
// tiebreak.
type PostsQuery struct {
	GroupId    *int64
	AuthorId   string
	FollowedBy string
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, req *CreateGroup) (groupId int64, err error)
	UpdateGroup(ctx context.Context, id int64, req *UpdateGroup) error
	// DeleteGroup removes the group and clears the group reference on any
	// post that carried it. The posts themselves survive.
	DeleteGroup(ctx context.Context, id int64) error
	// GetGroupById returns nil, nil when no such group exists.
	GetGroupById(ctx context.Context, id int64) (*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	// DeletePost removes the post and all of its comments.
	DeletePost(ctx context.Context, id int64) error
	// GetPostById returns nil, nil when no such post exists.
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsQuery) ([]*model.Post, error)
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	// GetComments lists a post's comments, oldest first.
	GetComments(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type FollowDatabase interface {
	// CreateFollow inserts the edge, returning ErrDuplicate when the ordered
	// pair already exists. The uniqueness check is the storage layer's unique
	// constraint, so concurrent inserts cannot both create the edge.
	CreateFollow(ctx context.Context, follow *model.Follow) error
	// DeleteFollow removes the edge if present; absence is not an error.
	DeleteFollow(ctx context.Context, follow *model.Follow) error
	HasFollow(ctx context.Context, follow *model.Follow) (bool, error)
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser returns nil, nil when no such user exists.
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByName(ctx context.Context, name string) (*model.User, error)
}
