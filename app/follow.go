package app

import (
	"context"
	"errors"

	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
)

// FollowManager maintains the directed follow edges between users.
type FollowManager struct {
	db appDb.Database
}

func NewFollowManager(database appDb.Database) *FollowManager {
	return &FollowManager{db: database}
}

func (fm *FollowManager) Follow(ctx context.Context, followerId, authorId string) error {
	if followerId == "" {
		return permissionErrorf("must be signed in to follow")
	}
	if followerId == authorId {
		return validationErrorf("cannot follow yourself")
	}
	author, err := fm.db.GetUser(ctx, authorId)
	if err != nil {
		return err
	}
	if author == nil {
		return &NotFoundError{Resource: "author"}
	}
	err = fm.db.CreateFollow(ctx, &model.Follow{
		FollowerId: followerId,
		AuthorId:   authorId,
	})
	if errors.Is(err, appDb.ErrDuplicate) {
		return &ConflictError{Message: "already following this author"}
	}
	return err
}

// Unfollow removes the edge; removing an absent edge is a no-op.
func (fm *FollowManager) Unfollow(ctx context.Context, followerId, authorId string) error {
	if followerId == "" {
		return permissionErrorf("must be signed in to unfollow")
	}
	return fm.db.DeleteFollow(ctx, &model.Follow{
		FollowerId: followerId,
		AuthorId:   authorId,
	})
}

func (fm *FollowManager) IsFollowing(ctx context.Context, followerId, authorId string) (bool, error) {
	return fm.db.HasFollow(ctx, &model.Follow{
		FollowerId: followerId,
		AuthorId:   authorId,
	})
}
