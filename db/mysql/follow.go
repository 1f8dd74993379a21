package mysql

import (
	"context"

	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
	"github.com/upper/db/v4"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	// No check-then-insert: the primary key on (follower_id, author_id) is
	// the uniqueness check, so a concurrent duplicate loses the race here.
	_, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Insert(follow)
	if err != nil && appDb.IsDupKeyErr(err) {
		return appDb.ErrDuplicate
	}
	return err
}

func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	return fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("follower_id = ? AND author_id = ?", follow.FollowerId, follow.AuthorId).
		Delete()
}

func (fdb *FollowDB) HasFollow(ctx context.Context, follow *model.Follow) (bool, error) {
	return fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("follower_id = ? AND author_id = ?", follow.FollowerId, follow.AuthorId).
		Exists()
}
