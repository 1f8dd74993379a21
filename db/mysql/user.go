package mysql

import (
	"context"

	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
	"github.com/quillhub/quillhub-be/util"
	"github.com/upper/db/v4"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.SQL().
		InsertInto("person").
		Columns("firebase_id", "name", "is_admin").
		Values(user.Id, user.Name, user.IsAdmin).
		ExecContext(ctx)
	if err != nil && appDb.IsDupKeyErr(err) {
		return appDb.ErrDuplicate
	}
	return err
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return udb.getUser(ctx, "firebase_id = ?", id)
}

func (udb *UserDB) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	return udb.getUser(ctx, "name = ?", name)
}

func (udb *UserDB) getUser(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("firebase_id", "name", "is_admin").
		From("person").
		Where(where, arg).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	user.Avatar = util.Avatar(user.Id)
	return &user, nil
}
