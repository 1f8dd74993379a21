package mysql

import (
	"context"
	"database/sql"

	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
	"github.com/upper/db/v4"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, req *appDb.CreateGroup) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("blog_group").
		Columns("title", "slug", "description").
		Values(req.Title, req.Slug, req.Description).
		ExecContext(ctx)
	if err != nil {
		if appDb.IsDupKeyErr(err) {
			return 0, appDb.ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) UpdateGroup(ctx context.Context, id int64, req *appDb.UpdateGroup) error {
	changes := map[string]interface{}{}
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if len(changes) == 0 {
		return nil
	}
	_, err := gdb.sess.SQL().
		Update("blog_group").
		Set(changes).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (gdb *GroupDB) DeleteGroup(ctx context.Context, id int64) error {
	// Referencing posts survive with a cleared group. The schema's SET NULL
	// covers this too; doing it explicitly keeps the delete order irrelevant.
	return gdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			Update("post").
			Set(map[string]interface{}{"group_id": nil}).
			Where("group_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("blog_group").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, &sql.TxOptions{})
}

func (gdb *GroupDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	return gdb.getGroup(ctx, "id = ?", id)
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return gdb.getGroup(ctx, "slug = ?", slug)
}

func (gdb *GroupDB) getGroup(ctx context.Context, where string, arg interface{}) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select("*").
		From("blog_group").
		Where(where, arg).
		IteratorContext(ctx).
		One(&group); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	return groups, gdb.sess.SQL().
		Select("*").
		From("blog_group").
		OrderBy("title").
		IteratorContext(ctx).
		All(&groups)
}
