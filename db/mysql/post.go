package mysql

import (
	"context"
	"database/sql"
	"time"

	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/db/dao"
	"github.com/quillhub/quillhub-be/model"
	"github.com/quillhub/quillhub-be/util"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "text", "group_id", "image_blob").
		Values(req.AuthorId, req.Text, req.GroupId, req.ImageBlob).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	changes := map[string]interface{}{}
	if req.Text != nil {
		changes["text"] = *req.Text
	}
	if req.SetGroup {
		changes["group_id"] = req.GroupId
	}
	if req.ImageBlob != nil {
		changes["image_blob"] = *req.ImageBlob
	}
	if len(changes) == 0 {
		return nil
	}
	_, err := pdb.sess.SQL().
		Update("post").
		Set(changes).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	// The schema cascades comment deletion; the transaction keeps the
	// behavior even on installations running without foreign keys.
	return pdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			DeleteFrom("comment").
			Where("post_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("post").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, &sql.TxOptions{})
}

type flattenedPost struct {
	Id               int64          `db:"id"`
	Text             string         `db:"text"`
	PubDate          time.Time      `db:"pub_date"`
	ImageBlob        string         `db:"image_blob"`
	AuthorId         string         `db:"author_id"`
	AuthorName       string         `db:"author_name"`
	GroupId          dao.NullInt64  `db:"g_id"`
	GroupTitle       sql.NullString `db:"g_title"`
	GroupSlug        sql.NullString `db:"g_slug"`
	GroupDescription sql.NullString `db:"g_description"`
}

var postColumns = []interface{}{
	"p.id",
	"p.text",
	"p.pub_date",
	"p.image_blob",
	"p.author_id",
	db.Raw("person.name AS author_name"),
	db.Raw("g.id AS g_id"),
	db.Raw("g.title AS g_title"),
	db.Raw("g.slug AS g_slug"),
	db.Raw("g.description AS g_description"),
}

func (pdb *PostDB) postSelector(query *appDb.PostsQuery, columns ...interface{}) db.Selector {
	sel := pdb.sess.SQL().
		Select(columns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("blog_group AS g").On("p.group_id = g.id")
	if query.FollowedBy != "" {
		sel = sel.Join("follow AS f").
			On("f.author_id = p.author_id AND f.follower_id = ?", query.FollowedBy)
	}
	if query.GroupId != nil {
		sel = sel.Where("p.group_id = ?", *query.GroupId)
	}
	if query.AuthorId != "" {
		sel = sel.And("p.author_id = ?", query.AuthorId)
	}
	return sel
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.postSelector(&appDb.PostsQuery{}, postColumns...).
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *appDb.PostsQuery) ([]*model.Post, error) {
	var flattenedPosts []flattenedPost
	if err := pdb.postSelector(query, postColumns...).
		OrderBy("p.pub_date DESC", "p.id DESC").
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattenedPosts[i])
	}
	return posts, nil
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if post.GroupId.Valid {
		group = &model.Group{
			Id:          post.GroupId.Int64,
			Title:       post.GroupTitle.String,
			Slug:        post.GroupSlug.String,
			Description: post.GroupDescription.String,
		}
	}
	return &model.Post{
		Id:      post.Id,
		Text:    post.Text,
		PubDate: post.PubDate,
		Author: &model.User{
			Id:     post.AuthorId,
			Name:   post.AuthorName,
			Avatar: util.Avatar(post.AuthorId),
		},
		Group:     group,
		ImageBlob: post.ImageBlob,
	}
}

func (pdb *PostDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "text").
		Values(req.PostId, req.AuthorId, req.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedComment struct {
	Id         int64     `db:"id"`
	PostId     int64     `db:"post_id"`
	Text       string    `db:"text"`
	Created    time.Time `db:"created"`
	AuthorId   string    `db:"author_id"`
	AuthorName string    `db:"author_name"`
}

func (pdb *PostDB) GetComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := pdb.sess.SQL().
		Select("c.id", "c.post_id", "c.text", "c.created", "c.author_id",
			db.Raw("person.name AS author_name")).
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		comments[i] = &model.Comment{
			Id:      flattened.Id,
			PostId:  flattened.PostId,
			Text:    flattened.Text,
			Created: flattened.Created,
			Author: &model.User{
				Id:     flattened.AuthorId,
				Name:   flattened.AuthorName,
				Avatar: util.Avatar(flattened.AuthorId),
			},
		}
	}
	return comments, nil
}
