// Package memory implements db.Database entirely in process. It mirrors the
// MySQL schema's integrity rules (unique follow pair, comment cascade, group
// set-null) so the core logic can be exercised without a database server.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	appDb "github.com/quillhub/quillhub-be/db"
	"github.com/quillhub/quillhub-be/model"
	"github.com/quillhub/quillhub-be/util"
)

type postRow struct {
	id        int64
	text      string
	pubDate   time.Time
	authorId  string
	groupId   *int64
	imageBlob string
}

type commentRow struct {
	id       int64
	postId   int64
	authorId string
	text     string
	created  time.Time
}

type followKey struct {
	followerId string
	authorId   string
}

type Store struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	usersByName map[string]string
	groups      map[int64]*model.Group
	posts       map[int64]*postRow
	comments    map[int64]*commentRow
	follows     map[followKey]struct{}
	lastId      int64
}

func NewStore() *Store {
	return &Store{
		users:       map[string]*model.User{},
		usersByName: map[string]string{},
		groups:      map[int64]*model.Group{},
		posts:       map[int64]*postRow{},
		comments:    map[int64]*commentRow{},
		follows:     map[followKey]struct{}{},
	}
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) nextId() int64 {
	s.lastId++
	return s.lastId
}

func (s *Store) CreateGroup(ctx context.Context, req *appDb.CreateGroup) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, group := range s.groups {
		if group.Slug == req.Slug {
			return 0, appDb.ErrDuplicate
		}
	}
	id := s.nextId()
	s.groups[id] = &model.Group{
		Id:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}
	return id, nil
}

func (s *Store) UpdateGroup(ctx context.Context, id int64, req *appDb.UpdateGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groups[id]
	if !ok {
		return nil
	}
	if req.Title != nil {
		group.Title = *req.Title
	}
	if req.Description != nil {
		group.Description = *req.Description
	}
	return nil
}

func (s *Store) DeleteGroup(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, post := range s.posts {
		if post.groupId != nil && *post.groupId == id {
			post.groupId = nil
		}
	}
	delete(s.groups, id)
	return nil
}

func (s *Store) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	copied := *group
	return &copied, nil
}

func (s *Store) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, group := range s.groups {
		if group.Slug == slug {
			copied := *group
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) GetGroups(ctx context.Context) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]*model.Group, 0, len(s.groups))
	for _, group := range s.groups {
		copied := *group
		groups = append(groups, &copied)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}

func (s *Store) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextId()
	s.posts[id] = &postRow{
		id:        id,
		text:      req.Text,
		pubDate:   time.Now(),
		authorId:  req.AuthorId,
		groupId:   req.GroupId,
		imageBlob: req.ImageBlob,
	}
	return id, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil
	}
	if req.Text != nil {
		post.text = *req.Text
	}
	if req.SetGroup {
		post.groupId = req.GroupId
	}
	if req.ImageBlob != nil {
		post.imageBlob = *req.ImageBlob
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for commentId, comment := range s.comments {
		if comment.postId == id {
			delete(s.comments, commentId)
		}
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return s.buildPost(post), nil
}

func (s *Store) GetPosts(ctx context.Context, query *appDb.PostsQuery) ([]*model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.matchPosts(query)
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].pubDate.Equal(rows[j].pubDate) {
			return rows[i].pubDate.After(rows[j].pubDate)
		}
		return rows[i].id > rows[j].id
	})
	posts := make([]*model.Post, len(rows))
	for i, row := range rows {
		posts[i] = s.buildPost(row)
	}
	return posts, nil
}

// matchPosts must be called with the lock held.
func (s *Store) matchPosts(query *appDb.PostsQuery) []*postRow {
	var rows []*postRow
	for _, post := range s.posts {
		if query.GroupId != nil && (post.groupId == nil || *post.groupId != *query.GroupId) {
			continue
		}
		if query.AuthorId != "" && post.authorId != query.AuthorId {
			continue
		}
		if query.FollowedBy != "" {
			if _, ok := s.follows[followKey{query.FollowedBy, post.authorId}]; !ok {
				continue
			}
		}
		rows = append(rows, post)
	}
	return rows
}

// buildPost must be called with the lock held.
func (s *Store) buildPost(row *postRow) *model.Post {
	var group *model.Group
	if row.groupId != nil {
		if found, ok := s.groups[*row.groupId]; ok {
			copied := *found
			group = &copied
		}
	}
	return &model.Post{
		Id:        row.id,
		Text:      row.text,
		PubDate:   row.pubDate,
		Author:    s.buildAuthor(row.authorId),
		Group:     group,
		ImageBlob: row.imageBlob,
	}
}

func (s *Store) buildAuthor(id string) *model.User {
	author := &model.User{Id: id, Avatar: util.Avatar(id)}
	if user, ok := s.users[id]; ok {
		author.Name = user.Name
		author.IsAdmin = user.IsAdmin
	}
	return author
}

func (s *Store) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextId()
	s.comments[id] = &commentRow{
		id:       id,
		postId:   req.PostId,
		authorId: req.AuthorId,
		text:     req.Text,
		created:  time.Now(),
	}
	return id, nil
}

func (s *Store) GetComments(ctx context.Context, postId int64) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []*commentRow
	for _, comment := range s.comments {
		if comment.postId == postId {
			rows = append(rows, comment)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].created.Equal(rows[j].created) {
			return rows[i].created.Before(rows[j].created)
		}
		return rows[i].id < rows[j].id
	})
	comments := make([]*model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = &model.Comment{
			Id:      row.id,
			PostId:  row.postId,
			Author:  s.buildAuthor(row.authorId),
			Text:    row.text,
			Created: row.created,
		}
	}
	return comments, nil
}

func (s *Store) CreateFollow(ctx context.Context, follow *model.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := followKey{follow.FollowerId, follow.AuthorId}
	if _, ok := s.follows[key]; ok {
		return appDb.ErrDuplicate
	}
	s.follows[key] = struct{}{}
	return nil
}

func (s *Store) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows, followKey{follow.FollowerId, follow.AuthorId})
	return nil
}

func (s *Store) HasFollow(ctx context.Context, follow *model.Follow) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.follows[followKey{follow.FollowerId, follow.AuthorId}]
	return ok, nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Id]; ok {
		return appDb.ErrDuplicate
	}
	if _, ok := s.usersByName[user.Name]; ok {
		return appDb.ErrDuplicate
	}
	copied := *user
	s.users[user.Id] = &copied
	s.usersByName[user.Name] = user.Id
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	copied.Avatar = util.Avatar(user.Id)
	return &copied, nil
}

func (s *Store) GetUserByName(ctx context.Context, name string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByName[name]
	if !ok {
		return nil, nil
	}
	copied := *s.users[id]
	copied.Avatar = util.Avatar(id)
	return &copied, nil
}

var _ appDb.Database = (*Store)(nil)
