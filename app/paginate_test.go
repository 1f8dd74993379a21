package app

import (
	"fmt"
	"testing"

	"github.com/quillhub/quillhub-be/model"
	"github.com/stretchr/testify/assert"
)

func makePosts(n int) []*model.Post {
	posts := make([]*model.Post, n)
	for i := range posts {
		posts[i] = &model.Post{
			Id:   int64(i + 1),
			Text: fmt.Sprintf("post-%d", i+1),
		}
	}
	return posts
}

func TestPaginateRemainderPage(t *testing.T) {
	posts := makePosts(13)

	page1, hasNext, hasPrev := Paginate(posts, 10, 1)
	assert.Len(t, page1, 10)
	assert.True(t, hasNext)
	assert.False(t, hasPrev)

	page2, hasNext, hasPrev := Paginate(posts, 10, 2)
	assert.Len(t, page2, 3)
	assert.False(t, hasNext)
	assert.True(t, hasPrev)
	assert.Equal(t, "post-11", page2[0].Text)
}

func TestPaginateClampsOutOfRangePages(t *testing.T) {
	posts := makePosts(13)

	// Below 1 clamps to the first page.
	low, _, hasPrev := Paginate(posts, 10, 0)
	assert.Len(t, low, 10)
	assert.False(t, hasPrev)
	assert.Equal(t, "post-1", low[0].Text)

	// Past the end clamps to the last page.
	high, hasNext, _ := Paginate(posts, 10, 99)
	assert.Len(t, high, 3)
	assert.False(t, hasNext)
}

func TestPaginateEmpty(t *testing.T) {
	page, hasNext, hasPrev := Paginate(nil, 10, 1)
	assert.Empty(t, page)
	assert.False(t, hasNext)
	assert.False(t, hasPrev)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 10, 1))
	assert.Equal(t, 1, ClampPage(0, 10, 5))
	assert.Equal(t, 1, ClampPage(13, 10, -3))
	assert.Equal(t, 2, ClampPage(13, 10, 2))
	assert.Equal(t, 2, ClampPage(13, 10, 7))
	assert.Equal(t, 1, ClampPage(10, 10, 2))
}
