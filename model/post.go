package model

import (
	"time"
)

// Post is an authored text entry, optionally tagged with a group and
// optionally carrying one image attachment (stored as an opaque blob name).
// PubDate is set once at creation and never changes; the default listing
// order everywhere is PubDate descending.
type Post struct {
	Id        int64     `json:"id"`
	Text      string    `json:"text"`
	PubDate   time.Time `json:"pubDate"`
	Author    *User     `json:"author"`
	Group     *Group    `json:"group,omitempty"`
	ImageBlob string    `json:"imageBlob,omitempty"`
}

// Comment is a flat, immutable reply on a post. Comments die with their post.
type Comment struct {
	Id      int64     `json:"id"`
	PostId  int64     `json:"postId"`
	Author  *User     `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}
