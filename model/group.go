package model

// Group is an author-facing community a post may be tagged with. Groups are
// administered centrally; deleting one clears the reference on its posts but
// never deletes the posts themselves.
type Group struct {
	Id          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}
