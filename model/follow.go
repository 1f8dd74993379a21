package model

// Follow is a directed edge meaning the follower wants the author's posts in
// their followed feed. At most one edge exists per ordered pair; the storage
// layer enforces this with a unique constraint.
type Follow struct {
	FollowerId string `db:"follower_id" json:"followerId"`
	AuthorId   string `db:"author_id" json:"authorId"`
}
