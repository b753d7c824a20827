package model

import "time"

// Follow is a directed edge: UserID receives AuthorID's posts in their
// personalized feed. The (user, author) pair is unique.
type Follow struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
