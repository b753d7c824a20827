package model

import "time"

// Post is a user-authored text entry, optionally filed under a group and
// optionally carrying one image. CreatedAt is assigned by the store at
// insertion and never changes afterwards; all feeds sort on it descending.
type Post struct {
	ID        int       `json:"id"`
	AuthorID  int       `json:"author_id"`
	Text      string    `json:"text"`
	GroupID   *int      `json:"group_id,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Author *User  `json:"author,omitempty"`
	Group  *Group `json:"group,omitempty"`
}

// Comment is a text reply attached to a post. Comments are displayed in
// chronological order (CreatedAt ascending), unlike posts.
type Comment struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"author,omitempty"`
}
