package model

// Group is a topic a post can be filed under. The slug is unique and
// URL-safe; posts reference groups as a soft classification, so a group
// is never a hard dependency of a post.
type Group struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}
