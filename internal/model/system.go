package model

// SystemStats aggregates platform counters for the admin dashboard.
type SystemStats struct {
	TotalUsers    int `json:"total_users"`
	TotalPosts    int `json:"total_posts"`
	TotalGroups   int `json:"total_groups"`
	TotalComments int `json:"total_comments"`
	TotalFollows  int `json:"total_follows"`
}
