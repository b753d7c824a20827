package interfaces

import "github.com/mikhailsoldatkin/yatube-social/internal/model"

// FollowRepository defines storage operations for the follow graph.
// The (user, author) pair is unique at the storage level; CreateFollow
// on an existing edge must not create a duplicate.
type FollowRepository interface {
	CreateFollow(follow *model.Follow) error
	DeleteFollow(userID, authorID int) error
	IsFollowing(userID, authorID int) (bool, error)
	GetFollowedAuthors(userID int) ([]*model.User, error)
	GetFollowerCount(authorID int) (int, error)
	CountFollows() (int, error)
}
