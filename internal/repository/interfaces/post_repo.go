package interfaces

import "github.com/mikhailsoldatkin/yatube-social/internal/model"

// PostRepository defines storage operations for posts, their comments and
// the feed queries built over them. Every list is ordered by publication
// time descending (id as tiebreak) and paginated with LIMIT/OFFSET; a
// page past the end yields an empty slice, never an error.
type PostRepository interface {
	CreatePost(post *model.Post) error
	GetPostByID(id int) (*model.Post, error)
	UpdatePost(post *model.Post) error
	ListAllPosts(page, pageSize int) ([]*model.Post, int, error)
	ListGroupPosts(groupID, page, pageSize int) ([]*model.Post, int, error)
	ListAuthorPosts(authorID, page, pageSize int) ([]*model.Post, int, error)
	ListFollowingPosts(userID, page, pageSize int) ([]*model.Post, int, error)
	CountPosts() (int, error)

	CreateComment(comment *model.Comment) error
	ListComments(postID int) ([]*model.Comment, error)
	CountComments() (int, error)
}
