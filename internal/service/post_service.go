package service

import (
	"strings"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/interfaces"
)

// PostServiceInterface is what the HTTP handlers depend on; it exists so
// handler tests can substitute a mock.
type PostServiceInterface interface {
	CreatePost(authorID int, text string, groupID *int, imageURL string) (*model.Post, error)
	EditPost(postID, editorID int, text string, groupID *int) (*model.Post, error)
	GetPost(id int) (*model.Post, error)
	AddComment(postID, authorID int, text string) (*model.Comment, error)
	ListComments(postID int) ([]*model.Comment, error)
}

// PostService implements the post and comment business rules.
type PostService struct {
	postRepo  interfaces.PostRepository
	groupRepo interfaces.GroupRepository
}

func NewPostService(postRepo interfaces.PostRepository, groupRepo interfaces.GroupRepository) *PostService {
	return &PostService{postRepo: postRepo, groupRepo: groupRepo}
}

// CreatePost stores a new post. The text must be non-empty; the group, if
// given, must exist. The publication timestamp is assigned by the store.
func (s *PostService) CreatePost(authorID int, text string, groupID *int, imageURL string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "post text must not be empty")
	}

	if groupID != nil {
		group, err := s.groupRepo.GetByID(*groupID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to check group", err)
		}
		if group == nil {
			return nil, errors.New(errors.ErrGroupNotFound, "group not found")
		}
	}

	post := &model.Post{
		AuthorID: authorID,
		Text:     text,
		GroupID:  groupID,
		ImageURL: imageURL,
	}
	if err := s.postRepo.CreatePost(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create post", err)
	}
	return post, nil
}

// EditPost rewrites a post's text and group. Only the original author may
// edit; the image and the publication timestamp are never changed.
func (s *PostService) EditPost(postID, editorID int, text string, groupID *int) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "post text must not be empty")
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}
	if post.AuthorID != editorID {
		return nil, errors.New(errors.ErrNotPostAuthor, "only the author can edit a post")
	}

	if groupID != nil {
		group, err := s.groupRepo.GetByID(*groupID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "failed to check group", err)
		}
		if group == nil {
			return nil, errors.New(errors.ErrGroupNotFound, "group not found")
		}
	}

	post.Text = text
	post.GroupID = groupID
	if err := s.postRepo.UpdatePost(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update post", err)
	}
	return post, nil
}

func (s *PostService) GetPost(id int) (*model.Post, error) {
	post, err := s.postRepo.GetPostByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}
	return post, nil
}

// AddComment attaches a comment to an existing post.
func (s *PostService) AddComment(postID, authorID int, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrValidation, "comment text must not be empty")
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "post not found")
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.postRepo.CreateComment(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create comment", err)
	}
	return comment, nil
}

// ListComments returns a post's comments oldest-first. Each call re-queries
// the store, so repeated listings reflect the current state.
func (s *PostService) ListComments(postID int) ([]*model.Comment, error) {
	comments, err := s.postRepo.ListComments(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list comments", err)
	}
	return comments, nil
}
