package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
)

func TestCreatePost(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	postRepo.On("CreatePost", mock.AnythingOfType("*model.Post")).Return(nil)

	post, err := svc.CreatePost(1, "hello world", nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, 1, post.AuthorID)
	postRepo.AssertNumberOfCalls(t, "CreatePost", 1)
}

func TestCreatePostEmptyText(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	_, err := svc.CreatePost(1, "   ", nil, "")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	postRepo.AssertNotCalled(t, "CreatePost")
}

func TestCreatePostUnknownGroup(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	groupID := 42
	groupRepo.On("GetByID", 42).Return(nil, nil)

	_, err := svc.CreatePost(1, "text", &groupID, "")
	assert.True(t, errors.Is(err, errors.ErrGroupNotFound))
	postRepo.AssertNotCalled(t, "CreatePost")
}

func TestEditPostByAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	existing := &model.Post{ID: 7, AuthorID: 1, Text: "old text"}
	postRepo.On("GetPostByID", 7).Return(existing, nil)
	postRepo.On("UpdatePost", mock.AnythingOfType("*model.Post")).Return(nil)

	post, err := svc.EditPost(7, 1, "new text", nil)
	assert.NoError(t, err)
	assert.Equal(t, "new text", post.Text)
	postRepo.AssertExpectations(t)
}

func TestEditPostByStranger(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	existing := &model.Post{ID: 7, AuthorID: 1, Text: "old text"}
	postRepo.On("GetPostByID", 7).Return(existing, nil)

	_, err := svc.EditPost(7, 2, "hijacked", nil)
	assert.True(t, errors.Is(err, errors.ErrNotPostAuthor))
	postRepo.AssertNotCalled(t, "UpdatePost")
	// the loaded copy keeps the original text
	assert.Equal(t, "old text", existing.Text)
}

func TestEditPostNotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	postRepo.On("GetPostByID", 99).Return(nil, nil)

	_, err := svc.EditPost(99, 1, "text", nil)
	assert.True(t, errors.Is(err, errors.ErrPostNotFound))
}

func TestAddComment(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	postRepo.On("GetPostByID", 7).Return(&model.Post{ID: 7, AuthorID: 1}, nil)
	postRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Return(nil)

	comment, err := svc.AddComment(7, 2, "nice post")
	assert.NoError(t, err)
	assert.Equal(t, 7, comment.PostID)
	assert.Equal(t, 2, comment.AuthorID)
	assert.Equal(t, "nice post", comment.Text)
}

func TestAddCommentToMissingPost(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	postRepo.On("GetPostByID", 99).Return(nil, nil)

	_, err := svc.AddComment(99, 2, "hello?")
	assert.True(t, errors.Is(err, errors.ErrPostNotFound))
	postRepo.AssertNotCalled(t, "CreateComment")
}

func TestAddCommentEmptyText(t *testing.T) {
	postRepo := new(MockPostRepository)
	groupRepo := new(MockGroupRepository)
	svc := NewPostService(postRepo, groupRepo)

	_, err := svc.AddComment(7, 2, "")
	assert.True(t, errors.Is(err, errors.ErrValidation))
	postRepo.AssertNotCalled(t, "GetPostByID")
}
