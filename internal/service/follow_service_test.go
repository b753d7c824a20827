package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
)

func TestFollow(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo)

	author := &model.User{ID: 2, Username: "author"}
	userRepo.On("FindByUsername", "author").Return(author, nil)
	followRepo.On("CreateFollow", mock.AnythingOfType("*model.Follow")).Return(nil)

	err := svc.Follow(1, "author")
	assert.NoError(t, err)
	followRepo.AssertNumberOfCalls(t, "CreateFollow", 1)
}

// A second follow of the same author must be a silent no-op: the storage
// layer reports the existing edge and the service swallows it.
func TestFollowTwiceLeavesOneEdge(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo)

	author := &model.User{ID: 2, Username: "author"}
	userRepo.On("FindByUsername", "author").Return(author, nil)
	followRepo.On("CreateFollow", mock.AnythingOfType("*model.Follow")).Return(nil).Once()
	followRepo.On("CreateFollow", mock.AnythingOfType("*model.Follow")).
		Return(errors.New(errors.ErrResourceExists, "already following")).Once()

	assert.NoError(t, svc.Follow(1, "author"))
	assert.NoError(t, svc.Follow(1, "author"))
	followRepo.AssertExpectations(t)
}

func TestFollowUnknownAuthor(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo)

	userRepo.On("FindByUsername", "ghost").Return(nil, nil)

	err := svc.Follow(1, "ghost")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
	followRepo.AssertNotCalled(t, "CreateFollow")
}

// Nothing in the model forbids following yourself.
func TestSelfFollowIsPermitted(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo)

	self := &model.User{ID: 1, Username: "me"}
	userRepo.On("FindByUsername", "me").Return(self, nil)
	followRepo.On("CreateFollow", mock.MatchedBy(func(f *model.Follow) bool {
		return f.UserID == 1 && f.AuthorID == 1
	})).Return(nil)

	assert.NoError(t, svc.Follow(1, "me"))
	followRepo.AssertExpectations(t)
}

func TestUnfollowAbsentEdgeIsNoOp(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewFollowService(followRepo, userRepo)

	author := &model.User{ID: 2, Username: "author"}
	userRepo.On("FindByUsername", "author").Return(author, nil)
	// deleting zero rows is still success
	followRepo.On("DeleteFollow", 1, 2).Return(nil)

	assert.NoError(t, svc.Unfollow(1, "author"))
	followRepo.AssertExpectations(t)
}
