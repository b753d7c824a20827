package service

import (
	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/interfaces"
)

// FollowServiceInterface is the handler-facing contract for the follow graph.
type FollowServiceInterface interface {
	Follow(userID int, authorUsername string) error
	Unfollow(userID int, authorUsername string) error
	IsFollowing(userID, authorID int) (bool, error)
	FollowedAuthors(userID int) ([]*model.User, error)
	FollowerCount(authorID int) (int, error)
}

// FollowService implements follow/unfollow semantics. Both operations are
// idempotent: following twice leaves exactly one edge, unfollowing an
// absent edge succeeds. Nothing forbids a user following themself.
type FollowService struct {
	followRepo interfaces.FollowRepository
	userRepo   interfaces.UserRepository
}

func NewFollowService(followRepo interfaces.FollowRepository, userRepo interfaces.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

func (s *FollowService) Follow(userID int, authorUsername string) error {
	author, err := s.resolveAuthor(authorUsername)
	if err != nil {
		return err
	}

	follow := &model.Follow{UserID: userID, AuthorID: author.ID}
	err = s.followRepo.CreateFollow(follow)
	if err != nil {
		// an existing edge means the desired state is already in place
		if errors.Is(err, errors.ErrResourceExists) {
			return nil
		}
		return errors.Wrap(errors.ErrDatabase, "failed to create follow", err)
	}
	return nil
}

func (s *FollowService) Unfollow(userID int, authorUsername string) error {
	author, err := s.resolveAuthor(authorUsername)
	if err != nil {
		return err
	}

	if err := s.followRepo.DeleteFollow(userID, author.ID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete follow", err)
	}
	return nil
}

func (s *FollowService) IsFollowing(userID, authorID int) (bool, error) {
	return s.followRepo.IsFollowing(userID, authorID)
}

func (s *FollowService) FollowedAuthors(userID int) ([]*model.User, error) {
	return s.followRepo.GetFollowedAuthors(userID)
}

func (s *FollowService) FollowerCount(authorID int) (int, error) {
	return s.followRepo.GetFollowerCount(authorID)
}

func (s *FollowService) resolveAuthor(username string) (*model.User, error) {
	author, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up author", err)
	}
	if author == nil {
		return nil, errors.New(errors.ErrUserNotFound, "author not found")
	}
	return author, nil
}
