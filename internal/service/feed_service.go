package service

import (
	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/interfaces"
)

// FeedServiceInterface is the handler-facing contract for the four feed
// shapes: global, per-group, per-author and personalized.
type FeedServiceInterface interface {
	GlobalFeed(page int) ([]*model.Post, int, error)
	GroupFeed(slug string, page int) (*model.Group, []*model.Post, int, error)
	ProfileFeed(username string, page int) (*model.User, []*model.Post, int, error)
	PersonalFeed(userID, page int) ([]*model.Post, int, error)
	PageSize() int
}

// FeedService composes the read-only feed queries. All feeds share one
// fixed page size; a requested page below 1 is treated as page 1, a page
// past the end comes back empty.
type FeedService struct {
	postRepo  interfaces.PostRepository
	groupRepo interfaces.GroupRepository
	userRepo  interfaces.UserRepository
	pageSize  int
}

func NewFeedService(
	postRepo interfaces.PostRepository,
	groupRepo interfaces.GroupRepository,
	userRepo interfaces.UserRepository,
	pageSize int,
) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		pageSize:  pageSize,
	}
}

func (s *FeedService) PageSize() int {
	return s.pageSize
}

// GlobalFeed returns every post, newest first.
func (s *FeedService) GlobalFeed(page int) ([]*model.Post, int, error) {
	posts, total, err := s.postRepo.ListAllPosts(normalizePage(page), s.pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to load global feed", err)
	}
	return posts, total, nil
}

// GroupFeed returns the group's metadata and its posts, newest first.
func (s *FeedService) GroupFeed(slug string, page int) (*model.Group, []*model.Post, int, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		return nil, nil, 0, errors.Wrap(errors.ErrDatabase, "failed to load group", err)
	}
	if group == nil {
		return nil, nil, 0, errors.New(errors.ErrGroupNotFound, "group not found")
	}

	posts, total, err := s.postRepo.ListGroupPosts(group.ID, normalizePage(page), s.pageSize)
	if err != nil {
		return nil, nil, 0, errors.Wrap(errors.ErrDatabase, "failed to load group feed", err)
	}
	return group, posts, total, nil
}

// ProfileFeed returns the author and their posts, newest first. The total
// is the author's complete post count, not the page length.
func (s *FeedService) ProfileFeed(username string, page int) (*model.User, []*model.Post, int, error) {
	author, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, nil, 0, errors.Wrap(errors.ErrDatabase, "failed to look up author", err)
	}
	if author == nil {
		return nil, nil, 0, errors.New(errors.ErrUserNotFound, "user not found")
	}

	posts, total, err := s.postRepo.ListAuthorPosts(author.ID, normalizePage(page), s.pageSize)
	if err != nil {
		return nil, nil, 0, errors.Wrap(errors.ErrDatabase, "failed to load profile feed", err)
	}
	return author, posts, total, nil
}

// PersonalFeed returns posts authored by anyone the viewer follows,
// newest first.
func (s *FeedService) PersonalFeed(userID, page int) ([]*model.Post, int, error) {
	posts, total, err := s.postRepo.ListFollowingPosts(userID, normalizePage(page), s.pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "failed to load personal feed", err)
	}
	return posts, total, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
