package service

import (
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/interfaces"
)

// StatsService aggregates platform counters for the admin dashboard.
type StatsService struct {
	userRepo   interfaces.UserRepository
	postRepo   interfaces.PostRepository
	groupRepo  interfaces.GroupRepository
	followRepo interfaces.FollowRepository
}

func NewStatsService(
	userRepo interfaces.UserRepository,
	postRepo interfaces.PostRepository,
	groupRepo interfaces.GroupRepository,
	followRepo interfaces.FollowRepository,
) *StatsService {
	return &StatsService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		followRepo: followRepo,
	}
}

func (s *StatsService) GetSystemStats() (*model.SystemStats, error) {
	stats := &model.SystemStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalPosts, err = s.postRepo.CountPosts(); err != nil {
		return nil, err
	}
	if stats.TotalGroups, err = s.groupRepo.CountGroups(); err != nil {
		return nil, err
	}
	if stats.TotalComments, err = s.postRepo.CountComments(); err != nil {
		return nil, err
	}
	if stats.TotalFollows, err = s.followRepo.CountFollows(); err != nil {
		return nil, err
	}

	return stats, nil
}
