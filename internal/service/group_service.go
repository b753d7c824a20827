package service

import (
	"strings"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/interfaces"
)

// GroupServiceInterface is the handler-facing contract for groups.
type GroupServiceInterface interface {
	CreateGroup(title, slug, description string) (*model.Group, error)
	GetBySlug(slug string) (*model.Group, error)
	ListGroups(page, pageSize int) ([]*model.Group, int, error)
}

// GroupService implements group catalog rules. Groups are created by
// administrators and never deleted.
type GroupService struct {
	groupRepo interfaces.GroupRepository
}

func NewGroupService(groupRepo interfaces.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) CreateGroup(title, slug, description string) (*model.Group, error) {
	if strings.TrimSpace(title) == "" {
		return nil, errors.New(errors.ErrValidation, "group title must not be empty")
	}

	group := &model.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := s.groupRepo.CreateGroup(group); err != nil {
		if errors.Is(err, errors.ErrSlugTaken) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create group", err)
	}
	return group, nil
}

func (s *GroupService) GetBySlug(slug string) (*model.Group, error) {
	group, err := s.groupRepo.GetBySlug(slug)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load group", err)
	}
	if group == nil {
		return nil, errors.New(errors.ErrGroupNotFound, "group not found")
	}
	return group, nil
}

func (s *GroupService) ListGroups(page, pageSize int) ([]*model.Group, int, error) {
	return s.groupRepo.ListGroups(page, pageSize)
}
