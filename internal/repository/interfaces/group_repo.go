package interfaces

import "github.com/mikhailsoldatkin/yatube-social/internal/model"

// GroupRepository defines storage operations for topic groups. There is
// no delete: groups are created administratively and never removed.
type GroupRepository interface {
	CreateGroup(group *model.Group) error
	GetBySlug(slug string) (*model.Group, error)
	GetByID(id int) (*model.Group, error)
	ListGroups(page, pageSize int) ([]*model.Group, int, error)
	CountGroups() (int, error)
}
