package mysql

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a MySQL-backed group repository.
func NewGroupRepository(db *sql.DB) *groupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateGroup(group *model.Group) error {
	query := `INSERT INTO groups (title, slug, description) VALUES (?, ?, ?)`
	result, err := r.db.Exec(query, group.Title, group.Slug, group.Description)
	if err != nil {
		// the unique index on slug is the source of truth for uniqueness
		if strings.Contains(err.Error(), "Duplicate entry") {
			return errors.New(errors.ErrSlugTaken, "group slug already exists")
		}
		util.Logger.Error("failed to create group", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	group.ID = int(id)

	util.Logger.Info("group created", zap.Int("group_id", group.ID), zap.String("slug", group.Slug))
	return nil
}

func (r *groupRepository) GetBySlug(slug string) (*model.Group, error) {
	var group model.Group
	var description sql.NullString
	err := r.db.QueryRow(`SELECT id, title, slug, description FROM groups WHERE slug = ?`, slug).Scan(
		&group.ID, &group.Title, &group.Slug, &description,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	group.Description = description.String
	return &group, nil
}

func (r *groupRepository) GetByID(id int) (*model.Group, error) {
	var group model.Group
	var description sql.NullString
	err := r.db.QueryRow(`SELECT id, title, slug, description FROM groups WHERE id = ?`, id).Scan(
		&group.ID, &group.Title, &group.Slug, &description,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	group.Description = description.String
	return &group, nil
}

func (r *groupRepository) ListGroups(page, pageSize int) ([]*model.Group, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(`SELECT id, title, slug, description FROM groups ORDER BY title ASC LIMIT ? OFFSET ?`,
		pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		var description sql.NullString
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &description); err != nil {
			return nil, 0, err
		}
		group.Description = description.String
		groups = append(groups, &group)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

func (r *groupRepository) CountGroups() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&count)
	return count, err
}
