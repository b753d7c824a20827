package mysql

import (
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

type followRepository struct {
	db *sql.DB
}

// NewFollowRepository creates a MySQL-backed follow repository.
func NewFollowRepository(db *sql.DB) *followRepository {
	return &followRepository{db: db}
}

// CreateFollow inserts a follow edge. The unique index on (user_id,
// author_id) guarantees at most one edge per pair; a duplicate insert
// surfaces as ErrResourceExists so the caller can treat it as a no-op.
func (r *followRepository) CreateFollow(follow *model.Follow) error {
	query := `INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, NOW())`
	result, err := r.db.Exec(query, follow.UserID, follow.AuthorID)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			return errors.New(errors.ErrResourceExists, "already following")
		}
		util.Logger.Error("failed to create follow", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	follow.ID = int(id)

	util.Logger.Info("follow created",
		zap.Int("user_id", follow.UserID),
		zap.Int("author_id", follow.AuthorID))
	return nil
}

// DeleteFollow removes an edge; deleting an absent edge is not an error.
func (r *followRepository) DeleteFollow(userID, authorID int) error {
	_, err := r.db.Exec(`DELETE FROM follows WHERE user_id = ? AND author_id = ?`, userID, authorID)
	if err != nil {
		util.Logger.Error("failed to delete follow", zap.Error(err))
		return err
	}
	return nil
}

func (r *followRepository) IsFollowing(userID, authorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE user_id = ? AND author_id = ?
        )`, userID, authorID).Scan(&exists)
	return exists, err
}

func (r *followRepository) GetFollowedAuthors(userID int) ([]*model.User, error) {
	query := `
        SELECT u.id, u.username, u.avatar_url, u.bio
        FROM users u
        JOIN follows f ON u.id = f.author_id
        WHERE f.user_id = ?
        ORDER BY f.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.AvatarURL, &user.Bio); err != nil {
			return nil, err
		}
		authors = append(authors, &user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return authors, nil
}

func (r *followRepository) GetFollowerCount(authorID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE author_id = ?`, authorID).Scan(&count)
	return count, err
}

func (r *followRepository) CountFollows() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows`).Scan(&count)
	return count, err
}
