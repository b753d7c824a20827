package mysql

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a MySQL-backed user repository.
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, avatar_url, bio, role, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`
	result, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash,
		user.AvatarURL, user.Bio, user.Role)
	if err != nil {
		util.Logger.Error("failed to create user", zap.Error(err), zap.String("username", user.Username))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

func (r *userRepository) FindByID(id int) (*model.User, error) {
	return r.findOne(`WHERE id = ?`, id)
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	return r.findOne(`WHERE username = ?`, username)
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	return r.findOne(`WHERE email = ?`, email)
}

func (r *userRepository) findOne(where string, arg interface{}) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, avatar_url, bio, role, created_at, updated_at
              FROM users ` + where

	var user model.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.Bio, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET username = ?, email = ?, avatar_url = ?, bio = ?, updated_at = NOW()
              WHERE id = ?`
	_, err := r.db.Exec(query, user.Username, user.Email, user.AvatarURL, user.Bio, user.ID)
	if err != nil {
		util.Logger.Error("failed to update user", zap.Error(err), zap.Int("user_id", user.ID))
		return err
	}
	return nil
}

func (r *userRepository) UpdatePassword(id int, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password_hash = ?, updated_at = NOW() WHERE id = ?`,
		passwordHash, id)
	return err
}

// Delete removes the account and everything it owns in a single
// transaction. The deletion policy is deliberate and explicit:
//   - comments authored by the user: cascade
//   - comments under the user's posts: cascade (the posts go away)
//   - posts authored by the user: cascade
//   - follow edges touching the user, either direction: cascade
//
// Groups are never touched; a post's group reference is a soft
// classification and dies with the post.
func (r *userRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []struct {
		desc  string
		query string
	}{
		{"comments by user", `DELETE FROM comments WHERE author_id = ?`},
		{"comments under user's posts", `DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)`},
		{"posts by user", `DELETE FROM posts WHERE author_id = ?`},
		{"follows as follower", `DELETE FROM follows WHERE user_id = ?`},
		{"follows as author", `DELETE FROM follows WHERE author_id = ?`},
		{"user row", `DELETE FROM users WHERE id = ?`},
	}

	for _, step := range steps {
		if _, err := tx.Exec(step.query, id); err != nil {
			util.Logger.Error("cascade delete step failed",
				zap.Error(err),
				zap.String("step", step.desc),
				zap.Int("user_id", id))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	util.Logger.Info("user deleted with cascades", zap.Int("user_id", id))
	return nil
}

func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
