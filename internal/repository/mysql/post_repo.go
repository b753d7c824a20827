package mysql

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

type postRepository struct {
	db *sql.DB
}

// NewPostRepository creates a MySQL-backed post repository.
func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// feed ordering: publication time descending, id as tiebreak so posts
// created within the same second keep strict insertion order.
const feedOrder = `ORDER BY p.created_at DESC, p.id DESC`

const postColumns = `p.id, p.author_id, p.text, p.group_id, p.image_url, p.created_at,
       u.username, u.avatar_url, u.bio`

func (r *postRepository) CreatePost(post *model.Post) error {
	query := `INSERT INTO posts (author_id, text, group_id, image_url, created_at)
              VALUES (?, ?, ?, ?, NOW())`
	result, err := r.db.Exec(query, post.AuthorID, post.Text, post.GroupID, post.ImageURL)
	if err != nil {
		util.Logger.Error("failed to create post", zap.Error(err))
		return err
	}

	postID, err := result.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = int(postID)

	// read back the server-assigned timestamp
	err = r.db.QueryRow(`SELECT created_at FROM posts WHERE id = ?`, post.ID).Scan(&post.CreatedAt)
	if err != nil {
		return err
	}

	util.Logger.Info("post created", zap.Int("post_id", post.ID), zap.Int("author_id", post.AuthorID))
	return nil
}

func (r *postRepository) GetPostByID(id int) (*model.Post, error) {
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        LEFT JOIN users u ON p.author_id = u.id
        WHERE p.id = ?`

	var post model.Post
	var author model.User
	err := r.db.QueryRow(query, id).Scan(
		&post.ID, &post.AuthorID, &post.Text, &post.GroupID, &post.ImageURL, &post.CreatedAt,
		&author.Username, &author.AvatarURL, &author.Bio,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	author.ID = post.AuthorID
	post.Author = &author

	if post.GroupID != nil {
		group, err := r.groupByID(*post.GroupID)
		if err != nil {
			return nil, err
		}
		post.Group = group
	}

	return &post, nil
}

// UpdatePost rewrites text and group assignment. The image and the
// publication timestamp are deliberately left untouched.
func (r *postRepository) UpdatePost(post *model.Post) error {
	query := `UPDATE posts SET text = ?, group_id = ? WHERE id = ?`
	_, err := r.db.Exec(query, post.Text, post.GroupID, post.ID)
	if err != nil {
		util.Logger.Error("failed to update post", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	return nil
}

func (r *postRepository) ListAllPosts(page, pageSize int) ([]*model.Post, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        LEFT JOIN users u ON p.author_id = u.id
        ` + feedOrder + `
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListGroupPosts(groupID, page, pageSize int) ([]*model.Post, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE group_id = ?`, groupID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        LEFT JOIN users u ON p.author_id = u.id
        WHERE p.group_id = ?
        ` + feedOrder + `
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, groupID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListAuthorPosts(authorID, page, pageSize int) ([]*model.Post, int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        LEFT JOIN users u ON p.author_id = u.id
        WHERE p.author_id = ?
        ` + feedOrder + `
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, authorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListFollowingPosts is the personalized feed: the union of posts by every
// author the user follows.
func (r *postRepository) ListFollowingPosts(userID, page, pageSize int) ([]*model.Post, int, error) {
	var total int
	countQuery := `
        SELECT COUNT(*)
        FROM posts p
        JOIN follows f ON p.author_id = f.author_id
        WHERE f.user_id = ?`
	err := r.db.QueryRow(countQuery, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `
        SELECT ` + postColumns + `
        FROM posts p
        JOIN follows f ON p.author_id = f.author_id
        LEFT JOIN users u ON p.author_id = u.id
        WHERE f.user_id = ?
        ` + feedOrder + `
        LIMIT ? OFFSET ?`

	posts, err := r.queryPosts(query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) CountPosts() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

func (r *postRepository) CreateComment(comment *model.Comment) error {
	query := `INSERT INTO comments (post_id, author_id, text, created_at)
              VALUES (?, ?, ?, NOW())`
	result, err := r.db.Exec(query, comment.PostID, comment.AuthorID, comment.Text)
	if err != nil {
		util.Logger.Error("failed to create comment", zap.Error(err), zap.Int("post_id", comment.PostID))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = int(id)

	err = r.db.QueryRow(`SELECT created_at FROM comments WHERE id = ?`, comment.ID).Scan(&comment.CreatedAt)
	if err != nil {
		return err
	}

	util.Logger.Info("comment created", zap.Int("comment_id", comment.ID), zap.Int("post_id", comment.PostID))
	return nil
}

// ListComments returns every comment of a post in conversation order:
// oldest first, the opposite of the feed ordering.
func (r *postRepository) ListComments(postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.author_id, c.text, c.created_at,
               u.username, u.avatar_url, u.bio
        FROM comments c
        LEFT JOIN users u ON c.author_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var author model.User
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Text, &comment.CreatedAt,
			&author.Username, &author.AvatarURL, &author.Bio,
		)
		if err != nil {
			return nil, err
		}
		author.ID = comment.AuthorID
		comment.Author = &author
		comments = append(comments, &comment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *postRepository) CountComments() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&count)
	return count, err
}

// queryPosts runs a feed query whose select list is postColumns and scans
// the rows, attaching author and group info.
func (r *postRepository) queryPosts(query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		var author model.User
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Text, &post.GroupID, &post.ImageURL, &post.CreatedAt,
			&author.Username, &author.AvatarURL, &author.Bio,
		)
		if err != nil {
			return nil, err
		}
		author.ID = post.AuthorID
		post.Author = &author
		posts = append(posts, &post)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.GroupID == nil {
			continue
		}
		group, err := r.groupByID(*post.GroupID)
		if err != nil {
			return nil, err
		}
		post.Group = group
	}

	return posts, nil
}

func (r *postRepository) groupByID(id int) (*model.Group, error) {
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
