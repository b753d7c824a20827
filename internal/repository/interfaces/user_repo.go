package interfaces

import "github.com/mikhailsoldatkin/yatube-social/internal/model"

// UserRepository defines storage operations for accounts. Delete removes
// the account together with everything it owns: posts, comments on any
// post, comments under the deleted posts, and follow edges in both
// directions. The cascade is explicit in the implementation, not left to
// the database schema.
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	UpdatePassword(id int, passwordHash string) error
	Delete(id int) error
	Count() (int, error)
}
