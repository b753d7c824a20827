package service

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/repository/interfaces"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// UserServiceInterface is the handler-facing contract for accounts.
type UserServiceInterface interface {
	Register(user *model.User) error
	Login(username, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	UpdateUser(user *model.User) error
	DeleteAccount(id int) error
	RequestPasswordReset(email string) error
	ResetPassword(token, newPassword string) error
	Logout(token string)
	IsTokenBlacklisted(token string) bool
}

// UserService handles account business logic. Identity is owned here;
// the content services reference users by ID only.
type UserService struct {
	userRepo       interfaces.UserRepository
	emailService   *EmailService
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		emailService:   NewEmailService(),
		tokenBlacklist: make(map[string]time.Time),
	}
}

// Register creates a new account with a bcrypt password hash. The
// PasswordHash field carries the plaintext password on the way in.
func (s *UserService) Register(user *model.User) error {
	existing, err := s.userRepo.FindByUsername(user.Username)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to check username", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "failed to hash password", err)
	}
	user.PasswordHash = string(hashedPassword)
	if user.Role == "" {
		user.Role = "user"
	}

	if err := s.userRepo.Create(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to create user", err)
	}

	s.emailService.SendWelcomeEmail(user.Email, user.Username)
	return nil
}

func (s *UserService) Login(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to look up user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "invalid username or password")
	}

	return user, nil
}

func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "user not found")
	}
	return user, nil
}

func (s *UserService) UpdateUser(user *model.User) error {
	existing, err := s.userRepo.FindByID(user.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}
	if existing == nil {
		return errors.New(errors.ErrUserNotFound, "user not found")
	}
	return s.userRepo.Update(user)
}

// DeleteAccount removes the account and, through the repository's
// transactional cascade, all posts, comments and follow edges it owns.
func (s *UserService) DeleteAccount(id int) error {
	existing, err := s.userRepo.FindByID(id)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}
	if existing == nil {
		return errors.New(errors.ErrUserNotFound, "user not found")
	}
	return s.userRepo.Delete(id)
}

// RequestPasswordReset emails a reset link. Unknown addresses are
// reported as success so the endpoint cannot be used to probe accounts.
func (s *UserService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to look up user", err)
	}
	if user == nil {
		return nil
	}

	return s.emailService.SendPasswordResetEmail(user.Email, user.Username)
}

func (s *UserService) ResetPassword(token, newPassword string) error {
	email, err := util.ValidatePasswordResetToken(token)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidToken, "invalid or expired reset token", err)
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to look up user", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "user not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "failed to hash password", err)
	}
	return s.userRepo.UpdatePassword(user.ID, string(hashedPassword))
}

// Logout blacklists the session token until it would have expired anyway.
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()
	s.tokenBlacklist[token] = time.Now().Add(24 * time.Hour)

	// drop entries whose tokens have expired on their own
	now := time.Now()
	for t, expiry := range s.tokenBlacklist {
		if now.After(expiry) {
			delete(s.tokenBlacklist, t)
		}
	}
}

func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	defer s.blacklistMutex.RUnlock()
	expiry, ok := s.tokenBlacklist[token]
	return ok && time.Now().Before(expiry)
}
