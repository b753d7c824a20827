package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	os.Exit(m.Run())
}

func TestRegister(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", "alice").Return(nil, nil)
	userRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "Secret123"}
	err := svc.Register(user)
	assert.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	// the plaintext must be replaced by a bcrypt hash
	assert.NotEqual(t, "Secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret123")))
}

func TestRegisterTakenUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)

	err := svc.Register(&model.User{Username: "alice", PasswordHash: "Secret123"})
	assert.True(t, errors.Is(err, errors.ErrUserExists))
	userRepo.AssertNotCalled(t, "Create")
}

func TestLogin(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	assert.NoError(t, err)
	userRepo.On("FindByUsername", "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil)

	user, err := svc.Login("alice", "Secret123")
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	userRepo.On("FindByUsername", "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil)

	_, err := svc.Login("alice", "wrong")
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLoginUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", "ghost").Return(nil, nil)

	_, err := svc.Login("ghost", "whatever")
	// the same error for a bad username and a bad password
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestLogoutBlacklistsToken(t *testing.T) {
	svc := NewUserService(new(MockUserRepository))

	assert.False(t, svc.IsTokenBlacklisted("tok"))
	svc.Logout("tok")
	assert.True(t, svc.IsTokenBlacklisted("tok"))
	assert.False(t, svc.IsTokenBlacklisted("other"))
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByID", 99).Return(nil, nil)

	err := svc.DeleteAccount(99)
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
	userRepo.AssertNotCalled(t, "Delete")
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByEmail", "ghost@example.com").Return(nil, nil)

	// unknown addresses must not be distinguishable from known ones
	assert.NoError(t, svc.RequestPasswordReset("ghost@example.com"))
}
