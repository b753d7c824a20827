package user

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/middleware"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// AuthHandler serves signup, login, logout and password reset.
type AuthHandler struct {
	userService service.UserServiceInterface
}

func NewAuthHandler(userService service.UserServiceInterface) *AuthHandler {
	return &AuthHandler{userService}
}

// Signup registers a new account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var signupData struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&signupData); err != nil {
		util.Logger.Warn("signup rejected, invalid payload", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid signup data", err))
		return
	}

	if !isPasswordStrong(signupData.Password) {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword,
			"password must be at least 8 characters with upper, lower and digit"))
		return
	}

	user := &model.User{
		Username:     signupData.Username,
		Email:        signupData.Email,
		PasswordHash: signupData.Password,
	}

	if err := h.userService.Register(user); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"user": user}, "account created")
}

// Login verifies credentials, issues a session token and sets the session
// cookie. A next parameter, if present, is echoed back so the client can
// resume the interrupted navigation.
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid login data", err))
		return
	}

	user, err := h.userService.Login(loginData.Username, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	token, err := util.GenerateToken(user.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "failed to issue token", err))
		return
	}

	c.SetCookie(middleware.AuthCookieName, token, 24*60*60, "/", "", false, true)

	next := c.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}

	errors.HandleSuccess(c, gin.H{
		"token": token,
		"user":  user,
		"next":  next,
	}, "")
}

// Logout blacklists the current session token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.AuthCookieName)
	if token == "" {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token != "" {
		h.userService.Logout(token)
	}

	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	errors.HandleSuccess(c, nil, "logged out")
}

// RequestPasswordReset emails a reset link. The response is identical
// whether or not the address exists.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var resetData struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&resetData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid email", err))
		return
	}

	if err := h.userService.RequestPasswordReset(resetData.Email); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "if the address exists, a reset link has been sent")
}

// ResetPassword sets a new password from a valid reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var resetData struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&resetData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid reset data", err))
		return
	}

	if !isPasswordStrong(resetData.NewPassword) {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword,
			"password must be at least 8 characters with upper, lower and digit"))
		return
	}

	if err := h.userService.ResetPassword(resetData.Token, resetData.NewPassword); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, nil, "password updated")
}

// UpdateProfile changes the signed-in user's avatar and bio.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var profileData struct {
		AvatarURL string `json:"avatar_url"`
		Bio       string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&profileData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid profile data", err))
		return
	}

	userID, _ := c.Get("user_id")
	user, err := h.userService.GetUserByID(userID.(int))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	user.AvatarURL = profileData.AvatarURL
	user.Bio = profileData.Bio
	if err := h.userService.UpdateUser(user); err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"user": user}, "profile updated")
}

// DeleteAccount removes the signed-in user's account together with their
// posts, comments and follow edges, then ends the session.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, _ := c.Get("user_id")

	if err := h.userService.DeleteAccount(userID.(int)); err != nil {
		errors.HandleError(c, err)
		return
	}

	if token, _ := c.Cookie(middleware.AuthCookieName); token != "" {
		h.userService.Logout(token)
	}
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)

	errors.HandleSuccess(c, nil, "account deleted")
}

// NotFound is the fallback for unknown paths.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errors.ErrorResponse{
		Code:    errors.ErrResourceNotFound,
		Message: "page not found",
	})
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
