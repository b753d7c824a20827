package post

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	os.Exit(m.Run())
}

// MockPostService is a testify mock of service.PostServiceInterface.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(authorID int, text string, groupID *int, imageURL string) (*model.Post, error) {
	args := m.Called(authorID, text, groupID, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) EditPost(postID, editorID int, text string, groupID *int) (*model.Post, error) {
	args := m.Called(postID, editorID, text, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) GetPost(id int) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) AddComment(postID, authorID int, text string) (*model.Comment, error) {
	args := m.Called(postID, authorID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockPostService) ListComments(postID int) ([]*model.Comment, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

// MockUserService is a testify mock of service.UserServiceInterface.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserService) Login(username, password string) (*model.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserService) DeleteAccount(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserService) RequestPasswordReset(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockUserService) ResetPassword(token, newPassword string) error {
	args := m.Called(token, newPassword)
	return args.Error(0)
}

func (m *MockUserService) Logout(token string) {
	m.Called(token)
}

func (m *MockUserService) IsTokenBlacklisted(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func asViewer(userID int) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user_id", userID) }
}

func newPostRouter(h *PostHandler, viewerID int) *gin.Engine {
	r := gin.New()
	r.GET("/posts/:id/", h.GetPost)
	r.POST("/posts/:id/edit/", asViewer(viewerID), h.EditPost)
	r.POST("/posts/:id/comment/", asViewer(viewerID), h.AddComment)
	return r
}

func postForm(r *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestGetPostWithComments(t *testing.T) {
	postService := new(MockPostService)
	postService.On("GetPost", 7).Return(&model.Post{ID: 7, Text: "a post"}, nil)
	postService.On("ListComments", 7).Return([]*model.Comment{{ID: 1, PostID: 7, Text: "first!"}}, nil)

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/7/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a post")
	assert.Contains(t, w.Body.String(), "first!")
}

func TestGetPostUnknownID(t *testing.T) {
	postService := new(MockPostService)
	postService.On("GetPost", 99).Return(nil, errors.New(errors.ErrPostNotFound, "post not found"))

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/99/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPostWithNoComments(t *testing.T) {
	postService := new(MockPostService)
	postService.On("GetPost", 7).Return(&model.Post{ID: 7, Text: "a post"}, nil)
	postService.On("ListComments", 7).Return(nil, nil)

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/posts/7/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"comments":[]`)
}

func TestEditPostRedirectsToDetail(t *testing.T) {
	postService := new(MockPostService)
	postService.On("EditPost", 7, 1, "new text", (*int)(nil)).
		Return(&model.Post{ID: 7, AuthorID: 1, Text: "new text"}, nil)

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 1)

	w := postForm(r, "/posts/7/edit/", url.Values{"text": {"new text"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/7/", w.Header().Get("Location"))
}

func TestEditPostByStrangerIsForbidden(t *testing.T) {
	postService := new(MockPostService)
	postService.On("EditPost", 7, 2, "hijacked", (*int)(nil)).
		Return(nil, errors.New(errors.ErrNotPostAuthor, "only the author may edit a post"))

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 2)

	w := postForm(r, "/posts/7/edit/", url.Values{"text": {"hijacked"}})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAddCommentRedirectsToDetail(t *testing.T) {
	postService := new(MockPostService)
	postService.On("AddComment", 7, 2, "nice post").
		Return(&model.Comment{ID: 1, PostID: 7, AuthorID: 2, Text: "nice post"}, nil)

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 2)

	w := postForm(r, "/posts/7/comment/", url.Values{"text": {"nice post"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/7/", w.Header().Get("Location"))
}

func TestAddCommentToMissingPost(t *testing.T) {
	postService := new(MockPostService)
	postService.On("AddComment", 99, 2, "hello?").
		Return(nil, errors.New(errors.ErrPostNotFound, "post not found"))

	h := NewPostHandler(postService, new(MockUserService), nil)
	r := newPostRouter(h, 2)

	w := postForm(r, "/posts/99/comment/", url.Values{"text": {"hello?"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
