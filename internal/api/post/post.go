package post

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/storage"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// PostHandler serves post detail, creation, editing and comments.
type PostHandler struct {
	postService service.PostServiceInterface
	userService service.UserServiceInterface
	storage     storage.FileStorage
}

func NewPostHandler(
	postService service.PostServiceInterface,
	userService service.UserServiceInterface,
	fileStorage storage.FileStorage,
) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
		storage:     fileStorage,
	}
}

// GetPost serves a single post together with its comments in
// conversation order.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "invalid post ID"))
		return
	}

	post, err := h.postService.GetPost(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	comments, err := h.postService.ListComments(id)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if comments == nil {
		comments = []*model.Comment{}
	}

	errors.HandleSuccess(c, gin.H{
		"post":     post,
		"comments": comments,
	}, "")
}

// CreatePost accepts a multipart form with the post text, an optional
// group and an optional image, then redirects to the author's profile.
func (h *PostHandler) CreatePost(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "invalid form data", err))
		return
	}

	text := c.PostForm("text")
	groupID, err := optionalGroupID(c)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "invalid group ID"))
		return
	}

	userID, _ := c.Get("user_id")

	var imageURL string
	file, err := c.FormFile("image")
	if err == nil {
		filename := util.GenerateUniqueFilename(file.Filename)
		path := fmt.Sprintf("posts/%s", filename)
		imageURL, err = h.storage.UploadFile(file, path)
		if err != nil {
			util.Logger.Error("image upload failed", zap.Error(err))
			errors.HandleError(c, errors.Wrap(errors.ErrInternal, "failed to upload image", err))
			return
		}
	}

	post, err := h.postService.CreatePost(userID.(int), text, groupID, imageURL)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	author, err := h.userService.GetUserByID(post.AuthorID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+author.Username+"/")
}

// EditPost updates a post's text and group. Only the author may edit; the
// image cannot be replaced once set.
func (h *PostHandler) EditPost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "invalid post ID"))
		return
	}

	text := c.PostForm("text")
	groupID, err := optionalGroupID(c)
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "invalid group ID"))
		return
	}

	userID, _ := c.Get("user_id")

	if _, err := h.postService.EditPost(id, userID.(int), text, groupID); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d/", id))
}

// AddComment attaches a comment to a post and redirects back to the
// post detail.
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "invalid post ID"))
		return
	}

	text := c.PostForm("text")
	userID, _ := c.Get("user_id")

	if _, err := h.postService.AddComment(postID, userID.(int), text); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/posts/%d/", postID))
}

// optionalGroupID parses the group form field; an empty field means no
// group.
func optionalGroupID(c *gin.Context) (*int, error) {
	raw := c.PostForm("group")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
