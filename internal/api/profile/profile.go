package profile

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// ProfileHandler serves author pages and the follow/unfollow actions.
type ProfileHandler struct {
	feedService   service.FeedServiceInterface
	followService service.FollowServiceInterface
}

func NewProfileHandler(feedService service.FeedServiceInterface, followService service.FollowServiceInterface) *ProfileHandler {
	return &ProfileHandler{
		feedService:   feedService,
		followService: followService,
	}
}

// Profile serves an author's posts, their total post count and, for a
// signed-in viewer, whether the viewer follows them.
func (h *ProfileHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	author, posts, total, err := h.feedService.ProfileFeed(username, page)
	if err != nil {
		util.Logger.Debug("profile feed failed", zap.String("username", username), zap.Error(err))
		errors.HandleError(c, err)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	followerCount, err := h.followService.FollowerCount(author.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "failed to count followers", err))
		return
	}

	following, err := h.followService.FollowedAuthors(author.ID)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "failed to list followed authors", err))
		return
	}
	if following == nil {
		following = []*model.User{}
	}

	isFollowing := false
	if viewerID, exists := c.Get("user_id"); exists {
		isFollowing, _ = h.followService.IsFollowing(viewerID.(int), author.ID)
	}

	pageSize := h.feedService.PageSize()
	errors.HandleSuccess(c, gin.H{
		"author":         author,
		"posts_count":    total,
		"follower_count": followerCount,
		"following":      following,
		"is_following":   isFollowing,
		"posts":          posts,
		"pagination": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	}, "")
}

// Follow creates a follow edge from the viewer to the author. Following
// an already-followed author is a no-op success.
func (h *ProfileHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	viewerID, _ := c.Get("user_id")

	if err := h.followService.Follow(viewerID.(int), username); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+username+"/")
}

// Unfollow removes the follow edge; removing an absent edge succeeds.
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	viewerID, _ := c.Get("user_id")

	if err := h.followService.Unfollow(viewerID.(int), username); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/profile/"+username+"/")
}
