package group

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// GroupHandler serves group metadata and per-group feeds.
type GroupHandler struct {
	groupService service.GroupServiceInterface
	feedService  service.FeedServiceInterface
}

func NewGroupHandler(groupService service.GroupServiceInterface, feedService service.FeedServiceInterface) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		feedService:  feedService,
	}
}

// GroupFeed serves a group's posts, newest first, with the group metadata.
func (h *GroupHandler) GroupFeed(c *gin.Context) {
	slug := c.Param("slug")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	group, posts, total, err := h.feedService.GroupFeed(slug, page)
	if err != nil {
		util.Logger.Debug("group feed failed", zap.String("slug", slug), zap.Error(err))
		errors.HandleError(c, err)
		return
	}
	if posts == nil {
		posts = []*model.Post{}
	}

	pageSize := h.feedService.PageSize()
	errors.HandleSuccess(c, gin.H{
		"group": group,
		"posts": posts,
		"pagination": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	}, "")
}

// ListGroups serves the group catalog.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize := h.feedService.PageSize()

	groups, total, err := h.groupService.ListGroups(page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if groups == nil {
		groups = []*model.Group{}
	}

	errors.HandleSuccess(c, gin.H{
		"groups": groups,
		"pagination": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	}, "")
}
