package feed

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/cache"
	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/model"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// FeedHandler serves the global and personalized feeds.
type FeedHandler struct {
	feedService service.FeedServiceInterface
	cache       *cache.FragmentCache
}

func NewFeedHandler(feedService service.FeedServiceInterface, fragmentCache *cache.FragmentCache) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		cache:       fragmentCache,
	}
}

// Index serves the global feed. The rendered first page is cached under a
// fixed key and invalidated only by TTL: within the window every reader
// gets the identical bytes even if posts changed underneath. Deeper pages
// are always computed fresh.
func (h *FeedHandler) Index(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	if page <= 1 {
		if fragment, ok := h.cache.Get(cache.IndexFeedKey); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", fragment)
			return
		}
	}

	posts, total, err := h.feedService.GlobalFeed(page)
	if err != nil {
		util.Logger.Error("failed to load global feed", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	resp := errors.SuccessResponse{
		Code: http.StatusOK,
		Data: feedPayload(posts, total, page, h.feedService.PageSize()),
	}
	fragment, err := json.Marshal(resp)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "failed to render feed", err))
		return
	}

	if page <= 1 {
		h.cache.Set(cache.IndexFeedKey, fragment)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", fragment)
}

// Personal serves the followed-authors feed for the signed-in viewer.
func (h *FeedHandler) Personal(c *gin.Context) {
	userID, _ := c.Get("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	posts, total, err := h.feedService.PersonalFeed(userID.(int), page)
	if err != nil {
		util.Logger.Error("failed to load personal feed", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, feedPayload(posts, total, page, h.feedService.PageSize()), "")
}

func feedPayload(posts []*model.Post, total, page, pageSize int) gin.H {
	if posts == nil {
		posts = []*model.Post{}
	}
	return gin.H{
		"posts": posts,
		"pagination": gin.H{
			"total":       total,
			"page":        page,
			"page_size":   pageSize,
			"total_pages": (total + pageSize - 1) / pageSize,
		},
	}
}
