package admin

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/errors"
	"github.com/mikhailsoldatkin/yatube-social/internal/middleware"
	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// AdminHandler serves the administrative surface: group creation and
// platform statistics. Group administration happens here only; there is
// no public create, update or delete path for groups.
type AdminHandler struct {
	groupService service.GroupServiceInterface
	statsService *service.StatsService
	errorMonitor *middleware.ErrorMonitor
}

func NewAdminHandler(
	groupService service.GroupServiceInterface,
	statsService *service.StatsService,
	errorMonitor *middleware.ErrorMonitor,
) *AdminHandler {
	return &AdminHandler{
		groupService: groupService,
		statsService: statsService,
		errorMonitor: errorMonitor,
	}
}

// CreateGroup registers a new topic group with a unique URL-safe slug.
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	var groupData struct {
		Title       string `json:"title" binding:"required"`
		Slug        string `json:"slug" binding:"required,slug"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&groupData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "invalid group data", err))
		return
	}

	group, err := h.groupService.CreateGroup(groupData.Title, groupData.Slug, groupData.Description)
	if err != nil {
		util.Logger.Warn("group creation failed", zap.String("slug", groupData.Slug), zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"group": group}, "group created")
}

// Stats serves platform counters and the in-process error counts.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.GetSystemStats()
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrDatabase, "failed to collect stats", err))
		return
	}

	errors.HandleSuccess(c, gin.H{
		"stats":           stats,
		"errors":          h.errorMonitor.GetErrorCounts(),
		"error_analytics": h.errorMonitor.GetAnalytics(),
	}, "")
}
