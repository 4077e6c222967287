package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/middleware"
	"channel-stats-backend/internal/features/stats/models"
	"channel-stats-backend/internal/features/stats/service"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/getStats", h.getStats)
	router.POST("/getDetailsStats", h.getDetailsStats)
	router.POST("/getInviteLinks", h.getInviteLinks)
}

func (h *StatsHandler) getStats(c *gin.Context) {
	var req models.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	rows, err := h.service.GetChannelStats(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *StatsHandler) getDetailsStats(c *gin.Context) {
	var req models.DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	detail, err := h.service.GetChannelDetail(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *StatsHandler) getInviteLinks(c *gin.Context) {
	var req models.DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	rows, err := h.service.GetInviteLinks(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
