package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/middleware"
	"channel-stats-backend/internal/features/settings/models"
	"channel-stats-backend/internal/features/settings/service"
)

type SettingsHandler struct {
	service service.SettingsService
}

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/config", h.getConfig)
	router.POST("/config", h.updateConfig)
}

func (h *SettingsHandler) getConfig(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context(), middleware.GetLogin(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) updateConfig(c *gin.Context) {
	var req models.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	settings, err := h.service.Update(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
