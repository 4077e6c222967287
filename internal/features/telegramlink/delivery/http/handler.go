package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/middleware"
	"channel-stats-backend/internal/features/telegramlink/models"
	"channel-stats-backend/internal/features/telegramlink/service"
)

type LinkHandler struct {
	service service.LinkService
}

func NewLinkHandler(svc service.LinkService) *LinkHandler {
	return &LinkHandler{service: svc}
}

func (h *LinkHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/telegram/authStart", h.authStart)
	router.POST("/telegram/authComplete", h.authComplete)
	router.POST("/telegram/auth2FA", h.auth2FA)
	router.GET("/telegram/link", h.getLink)
}

func (h *LinkHandler) authStart(c *gin.Context) {
	var req models.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.service.StartAuth(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LinkHandler) authComplete(c *gin.Context) {
	var req models.CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.service.CompleteAuth(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LinkHandler) auth2FA(c *gin.Context) {
	var req models.TwoFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	resp, err := h.service.CompleteTwoFA(c.Request.Context(), middleware.GetLogin(c), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *LinkHandler) getLink(c *gin.Context) {
	record, err := h.service.GetLink(c.Request.Context(), middleware.GetLogin(c))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}
