package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/common/middleware"
	"channel-stats-backend/internal/features/auth/models"
	"channel-stats-backend/internal/features/auth/service"
)

type AuthHandler struct {
	service    service.AuthService
	cookieName string
	sessionTTL int // seconds, for the cookie Max-Age
}

func NewAuthHandler(svc service.AuthService, cookieName string, sessionTTLSeconds int) *AuthHandler {
	return &AuthHandler{
		service:    svc,
		cookieName: cookieName,
		sessionTTL: sessionTTLSeconds,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/pressCode")
	{
		auth.POST("/auth", h.login)
		auth.POST("/logout", h.logout)
	}
}

func (h *AuthHandler) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		middleware.HandleError(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.service.Login(c.Request.Context(), creds.Login, creds.Password)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, h.sessionTTL, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"login": creds.Login})
}

func (h *AuthHandler) logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			middleware.HandleError(c, err)
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
