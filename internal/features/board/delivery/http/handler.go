package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"channel-stats-backend/internal/common/middleware"
	"channel-stats-backend/internal/features/board/models"
	"channel-stats-backend/internal/features/board/service"
)

type BoardHandler struct {
	service service.BoardService
}

func NewBoardHandler(svc service.BoardService) *BoardHandler {
	return &BoardHandler{service: svc}
}

func (h *BoardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/pressCode/getBoards", h.getBoards)
	router.GET("/cityList", h.getCities)
}

func (h *BoardHandler) getBoards(c *gin.Context) {
	login := middleware.GetLogin(c)

	boards, err := h.service.GetBoards(c.Request.Context(), login)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BoardsResponse{Boards: boards})
}

func (h *BoardHandler) getCities(c *gin.Context) {
	cities, err := h.service.GetCities(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cities)
}
