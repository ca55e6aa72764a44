package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/middleware"
	"github.com/yourusername/quizgen-api/internal/service"
)

// UserHandler обрабатывает запросы, связанные с пользователями
type UserHandler struct {
	userService        *service.UserService
	leaderboardService *service.LeaderboardService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService, leaderboardService *service.LeaderboardService) *UserHandler {
	return &UserHandler{
		userService:        userService,
		leaderboardService: leaderboardService,
	}
}

// Me возвращает профиль текущего пользователя
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"email":           user.Email,
		"profile_picture": h.userService.AvatarURL(user),
	})
}

// GetLeaderboard обрабатывает запрос на получение таблицы лидеров
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if err != nil || perPage < 1 {
		perPage = 20
	} else if perPage > 100 {
		perPage = 100
	}

	leaderboard, err := h.leaderboardService.GetLeaderboard(page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leaderboard)
}
