package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/middleware"
	"github.com/yourusername/quizgen-api/internal/service"
)

// QuestionHandler отдаёт одиночные сгенерированные вопросы вне игры
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// RandomQuestion возвращает один сгенерированный вопрос. Маршрут доступен
// анонимно; для аутентифицированного пользователя подбор учитывает его веса.
func (h *QuestionHandler) RandomQuestion(c *gin.Context) {
	var userID *uint
	if id, ok := middleware.UserIDFromContext(c); ok {
		userID = &id
	}

	rendered, err := h.questionService.RandomQuestion(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionResponse(rendered))
}
