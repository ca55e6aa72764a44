package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/handler/dto"
	"github.com/yourusername/quizgen-api/internal/service"
)

// ContentHandler обрабатывает административное наполнение контентом
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler создает новый обработчик наполнения
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GetCategories возвращает все категории. Маршрут публичный.
func (h *ContentHandler) GetCategories(c *gin.Context) {
	categories, err := h.contentService.GetCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory создает категорию
func (h *ContentHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	category, err := h.contentService.CreateCategory(req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// CreateGameMode создает игровой режим
func (h *ContentHandler) CreateGameMode(c *gin.Context) {
	var req dto.CreateGameModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	mode, err := h.contentService.CreateGameMode(req.Name, req.AllowAnswerModes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mode)
}

// CreateSeededQuestion создает шаблонный вопрос
func (h *ContentHandler) CreateSeededQuestion(c *gin.Context) {
	var req dto.CreateSeededQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	question := &entity.SeededQuestion{
		MainClassID:      req.MainClassID,
		Text:             req.Question,
		AnswerPropertyID: req.AnswerPropertyID,
		AnswerMode:       entity.AnswerMode(req.AnswerMode),
		Difficulty:       entity.Difficulty(req.Difficulty),
		CategoryID:       req.CategoryID,
	}
	if err := h.contentService.CreateSeededQuestion(question); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// CreateTextQuestion создает текстовый кастомный вопрос
func (h *ContentHandler) CreateTextQuestion(c *gin.Context) {
	var req dto.CreateCustomQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	question := &entity.TextCustomQuestion{
		Text:       req.Question,
		Choices:    req.Choices,
		Answers:    req.Answers,
		Difficulty: entity.Difficulty(req.Difficulty),
		CategoryID: req.CategoryID,
	}
	if err := h.contentService.CreateTextCustomQuestion(question); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// CreateImageQuestion создает картиночный кастомный вопрос
func (h *ContentHandler) CreateImageQuestion(c *gin.Context) {
	var req dto.CreateCustomQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
		return
	}

	question := &entity.ImageCustomQuestion{
		Text:       req.Question,
		Choices:    req.Choices,
		Answers:    req.Answers,
		Difficulty: entity.Difficulty(req.Difficulty),
		CategoryID: req.CategoryID,
	}
	if err := h.contentService.CreateImageCustomQuestion(question); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// BackfillWeights идемпотентно досоздаёт нулевые веса всех пар
// (пользователь, категория)
func (h *ContentHandler) BackfillWeights(c *gin.Context) {
	if err := h.contentService.BackfillWeights(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
