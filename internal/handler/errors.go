// Package handler содержит HTTP-обработчики API
package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
	"github.com/yourusername/quizgen-api/internal/service"
	"github.com/yourusername/quizgen-api/internal/service/generator"
)

// respondError отображает ошибки сервисного слоя в HTTP-статусы.
// Ошибки машины состояний игры - это конфликт состояния, а не ошибка
// запроса; исчерпание попыток генерации означает временную нехватку
// контента и сигнализирует "повторите позже".
func respondError(c *gin.Context, err error) {
	var genErr *generator.GenerationError

	switch {
	case errors.Is(err, service.ErrNoActiveGame):
		c.JSON(http.StatusConflict, gin.H{"error": "No game running", "error_type": "no_active_game"})
	case errors.Is(err, service.ErrQuestionAlreadyPending):
		c.JSON(http.StatusConflict, gin.H{"error": "There is already a pending question", "error_type": "question_pending"})
	case errors.Is(err, service.ErrNoQuestionPending):
		c.JSON(http.StatusConflict, gin.H{"error": "No question pending", "error_type": "no_question_pending"})
	case errors.As(err, &genErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": genErr.Reason, "error_type": "generation_failed"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "error_type": "conflict"})
	default:
		log.Printf("[Handler] Внутренняя ошибка: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "error_type": "internal"})
	}
}
