package service

import (
	"context"

	"github.com/yourusername/quizgen-api/internal/service/generator"
)

// QuestionService отдаёт одиночные сгенерированные вопросы вне игровой
// сессии (например, для пробного вопроса на главной странице)
type QuestionService struct {
	gen QuestionGenerator
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(gen QuestionGenerator) *QuestionService {
	return &QuestionService{gen: gen}
}

// RandomQuestion генерирует один вопрос. Для анонимного вызова (userID nil)
// вес категории разыгрывается случайно; для известного пользователя
// используются его сохранённые веса.
func (s *QuestionService) RandomQuestion(ctx context.Context, userID *uint) (*generator.RenderedQuestion, error) {
	return s.gen.Generate(ctx, generator.Request{UserID: userID})
}
