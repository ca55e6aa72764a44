// Package generator содержит движок генерации вопросов: выбор категории по
// адаптивному весу, выбор источника и сложности, рендеринг вопроса и
// построение вариантов ответа.
package generator

import (
	"context"
	"fmt"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/kb"
)

// KnowledgeBase - то, что генератору нужно от клиента базы знаний
type KnowledgeBase interface {
	ListInstances(ctx context.Context, classID uint) ([]kb.Instance, error)
	GetInstance(ctx context.Context, instanceID string) (*kb.Instance, error)
}

// Config - параметры генерации
type Config struct {
	// NumChoices - длина списка вариантов для вопросов с выбором
	NumChoices int
	// MaxAttempts - бюджет попыток генерации
	MaxAttempts int
	// MediaBaseURL - префикс URL для изображений кастомных вопросов
	MediaBaseURL string
	// KBMediaBaseURL - префикс URL для изображений из базы знаний
	KBMediaBaseURL string
}

// DefaultConfig возвращает конфигурацию генератора по умолчанию
func DefaultConfig() Config {
	return Config{
		NumChoices:  4,
		MaxAttempts: 100,
	}
}

// Request - параметры одной генерации. Нулевое значение означает
// анонимную генерацию без ограничений по источнику.
type Request struct {
	// UserID - пользователь, для которого подбирается вопрос (nil - аноним)
	UserID *uint
	// CustomWeight - переопределение весов категорий; используется внутри
	// игры, где эффективный вес складывается из исторических весов и дельт
	// текущей сессии. Категория, отсутствующая в переопределении,
	// трактуется как вес 0.0.
	CustomWeight map[uint]float64
	// Source - принудительный источник вопроса ("" - выбрать случайно)
	Source entity.QuestionSource
	// QuestionID - принудительный ID вопроса в выбранном источнике (0 - случайный)
	QuestionID uint
}

// ChoicesType - тип содержимого вариантов ответа
const (
	ChoicesTypeText  = "text"
	ChoicesTypeImage = "image"
)

// RenderedQuestion - полностью отрендеренный вопрос, готовый к показу игроку
type RenderedQuestion struct {
	GenerationID string                `json:"generation_id"`
	Question     string                `json:"question"`
	Source       entity.QuestionSource `json:"question_mode"`
	Category     string                `json:"question_category"`
	CategoryID   uint                  `json:"-"`
	Rendered     string                `json:"rendered_question"`
	GameMode     string                `json:"game_mode"`
	GameModeID   uint                  `json:"-"`
	Choices      []string              `json:"choices"`
	ChoicesType  string                `json:"choices_type"`
	Answer       string                `json:"answer"`
	// Type - тип значения ответа: "text", "image" либо raw-тип свойства
	// базы знаний
	Type       string            `json:"type"`
	Difficulty entity.Difficulty `json:"difficulty_level"`
}

// GenerationError - ожидаемый сбой одной попытки генерации (пустой пул
// вопросов, несовместимый режим, недоступная база знаний и т.п.).
// Драйвер повторяет только такие ошибки; всё остальное считается багом
// и всплывает немедленно.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return "failed to generate question: " + e.Reason
}

// genErrorf создает GenerationError с форматированной причиной
func genErrorf(format string, args ...interface{}) *GenerationError {
	return &GenerationError{Reason: fmt.Sprintf(format, args...)}
}
