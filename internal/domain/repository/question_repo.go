package repository

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// QuestionRepository предоставляет единообразный доступ к трём источникам
// вопросов. Find* возвращают только активные вопросы; Get*ByID возвращают
// ErrNotFound для неизвестного ID.
type QuestionRepository interface {
	CreateSeeded(q *entity.SeededQuestion) error
	CreateTextCustom(q *entity.TextCustomQuestion) error
	CreateImageCustom(q *entity.ImageCustomQuestion) error

	GetSeededByID(id uint) (*entity.SeededQuestion, error)
	GetTextCustomByID(id uint) (*entity.TextCustomQuestion, error)
	GetImageCustomByID(id uint) (*entity.ImageCustomQuestion, error)

	FindSeeded(categoryID uint, difficulty entity.Difficulty) ([]entity.SeededQuestion, error)
	FindTextCustom(categoryID uint, difficulty entity.Difficulty) ([]entity.TextCustomQuestion, error)
	FindImageCustom(categoryID uint, difficulty entity.Difficulty) ([]entity.ImageCustomQuestion, error)

	// AvailableSources возвращает источники, у которых есть хотя бы один
	// активный вопрос (в любой категории и сложности)
	AvailableSources() ([]entity.QuestionSource, error)
}
