package repository

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// CategoryRepository определяет методы для работы с категориями вопросов
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetAll() ([]entity.Category, error)
	GetByID(id uint) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
}
