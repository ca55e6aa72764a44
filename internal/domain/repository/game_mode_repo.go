package repository

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// GameModeRepository определяет методы для работы с игровыми режимами
type GameModeRepository interface {
	Create(mode *entity.GameMode) error
	GetAll() ([]entity.GameMode, error)
	GetByName(name string) (*entity.GameMode, error)
}
