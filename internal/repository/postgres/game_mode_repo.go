package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// GameModeRepo реализует repository.GameModeRepository
type GameModeRepo struct {
	db *gorm.DB
}

// NewGameModeRepo создает новый репозиторий игровых режимов
func NewGameModeRepo(db *gorm.DB) *GameModeRepo {
	return &GameModeRepo{db: db}
}

// Create создает новый игровой режим
func (r *GameModeRepo) Create(mode *entity.GameMode) error {
	return r.db.Create(mode).Error
}

// GetAll возвращает все игровые режимы
func (r *GameModeRepo) GetAll() ([]entity.GameMode, error) {
	var modes []entity.GameMode
	err := r.db.Order("id").Find(&modes).Error
	if err != nil {
		return nil, err
	}
	return modes, nil
}

// GetByName возвращает игровой режим по имени
func (r *GameModeRepo) GetByName(name string) (*entity.GameMode, error) {
	var mode entity.GameMode
	err := r.db.Where("name = ?", name).First(&mode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &mode, nil
}
