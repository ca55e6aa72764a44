package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create создает новую категорию
func (r *CategoryRepo) Create(category *entity.Category) error {
	return r.db.Create(category).Error
}

// GetAll возвращает все категории
func (r *CategoryRepo) GetAll() ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.Order("id").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(id uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetByName возвращает категорию по имени
func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}
