package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizgen-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository поверх трёх таблиц
// источников вопросов
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// CreateSeeded создает новый шаблонный вопрос
func (r *QuestionRepo) CreateSeeded(q *entity.SeededQuestion) error {
	return r.db.Create(q).Error
}

// CreateTextCustom создает новый текстовый вопрос
func (r *QuestionRepo) CreateTextCustom(q *entity.TextCustomQuestion) error {
	return r.db.Create(q).Error
}

// CreateImageCustom создает новый вопрос с изображениями
func (r *QuestionRepo) CreateImageCustom(q *entity.ImageCustomQuestion) error {
	return r.db.Create(q).Error
}

// GetSeededByID возвращает шаблонный вопрос по ID
func (r *QuestionRepo) GetSeededByID(id uint) (*entity.SeededQuestion, error) {
	var q entity.SeededQuestion
	err := r.db.Preload("Category").First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// GetTextCustomByID возвращает текстовый вопрос по ID
func (r *QuestionRepo) GetTextCustomByID(id uint) (*entity.TextCustomQuestion, error) {
	var q entity.TextCustomQuestion
	err := r.db.Preload("Category").First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// GetImageCustomByID возвращает вопрос с изображениями по ID
func (r *QuestionRepo) GetImageCustomByID(id uint) (*entity.ImageCustomQuestion, error) {
	var q entity.ImageCustomQuestion
	err := r.db.Preload("Category").First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindSeeded возвращает активные шаблонные вопросы категории и сложности
func (r *QuestionRepo) FindSeeded(categoryID uint, difficulty entity.Difficulty) ([]entity.SeededQuestion, error) {
	var questions []entity.SeededQuestion
	err := r.db.Preload("Category").
		Where("category_id = ? AND difficulty = ? AND active = ?", categoryID, difficulty, true).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// FindTextCustom возвращает активные текстовые вопросы категории и сложности
func (r *QuestionRepo) FindTextCustom(categoryID uint, difficulty entity.Difficulty) ([]entity.TextCustomQuestion, error) {
	var questions []entity.TextCustomQuestion
	err := r.db.Preload("Category").
		Where("category_id = ? AND difficulty = ? AND active = ?", categoryID, difficulty, true).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// FindImageCustom возвращает активные вопросы с изображениями категории и сложности
func (r *QuestionRepo) FindImageCustom(categoryID uint, difficulty entity.Difficulty) ([]entity.ImageCustomQuestion, error) {
	var questions []entity.ImageCustomQuestion
	err := r.db.Preload("Category").
		Where("category_id = ? AND difficulty = ? AND active = ?", categoryID, difficulty, true).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// AvailableSources возвращает источники, у которых есть хотя бы один активный вопрос
func (r *QuestionRepo) AvailableSources() ([]entity.QuestionSource, error) {
	var sources []entity.QuestionSource

	var count int64
	if err := r.db.Model(&entity.SeededQuestion{}).Where("active = ?", true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		sources = append(sources, entity.SourceSeeded)
	}

	if err := r.db.Model(&entity.TextCustomQuestion{}).Where("active = ?", true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		sources = append(sources, entity.SourceTextCustom)
	}

	if err := r.db.Model(&entity.ImageCustomQuestion{}).Where("active = ?", true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		sources = append(sources, entity.SourceImageCustom)
	}

	return sources, nil
}
