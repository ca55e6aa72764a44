package postgres

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// WeightRepo реализует repository.WeightRepository
type WeightRepo struct {
	db *gorm.DB
}

// NewWeightRepo создает новый репозиторий весов
func NewWeightRepo(db *gorm.DB) *WeightRepo {
	return &WeightRepo{db: db}
}

// EnsureAndGet возвращает вес пары (user, category), лениво создавая строку
// с весом 0.0 при её отсутствии. Вставка идёт через ON CONFLICT DO NOTHING,
// поэтому конкурентные чтения не создают дублей.
func (r *WeightRepo) EnsureAndGet(userID, categoryID uint) (float64, error) {
	var row entity.UserCategoryWeight
	err := r.db.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&row).Error
	if err == nil {
		return row.Weight, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	row = entity.UserCategoryWeight{UserID: userID, CategoryID: categoryID, Weight: 0.0}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return 0, err
	}
	return 0.0, nil
}

// Set сохраняет вес пары (user, category) (upsert)
func (r *WeightRepo) Set(userID, categoryID uint, weight float64) error {
	row := entity.UserCategoryWeight{UserID: userID, CategoryID: categoryID, Weight: weight}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"weight", "updated_at"}),
	}).Create(&row).Error
}

// GetAllForUser возвращает все сохранённые веса пользователя
func (r *WeightRepo) GetAllForUser(userID uint) (map[uint]float64, error) {
	var rows []entity.UserCategoryWeight
	if err := r.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	weights := make(map[uint]float64, len(rows))
	for _, row := range rows {
		weights[row.CategoryID] = row.Weight
	}
	return weights, nil
}

// AggregateSession складывает дельты сессии с историческими весами, не трогая базу
func (r *WeightRepo) AggregateSession(userID uint, deltas map[uint]float64) (map[uint]float64, error) {
	weights, err := r.GetAllForUser(userID)
	if err != nil {
		return nil, err
	}
	for categoryID, delta := range deltas {
		weights[categoryID] += delta
	}
	return weights, nil
}

// Backfill идемпотентно создаёт недостающие пары (пользователь, категория) с весом 0.0
func (r *WeightRepo) Backfill() error {
	sql := `
		INSERT INTO user_category_weights (user_id, category_id, weight, created_at, updated_at)
		SELECT u.id, c.id, 0.0, NOW(), NOW()
		FROM users u CROSS JOIN categories c
		ON CONFLICT (user_id, category_id) DO NOTHING
	`
	result := r.db.Exec(sql)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("[WeightRepo] Backfill создал %d недостающих весов", result.RowsAffected)
	}
	return nil
}
