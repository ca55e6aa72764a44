package entity

import "time"

// UserCategoryWeight - адаптивный вес пользователя в категории.
// Чем выше вес, тем более сложные вопросы допускаются при генерации.
// Инвариант: ровно одна строка на пару (user, category); строка создаётся
// лениво при первом обращении или пакетно через Backfill.
type UserCategoryWeight struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_category_weight" json:"user_id"`
	CategoryID uint      `gorm:"not null;uniqueIndex:idx_user_category_weight" json:"category_id"`
	Weight     float64   `gorm:"not null;default:0" json:"weight"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserCategoryWeight) TableName() string {
	return "user_category_weights"
}
