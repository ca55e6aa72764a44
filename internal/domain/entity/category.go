package entity

import "time"

// Category представляет категорию вопросов.
// Вес пользователя отслеживается отдельно на пару (пользователь, категория).
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}
